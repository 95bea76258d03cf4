package engine

import (
	"math"

	"github.com/sirupsen/logrus"
)

// tieEpsilon tolerates the floating-point noise left by one-decimal net
// scores. Used everywhere ties matter.
const tieEpsilon = 0.05

// matchPointPool is the total awarded per head-to-head matchup.
const matchPointPool = 20

// MatchPoints is the point split for one head-to-head matchup.
type MatchPoints struct {
	TeamAPoints int `json:"team_a_points"`
	TeamBPoints int `json:"team_b_points"`
}

// ScoresTied reports whether two net scores are close enough to count as a tie.
func ScoresTied(a, b float64) bool {
	return math.Abs(a-b) < tieEpsilon
}

// NetScore converts a gross score and handicap into a net score rounded to one
// decimal place. A non-finite result degrades to 0 with a warning.
func (e *Engine) NetScore(gross, handicap float64) float64 {
	net := math.Round((gross-handicap)*10) / 10
	if math.IsNaN(net) || math.IsInf(net, 0) {
		e.log.WithFields(logrus.Fields{
			"gross":    gross,
			"handicap": handicap,
		}).Warn("non-finite net score, using 0")
		return 0
	}
	return net
}

// SuggestPoints splits the 20-point match pool between two net scores. The
// winner takes 11 plus the stroke margin rounded up, capped at 16; ties and
// non-finite inputs split the pool 10/10.
func (e *Engine) SuggestPoints(netA, netB float64) MatchPoints {
	if math.IsNaN(netA) || math.IsInf(netA, 0) || math.IsNaN(netB) || math.IsInf(netB, 0) {
		e.log.WithFields(logrus.Fields{
			"net_a": netA,
			"net_b": netB,
		}).Warn("non-finite net score in matchup, splitting points evenly")
		return MatchPoints{TeamAPoints: 10, TeamBPoints: 10}
	}

	if ScoresTied(netA, netB) {
		return MatchPoints{TeamAPoints: 10, TeamBPoints: 10}
	}

	margin := int(math.Ceil(math.Abs(netA - netB)))
	winnerPoints := 11 + margin
	if winnerPoints > 16 {
		winnerPoints = 16
	}
	loserPoints := matchPointPool - winnerPoints

	if netA < netB { // lower net score wins
		return MatchPoints{TeamAPoints: winnerPoints, TeamBPoints: loserPoints}
	}
	return MatchPoints{TeamAPoints: loserPoints, TeamBPoints: winnerPoints}
}

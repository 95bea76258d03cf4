package engine

import (
	"sort"

	"github.com/google/uuid"
)

// StrokePlayEntry is one team's weekly stroke-play result.
type StrokePlayEntry struct {
	TeamID     uuid.UUID `json:"team_id"`
	NetScore   float64   `json:"net_score"`
	GrossScore float64   `json:"gross_score"`
	IsDNP      bool      `json:"is_dnp"`
}

// StrokePlayResult is the points outcome for one entry. Position is 1-based
// among playing entries; DNP entries get position 0.
type StrokePlayResult struct {
	TeamID   uuid.UUID `json:"team_id"`
	Position int       `json:"position"`
	NetScore float64   `json:"net_score"`
	Points   float64   `json:"points"`
	Bonus    float64   `json:"bonus"`
	IsDNP    bool      `json:"is_dnp"`
}

// StrokePlayPoints ranks a week's entries by net score (lower is better),
// maps ranks onto the point scale, and resolves tie groups by the configured
// mode. The scale is extended with zeros when the field outgrows it. Playing
// entries earn the show-up bonus, plus the beat-handicap bonus when their net
// score beats the bonus base score. DNP entries sit outside the ranking.
func (e *Engine) StrokePlayPoints(entries []StrokePlayEntry, pointScale []float64, tieMode TieMode, bonus StrokePlayBonusConfig) []StrokePlayResult {
	playing := make([]StrokePlayEntry, 0, len(entries))
	results := make([]StrokePlayResult, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDNP {
			results = append(results, StrokePlayResult{
				TeamID:   entry.TeamID,
				Position: 0,
				NetScore: entry.NetScore,
				Points:   bonus.DNPPoints + bonus.DNPPenalty,
				IsDNP:    true,
			})
			continue
		}
		playing = append(playing, entry)
	}

	sort.SliceStable(playing, func(i, j int) bool {
		return playing[i].NetScore < playing[j].NetScore
	})

	scale := make([]float64, len(pointScale))
	copy(scale, pointScale)
	for len(scale) < len(playing) {
		scale = append(scale, 0)
	}

	for start := 0; start < len(playing); {
		end := start + 1
		for end < len(playing) && ScoresTied(playing[end].NetScore, playing[start].NetScore) {
			end++
		}

		points := scale[start]
		if end-start > 1 && tieMode == TieSplit {
			total := 0.0
			for i := start; i < end; i++ {
				total += scale[i]
			}
			points = total / float64(end-start)
		}

		for i := start; i < end; i++ {
			entry := playing[i]
			entryBonus := bonus.ShowUpBonus
			if entry.NetScore < bonus.BaseScore {
				entryBonus += bonus.BeatHandicapBonus
			}
			results = append(results, StrokePlayResult{
				TeamID:   entry.TeamID,
				Position: start + 1,
				NetScore: entry.NetScore,
				Points:   points + entryBonus,
				Bonus:    entryBonus,
			})
		}

		start = end
	}

	return results
}

package engine

import (
	"math"

	"github.com/sirupsen/logrus"
)

// CalculateHandicap derives a team's integer handicap from its chronological
// gross-score history. weekNumber is the week the handicap applies to; pass 0
// when unknown, which disables the freeze-week and provisional rules.
//
// The pipeline order is part of the contract. In particular, freeze-week
// truncation runs before invalid scores are filtered: each array position
// means one calendar week, and filtering first would let a later week's score
// slide into an earlier slot.
func (e *Engine) CalculateHandicap(scores []float64, settings HandicapSettings, weekNumber int) int {
	if len(scores) == 0 {
		return settings.DefaultHandicap
	}

	if weekNumber > 0 && settings.FreezeWeek > 0 && weekNumber > settings.FreezeWeek {
		if settings.FreezeWeek < len(scores) {
			scores = scores[:settings.FreezeWeek]
		}
		if len(scores) == 0 {
			return settings.DefaultHandicap
		}
	}

	valid := make([]float64, 0, len(scores))
	for _, s := range scores {
		if s >= 0 && !math.IsNaN(s) && !math.IsInf(s, 0) {
			valid = append(valid, s)
		}
	}
	if len(valid) == 0 {
		return settings.DefaultHandicap
	}

	conditioned := e.CapExceptionalScores(valid, settings)
	selected := e.SelectScores(conditioned, settings)
	if len(selected) == 0 {
		return settings.DefaultHandicap
	}

	average := e.WeightedAverage(selected, settings)

	raw := (average - settings.BaseScore) * settings.Multiplier
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		e.log.WithFields(logrus.Fields{
			"average":    average,
			"base_score": settings.BaseScore,
		}).Warn("non-finite raw handicap, using default")
		return settings.DefaultHandicap
	}

	raw -= e.TrendAdjustment(selected, settings)

	if weekNumber >= 1 && weekNumber <= settings.ProvWeeks {
		raw *= settings.ProvMultiplier
	}

	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		e.log.WithField("raw_handicap", raw).Warn("non-finite adjusted handicap, using default")
		return settings.DefaultHandicap
	}

	handicap := roundHandicap(raw, settings.Rounding)

	if settings.MinHandicap != nil && settings.MaxHandicap != nil && *settings.MaxHandicap < *settings.MinHandicap {
		e.log.WithFields(logrus.Fields{
			"min_handicap": *settings.MinHandicap,
			"max_handicap": *settings.MaxHandicap,
		}).Warn("max handicap below min handicap, skipping caps")
	} else {
		if settings.MinHandicap != nil && handicap < *settings.MinHandicap {
			handicap = *settings.MinHandicap
		}
		if settings.MaxHandicap != nil && handicap > *settings.MaxHandicap {
			handicap = *settings.MaxHandicap
		}
	}

	return handicap
}

func roundHandicap(raw float64, mode RoundingMode) int {
	switch mode {
	case RoundCeil:
		return int(math.Ceil(raw))
	case RoundNearest:
		return int(math.Round(raw))
	default:
		return int(math.Floor(raw))
	}
}

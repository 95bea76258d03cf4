package engine

import "math"

func simpleMean(scores []float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	total := 0.0
	for _, s := range scores {
		total += s
	}
	return total / float64(len(scores))
}

// WeightedAverage computes the average of a chronological score set. With
// weighting disabled, or a single score, it is the arithmetic mean. Otherwise
// the entry at position i of L scores gets weight
// weightRecent * weightDecay^(L-1-i), so with decay < 1 the newest score
// carries the most weight.
func (e *Engine) WeightedAverage(scores []float64, settings HandicapSettings) float64 {
	if len(scores) == 0 {
		return 0
	}
	if len(scores) == 1 || !settings.UseWeighting {
		return simpleMean(scores)
	}

	weightedSum := 0.0
	totalWeight := 0.0
	last := len(scores) - 1
	for i, s := range scores {
		weight := settings.WeightRecent * math.Pow(settings.WeightDecay, float64(last-i))
		weightedSum += s * weight
		totalWeight += weight
	}

	if totalWeight == 0 {
		return simpleMean(scores)
	}
	return weightedSum / totalWeight
}

// TrendAdjustment measures momentum by comparing the older half of a score set
// against the newer half. For odd lengths the middle entry is excluded from
// both halves so neither side is biased. A positive result means scores are
// dropping (the player is improving); the caller subtracts it from the raw
// handicap.
func (e *Engine) TrendAdjustment(scores []float64, settings HandicapSettings) float64 {
	if !settings.UseTrend || len(scores) < 3 {
		return 0
	}

	mid := len(scores) / 2
	older := scores[:mid]
	newer := scores[len(scores)-mid:]

	trend := simpleMean(older) - simpleMean(newer)
	return trend * settings.TrendWeight
}

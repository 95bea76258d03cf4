package engine

import (
	"sort"

	"github.com/sirupsen/logrus"
)

// indexedScore pairs a score with its position in the chronological history so
// value-based sorting can be undone afterwards. Selection must never reorder
// the output: downstream weighting and trend analysis read position as
// "calendar week".
type indexedScore struct {
	index int
	value float64
}

func indexScores(scores []float64) []indexedScore {
	tagged := make([]indexedScore, len(scores))
	for i, s := range scores {
		tagged[i] = indexedScore{index: i, value: s}
	}
	return tagged
}

func chronological(tagged []indexedScore) []float64 {
	sort.Slice(tagged, func(i, j int) bool {
		return tagged[i].index < tagged[j].index
	})
	out := make([]float64, len(tagged))
	for i, t := range tagged {
		out[i] = t.value
	}
	return out
}

// SelectScores applies the configured selection method and drop rules to a
// chronological score history, preserving chronological order in the result.
func (e *Engine) SelectScores(scores []float64, settings HandicapSettings) []float64 {
	if len(scores) == 0 {
		return []float64{}
	}

	selected := scores
	switch settings.ScoreSelection {
	case SelectLastN:
		selected = e.selectLastN(scores, settings.ScoreCount)
	case SelectBestOfLast:
		selected = e.selectBestOfLast(scores, settings.BestOf, settings.LastOf)
	default: // SelectAll
	}

	if settings.DropHighest > 0 || settings.DropLowest > 0 {
		selected = dropExtremes(selected, settings.DropHighest, settings.DropLowest)
	}

	return selected
}

func (e *Engine) selectLastN(scores []float64, count *int) []float64 {
	if count == nil {
		return scores
	}
	n := *count
	if n <= 0 {
		return []float64{}
	}
	if n >= len(scores) {
		return scores
	}
	return scores[len(scores)-n:]
}

// selectBestOfLast takes the trailing lastOf entries and keeps the bestOf
// lowest values among them (lower is better), in their original order.
func (e *Engine) selectBestOfLast(scores []float64, bestOf, lastOf int) []float64 {
	if lastOf > len(scores) {
		lastOf = len(scores)
	}
	if lastOf < 0 {
		lastOf = 0
	}
	window := scores[len(scores)-lastOf:]

	if bestOf > lastOf {
		e.log.WithFields(logrus.Fields{
			"best_of": bestOf,
			"last_of": lastOf,
		}).Warn("best_of exceeds last_of, clamping")
		bestOf = lastOf
	}
	if bestOf <= 0 {
		return []float64{}
	}

	tagged := indexScores(window)
	sort.SliceStable(tagged, func(i, j int) bool {
		return tagged[i].value < tagged[j].value
	})
	return chronological(tagged[:bestOf])
}

// dropExtremes removes the dropHighest highest and dropLowest lowest values.
// The highest set is removed first and the lowest computed from the remainder,
// so the two drop sets never overlap.
func dropExtremes(scores []float64, dropHighest, dropLowest int) []float64 {
	if dropHighest < 0 {
		dropHighest = 0
	}
	if dropLowest < 0 {
		dropLowest = 0
	}
	if dropHighest+dropLowest >= len(scores) {
		return []float64{}
	}

	tagged := indexScores(scores)
	sort.SliceStable(tagged, func(i, j int) bool {
		return tagged[i].value > tagged[j].value
	})
	tagged = tagged[dropHighest:]

	sort.SliceStable(tagged, func(i, j int) bool {
		return tagged[i].value < tagged[j].value
	})
	tagged = tagged[dropLowest:]

	return chronological(tagged)
}

// CapExceptionalScores clamps scores above the exceptional cap before they are
// averaged, so one blow-up week cannot inflate a handicap. It only ever lowers
// values.
func (e *Engine) CapExceptionalScores(scores []float64, settings HandicapSettings) []float64 {
	if !settings.CapExceptional || settings.ExceptionalCap == nil {
		return scores
	}
	limit := *settings.ExceptionalCap
	out := make([]float64, len(scores))
	for i, s := range scores {
		if s > limit {
			out[i] = limit
		} else {
			out[i] = s
		}
	}
	return out
}

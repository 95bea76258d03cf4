package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculateHandicapDefaults(t *testing.T) {
	e := New(nil)
	settings := DefaultHandicapSettings()

	tests := []struct {
		name     string
		scores   []float64
		week     int
		expected int
	}{
		{
			name:     "empty history returns default",
			scores:   []float64{},
			week:     0,
			expected: settings.DefaultHandicap,
		},
		{
			name:     "all invalid scores returns default",
			scores:   []float64{-4, math.NaN(), math.Inf(1)},
			week:     0,
			expected: settings.DefaultHandicap,
		},
		{
			name:     "average 40 floors to 4",
			scores:   []float64{40, 42, 38},
			week:     0,
			expected: 4, // (40-35)*0.9 = 4.5
		},
		{
			name:     "single high score capped at max",
			scores:   []float64{100},
			week:     0,
			expected: 9, // raw 58.5, default max 9
		},
		{
			name:     "low scores clamp to min",
			scores:   []float64{30, 31},
			week:     0,
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, e.CalculateHandicap(tt.scores, settings, tt.week))
		})
	}
}

func TestCalculateHandicapUncapped(t *testing.T) {
	e := New(nil)
	settings := DefaultHandicapSettings()
	settings.MaxHandicap = nil

	// raw (100-35)*0.9 = 58.5, floor 58
	assert.Equal(t, 58, e.CalculateHandicap([]float64{100}, settings, 0))
}

func TestCalculateHandicapFreezeWeek(t *testing.T) {
	e := New(nil)
	settings := DefaultHandicapSettings()
	settings.FreezeWeek = 3

	// Truncation to the first 3 weeks happens before the invalid entry is
	// filtered: [-1, 40, 42] -> [40, 42], avg 41, (41-35)*0.9 = 5.4 -> 5.
	got := e.CalculateHandicap([]float64{-1, 40, 42, 38}, settings, 5)
	assert.Equal(t, 5, got)

	// At or before the freeze week the full history counts.
	got = e.CalculateHandicap([]float64{-1, 40, 42, 38}, settings, 3)
	assert.Equal(t, 4, got) // avg 40 -> 4.5 -> 4
}

func TestCalculateHandicapMonotonicInAverage(t *testing.T) {
	e := New(nil)
	settings := DefaultHandicapSettings()
	settings.MaxHandicap = nil

	prev := math.MinInt
	for avg := 36.0; avg <= 80; avg++ {
		h := e.CalculateHandicap([]float64{avg - 1, avg, avg + 1}, settings, 0)
		assert.GreaterOrEqual(t, h, prev, "handicap decreased as average rose to %v", avg)
		prev = h
	}
}

func TestCalculateHandicapProvisionalPeriod(t *testing.T) {
	e := New(nil)
	settings := DefaultHandicapSettings()
	settings.ProvWeeks = 2
	settings.ProvMultiplier = 0.5
	settings.MaxHandicap = nil

	scores := []float64{45, 45, 45} // raw (45-35)*0.9 = 9

	assert.Equal(t, 4, e.CalculateHandicap(scores, settings, 1), "week 1 is provisional")
	assert.Equal(t, 4, e.CalculateHandicap(scores, settings, 2), "week 2 is provisional")
	assert.Equal(t, 9, e.CalculateHandicap(scores, settings, 3), "week 3 is full strength")
	assert.Equal(t, 9, e.CalculateHandicap(scores, settings, 0), "unknown week skips the provisional rule")
}

func TestCalculateHandicapRoundingModes(t *testing.T) {
	e := New(nil)
	scores := []float64{40, 42, 38} // raw 4.5

	tests := []struct {
		mode     RoundingMode
		expected int
	}{
		{RoundFloor, 4},
		{RoundNearest, 5},
		{RoundCeil, 5},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			settings := DefaultHandicapSettings()
			settings.Rounding = tt.mode
			assert.Equal(t, tt.expected, e.CalculateHandicap(scores, settings, 0))
		})
	}
}

func TestCalculateHandicapContradictoryCaps(t *testing.T) {
	e := New(nil)
	settings := DefaultHandicapSettings()
	settings.MinHandicap = intPtr(10)
	settings.MaxHandicap = intPtr(2)

	// max < min is tolerated by skipping capping entirely.
	assert.Equal(t, 58, e.CalculateHandicap([]float64{100}, settings, 0))
}

func TestCalculateHandicapTrend(t *testing.T) {
	e := New(nil)
	settings := DefaultHandicapSettings()
	settings.UseTrend = true
	settings.TrendWeight = 1.0
	settings.MaxHandicap = nil

	// Improving player: older half avg 50, newer half avg 40, middle excluded.
	// avg 45, raw (45-35)*0.9 = 9, trend (50-40)*1.0 = 10 subtracted -> -1,
	// min cap 0 applies.
	scores := []float64{50, 50, 45, 40, 40}
	assert.Equal(t, 0, e.CalculateHandicap(scores, settings, 0))

	// Declining player gets the adjustment added back.
	scores = []float64{40, 40, 45, 50, 50}
	assert.Equal(t, 19, e.CalculateHandicap(scores, settings, 0)) // 9 - (-10) = 19
}

func TestCalculateHandicapSelectionEmptiesToDefault(t *testing.T) {
	e := New(nil)
	settings := DefaultHandicapSettings()
	settings.DefaultHandicap = 7
	settings.DropHighest = 2
	settings.DropLowest = 2

	assert.Equal(t, 7, e.CalculateHandicap([]float64{40, 41, 42}, settings, 0))
}

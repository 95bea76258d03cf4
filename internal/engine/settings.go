package engine

// RoundingMode selects how the raw handicap is rounded to an integer.
type RoundingMode string

const (
	RoundFloor   RoundingMode = "floor"
	RoundNearest RoundingMode = "round"
	RoundCeil    RoundingMode = "ceil"
)

// ScoreSelection selects which portion of a team's score history feeds the average.
type ScoreSelection string

const (
	SelectAll        ScoreSelection = "all"
	SelectLastN      ScoreSelection = "last_n"
	SelectBestOfLast ScoreSelection = "best_of_last"
)

// TieMode controls how tied stroke-play entries share scale points.
type TieMode string

const (
	TieSplit TieMode = "split" // tied entries average the scale values they span
	TieSame  TieMode = "same"  // tied entries all take the leading scale value
)

// HandicapSettings bundles every knob of the handicap calculation. It is built
// once per league configuration and treated as read-only afterwards. Nullable
// fields use pointers: nil means "no cap" / "no count configured".
type HandicapSettings struct {
	BaseScore       float64        `json:"base_score"`
	Multiplier      float64        `json:"multiplier"`
	Rounding        RoundingMode   `json:"rounding"`
	DefaultHandicap int            `json:"default_handicap"`
	MinHandicap     *int           `json:"min_handicap"`
	MaxHandicap     *int           `json:"max_handicap"`
	ScoreSelection  ScoreSelection `json:"score_selection"`
	ScoreCount      *int           `json:"score_count"`
	BestOf          int            `json:"best_of"`
	LastOf          int            `json:"last_of"`
	DropHighest     int            `json:"drop_highest"`
	DropLowest      int            `json:"drop_lowest"`
	UseWeighting    bool           `json:"use_weighting"`
	WeightRecent    float64        `json:"weight_recent"`
	WeightDecay     float64        `json:"weight_decay"`
	CapExceptional  bool           `json:"cap_exceptional"`
	ExceptionalCap  *float64       `json:"exceptional_cap"`
	ProvWeeks       int            `json:"prov_weeks"`
	ProvMultiplier  float64        `json:"prov_multiplier"`
	FreezeWeek      int            `json:"freeze_week"`
	UseTrend        bool           `json:"use_trend"`
	TrendWeight     float64        `json:"trend_weight"`
}

// StrokePlayBonusConfig carries the participation and performance bonus
// parameters for stroke-play scoring.
type StrokePlayBonusConfig struct {
	ShowUpBonus       float64 `json:"show_up_bonus"`
	BeatHandicapBonus float64 `json:"beat_handicap_bonus"`
	BaseScore         float64 `json:"base_score"`
	DNPPoints         float64 `json:"dnp_points"`
	DNPPenalty        float64 `json:"dnp_penalty"`
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

// DefaultHandicapSettings returns the documented default configuration:
// handicap = floor((avg - 35) * 0.9), clamped to [0, 9], full history, no
// weighting, no trend, no provisional scaling.
func DefaultHandicapSettings() HandicapSettings {
	return HandicapSettings{
		BaseScore:       35,
		Multiplier:      0.9,
		Rounding:        RoundFloor,
		DefaultHandicap: 0,
		MinHandicap:     intPtr(0),
		MaxHandicap:     intPtr(9),
		ScoreSelection:  SelectAll,
		WeightRecent:    1.0,
		WeightDecay:     0.8,
		ProvMultiplier:  1.0,
		TrendWeight:     0.5,
	}
}

// DefaultBonusConfig returns the stroke-play bonus defaults: one point for
// showing up, one more for beating the base score, DNP scores nothing.
func DefaultBonusConfig() StrokePlayBonusConfig {
	return StrokePlayBonusConfig{
		ShowUpBonus:       1,
		BeatHandicapBonus: 1,
		BaseScore:         40,
	}
}

// PresetSettings returns a named settings preset. Unknown names fall back to
// the defaults with a warning rather than failing; presets seed custom
// configurations, they are never an error path.
func (e *Engine) PresetSettings(name string) HandicapSettings {
	switch name {
	case "", "standard":
		return DefaultHandicapSettings()
	case "aggressive":
		s := DefaultHandicapSettings()
		s.Multiplier = 1.0
		s.UseWeighting = true
		s.UseTrend = true
		s.MaxHandicap = intPtr(12)
		return s
	case "conservative":
		s := DefaultHandicapSettings()
		s.Multiplier = 0.8
		s.CapExceptional = true
		s.ExceptionalCap = floatPtr(60)
		s.MaxHandicap = intPtr(7)
		return s
	case "best_of":
		s := DefaultHandicapSettings()
		s.ScoreSelection = SelectBestOfLast
		s.BestOf = 4
		s.LastOf = 6
		return s
	default:
		e.log.WithField("preset", name).Warn("unknown handicap preset, using standard defaults")
		return DefaultHandicapSettings()
	}
}

// Normalize validates the string-typed enum fields once at the construction
// boundary, replacing unrecognized values with their defaults. The calculation
// functions can then assume the enums are well formed.
func (e *Engine) Normalize(s HandicapSettings) HandicapSettings {
	switch s.Rounding {
	case RoundFloor, RoundNearest, RoundCeil:
	default:
		if s.Rounding != "" {
			e.log.WithField("rounding", string(s.Rounding)).Warn("unknown rounding mode, using floor")
		}
		s.Rounding = RoundFloor
	}

	switch s.ScoreSelection {
	case SelectAll, SelectLastN, SelectBestOfLast:
	default:
		if s.ScoreSelection != "" {
			e.log.WithField("score_selection", string(s.ScoreSelection)).Warn("unknown score selection, using all")
		}
		s.ScoreSelection = SelectAll
	}

	return s
}

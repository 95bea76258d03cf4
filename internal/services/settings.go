package services

import (
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/league-engine/internal/engine"
	"github.com/jstittsworth/league-engine/internal/models"
)

// storedHandicapConfig is the JSON shape persisted on a league. Every field is
// optional; pointers distinguish "absent" from zero values.
type storedHandicapConfig struct {
	Preset          *string  `json:"preset"`
	BaseScore       *float64 `json:"base_score"`
	Multiplier      *float64 `json:"multiplier"`
	Rounding        *string  `json:"rounding"`
	DefaultHandicap *int     `json:"default_handicap"`
	MinHandicap     *int     `json:"min_handicap"`
	MaxHandicap     *int     `json:"max_handicap"`
	NoMinHandicap   bool     `json:"no_min_handicap"`
	NoMaxHandicap   bool     `json:"no_max_handicap"`
	ScoreSelection  *string  `json:"score_selection"`
	ScoreCount      *int     `json:"score_count"`
	BestOf          *int     `json:"best_of"`
	LastOf          *int     `json:"last_of"`
	DropHighest     *int     `json:"drop_highest"`
	DropLowest      *int     `json:"drop_lowest"`
	UseWeighting    *bool    `json:"use_weighting"`
	WeightRecent    *float64 `json:"weight_recent"`
	WeightDecay     *float64 `json:"weight_decay"`
	CapExceptional  *bool    `json:"cap_exceptional"`
	ExceptionalCap  *float64 `json:"exceptional_cap"`
	ProvWeeks       *int     `json:"prov_weeks"`
	ProvMultiplier  *float64 `json:"prov_multiplier"`
	FreezeWeek      *int     `json:"freeze_week"`
	UseTrend        *bool    `json:"use_trend"`
	TrendWeight     *float64 `json:"trend_weight"`
}

// SettingsService maps a league's stored configuration record onto fully
// populated engine settings. Malformed configuration falls back wholesale to
// the defaults, never partially: a half-applied config would change
// competitive outcomes silently.
type SettingsService struct {
	engine *engine.Engine
	logger *logrus.Logger
}

func NewSettingsService(eng *engine.Engine, logger *logrus.Logger) *SettingsService {
	return &SettingsService{
		engine: eng,
		logger: logger,
	}
}

// HandicapSettingsFor builds the league's handicap settings: preset (or
// defaults) as the base, explicit overrides on top, enums validated once here
// so the engine never sees malformed values.
func (s *SettingsService) HandicapSettingsFor(league *models.League) engine.HandicapSettings {
	base := engine.DefaultHandicapSettings()

	if len(league.HandicapConfig) == 0 {
		return base
	}

	var stored storedHandicapConfig
	if err := json.Unmarshal(league.HandicapConfig, &stored); err != nil {
		s.logger.WithFields(logrus.Fields{
			"league_id": league.ID,
			"error":     err,
		}).Warn("Malformed handicap config, using defaults")
		return base
	}

	if stored.Preset != nil {
		base = s.engine.PresetSettings(*stored.Preset)
	}

	if stored.BaseScore != nil {
		base.BaseScore = *stored.BaseScore
	}
	if stored.Multiplier != nil {
		base.Multiplier = *stored.Multiplier
	}
	if stored.Rounding != nil {
		base.Rounding = engine.RoundingMode(*stored.Rounding)
	}
	if stored.DefaultHandicap != nil {
		base.DefaultHandicap = *stored.DefaultHandicap
	}
	if stored.MinHandicap != nil {
		base.MinHandicap = stored.MinHandicap
	}
	if stored.MaxHandicap != nil {
		base.MaxHandicap = stored.MaxHandicap
	}
	// Explicit "no cap" beats both the default and a configured value.
	if stored.NoMinHandicap {
		base.MinHandicap = nil
	}
	if stored.NoMaxHandicap {
		base.MaxHandicap = nil
	}
	if stored.ScoreSelection != nil {
		base.ScoreSelection = engine.ScoreSelection(*stored.ScoreSelection)
	}
	if stored.ScoreCount != nil {
		base.ScoreCount = stored.ScoreCount
	}
	if stored.BestOf != nil {
		base.BestOf = *stored.BestOf
	}
	if stored.LastOf != nil {
		base.LastOf = *stored.LastOf
	}
	if stored.DropHighest != nil {
		base.DropHighest = *stored.DropHighest
	}
	if stored.DropLowest != nil {
		base.DropLowest = *stored.DropLowest
	}
	if stored.UseWeighting != nil {
		base.UseWeighting = *stored.UseWeighting
	}
	if stored.WeightRecent != nil {
		base.WeightRecent = *stored.WeightRecent
	}
	if stored.WeightDecay != nil {
		base.WeightDecay = *stored.WeightDecay
	}
	if stored.CapExceptional != nil {
		base.CapExceptional = *stored.CapExceptional
	}
	if stored.ExceptionalCap != nil {
		base.ExceptionalCap = stored.ExceptionalCap
	}
	if stored.ProvWeeks != nil {
		base.ProvWeeks = *stored.ProvWeeks
	}
	if stored.ProvMultiplier != nil {
		base.ProvMultiplier = *stored.ProvMultiplier
	}
	if stored.FreezeWeek != nil {
		base.FreezeWeek = *stored.FreezeWeek
	}
	if stored.UseTrend != nil {
		base.UseTrend = *stored.UseTrend
	}
	if stored.TrendWeight != nil {
		base.TrendWeight = *stored.TrendWeight
	}

	return s.engine.Normalize(base)
}

// BonusConfigFor returns the league's stroke-play bonus configuration. Stored
// overrides share the handicap config document.
func (s *SettingsService) BonusConfigFor(league *models.League) engine.StrokePlayBonusConfig {
	bonus := engine.DefaultBonusConfig()

	if len(league.HandicapConfig) == 0 {
		return bonus
	}

	var stored struct {
		ShowUpBonus       *float64 `json:"show_up_bonus"`
		BeatHandicapBonus *float64 `json:"beat_handicap_bonus"`
		BonusBaseScore    *float64 `json:"bonus_base_score"`
		DNPPoints         *float64 `json:"dnp_points"`
		DNPPenalty        *float64 `json:"dnp_penalty"`
	}
	if err := json.Unmarshal(league.HandicapConfig, &stored); err != nil {
		return bonus
	}

	if stored.ShowUpBonus != nil {
		bonus.ShowUpBonus = *stored.ShowUpBonus
	}
	if stored.BeatHandicapBonus != nil {
		bonus.BeatHandicapBonus = *stored.BeatHandicapBonus
	}
	if stored.BonusBaseScore != nil {
		bonus.BaseScore = *stored.BonusBaseScore
	}
	if stored.DNPPoints != nil {
		bonus.DNPPoints = *stored.DNPPoints
	}
	if stored.DNPPenalty != nil {
		bonus.DNPPenalty = *stored.DNPPenalty
	}

	return bonus
}

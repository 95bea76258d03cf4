package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/league-engine/internal/engine"
	"github.com/jstittsworth/league-engine/internal/models"
	"github.com/jstittsworth/league-engine/pkg/database"
)

const handicapCacheTTL = 15 * time.Minute

// HandicapService ties the collaborators together: score history + league
// settings feed the engine, and the result is cached per (team, week) until a
// new score invalidates it.
type HandicapService struct {
	db       *database.DB
	cache    *CacheService
	engine   *engine.Engine
	history  *ScoreHistoryService
	settings *SettingsService
	logger   *logrus.Logger
}

func NewHandicapService(db *database.DB, cache *CacheService, eng *engine.Engine, history *ScoreHistoryService, settings *SettingsService, logger *logrus.Logger) *HandicapService {
	return &HandicapService{
		db:       db,
		cache:    cache,
		engine:   eng,
		history:  history,
		settings: settings,
		logger:   logger,
	}
}

// TeamHandicap computes the handicap a team carries into the given week. With
// weekNumber 0 the full history counts and the time-based rules are skipped.
func (s *HandicapService) TeamHandicap(ctx context.Context, league *models.League, teamID uuid.UUID, weekNumber int) (int, error) {
	cacheKey := HandicapCacheKey(teamID, weekNumber)

	var cached int
	if s.cache != nil {
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	scores, err := s.history.GrossScores(league.ScoringType, teamID, weekNumber)
	if err != nil {
		return 0, fmt.Errorf("failed to load history for team %s: %w", teamID, err)
	}

	settings := s.settings.HandicapSettingsFor(league)
	handicap := s.engine.CalculateHandicap(scores, settings, weekNumber)

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, handicap, handicapCacheTTL); err != nil {
			s.logger.WithField("error", err).Debug("Failed to cache handicap")
		}
	}

	return handicap, nil
}

// NetScoreFor converts a team's gross score into its net score for the week.
func (s *HandicapService) NetScoreFor(ctx context.Context, league *models.League, teamID uuid.UUID, weekNumber int, gross float64) (float64, int, error) {
	handicap, err := s.TeamHandicap(ctx, league, teamID, weekNumber)
	if err != nil {
		return 0, 0, err
	}
	return s.engine.NetScore(gross, float64(handicap)), handicap, nil
}

// InvalidateTeam drops every cached handicap for a team. Called whenever a new
// score lands, since any week's handicap may depend on it.
func (s *HandicapService) InvalidateTeam(ctx context.Context, teamID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, TeamHandicapPattern(teamID)); err != nil {
		s.logger.WithFields(logrus.Fields{
			"team_id": teamID,
			"error":   err,
		}).Debug("Failed to invalidate handicap cache")
	}
}

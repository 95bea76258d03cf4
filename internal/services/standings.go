package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/league-engine/internal/models"
	"github.com/jstittsworth/league-engine/pkg/database"
)

const standingsCacheTTL = 5 * time.Minute

// StandingsRow is one team's accumulated season record.
type StandingsRow struct {
	TeamID   uuid.UUID `json:"team_id"`
	TeamName string    `json:"team_name"`
	Played   int       `json:"played"`
	Wins     int       `json:"wins"`
	Losses   int       `json:"losses"`
	Ties     int       `json:"ties"`
	Points   float64   `json:"points"`
}

// StandingsService folds completed matchup points into ranked standings.
type StandingsService struct {
	db     *database.DB
	cache  *CacheService
	logger *logrus.Logger
	cron   *cron.Cron
}

func NewStandingsService(db *database.DB, cache *CacheService, logger *logrus.Logger) *StandingsService {
	return &StandingsService{
		db:     db,
		cache:  cache,
		logger: logger,
	}
}

// LeagueStandings returns teams ranked by accumulated points (descending),
// computed from completed matchups. Byes count as played weeks but award only
// the points already stored on the matchup row.
func (s *StandingsService) LeagueStandings(ctx context.Context, leagueID uuid.UUID) ([]StandingsRow, error) {
	cacheKey := StandingsCacheKey(leagueID)

	var cached []StandingsRow
	if s.cache != nil {
		if err := s.cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	standings, err := s.computeStandings(leagueID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, standings, standingsCacheTTL); err != nil {
			s.logger.WithField("error", err).Debug("Failed to cache standings")
		}
	}

	return standings, nil
}

func (s *StandingsService) computeStandings(leagueID uuid.UUID) ([]StandingsRow, error) {
	var teams []models.Team
	if err := s.db.Where("league_id = ? AND active = ?", leagueID, true).Find(&teams).Error; err != nil {
		return nil, fmt.Errorf("failed to load teams: %w", err)
	}

	rows := make(map[uuid.UUID]*StandingsRow, len(teams))
	for _, team := range teams {
		rows[team.ID] = &StandingsRow{TeamID: team.ID, TeamName: team.Name}
	}

	var matchups []models.Matchup
	if err := s.db.Where("league_id = ? AND status = ?", leagueID, models.MatchupCompleted).Find(&matchups).Error; err != nil {
		return nil, fmt.Errorf("failed to load matchups: %w", err)
	}

	for _, m := range matchups {
		if row, ok := rows[m.TeamAID]; ok {
			row.Played++
			row.Points += m.TeamAPoints
			if !m.IsBye() {
				recordOutcome(row, m.TeamAPoints, m.TeamBPoints)
			}
		}
		if m.TeamBID != nil {
			if row, ok := rows[*m.TeamBID]; ok {
				row.Played++
				row.Points += m.TeamBPoints
				recordOutcome(row, m.TeamBPoints, m.TeamAPoints)
			}
		}
	}

	standings := make([]StandingsRow, 0, len(rows))
	for _, row := range rows {
		standings = append(standings, *row)
	}

	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Points != standings[j].Points {
			return standings[i].Points > standings[j].Points
		}
		if standings[i].Wins != standings[j].Wins {
			return standings[i].Wins > standings[j].Wins
		}
		return standings[i].TeamName < standings[j].TeamName
	})

	return standings, nil
}

func recordOutcome(row *StandingsRow, ownPoints, opponentPoints float64) {
	switch {
	case ownPoints > opponentPoints:
		row.Wins++
	case ownPoints < opponentPoints:
		row.Losses++
	default:
		row.Ties++
	}
}

// Invalidate drops the cached standings for a league.
func (s *StandingsService) Invalidate(ctx context.Context, leagueID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, StandingsCacheKey(leagueID)); err != nil {
		s.logger.WithFields(logrus.Fields{
			"league_id": leagueID,
			"error":     err,
		}).Debug("Failed to invalidate standings cache")
	}
}

// StartRefresh launches a background job that re-warms standings for active
// leagues on the given cron schedule.
func (s *StandingsService) StartRefresh(schedule string) error {
	s.cron = cron.New()
	_, err := s.cron.AddFunc(schedule, s.refreshActiveLeagues)
	if err != nil {
		return fmt.Errorf("failed to schedule standings refresh: %w", err)
	}
	s.cron.Start()
	s.logger.WithField("schedule", schedule).Info("Standings refresh job started")
	return nil
}

// StopRefresh stops the background refresh job.
func (s *StandingsService) StopRefresh() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *StandingsService) refreshActiveLeagues() {
	ctx := context.Background()

	var leagues []models.League
	if err := s.db.Where("status = ?", models.LeagueActive).Find(&leagues).Error; err != nil {
		s.logger.WithField("error", err).Error("Standings refresh failed to list leagues")
		return
	}

	for _, league := range leagues {
		s.Invalidate(ctx, league.ID)
		if _, err := s.LeagueStandings(ctx, league.ID); err != nil {
			s.logger.WithFields(logrus.Fields{
				"league_id": league.ID,
				"error":     err,
			}).Error("Standings refresh failed")
		}
	}

	s.logger.WithField("num_leagues", len(leagues)).Debug("Standings refreshed")
}

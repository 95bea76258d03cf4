package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/jstittsworth/league-engine/internal/engine"
	"github.com/jstittsworth/league-engine/internal/models"
	"github.com/jstittsworth/league-engine/pkg/database"
)

// ScheduleService owns the boundary the pure generator does not enforce: it
// decides which persisted matchups a regeneration may replace. Completed and
// cancelled weeks are never touched; only future weeks still in "scheduled"
// status are replaced.
type ScheduleService struct {
	db     *database.DB
	logger *logrus.Logger
}

func NewScheduleService(db *database.DB, logger *logrus.Logger) *ScheduleService {
	return &ScheduleService{
		db:     db,
		logger: logger,
	}
}

func (s *ScheduleService) activeTeamIDs(leagueID uuid.UUID) ([]uuid.UUID, error) {
	var teams []models.Team
	if err := s.db.Where("league_id = ? AND active = ?", leagueID, true).
		Order("created_at ASC").Find(&teams).Error; err != nil {
		return nil, fmt.Errorf("failed to load teams: %w", err)
	}
	ids := make([]uuid.UUID, len(teams))
	for i, t := range teams {
		ids[i] = t.ID
	}
	return ids, nil
}

// playedWeeks returns the weeks >= fromWeek that already hold a completed or
// cancelled matchup. Regenerated rounds are never inserted into those weeks,
// otherwise a team could end up booked twice in a week it already played.
func playedWeeks(tx *gorm.DB, leagueID uuid.UUID, fromWeek int) (map[int]bool, error) {
	var weeks []int
	if err := tx.Model(&models.Matchup{}).
		Distinct("week_number").
		Where("league_id = ? AND week_number >= ? AND status <> ?",
			leagueID, fromWeek, models.MatchupScheduled).
		Pluck("week_number", &weeks).Error; err != nil {
		return nil, fmt.Errorf("failed to load played weeks: %w", err)
	}
	blocked := make(map[int]bool, len(weeks))
	for _, week := range weeks {
		blocked[week] = true
	}
	return blocked, nil
}

func dropBlockedWeeks(matchups []models.Matchup, blocked map[int]bool) []models.Matchup {
	if len(blocked) == 0 {
		return matchups
	}
	kept := matchups[:0]
	for _, m := range matchups {
		if !blocked[m.WeekNumber] {
			kept = append(kept, m)
		}
	}
	return kept
}

func matchupsFromRounds(leagueID uuid.UUID, rounds []engine.ScheduleRound) []models.Matchup {
	var matchups []models.Matchup
	for _, round := range rounds {
		for _, pairing := range round.Pairings {
			matchups = append(matchups, models.Matchup{
				LeagueID:   leagueID,
				WeekNumber: round.WeekNumber,
				TeamAID:    pairing.TeamAID,
				TeamBID:    pairing.TeamBID,
				Status:     models.MatchupScheduled,
			})
		}
	}
	return matchups
}

// GenerateForLeague builds and persists a fresh schedule starting at
// startWeek. Existing scheduled matchups from startWeek on are replaced;
// anything completed or cancelled stays, and weeks holding such matchups
// receive no regenerated pairings at all.
func (s *ScheduleService) GenerateForLeague(league *models.League, weekCount, startWeek int, doubleRoundRobin bool) ([]models.Matchup, error) {
	teamIDs, err := s.activeTeamIDs(league.ID)
	if err != nil {
		return nil, err
	}
	if len(teamIDs) < 2 {
		return nil, fmt.Errorf("league %s needs at least 2 active teams to schedule", league.ID)
	}

	rounds := engine.GenerateSchedule(teamIDs, weekCount, startWeek, doubleRoundRobin)
	matchups := matchupsFromRounds(league.ID, rounds)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		blocked, err := playedWeeks(tx, league.ID, startWeek)
		if err != nil {
			return err
		}
		matchups = dropBlockedWeeks(matchups, blocked)

		if err := tx.Where("league_id = ? AND week_number >= ? AND status = ?",
			league.ID, startWeek, models.MatchupScheduled).
			Delete(&models.Matchup{}).Error; err != nil {
			return fmt.Errorf("failed to clear scheduled matchups: %w", err)
		}
		if len(matchups) == 0 {
			return nil
		}
		return tx.Create(&matchups).Error
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"league_id":   league.ID,
		"num_weeks":   weekCount,
		"start_week":  startWeek,
		"num_matches": len(matchups),
	}).Info("Schedule generated")

	return matchups, nil
}

// futureRounds loads the league's still-scheduled matchups from fromWeek on,
// grouped back into engine rounds for the bye-rewriting strategies.
func (s *ScheduleService) futureRounds(leagueID uuid.UUID, fromWeek int) ([]engine.ScheduleRound, error) {
	var matchups []models.Matchup
	if err := s.db.Where("league_id = ? AND week_number >= ? AND status = ?",
		leagueID, fromWeek, models.MatchupScheduled).
		Order("week_number ASC, created_at ASC").Find(&matchups).Error; err != nil {
		return nil, fmt.Errorf("failed to load future matchups: %w", err)
	}

	var rounds []engine.ScheduleRound
	for _, m := range matchups {
		if len(rounds) == 0 || rounds[len(rounds)-1].WeekNumber != m.WeekNumber {
			rounds = append(rounds, engine.ScheduleRound{WeekNumber: m.WeekNumber})
		}
		last := &rounds[len(rounds)-1]
		last.Pairings = append(last.Pairings, engine.SchedulePairing{
			TeamAID: m.TeamAID,
			TeamBID: m.TeamBID,
		})
	}
	return rounds, nil
}

func (s *ScheduleService) replaceFutureWeeks(leagueID uuid.UUID, fromWeek int, rounds []engine.ScheduleRound) error {
	matchups := matchupsFromRounds(leagueID, rounds)
	return s.db.Transaction(func(tx *gorm.DB) error {
		blocked, err := playedWeeks(tx, leagueID, fromWeek)
		if err != nil {
			return err
		}
		matchups = dropBlockedWeeks(matchups, blocked)

		if err := tx.Where("league_id = ? AND week_number >= ? AND status = ?",
			leagueID, fromWeek, models.MatchupScheduled).
			Delete(&models.Matchup{}).Error; err != nil {
			return fmt.Errorf("failed to clear scheduled matchups: %w", err)
		}
		if len(matchups) == 0 {
			return nil
		}
		return tx.Create(&matchups).Error
	})
}

// AddTeam reflows the schedule for a team joining at the league's current
// week. fill_byes slots the new team into existing bye weeks and fails when
// none remain; the regeneration strategies rebuild every remaining scheduled
// week for the enlarged roster (how historical points are treated is a
// standings concern, not a scheduling one).
func (s *ScheduleService) AddTeam(league *models.League, teamID uuid.UUID, strategy engine.AddStrategy) error {
	fromWeek := league.CurrentWeek

	switch strategy {
	case engine.AddFillByes:
		rounds, err := s.futureRounds(league.ID, fromWeek)
		if err != nil {
			return err
		}
		filled, err := engine.FillByes(rounds, teamID)
		if err != nil {
			return fmt.Errorf("fill_byes is not valid for league %s: %w", league.ID, err)
		}
		return s.replaceFutureWeeks(league.ID, fromWeek, filled)

	case engine.AddStartFromHere, engine.AddProRate, engine.AddCatchUp:
		teamIDs, err := s.activeTeamIDs(league.ID)
		if err != nil {
			return err
		}
		remaining := league.TotalWeeks - fromWeek + 1
		if remaining <= 0 {
			return fmt.Errorf("league %s has no remaining weeks to schedule", league.ID)
		}
		rounds := engine.GenerateSchedule(teamIDs, remaining, fromWeek, false)
		return s.replaceFutureWeeks(league.ID, fromWeek, rounds)

	default:
		return fmt.Errorf("unknown add strategy %q", strategy)
	}
}

// RemoveTeam reflows the schedule for a team leaving at the league's current
// week. bye_opponents turns the departed team's future matches into byes;
// regenerate rebuilds the remaining weeks for the reduced roster.
func (s *ScheduleService) RemoveTeam(league *models.League, teamID uuid.UUID, strategy engine.RemoveStrategy) error {
	fromWeek := league.CurrentWeek

	switch strategy {
	case engine.RemoveByeOpponents:
		rounds, err := s.futureRounds(league.ID, fromWeek)
		if err != nil {
			return err
		}
		rewritten := engine.RemoveTeamByes(rounds, teamID)
		return s.replaceFutureWeeks(league.ID, fromWeek, rewritten)

	case engine.RemoveRegenerate:
		teamIDs, err := s.activeTeamIDs(league.ID)
		if err != nil {
			return err
		}
		remaining := league.TotalWeeks - fromWeek + 1
		if remaining <= 0 {
			return fmt.Errorf("league %s has no remaining weeks to schedule", league.ID)
		}
		rounds := engine.GenerateSchedule(teamIDs, remaining, fromWeek, false)
		return s.replaceFutureWeeks(league.ID, fromWeek, rounds)

	default:
		return fmt.Errorf("unknown remove strategy %q", strategy)
	}
}

// WeekMatchups returns a league's matchups for one week.
func (s *ScheduleService) WeekMatchups(leagueID uuid.UUID, weekNumber int) ([]models.Matchup, error) {
	var matchups []models.Matchup
	if err := s.db.Preload("TeamA").Preload("TeamB").
		Where("league_id = ? AND week_number = ?", leagueID, weekNumber).
		Order("created_at ASC").Find(&matchups).Error; err != nil {
		return nil, fmt.Errorf("failed to load matchups: %w", err)
	}
	return matchups, nil
}

package services

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/jstittsworth/league-engine/internal/engine"
	"github.com/jstittsworth/league-engine/internal/models"
	"github.com/jstittsworth/league-engine/pkg/database"
)

type ScheduleServiceTestSuite struct {
	suite.Suite
	db       *database.DB
	schedule *ScheduleService
}

func (s *ScheduleServiceTestSuite) SetupSuite() {
	s.db = newTestDB(&s.Suite)
	s.schedule = NewScheduleService(s.db, newTestLogger())
}

func (s *ScheduleServiceTestSuite) SetupTest() {
	s.db.Exec("DELETE FROM matchups")
	s.db.Exec("DELETE FROM teams")
	s.db.Exec("DELETE FROM leagues")
}

func (s *ScheduleServiceTestSuite) createLeague(teamCount int) (*models.League, []models.Team) {
	league := &models.League{
		Name:        "Test League",
		Status:      models.LeagueActive,
		CurrentWeek: 1,
		TotalWeeks:  10,
	}
	s.Require().NoError(s.db.Create(league).Error)

	teams := make([]models.Team, teamCount)
	for i := range teams {
		teams[i] = models.Team{
			LeagueID:   league.ID,
			Name:       fmt.Sprintf("Team %d", i+1),
			JoinedWeek: 1,
			Active:     true,
		}
		s.Require().NoError(s.db.Create(&teams[i]).Error)
	}
	return league, teams
}

func (s *ScheduleServiceTestSuite) loadWeek(leagueID uuid.UUID, week int) []models.Matchup {
	var matchups []models.Matchup
	s.Require().NoError(s.db.Where("league_id = ? AND week_number = ?", leagueID, week).
		Find(&matchups).Error)
	return matchups
}

func (s *ScheduleServiceTestSuite) TestGenerateForLeague_EvenTeams() {
	league, _ := s.createLeague(4)

	matchups, err := s.schedule.GenerateForLeague(league, 3, 1, false)
	s.Require().NoError(err)
	s.Len(matchups, 6)

	for week := 1; week <= 3; week++ {
		s.Len(s.loadWeek(league.ID, week), 2)
	}
}

func (s *ScheduleServiceTestSuite) TestGenerateForLeague_OddTeamsGetByes() {
	league, teams := s.createLeague(5)

	_, err := s.schedule.GenerateForLeague(league, 5, 1, false)
	s.Require().NoError(err)

	byesByTeam := make(map[uuid.UUID]int)
	for week := 1; week <= 5; week++ {
		for _, m := range s.loadWeek(league.ID, week) {
			if m.IsBye() {
				byesByTeam[m.TeamAID]++
			}
		}
	}

	// Over a full cycle every team sits out exactly once.
	s.Len(byesByTeam, len(teams))
	for _, count := range byesByTeam {
		s.Equal(1, count)
	}
}

func (s *ScheduleServiceTestSuite) TestGenerateForLeague_TooFewTeams() {
	league, _ := s.createLeague(1)

	_, err := s.schedule.GenerateForLeague(league, 3, 1, false)
	s.Require().Error(err)
	s.Contains(err.Error(), "at least 2 active teams")
}

// assertNoDoubleBooking fails when any team appears in more than one pairing
// within a single week.
func (s *ScheduleServiceTestSuite) assertNoDoubleBooking(leagueID uuid.UUID, firstWeek, lastWeek int) {
	for week := firstWeek; week <= lastWeek; week++ {
		seen := make(map[uuid.UUID]int)
		for _, m := range s.loadWeek(leagueID, week) {
			seen[m.TeamAID]++
			if m.TeamBID != nil {
				seen[*m.TeamBID]++
			}
		}
		for teamID, count := range seen {
			s.LessOrEqual(count, 1, "team %s is booked %d times in week %d", teamID, count, week)
		}
	}
}

func (s *ScheduleServiceTestSuite) TestGenerateForLeague_PreservesCompletedWeeks() {
	league, _ := s.createLeague(4)

	_, err := s.schedule.GenerateForLeague(league, 3, 1, false)
	s.Require().NoError(err)

	// Complete week 1.
	s.Require().NoError(s.db.Model(&models.Matchup{}).
		Where("league_id = ? AND week_number = ?", league.ID, 1).
		Update("status", models.MatchupCompleted).Error)

	_, err = s.schedule.GenerateForLeague(league, 3, 1, false)
	s.Require().NoError(err)

	// Week 1 keeps exactly its completed pairings; regeneration must not
	// stack fresh rows on top of a played week.
	week1 := s.loadWeek(league.ID, 1)
	s.Require().Len(week1, 2)
	for _, m := range week1 {
		s.Equal(models.MatchupCompleted, m.Status)
	}
	s.assertNoDoubleBooking(league.ID, 1, 3)
}

func (s *ScheduleServiceTestSuite) TestAddTeam_RegenerateSkipsPlayedWeeks() {
	league, _ := s.createLeague(4)

	_, err := s.schedule.GenerateForLeague(league, 3, 1, false)
	s.Require().NoError(err)

	// Complete one of the two week-1 matchups, then reflow for a joiner
	// from week 1. The completed pairing's teams must not be rebooked.
	var played models.Matchup
	s.Require().NoError(s.db.Where("league_id = ? AND week_number = ?", league.ID, 1).
		First(&played).Error)
	played.Status = models.MatchupCompleted
	s.Require().NoError(s.db.Save(&played).Error)

	joiner := models.Team{LeagueID: league.ID, Name: "Latecomers", JoinedWeek: 1, Active: true}
	s.Require().NoError(s.db.Create(&joiner).Error)

	league.CurrentWeek = 1
	league.TotalWeeks = 3
	s.Require().NoError(s.schedule.AddTeam(league, joiner.ID, engine.AddStartFromHere))

	week1 := s.loadWeek(league.ID, 1)
	s.Require().Len(week1, 1)
	s.Equal(played.ID, week1[0].ID)
	s.assertNoDoubleBooking(league.ID, 1, 3)
}

func (s *ScheduleServiceTestSuite) TestRemoveTeam_ByeOpponents() {
	league, teams := s.createLeague(4)

	_, err := s.schedule.GenerateForLeague(league, 3, 1, false)
	s.Require().NoError(err)

	league.CurrentWeek = 2
	removed := teams[2].ID
	s.Require().NoError(s.schedule.RemoveTeam(league, removed, engine.RemoveByeOpponents))

	// Week 1 keeps its original pairings.
	s.Len(s.loadWeek(league.ID, 1), 2)

	for week := 2; week <= 3; week++ {
		for _, m := range s.loadWeek(league.ID, week) {
			s.NotEqual(removed, m.TeamAID)
			if m.TeamBID != nil {
				s.NotEqual(removed, *m.TeamBID)
			}
		}
	}
}

func (s *ScheduleServiceTestSuite) TestAddTeam_FillByesFailsWithoutByes() {
	league, _ := s.createLeague(4)

	_, err := s.schedule.GenerateForLeague(league, 3, 1, false)
	s.Require().NoError(err)

	joiner := models.Team{LeagueID: league.ID, Name: "Latecomers", JoinedWeek: 1, Active: true}
	s.Require().NoError(s.db.Create(&joiner).Error)

	err = s.schedule.AddTeam(league, joiner.ID, engine.AddFillByes)
	s.Require().Error(err)
}

func (s *ScheduleServiceTestSuite) TestAddTeam_FillByesSlotsIntoByeWeeks() {
	league, _ := s.createLeague(5)

	_, err := s.schedule.GenerateForLeague(league, 5, 1, false)
	s.Require().NoError(err)

	joiner := models.Team{LeagueID: league.ID, Name: "Latecomers", JoinedWeek: 1, Active: true}
	s.Require().NoError(s.db.Create(&joiner).Error)

	s.Require().NoError(s.schedule.AddTeam(league, joiner.ID, engine.AddFillByes))

	for week := 1; week <= 5; week++ {
		for _, m := range s.loadWeek(league.ID, week) {
			s.False(m.IsBye(), "week %d should have no byes left", week)
		}
	}
}

func (s *ScheduleServiceTestSuite) TestAddTeam_RegenerateFromCurrentWeek() {
	league, _ := s.createLeague(4)

	_, err := s.schedule.GenerateForLeague(league, 3, 1, false)
	s.Require().NoError(err)

	joiner := models.Team{LeagueID: league.ID, Name: "Latecomers", JoinedWeek: 2, Active: true}
	s.Require().NoError(s.db.Create(&joiner).Error)

	league.CurrentWeek = 2
	league.TotalWeeks = 3
	s.Require().NoError(s.schedule.AddTeam(league, joiner.ID, engine.AddStartFromHere))

	// Five teams from week 2 on: two pairings plus a bye each week.
	for week := 2; week <= 3; week++ {
		s.Len(s.loadWeek(league.ID, week), 3)
	}
}

func TestScheduleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ScheduleServiceTestSuite))
}

package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"github.com/jstittsworth/league-engine/internal/models"
	"github.com/jstittsworth/league-engine/pkg/database"
)

type StandingsServiceTestSuite struct {
	suite.Suite
	db        *database.DB
	standings *StandingsService
	league    *models.League
	teams     []models.Team
}

func (s *StandingsServiceTestSuite) SetupSuite() {
	s.db = newTestDB(&s.Suite)
	s.standings = NewStandingsService(s.db, nil, newTestLogger())
}

func (s *StandingsServiceTestSuite) SetupTest() {
	s.db.Exec("DELETE FROM matchups")
	s.db.Exec("DELETE FROM teams")
	s.db.Exec("DELETE FROM leagues")

	s.league = &models.League{Name: "Test", Status: models.LeagueActive}
	s.Require().NoError(s.db.Create(s.league).Error)

	names := []string{"Alpha", "Bravo", "Charlie"}
	s.teams = make([]models.Team, len(names))
	for i, name := range names {
		s.teams[i] = models.Team{LeagueID: s.league.ID, Name: name, Active: true}
		s.Require().NoError(s.db.Create(&s.teams[i]).Error)
	}
}

func (s *StandingsServiceTestSuite) completeMatchup(week int, teamA, teamB uuid.UUID, pointsA, pointsB float64) {
	m := models.Matchup{
		LeagueID:    s.league.ID,
		WeekNumber:  week,
		TeamAID:     teamA,
		TeamBID:     &teamB,
		Status:      models.MatchupCompleted,
		TeamAPoints: pointsA,
		TeamBPoints: pointsB,
	}
	s.Require().NoError(s.db.Create(&m).Error)
}

func (s *StandingsServiceTestSuite) completeBye(week int, team uuid.UUID, points float64) {
	m := models.Matchup{
		LeagueID:    s.league.ID,
		WeekNumber:  week,
		TeamAID:     team,
		Status:      models.MatchupCompleted,
		TeamAPoints: points,
	}
	s.Require().NoError(s.db.Create(&m).Error)
}

func (s *StandingsServiceTestSuite) TestLeagueStandings_RanksByPoints() {
	s.completeMatchup(1, s.teams[0].ID, s.teams[1].ID, 14, 6)
	s.completeBye(1, s.teams[2].ID, 10)
	s.completeMatchup(2, s.teams[2].ID, s.teams[0].ID, 12, 8)

	rows, err := s.standings.LeagueStandings(context.Background(), s.league.ID)
	s.Require().NoError(err)
	s.Require().Len(rows, 3)

	s.Equal("Alpha", rows[0].TeamName)
	s.Equal(22.0, rows[0].Points)
	s.Equal(1, rows[0].Wins)
	s.Equal(1, rows[0].Losses)
	s.Equal(2, rows[0].Played)

	s.Equal("Charlie", rows[1].TeamName)
	s.Equal(22.0, rows[1].Points)
	s.Equal(1, rows[1].Wins)
	s.Equal(2, rows[1].Played)

	s.Equal("Bravo", rows[2].TeamName)
	s.Equal(6.0, rows[2].Points)
}

func (s *StandingsServiceTestSuite) TestLeagueStandings_ByeCountsPlayedNoWin() {
	s.completeBye(1, s.teams[0].ID, 10)

	rows, err := s.standings.LeagueStandings(context.Background(), s.league.ID)
	s.Require().NoError(err)

	alpha := rows[0]
	s.Equal("Alpha", alpha.TeamName)
	s.Equal(1, alpha.Played)
	s.Equal(0, alpha.Wins)
	s.Equal(0, alpha.Losses)
	s.Equal(10.0, alpha.Points)
}

func (s *StandingsServiceTestSuite) TestLeagueStandings_IgnoresScheduledMatchups() {
	teamB := s.teams[1].ID
	m := models.Matchup{
		LeagueID:   s.league.ID,
		WeekNumber: 1,
		TeamAID:    s.teams[0].ID,
		TeamBID:    &teamB,
		Status:     models.MatchupScheduled,
	}
	s.Require().NoError(s.db.Create(&m).Error)

	rows, err := s.standings.LeagueStandings(context.Background(), s.league.ID)
	s.Require().NoError(err)
	for _, row := range rows {
		s.Equal(0, row.Played)
		s.Equal(0.0, row.Points)
	}
}

func (s *StandingsServiceTestSuite) TestLeagueStandings_EqualPointsBreaksOnWinsThenName() {
	// Alpha and Bravo tie their match 10-10, Charlie sits out and also lands
	// on 10 points but with no win either. Names break the remaining tie.
	s.completeMatchup(1, s.teams[0].ID, s.teams[1].ID, 10, 10)
	s.completeBye(1, s.teams[2].ID, 10)

	rows, err := s.standings.LeagueStandings(context.Background(), s.league.ID)
	s.Require().NoError(err)
	s.Equal("Alpha", rows[0].TeamName)
	s.Equal("Bravo", rows[1].TeamName)
	s.Equal("Charlie", rows[2].TeamName)
	s.Equal(1, rows[0].Ties)
}

func TestStandingsServiceTestSuite(t *testing.T) {
	suite.Run(t, new(StandingsServiceTestSuite))
}

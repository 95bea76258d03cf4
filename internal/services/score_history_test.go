package services

import (
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jstittsworth/league-engine/internal/models"
	"github.com/jstittsworth/league-engine/pkg/database"
)

func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestDB(s *suite.Suite) *database.DB {
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		// Match the production connection so unique index violations
		// surface as gorm.ErrDuplicatedKey here too.
		TranslateError: true,
	})
	s.Require().NoError(err)

	db := database.WrapGorm(gormDB)
	s.Require().NoError(db.AutoMigrate(
		&models.League{},
		&models.Team{},
		&models.WeeklyScore{},
		&models.Matchup{},
	))
	return db
}

type ScoreHistoryTestSuite struct {
	suite.Suite
	db      *database.DB
	history *ScoreHistoryService
	teamID  uuid.UUID
}

func (s *ScoreHistoryTestSuite) SetupSuite() {
	s.db = newTestDB(&s.Suite)
	s.history = NewScoreHistoryService(s.db, newTestLogger())
}

func (s *ScoreHistoryTestSuite) SetupTest() {
	s.db.Exec("DELETE FROM weekly_scores")
	s.teamID = uuid.New()
}

func (s *ScoreHistoryTestSuite) createScore(week int, gross float64, isSub, played bool) {
	score := models.WeeklyScore{
		LeagueID:     uuid.New(),
		TeamID:       s.teamID,
		WeekNumber:   week,
		GrossScore:   gross,
		IsSubstitute: isSub,
		Played:       played,
	}
	s.Require().NoError(s.db.Create(&score).Error)
}

func (s *ScoreHistoryTestSuite) TestGrossScores_ChronologicalOrder() {
	// Insert out of week order; query must return week order.
	s.createScore(3, 44, false, true)
	s.createScore(1, 41, false, true)
	s.createScore(2, 38, false, true)

	scores, err := s.history.GrossScores(models.ScoringMatchPlay, s.teamID, 0)
	s.Require().NoError(err)
	s.Equal([]float64{41, 38, 44}, scores)
}

func (s *ScoreHistoryTestSuite) TestGrossScores_ExcludesSubstituteAndUnplayed() {
	s.createScore(1, 41, false, true)
	s.createScore(2, 30, true, true)
	s.createScore(3, 0, false, false)
	s.createScore(4, 44, false, true)

	scores, err := s.history.GrossScores(models.ScoringMatchPlay, s.teamID, 0)
	s.Require().NoError(err)
	s.Equal([]float64{41, 44}, scores)
}

func (s *ScoreHistoryTestSuite) TestGrossScores_BeforeWeekBound() {
	s.createScore(1, 41, false, true)
	s.createScore(2, 38, false, true)
	s.createScore(3, 44, false, true)

	scores, err := s.history.GrossScores(models.ScoringStrokePlay, s.teamID, 3)
	s.Require().NoError(err)
	s.Equal([]float64{41, 38}, scores)
}

func (s *ScoreHistoryTestSuite) TestGrossScores_UnknownScoringType() {
	_, err := s.history.GrossScores(models.ScoringType("skins"), s.teamID, 0)
	s.Require().Error(err)
	s.Contains(err.Error(), "unknown scoring type")
}

func (s *ScoreHistoryTestSuite) TestDuplicateTeamWeekRejected() {
	s.createScore(1, 41, false, true)

	dup := models.WeeklyScore{
		LeagueID:   uuid.New(),
		TeamID:     s.teamID,
		WeekNumber: 1,
		GrossScore: 44,
		Played:     true,
	}
	err := s.db.Create(&dup).Error
	s.Require().Error(err)
	s.ErrorIs(err, gorm.ErrDuplicatedKey)
}

func (s *ScoreHistoryTestSuite) TestGrossScores_EmptyHistory() {
	scores, err := s.history.GrossScores(models.ScoringMatchPlay, s.teamID, 0)
	s.Require().NoError(err)
	s.Empty(scores)
}

func TestScoreHistoryTestSuite(t *testing.T) {
	suite.Run(t, new(ScoreHistoryTestSuite))
}

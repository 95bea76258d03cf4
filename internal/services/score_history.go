package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/league-engine/internal/models"
	"github.com/jstittsworth/league-engine/pkg/database"
)

// ScoreHistoryService supplies the engine's one external dependency: a team's
// gross scores in strict chronological (week) order. Substitute and unplayed
// rows never feed handicap math.
type ScoreHistoryService struct {
	db     *database.DB
	logger *logrus.Logger
}

func NewScoreHistoryService(db *database.DB, logger *logrus.Logger) *ScoreHistoryService {
	return &ScoreHistoryService{
		db:     db,
		logger: logger,
	}
}

// GrossScores returns the team's gross scores ordered by week. beforeWeek > 0
// bounds the history to weeks strictly before it (used when computing the
// handicap a team carried into a given week).
//
// An unrecognized scoring type is a programming error, not a data problem, so
// unlike the engine's data-quality fallbacks it fails loudly.
func (s *ScoreHistoryService) GrossScores(scoringType models.ScoringType, teamID uuid.UUID, beforeWeek int) ([]float64, error) {
	switch scoringType {
	case models.ScoringMatchPlay, models.ScoringStrokePlay:
	default:
		return nil, fmt.Errorf("unknown scoring type %q", scoringType)
	}

	query := s.db.Model(&models.WeeklyScore{}).
		Where("team_id = ? AND is_substitute = ? AND played = ?", teamID, false, true)
	if beforeWeek > 0 {
		query = query.Where("week_number < ?", beforeWeek)
	}

	var rows []models.WeeklyScore
	if err := query.Order("week_number ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to load score history: %w", err)
	}

	scores := make([]float64, 0, len(rows))
	for _, row := range rows {
		scores = append(scores, row.GrossScore)
	}

	s.logger.WithFields(logrus.Fields{
		"team_id":     teamID,
		"before_week": beforeWeek,
		"num_scores":  len(scores),
	}).Debug("Loaded score history")

	return scores, nil
}

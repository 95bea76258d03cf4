package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jstittsworth/league-engine/internal/models"
	"github.com/jstittsworth/league-engine/internal/services"
	"github.com/jstittsworth/league-engine/pkg/database"
	"github.com/jstittsworth/league-engine/pkg/utils"
)

type ScoreHandler struct {
	db        *database.DB
	handicaps *services.HandicapService
	standings *services.StandingsService
}

func NewScoreHandler(db *database.DB, handicaps *services.HandicapService, standings *services.StandingsService) *ScoreHandler {
	return &ScoreHandler{
		db:        db,
		handicaps: handicaps,
		standings: standings,
	}
}

type submitScoreRequest struct {
	TeamID       string  `json:"team_id" binding:"required"`
	WeekNumber   int     `json:"week_number" binding:"required"`
	GrossScore   float64 `json:"gross_score" binding:"required"`
	IsSubstitute bool    `json:"is_substitute"`
}

// SubmitScore records one team's gross score for a week. The unique
// (team, week) index rejects duplicates, which surface as a 409 rather than
// silently rewriting history.
func (h *ScoreHandler) SubmitScore(c *gin.Context) {
	leagueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendValidationError(c, "Invalid league ID", err.Error())
		return
	}

	var req submitScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid score payload", err.Error())
		return
	}
	teamID, err := uuid.Parse(req.TeamID)
	if err != nil {
		utils.SendValidationError(c, "Invalid team ID", err.Error())
		return
	}
	if req.GrossScore < 0 {
		utils.SendValidationError(c, "Gross score cannot be negative", "")
		return
	}

	var team models.Team
	if err := h.db.First(&team, "id = ? AND league_id = ?", teamID, leagueID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendNotFound(c, "Team not found in league")
		} else {
			utils.SendInternalError(c, "Failed to fetch team")
		}
		return
	}

	score := models.WeeklyScore{
		LeagueID:     leagueID,
		TeamID:       teamID,
		WeekNumber:   req.WeekNumber,
		GrossScore:   req.GrossScore,
		IsSubstitute: req.IsSubstitute,
		Played:       true,
	}
	if err := h.db.Create(&score).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			utils.SendConflict(c, "Score already submitted for this team and week")
		} else {
			utils.SendInternalError(c, "Failed to record score")
		}
		return
	}

	// A new score can shift any cached handicap or the standings.
	h.handicaps.InvalidateTeam(c.Request.Context(), teamID)
	h.standings.Invalidate(c.Request.Context(), leagueID)

	utils.SendCreated(c, score)
}

// TeamScores lists a team's scores in chronological order.
func (h *ScoreHandler) TeamScores(c *gin.Context) {
	teamID, err := uuid.Parse(c.Param("teamId"))
	if err != nil {
		utils.SendValidationError(c, "Invalid team ID", err.Error())
		return
	}

	query := h.db.Where("team_id = ?", teamID)
	if beforeWeek, err := strconv.Atoi(c.Query("before_week")); err == nil && beforeWeek > 0 {
		query = query.Where("week_number < ?", beforeWeek)
	}

	var scores []models.WeeklyScore
	if err := query.Order("week_number ASC").Find(&scores).Error; err != nil {
		utils.SendInternalError(c, "Failed to fetch scores")
		return
	}

	utils.SendSuccess(c, scores)
}

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

type HandicapHandler struct {
	db        *database.DB
	handicaps *services.HandicapService
}

func NewHandicapHandler(db *database.DB, handicaps *services.HandicapService) *HandicapHandler {
	return &HandicapHandler{
		db:        db,
		handicaps: handicaps,
	}
}

// TeamHandicap returns the handicap a team carries into a week. The optional
// "week" query parameter bounds the history; without it the whole history
// counts.
func (h *HandicapHandler) TeamHandicap(c *gin.Context) {
	leagueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendValidationError(c, "Invalid league ID", err.Error())
		return
	}
	teamID, err := uuid.Parse(c.Param("teamId"))
	if err != nil {
		utils.SendValidationError(c, "Invalid team ID", err.Error())
		return
	}

	weekNumber := 0
	if weekStr := c.Query("week"); weekStr != "" {
		weekNumber, err = strconv.Atoi(weekStr)
		if err != nil || weekNumber < 0 {
			utils.SendValidationError(c, "Invalid week number", weekStr)
			return
		}
	}

	var league models.League
	if err := h.db.First(&league, "id = ?", leagueID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendNotFound(c, "League not found")
		} else {
			utils.SendInternalError(c, "Failed to fetch league")
		}
		return
	}

	handicap, err := h.handicaps.TeamHandicap(c.Request.Context(), &league, teamID, weekNumber)
	if err != nil {
		utils.SendInternalError(c, "Failed to compute handicap")
		return
	}

	utils.SendSuccess(c, gin.H{
		"team_id":  teamID,
		"week":     weekNumber,
		"handicap": handicap,
	})
}

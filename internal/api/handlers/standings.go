package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jstittsworth/league-engine/internal/services"
	"github.com/jstittsworth/league-engine/pkg/utils"
)

type StandingsHandler struct {
	standings *services.StandingsService
}

func NewStandingsHandler(standings *services.StandingsService) *StandingsHandler {
	return &StandingsHandler{
		standings: standings,
	}
}

// LeagueStandings returns the league table, best record first.
func (h *StandingsHandler) LeagueStandings(c *gin.Context) {
	leagueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendValidationError(c, "Invalid league ID", err.Error())
		return
	}

	standings, err := h.standings.LeagueStandings(c.Request.Context(), leagueID)
	if err != nil {
		utils.SendInternalError(c, "Failed to compute standings")
		return
	}

	utils.SendSuccess(c, standings)
}

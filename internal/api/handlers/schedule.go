package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jstittsworth/league-engine/internal/engine"
	"github.com/jstittsworth/league-engine/internal/models"
	"github.com/jstittsworth/league-engine/internal/services"
	"github.com/jstittsworth/league-engine/pkg/database"
	"github.com/jstittsworth/league-engine/pkg/utils"
)

type ScheduleHandler struct {
	db       *database.DB
	schedule *services.ScheduleService
}

func NewScheduleHandler(db *database.DB, schedule *services.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{
		db:       db,
		schedule: schedule,
	}
}

func (h *ScheduleHandler) loadLeague(c *gin.Context) (*models.League, bool) {
	leagueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendValidationError(c, "Invalid league ID", err.Error())
		return nil, false
	}
	var league models.League
	if err := h.db.First(&league, "id = ?", leagueID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendNotFound(c, "League not found")
		} else {
			utils.SendInternalError(c, "Failed to fetch league")
		}
		return nil, false
	}
	return &league, true
}

type generateScheduleRequest struct {
	WeekCount        int  `json:"week_count" binding:"required"`
	StartWeek        int  `json:"start_week"`
	DoubleRoundRobin bool `json:"double_round_robin"`
}

// GenerateSchedule builds the league's round-robin schedule. Completed weeks
// are never replaced.
func (h *ScheduleHandler) GenerateSchedule(c *gin.Context) {
	league, ok := h.loadLeague(c)
	if !ok {
		return
	}

	var req generateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid schedule payload", err.Error())
		return
	}
	if req.StartWeek < 1 {
		req.StartWeek = 1
	}

	matchups, err := h.schedule.GenerateForLeague(league, req.WeekCount, req.StartWeek, req.DoubleRoundRobin)
	if err != nil {
		utils.SendInternalError(c, "Failed to generate schedule")
		return
	}

	utils.SendCreated(c, matchups)
}

// WeekSchedule returns one week's matchups.
func (h *ScheduleHandler) WeekSchedule(c *gin.Context) {
	league, ok := h.loadLeague(c)
	if !ok {
		return
	}

	week, err := strconv.Atoi(c.Param("week"))
	if err != nil || week < 1 {
		utils.SendValidationError(c, "Invalid week number", c.Param("week"))
		return
	}

	matchups, err := h.schedule.WeekMatchups(league.ID, week)
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch matchups")
		return
	}

	utils.SendSuccess(c, matchups)
}

type addTeamScheduleRequest struct {
	TeamID   string `json:"team_id" binding:"required"`
	Strategy string `json:"strategy" binding:"required"`
}

// AddTeamToSchedule reflows future weeks for a mid-season joiner.
func (h *ScheduleHandler) AddTeamToSchedule(c *gin.Context) {
	league, ok := h.loadLeague(c)
	if !ok {
		return
	}

	var req addTeamScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid payload", err.Error())
		return
	}
	teamID, err := uuid.Parse(req.TeamID)
	if err != nil {
		utils.SendValidationError(c, "Invalid team ID", err.Error())
		return
	}

	if err := h.schedule.AddTeam(league, teamID, engine.AddStrategy(req.Strategy)); err != nil {
		if strings.Contains(err.Error(), "unknown add strategy") || strings.Contains(err.Error(), "fill_byes") {
			utils.SendValidationError(c, "Cannot apply add strategy", err.Error())
		} else {
			utils.SendInternalError(c, "Failed to reflow schedule")
		}
		return
	}

	utils.SendSuccess(c, gin.H{"status": "schedule updated"})
}

type removeTeamScheduleRequest struct {
	TeamID   string `json:"team_id" binding:"required"`
	Strategy string `json:"strategy" binding:"required"`
}

// RemoveTeamFromSchedule reflows future weeks after a team departs and marks
// the team inactive.
func (h *ScheduleHandler) RemoveTeamFromSchedule(c *gin.Context) {
	league, ok := h.loadLeague(c)
	if !ok {
		return
	}

	var req removeTeamScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid payload", err.Error())
		return
	}
	teamID, err := uuid.Parse(req.TeamID)
	if err != nil {
		utils.SendValidationError(c, "Invalid team ID", err.Error())
		return
	}

	if err := h.db.Model(&models.Team{}).Where("id = ?", teamID).Update("active", false).Error; err != nil {
		utils.SendInternalError(c, "Failed to deactivate team")
		return
	}

	if err := h.schedule.RemoveTeam(league, teamID, engine.RemoveStrategy(req.Strategy)); err != nil {
		if strings.Contains(err.Error(), "unknown remove strategy") {
			utils.SendValidationError(c, "Cannot apply remove strategy", err.Error())
		} else {
			utils.SendInternalError(c, "Failed to reflow schedule")
		}
		return
	}

	utils.SendSuccess(c, gin.H{"status": "schedule updated"})
}

package handlers

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/jstittsworth/league-engine/internal/models"
	"github.com/jstittsworth/league-engine/pkg/database"
	"github.com/jstittsworth/league-engine/pkg/utils"
)

type LeagueHandler struct {
	db *database.DB
}

func NewLeagueHandler(db *database.DB) *LeagueHandler {
	return &LeagueHandler{
		db: db,
	}
}

type createLeagueRequest struct {
	Name           string         `json:"name" binding:"required"`
	ScoringType    string         `json:"scoring_type"`
	TotalWeeks     int            `json:"total_weeks"`
	TieMode        string         `json:"tie_mode"`
	PointScale     []float64      `json:"point_scale"`
	HandicapConfig map[string]any `json:"handicap_config"`
}

// CreateLeague registers a new league season.
func (h *LeagueHandler) CreateLeague(c *gin.Context) {
	var req createLeagueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid league payload", err.Error())
		return
	}

	league := models.League{
		Name:        req.Name,
		Status:      models.LeagueUpcoming,
		ScoringType: models.ScoringMatchPlay,
		TotalWeeks:  req.TotalWeeks,
		TieMode:     "split",
		PointScale:  req.PointScale,
	}
	if req.ScoringType != "" {
		league.ScoringType = models.ScoringType(req.ScoringType)
	}
	if req.TieMode != "" {
		league.TieMode = req.TieMode
	}
	if req.HandicapConfig != nil {
		raw, err := json.Marshal(req.HandicapConfig)
		if err != nil {
			utils.SendValidationError(c, "Invalid handicap config", err.Error())
			return
		}
		league.HandicapConfig = datatypes.JSON(raw)
	}

	if err := h.db.Create(&league).Error; err != nil {
		utils.SendInternalError(c, "Failed to create league")
		return
	}

	utils.SendCreated(c, league)
}

// GetLeague returns one league with its teams.
func (h *LeagueHandler) GetLeague(c *gin.Context) {
	leagueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendValidationError(c, "Invalid league ID", err.Error())
		return
	}

	var league models.League
	if err := h.db.Preload("Teams").First(&league, "id = ?", leagueID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.SendNotFound(c, "League not found")
		} else {
			utils.SendInternalError(c, "Failed to fetch league")
		}
		return
	}

	utils.SendSuccess(c, league)
}

// ListLeagues returns all leagues, optionally filtered by status.
func (h *LeagueHandler) ListLeagues(c *gin.Context) {
	query := h.db.Model(&models.League{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var leagues []models.League
	if err := query.Order("created_at DESC").Find(&leagues).Error; err != nil {
		utils.SendInternalError(c, "Failed to fetch leagues")
		return
	}

	utils.SendSuccess(c, leagues)
}

type addTeamRequest struct {
	Name string `json:"name" binding:"required"`
}

// AddTeam registers a team in a league. Joining an active league does not
// reflow the schedule by itself; that is a separate schedule operation.
func (h *LeagueHandler) AddTeam(c *gin.Context) {
	leagueID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.SendValidationError(c, "Invalid league ID", err.Error())
		return
	}

	var req addTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid team payload", err.Error())
		return
	}

	var league models.League
	if err := h.db.First(&league, "id = ?", leagueID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.SendNotFound(c, "League not found")
		} else {
			utils.SendInternalError(c, "Failed to fetch league")
		}
		return
	}

	team := models.Team{
		LeagueID:   league.ID,
		Name:       req.Name,
		JoinedWeek: league.CurrentWeek,
		Active:     true,
	}
	if err := h.db.Create(&team).Error; err != nil {
		utils.SendInternalError(c, "Failed to create team")
		return
	}

	utils.SendCreated(c, team)
}

package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jstittsworth/league-engine/internal/engine"
	"github.com/jstittsworth/league-engine/internal/models"
	"github.com/jstittsworth/league-engine/internal/services"
	"github.com/jstittsworth/league-engine/pkg/database"
	"github.com/jstittsworth/league-engine/pkg/utils"
)

// ScoringHandler turns submitted gross scores into competition points, for
// both head-to-head matchups and ranked stroke-play weeks.
type ScoringHandler struct {
	db        *database.DB
	engine    *engine.Engine
	handicaps *services.HandicapService
	settings  *services.SettingsService
	standings *services.StandingsService
}

func NewScoringHandler(db *database.DB, eng *engine.Engine, handicaps *services.HandicapService, settings *services.SettingsService, standings *services.StandingsService) *ScoringHandler {
	return &ScoringHandler{
		db:        db,
		engine:    eng,
		handicaps: handicaps,
		settings:  settings,
		standings: standings,
	}
}

type previewPointsRequest struct {
	NetA float64 `json:"net_a"`
	NetB float64 `json:"net_b"`
}

// PreviewMatchPoints suggests the 20-point split for two net scores without
// touching any stored matchup.
func (h *ScoringHandler) PreviewMatchPoints(c *gin.Context) {
	var req previewPointsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid preview payload", err.Error())
		return
	}

	utils.SendSuccess(c, h.engine.SuggestPoints(req.NetA, req.NetB))
}

func (h *ScoringHandler) loadLeague(c *gin.Context) (*models.League, bool) {
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

func (h *ScoringHandler) weeklyScore(teamID uuid.UUID, week int) (*models.WeeklyScore, error) {
	var score models.WeeklyScore
	err := h.db.Where("team_id = ? AND week_number = ?", teamID, week).First(&score).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &score, nil
}

// ScoreMatchup computes net scores for both sides of a matchup from their
// submitted weekly scores, awards the 20-point split, and marks the matchup
// completed. A bye week awards the stored bye points without an opponent.
func (h *ScoringHandler) ScoreMatchup(c *gin.Context) {
	league, ok := h.loadLeague(c)
	if !ok {
		return
	}

	matchupID, err := uuid.Parse(c.Param("matchupId"))
	if err != nil {
		utils.SendValidationError(c, "Invalid matchup ID", err.Error())
		return
	}

	var matchup models.Matchup
	if err := h.db.First(&matchup, "id = ? AND league_id = ?", matchupID, league.ID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.SendNotFound(c, "Matchup not found")
		} else {
			utils.SendInternalError(c, "Failed to fetch matchup")
		}
		return
	}
	if matchup.Status != models.MatchupScheduled {
		utils.SendConflict(c, "Matchup is already "+string(matchup.Status))
		return
	}

	scoreA, err := h.weeklyScore(matchup.TeamAID, matchup.WeekNumber)
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch scores")
		return
	}

	if matchup.IsBye() {
		// A bye is an automatic half-pool week.
		matchup.TeamAPoints = 10
		matchup.Status = models.MatchupCompleted
		if err := h.db.Save(&matchup).Error; err != nil {
			utils.SendInternalError(c, "Failed to save matchup")
			return
		}
		h.standings.Invalidate(c.Request.Context(), league.ID)
		utils.SendSuccess(c, matchup)
		return
	}

	scoreB, err := h.weeklyScore(*matchup.TeamBID, matchup.WeekNumber)
	if err != nil {
		utils.SendInternalError(c, "Failed to fetch scores")
		return
	}
	if scoreA == nil || scoreB == nil {
		utils.SendValidationError(c, "Both teams must submit a score before the matchup is scored", "")
		return
	}

	netA, _, err := h.handicaps.NetScoreFor(c.Request.Context(), league, matchup.TeamAID, matchup.WeekNumber, scoreA.GrossScore)
	if err != nil {
		utils.SendInternalError(c, "Failed to compute net score")
		return
	}
	netB, _, err := h.handicaps.NetScoreFor(c.Request.Context(), league, *matchup.TeamBID, matchup.WeekNumber, scoreB.GrossScore)
	if err != nil {
		utils.SendInternalError(c, "Failed to compute net score")
		return
	}

	points := h.engine.SuggestPoints(netA, netB)
	matchup.TeamAPoints = float64(points.TeamAPoints)
	matchup.TeamBPoints = float64(points.TeamBPoints)
	matchup.Status = models.MatchupCompleted

	if err := h.db.Save(&matchup).Error; err != nil {
		utils.SendInternalError(c, "Failed to save matchup")
		return
	}

	h.standings.Invalidate(c.Request.Context(), league.ID)

	utils.SendSuccess(c, gin.H{
		"matchup": matchup,
		"net_a":   netA,
		"net_b":   netB,
	})
}

// StrokePlayWeek ranks every active team's net score for a week and maps the
// ranking onto the league's point scale. Teams without a submitted score are
// scored as DNP.
func (h *ScoringHandler) StrokePlayWeek(c *gin.Context) {
	league, ok := h.loadLeague(c)
	if !ok {
		return
	}

	week, err := strconv.Atoi(c.Param("week"))
	if err != nil || week < 1 {
		utils.SendValidationError(c, "Invalid week number", c.Param("week"))
		return
	}

	var teams []models.Team
	if err := h.db.Where("league_id = ? AND active = ?", league.ID, true).Find(&teams).Error; err != nil {
		utils.SendInternalError(c, "Failed to fetch teams")
		return
	}

	entries := make([]engine.StrokePlayEntry, 0, len(teams))
	for _, team := range teams {
		score, err := h.weeklyScore(team.ID, week)
		if err != nil {
			utils.SendInternalError(c, "Failed to fetch scores")
			return
		}
		if score == nil || !score.Played {
			entries = append(entries, engine.StrokePlayEntry{TeamID: team.ID, IsDNP: true})
			continue
		}

		net, _, err := h.handicaps.NetScoreFor(c.Request.Context(), league, team.ID, week, score.GrossScore)
		if err != nil {
			utils.SendInternalError(c, "Failed to compute net score")
			return
		}
		entries = append(entries, engine.StrokePlayEntry{
			TeamID:     team.ID,
			NetScore:   net,
			GrossScore: score.GrossScore,
		})
	}

	results := h.engine.StrokePlayPoints(
		entries,
		league.PointScale,
		engine.TieMode(league.TieMode),
		h.settings.BonusConfigFor(league),
	)

	utils.SendSuccess(c, gin.H{
		"week":    week,
		"results": results,
	})
}

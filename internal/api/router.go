package api

import (
	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/league-engine/internal/api/handlers"
	"github.com/jstittsworth/league-engine/internal/engine"
	"github.com/jstittsworth/league-engine/internal/services"
	"github.com/jstittsworth/league-engine/pkg/database"
)

// Services bundles the shared service instances the routes depend on.
type Services struct {
	Engine    *engine.Engine
	Handicaps *services.HandicapService
	Settings  *services.SettingsService
	Standings *services.StandingsService
	Schedule  *services.ScheduleService
}

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(group *gin.RouterGroup, db *database.DB, svc *Services) {
	leagueHandler := handlers.NewLeagueHandler(db)
	scoreHandler := handlers.NewScoreHandler(db, svc.Handicaps, svc.Standings)
	handicapHandler := handlers.NewHandicapHandler(db, svc.Handicaps)
	scoringHandler := handlers.NewScoringHandler(db, svc.Engine, svc.Handicaps, svc.Settings, svc.Standings)
	standingsHandler := handlers.NewStandingsHandler(svc.Standings)
	scheduleHandler := handlers.NewScheduleHandler(db, svc.Schedule)

	// League endpoints
	group.POST("/leagues", leagueHandler.CreateLeague)
	group.GET("/leagues", leagueHandler.ListLeagues)
	group.GET("/leagues/:id", leagueHandler.GetLeague)
	group.POST("/leagues/:id/teams", leagueHandler.AddTeam)

	// Score endpoints
	group.POST("/leagues/:id/scores", scoreHandler.SubmitScore)
	group.GET("/teams/:teamId/scores", scoreHandler.TeamScores)

	// Handicap endpoints
	group.GET("/leagues/:id/teams/:teamId/handicap", handicapHandler.TeamHandicap)

	// Scoring endpoints
	group.POST("/match-points/preview", scoringHandler.PreviewMatchPoints)
	group.POST("/leagues/:id/matchups/:matchupId/score", scoringHandler.ScoreMatchup)
	group.GET("/leagues/:id/weeks/:week/stroke-play", scoringHandler.StrokePlayWeek)

	// Standings endpoints
	group.GET("/leagues/:id/standings", standingsHandler.LeagueStandings)

	// Schedule endpoints
	group.POST("/leagues/:id/schedule", scheduleHandler.GenerateSchedule)
	group.GET("/leagues/:id/schedule/:week", scheduleHandler.WeekSchedule)
	group.POST("/leagues/:id/schedule/add-team", scheduleHandler.AddTeamToSchedule)
	group.POST("/leagues/:id/schedule/remove-team", scheduleHandler.RemoveTeamFromSchedule)
}

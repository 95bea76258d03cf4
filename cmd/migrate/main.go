package main

import (
	"fmt"
	"log"
	"os"

	"github.com/jstittsworth/league-engine/internal/models"
	"github.com/jstittsworth/league-engine/pkg/config"
	"github.com/jstittsworth/league-engine/pkg/database"
	"github.com/sirupsen/logrus"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down|seed]")
	}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	command := os.Args[1]

	switch command {
	case "up":
		if err := runMigrations(db); err != nil {
			logrus.Fatalf("Failed to run migrations: %v", err)
		}
		logrus.Info("Migrations completed successfully")

	case "down":
		if err := dropTables(db); err != nil {
			logrus.Fatalf("Failed to drop tables: %v", err)
		}
		logrus.Info("Tables dropped successfully")

	case "seed":
		if err := seedData(db); err != nil {
			logrus.Fatalf("Failed to seed data: %v", err)
		}
		logrus.Info("Data seeded successfully")

	default:
		log.Fatalf("Unknown command: %s", command)
	}
}

func runMigrations(db *database.DB) error {
	// Auto migrate all models; primary keys are generated application-side
	// in the models' BeforeCreate hooks.
	if err := db.AutoMigrate(
		&models.League{},
		&models.Team{},
		&models.WeeklyScore{},
		&models.Matchup{},
	); err != nil {
		return fmt.Errorf("failed to migrate models: %w", err)
	}

	// Create indexes
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_teams_league_active ON teams(league_id, active)",
		"CREATE INDEX IF NOT EXISTS idx_weekly_scores_league_week ON weekly_scores(league_id, week_number)",
		"CREATE INDEX IF NOT EXISTS idx_matchups_league_week ON matchups(league_id, week_number)",
		"CREATE INDEX IF NOT EXISTS idx_matchups_status ON matchups(status)",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

func dropTables(db *database.DB) error {
	// Drop tables in reverse order to handle foreign key constraints
	tables := []string{
		"matchups",
		"weekly_scores",
		"teams",
		"leagues",
	}

	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}

	return nil
}

func seedData(db *database.DB) error {
	// Create sample league
	league := &models.League{
		Name:        "Thursday Night League",
		Status:      models.LeagueActive,
		ScoringType: models.ScoringMatchPlay,
		CurrentWeek: 3,
		TotalWeeks:  16,
		TieMode:     "split",
		PointScale:  []float64{10, 8, 6, 4, 2},
	}

	if err := db.Create(league).Error; err != nil {
		return fmt.Errorf("failed to create league: %w", err)
	}

	// Create sample teams
	teamNames := []string{
		"Fairway Bandits",
		"Sandbaggers",
		"Rough Riders",
		"The Mulligans",
		"Bogey Men",
		"Short Grass Society",
	}

	teams := make([]models.Team, 0, len(teamNames))
	for _, name := range teamNames {
		teams = append(teams, models.Team{
			LeagueID:   league.ID,
			Name:       name,
			JoinedWeek: 1,
			Active:     true,
		})
	}

	if err := db.Create(&teams).Error; err != nil {
		return fmt.Errorf("failed to create teams: %w", err)
	}

	// Two weeks of gross scores so handicaps have something to chew on
	weeklyGross := [][]float64{
		{41, 44, 38, 47, 43, 40},
		{39, 45, 40, 46, 42, 41},
	}

	for week, grossRow := range weeklyGross {
		for i, gross := range grossRow {
			score := models.WeeklyScore{
				LeagueID:   league.ID,
				TeamID:     teams[i].ID,
				WeekNumber: week + 1,
				GrossScore: gross,
				Played:     true,
			}
			if err := db.Create(&score).Error; err != nil {
				return fmt.Errorf("failed to create weekly score: %w", err)
			}
		}
	}

	logrus.Infof("Seeded league %s with %d teams and %d weeks of scores", league.ID, len(teams), len(weeklyGross))

	return nil
}

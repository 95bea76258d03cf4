package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&League{}, &Team{}, &WeeklyScore{}, &Matchup{}))
	return db
}

func TestAutoMigrate_PortableAcrossDialects(t *testing.T) {
	// The schema must carry no Postgres-only DDL; migrating against sqlite
	// is the canary.
	openTestDB(t)
}

func TestBeforeCreate_AssignsIDs(t *testing.T) {
	db := openTestDB(t)

	league := League{Name: "Test"}
	require.NoError(t, db.Create(&league).Error)
	assert.NotEqual(t, uuid.Nil, league.ID)

	team := Team{LeagueID: league.ID, Name: "Alpha", Active: true}
	require.NoError(t, db.Create(&team).Error)
	assert.NotEqual(t, uuid.Nil, team.ID)

	score := WeeklyScore{LeagueID: league.ID, TeamID: team.ID, WeekNumber: 1, GrossScore: 41, Played: true}
	require.NoError(t, db.Create(&score).Error)
	assert.NotEqual(t, uuid.Nil, score.ID)

	matchup := Matchup{LeagueID: league.ID, WeekNumber: 1, TeamAID: team.ID}
	require.NoError(t, db.Create(&matchup).Error)
	assert.NotEqual(t, uuid.Nil, matchup.ID)
}

func TestWeeklyScore_PlayedFalseSurvivesRoundTrip(t *testing.T) {
	db := openTestDB(t)

	score := WeeklyScore{
		LeagueID:   uuid.New(),
		TeamID:     uuid.New(),
		WeekNumber: 1,
		Played:     false,
	}
	require.NoError(t, db.Create(&score).Error)

	var loaded WeeklyScore
	require.NoError(t, db.First(&loaded, "id = ?", score.ID).Error)
	assert.False(t, loaded.Played, "an unplayed week must stay flagged unplayed")
}

func TestTeam_ActiveFalseSurvivesRoundTrip(t *testing.T) {
	db := openTestDB(t)

	team := Team{LeagueID: uuid.New(), Name: "Departed", Active: false}
	require.NoError(t, db.Create(&team).Error)

	var loaded Team
	require.NoError(t, db.First(&loaded, "id = ?", team.ID).Error)
	assert.False(t, loaded.Active)
}

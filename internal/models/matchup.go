package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MatchupStatus tracks the lifecycle of a scheduled matchup. The schedule
// generator only ever proposes fresh rounds; regeneration replaces rows with
// status "scheduled" and never touches completed or cancelled ones.
type MatchupStatus string

const (
	MatchupScheduled MatchupStatus = "scheduled"
	MatchupCompleted MatchupStatus = "completed"
	MatchupCancelled MatchupStatus = "cancelled"
)

// Matchup is one scheduled pairing for one week. A nil TeamBID is a bye.
type Matchup struct {
	ID          uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	LeagueID    uuid.UUID     `gorm:"type:uuid;not null;index:idx_league_week,priority:1" json:"league_id"`
	WeekNumber  int           `gorm:"not null;index:idx_league_week,priority:2" json:"week_number"`
	TeamAID     uuid.UUID     `gorm:"type:uuid;not null" json:"team_a_id"`
	TeamBID     *uuid.UUID    `gorm:"type:uuid" json:"team_b_id"`
	Status      MatchupStatus `gorm:"type:varchar(20);default:'scheduled';index" json:"status"`
	TeamAPoints float64       `gorm:"default:0" json:"team_a_points"`
	TeamBPoints float64       `gorm:"default:0" json:"team_b_points"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`

	// Associations
	TeamA *Team `gorm:"foreignKey:TeamAID" json:"team_a,omitempty"`
	TeamB *Team `gorm:"foreignKey:TeamBID" json:"team_b,omitempty"`
}

// TableName specifies the table name for GORM
func (Matchup) TableName() string {
	return "matchups"
}

// BeforeCreate generates the primary key; IDs are assigned application-side.
func (m *Matchup) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// IsBye reports whether the matchup has no opponent.
func (m *Matchup) IsBye() bool {
	return m.TeamBID == nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WeeklyScore is one team's gross result for one calendar week. The unique
// index on (team_id, week_number) is what enforces at-most-once acceptance per
// team and week; the engine itself assumes that precondition holds.
type WeeklyScore struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	LeagueID     uuid.UUID `gorm:"type:uuid;not null;index" json:"league_id"`
	TeamID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_team_week,priority:1" json:"team_id"`
	WeekNumber   int       `gorm:"not null;uniqueIndex:idx_team_week,priority:2" json:"week_number"`
	GrossScore   float64   `gorm:"not null" json:"gross_score"`
	IsSubstitute bool      `gorm:"default:false" json:"is_substitute"`
	Played       bool      `gorm:"not null" json:"played"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Associations
	Team *Team `gorm:"foreignKey:TeamID" json:"team,omitempty"`
}

// TableName specifies the table name for GORM
func (WeeklyScore) TableName() string {
	return "weekly_scores"
}

// BeforeCreate generates the primary key; IDs are assigned application-side.
func (w *WeeklyScore) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

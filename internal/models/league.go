package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// LeagueStatus tracks the lifecycle of a league season.
type LeagueStatus string

const (
	LeagueUpcoming  LeagueStatus = "upcoming"
	LeagueActive    LeagueStatus = "active"
	LeagueCompleted LeagueStatus = "completed"
	LeagueCancelled LeagueStatus = "cancelled"
)

// ScoringType selects the points regime for a league's matchups.
type ScoringType string

const (
	ScoringMatchPlay  ScoringType = "match_play"
	ScoringStrokePlay ScoringType = "stroke_play"
)

// League is one competition season: a roster of teams, a schedule, and the
// scoring configuration that drives handicaps and points.
type League struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	Name           string          `gorm:"not null" json:"name"`
	Status         LeagueStatus    `gorm:"type:varchar(20);default:'upcoming';index" json:"status"`
	ScoringType    ScoringType     `gorm:"type:varchar(20);default:'match_play'" json:"scoring_type"`
	CurrentWeek    int             `gorm:"default:1" json:"current_week"`
	TotalWeeks     int             `gorm:"default:0" json:"total_weeks"`
	TieMode        string          `gorm:"type:varchar(10);default:'split'" json:"tie_mode"`
	PointScale     pq.Float64Array `gorm:"type:numeric[]" json:"point_scale"`
	HandicapConfig datatypes.JSON  `gorm:"type:jsonb" json:"handicap_config"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	// Associations
	Teams []Team `gorm:"foreignKey:LeagueID" json:"teams,omitempty"`
}

// TableName specifies the table name for GORM
func (League) TableName() string {
	return "leagues"
}

// BeforeCreate generates the primary key; IDs are assigned application-side.
func (l *League) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// Team is one competitor within a league.
type Team struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	LeagueID   uuid.UUID `gorm:"type:uuid;not null;index" json:"league_id"`
	Name       string    `gorm:"not null" json:"name"`
	JoinedWeek int       `gorm:"default:1" json:"joined_week"`
	Active     bool      `gorm:"not null" json:"active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`

	// Associations
	League *League `gorm:"foreignKey:LeagueID" json:"league,omitempty"`
}

// TableName specifies the table name for GORM
func (Team) TableName() string {
	return "teams"
}

// BeforeCreate generates the primary key; IDs are assigned application-side.
func (t *Team) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

package store

import (
	"time"

	"gorm.io/datatypes"
)

// GORM models used for persistence.
type UserModel struct {
	ID        string    `gorm:"primaryKey"`
	Email     string    `gorm:"uniqueIndex;not null"`
	IsAdmin   bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null"`
}

type UserProfileModel struct {
	UserID             string `gorm:"primaryKey"`
	Language           string
	TravelStyle        string
	BudgetTier         string
	CitiesOfExperience datatypes.JSON `gorm:"type:jsonb"`
}

type CityModel struct {
	ID      string `gorm:"primaryKey"`
	Name    string `gorm:"uniqueIndex;not null"`
	Country string `gorm:"not null"`
}

type TopicModel struct {
	ID   string `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;not null"`
}

type QuestionModel struct {
	ID           string         `gorm:"primaryKey"`
	CityID       string         `gorm:"not null;index"`
	TopicID      string         `gorm:"not null;index"`
	AuthorID     string         `gorm:"not null;index"`
	Duration     string         `gorm:"not null"`
	BudgetTier   string         `gorm:"not null"`
	Requirements datatypes.JSON `gorm:"type:jsonb"`
	Body         string         `gorm:"type:text;not null"`
	Status       string         `gorm:"not null;index"`
	CreatedAt    time.Time      `gorm:"not null;index"`
}

type AnswerModel struct {
	ID         string         `gorm:"primaryKey"`
	QuestionID string         `gorm:"not null;index"`
	AuthorID   string         `gorm:"not null;index"`
	Body       string         `gorm:"type:text;not null"`
	Context    datatypes.JSON `gorm:"type:jsonb"`
	MediaURL   string
	CreatedAt  time.Time `gorm:"not null;index"`
}

// ReactionModel rows are append-only. No uniqueness over
// (actor, entity, type): repeated reactions are part of the ledger.
type ReactionModel struct {
	ID         string    `gorm:"primaryKey"`
	ActorID    string    `gorm:"not null;index"`
	EntityType string    `gorm:"not null;index:idx_reactions_target"`
	EntityID   string    `gorm:"not null;index:idx_reactions_target"`
	Type       string    `gorm:"column:reaction_type;not null;index"`
	CreatedAt  time.Time `gorm:"not null"`
}

type CardModel struct {
	ID              string         `gorm:"primaryKey"`
	Title           string         `gorm:"not null"`
	CityID          string         `gorm:"not null;index"`
	TopicID         string         `gorm:"not null;index"`
	Duration        string         `gorm:"not null"`
	BudgetTier      string         `gorm:"not null"`
	Requirements    datatypes.JSON `gorm:"type:jsonb"`
	Summary         string         `gorm:"type:text;not null"`
	Recommendations datatypes.JSON `gorm:"type:jsonb"`
	Risks           datatypes.JSON `gorm:"type:jsonb"`
	FitFor          datatypes.JSON `gorm:"type:jsonb"`
	Status          string         `gorm:"not null;index"`
	UpdatedAt       time.Time      `gorm:"not null;index"`
}

type CardSourceModel struct {
	ID       string `gorm:"primaryKey"`
	CardID   string `gorm:"not null;index"`
	AnswerID string `gorm:"not null;index"`
}

type ReportModel struct {
	ID         string    `gorm:"primaryKey"`
	ReporterID string    `gorm:"not null;index"`
	EntityType string    `gorm:"not null"`
	EntityID   string    `gorm:"not null"`
	Reason     string    `gorm:"not null"`
	Status     string    `gorm:"not null;index"`
	CreatedAt  time.Time `gorm:"not null;index"`
}

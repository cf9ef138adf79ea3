package domain

import "time"

type QuestionStatus string

const (
	QuestionOpen      QuestionStatus = "OPEN"
	QuestionCompiling QuestionStatus = "COMPILING_SUMMARY"
	QuestionResolved  QuestionStatus = "RESOLVED"
)

type CardStatus string

const (
	CardDraft     CardStatus = "DRAFT"
	CardPublished CardStatus = "PUBLISHED"
)

type BudgetTier string

const (
	BudgetLow  BudgetTier = "low"
	BudgetMid  BudgetTier = "mid"
	BudgetHigh BudgetTier = "high"
)

type ReactionType string

const (
	ReactionSaved  ReactionType = "saved"
	ReactionHelped ReactionType = "helped"
	ReactionThanks ReactionType = "thanks"
)

type EntityType string

const (
	EntityQuestion EntityType = "question"
	EntityAnswer   EntityType = "answer"
	EntityCard     EntityType = "card"
)

type ReportStatus string

const (
	ReportOpen     ReportStatus = "OPEN"
	ReportReviewed ReportStatus = "REVIEWED"
	ReportRejected ReportStatus = "REJECTED"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

type UserProfile struct {
	UserID             string     `json:"userId"`
	Language           string     `json:"language,omitempty"`
	TravelStyle        string     `json:"travelStyle,omitempty"`
	BudgetTier         BudgetTier `json:"budgetTier,omitempty"`
	CitiesOfExperience []string   `json:"citiesOfExperience"`
}

type City struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

type Topic struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Question struct {
	ID           string         `json:"id"`
	CityID       string         `json:"cityId"`
	TopicID      string         `json:"topicId"`
	AuthorID     string         `json:"authorId"`
	Duration     string         `json:"duration"`
	BudgetTier   BudgetTier     `json:"budgetTier"`
	Requirements []string       `json:"requirements"`
	Body         string         `json:"body"`
	Status       QuestionStatus `json:"status"`
	CreatedAt    time.Time      `json:"createdAt"`
}

// Answer is immutable once created; there is no edit or delete path.
type Answer struct {
	ID         string            `json:"id"`
	QuestionID string            `json:"questionId"`
	AuthorID   string            `json:"authorId"`
	Body       string            `json:"body"`
	Context    map[string]string `json:"context,omitempty"`
	MediaURL   string            `json:"mediaUrl,omitempty"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// Reaction is an append-only ledger row. The same actor may react to the
// same target more than once; there is deliberately no uniqueness
// constraint.
type Reaction struct {
	ID         string       `json:"id"`
	ActorID    string       `json:"actorId"`
	EntityType EntityType   `json:"entityType"`
	EntityID   string       `json:"entityId"`
	Type       ReactionType `json:"type"`
	CreatedAt  time.Time    `json:"createdAt"`
}

type Card struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	CityID          string     `json:"cityId"`
	TopicID         string     `json:"topicId"`
	Duration        string     `json:"duration"`
	BudgetTier      BudgetTier `json:"budgetTier"`
	Requirements    []string   `json:"requirements"`
	Summary         string     `json:"summary"`
	Recommendations []string   `json:"recommendations"`
	Risks           []string   `json:"risks"`
	FitFor          []string   `json:"fitFor"`
	Status          CardStatus `json:"status"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// CardSource records which answer contributed to a card. Provenance only,
// never mutated after creation.
type CardSource struct {
	ID       string `json:"id"`
	CardID   string `json:"cardId"`
	AnswerID string `json:"answerId"`
}

type Report struct {
	ID         string       `json:"id"`
	ReporterID string       `json:"reporterId"`
	EntityType EntityType   `json:"entityType"`
	EntityID   string       `json:"entityId"`
	Reason     string       `json:"reason"`
	Status     ReportStatus `json:"status"`
	CreatedAt  time.Time    `json:"createdAt"`
}

// ParseReactionType validates a wire value against the closed reaction set.
func ParseReactionType(raw string) (ReactionType, bool) {
	switch ReactionType(raw) {
	case ReactionSaved, ReactionHelped, ReactionThanks:
		return ReactionType(raw), true
	default:
		return "", false
	}
}

// ParseEntityType validates a wire value against the closed entity set.
func ParseEntityType(raw string) (EntityType, bool) {
	switch EntityType(raw) {
	case EntityQuestion, EntityAnswer, EntityCard:
		return EntityType(raw), true
	default:
		return "", false
	}
}

// ParseBudgetTier validates a wire value against the closed tier set.
func ParseBudgetTier(raw string) (BudgetTier, bool) {
	switch BudgetTier(raw) {
	case BudgetLow, BudgetMid, BudgetHigh:
		return BudgetTier(raw), true
	default:
		return "", false
	}
}

// ParseQuestionStatus validates a wire value against the closed status set.
func ParseQuestionStatus(raw string) (QuestionStatus, bool) {
	switch QuestionStatus(raw) {
	case QuestionOpen, QuestionCompiling, QuestionResolved:
		return QuestionStatus(raw), true
	default:
		return "", false
	}
}

// ParseCardStatus validates a wire value against the closed status set.
func ParseCardStatus(raw string) (CardStatus, bool) {
	switch CardStatus(raw) {
	case CardDraft, CardPublished:
		return CardStatus(raw), true
	default:
		return "", false
	}
}

// ParseReportStatus validates a wire value against the closed status set.
func ParseReportStatus(raw string) (ReportStatus, bool) {
	switch ReportStatus(raw) {
	case ReportOpen, ReportReviewed, ReportRejected:
		return ReportStatus(raw), true
	default:
		return "", false
	}
}

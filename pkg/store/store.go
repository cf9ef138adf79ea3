package store

import (
	"time"

	"wayfare/pkg/domain"
)

// QuestionFilter narrows question listings. Zero values mean "any".
type QuestionFilter struct {
	CityID   string
	TopicID  string
	AuthorID string
	Status   domain.QuestionStatus
}

// CardFilter narrows card listings. Zero values mean "any".
type CardFilter struct {
	CityID       string
	TopicID      string
	BudgetTier   domain.BudgetTier
	Requirements []string
	Status       domain.CardStatus
}

// Thread is a feed row: a question plus its latest answer activity.
type Thread struct {
	Question     domain.Question
	AuthorEmail  string
	LastAnswerAt time.Time
}

// Store defines persistence operations for the Q&A platform.
//
// Every read returns a consistent snapshot at call time; the core performs
// at most one write per request. CreateCardWithSources is the only
// multi-row write and must commit card, sources, and the question status
// transition together.
type Store interface {
	// users & profiles
	SaveUser(domain.User) error
	GetUserByEmail(email string) (domain.User, bool, error)
	GetUserByID(id string) (domain.User, bool, error)
	SaveProfile(domain.UserProfile) error
	GetProfile(userID string) (domain.UserProfile, bool, error)

	// cities & topics
	SaveCity(domain.City) error
	GetCity(id string) (domain.City, bool, error)
	ListCities() ([]domain.City, error)
	SaveTopic(domain.Topic) error
	GetTopic(id string) (domain.Topic, bool, error)
	ListTopics() ([]domain.Topic, error)

	// questions
	SaveQuestion(domain.Question) error
	GetQuestion(id string) (domain.Question, bool, error)
	ListQuestions(filter QuestionFilter) ([]domain.Question, error)
	CountQuestionsByAuthorSince(authorID string, since time.Time) (int, error)
	ListThreads(limit, offset int) ([]Thread, error)

	// answers
	SaveAnswer(domain.Answer) error
	GetAnswer(id string) (domain.Answer, bool, error)
	ListAnswersByQuestion(questionID string) ([]domain.Answer, error)
	ListAnswersByAuthor(authorID string) ([]domain.Answer, error)

	// reactions: append-only ledger, no update or delete
	CreateReaction(domain.Reaction) error
	ListReactionsByTarget(entityType domain.EntityType, entityIDs []string) ([]domain.Reaction, error)
	ListReactionsByActor(actorID string, reactionType domain.ReactionType, entityType domain.EntityType) ([]domain.Reaction, error)
	// CountHelpedByAuthors returns, per author, how many helped reactions
	// all of that author's answers have received. One batched query.
	CountHelpedByAuthors(authorIDs []string) (map[string]int, error)
	CountSavesOnAuthorAnswers(authorID string) (int, error)

	// cards
	// CreateCardWithSources inserts the card and one source row per
	// contributing answer, and moves the question OPEN -> COMPILING_SUMMARY
	// when it is still OPEN (a question never reverts to OPEN, and a
	// question already past OPEN keeps its status), all in one transaction.
	// Repeated calls for the same question each create a new card.
	CreateCardWithSources(card domain.Card, questionID string, answerIDs []string) error
	GetCard(id string) (domain.Card, bool, error)
	UpdateCard(domain.Card) error
	ListCards(filter CardFilter) ([]domain.Card, error)
	ListCardSources(cardID string) ([]domain.CardSource, error)
	CountCardSourcesByAuthor(authorID string) (int, error)

	// reports
	SaveReport(domain.Report) error
	GetReport(id string) (domain.Report, bool, error)
	ListReports() ([]domain.Report, error)
}

// SessionStore persists session tokens.
type SessionStore interface {
	NewSession(userID string) (string, error)
	GetUserIDByToken(token string) (string, bool, error)
	DeleteSession(token string) error
}

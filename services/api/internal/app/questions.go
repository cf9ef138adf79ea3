package app

import (
	"fmt"
	"strings"
	"time"

	"wayfare/internal/util"
	"wayfare/pkg/domain"
	"wayfare/pkg/store"
)

// QuestionThread is a question plus its trust-ranked answers.
type QuestionThread struct {
	Question domain.Question `json:"question"`
	Answers  []domain.Answer `json:"answers"`
}

// CreateQuestion registers a new OPEN question. Authors are capped at a
// fixed number of questions per rolling 24 hours.
func (a *App) CreateQuestion(authorID, cityID, topicID, duration string, budgetTier domain.BudgetTier, requirements []string, body string) (domain.Question, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return domain.Question{}, ErrBodyRequired
	}
	if _, ok := domain.ParseBudgetTier(string(budgetTier)); !ok {
		return domain.Question{}, ErrInvalidBudgetTier
	}
	if _, ok, err := a.store.GetCity(cityID); err != nil {
		return domain.Question{}, fmt.Errorf("fetch city: %w", err)
	} else if !ok {
		return domain.Question{}, ErrNotFound
	}
	if _, ok, err := a.store.GetTopic(topicID); err != nil {
		return domain.Question{}, fmt.Errorf("fetch topic: %w", err)
	} else if !ok {
		return domain.Question{}, ErrNotFound
	}

	cutoff := a.now().Add(-24 * time.Hour)
	recent, err := a.store.CountQuestionsByAuthorSince(authorID, cutoff)
	if err != nil {
		return domain.Question{}, fmt.Errorf("count recent questions: %w", err)
	}
	if recent >= a.dailyQuestionLimit {
		return domain.Question{}, ErrDailyQuestionLimit
	}

	question := domain.Question{
		ID:           util.NewID(),
		CityID:       cityID,
		TopicID:      topicID,
		AuthorID:     authorID,
		Duration:     duration,
		BudgetTier:   budgetTier,
		Requirements: requirements,
		Body:         body,
		Status:       domain.QuestionOpen,
		CreatedAt:    a.now(),
	}
	if err := a.store.SaveQuestion(question); err != nil {
		return domain.Question{}, fmt.Errorf("create question: %w", err)
	}
	return question, nil
}

// ListQuestions returns questions matching the filter, newest first.
func (a *App) ListQuestions(filter store.QuestionFilter) ([]domain.Question, error) {
	questions, err := a.store.ListQuestions(filter)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	return questions, nil
}

// GetQuestionThread returns the question with its answers in trust order.
func (a *App) GetQuestionThread(questionID string) (QuestionThread, error) {
	question, ok, err := a.store.GetQuestion(questionID)
	if err != nil {
		return QuestionThread{}, fmt.Errorf("fetch question: %w", err)
	}
	if !ok {
		return QuestionThread{}, ErrNotFound
	}
	answers, err := a.RankAnswers(questionID)
	if err != nil {
		return QuestionThread{}, err
	}
	return QuestionThread{Question: question, Answers: answers}, nil
}

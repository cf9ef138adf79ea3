package app

import (
	"testing"
	"time"

	"wayfare/pkg/domain"
	"wayfare/pkg/store"
)

func newTestApp(t *testing.T) (*App, *store.MemoryStore) {
	t.Helper()
	mem := store.NewMemoryStore()
	a, err := New(Config{
		Store:     mem,
		JWTSecret: "test-secret",
	})
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	return a, mem
}

func seedQuestion(t *testing.T, mem *store.MemoryStore, id, authorID string) domain.Question {
	t.Helper()
	question := domain.Question{
		ID:           id,
		CityID:       "city-tbilisi",
		TopicID:      "topic-housing",
		AuthorID:     authorID,
		Duration:     "2 months",
		BudgetTier:   domain.BudgetMid,
		Requirements: []string{"quiet", "good_internet"},
		Body:         "Where should I stay in Tbilisi for two months?",
		Status:       domain.QuestionOpen,
		CreatedAt:    time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}
	if err := mem.SaveQuestion(question); err != nil {
		t.Fatalf("seed question: %v", err)
	}
	return question
}

func seedAnswer(t *testing.T, mem *store.MemoryStore, id, questionID, authorID string, createdAt time.Time) domain.Answer {
	t.Helper()
	answer := domain.Answer{
		ID:         id,
		QuestionID: questionID,
		AuthorID:   authorID,
		Body:       "Answer " + id,
		CreatedAt:  createdAt,
	}
	if err := mem.SaveAnswer(answer); err != nil {
		t.Fatalf("seed answer: %v", err)
	}
	return answer
}

func seedReaction(t *testing.T, mem *store.MemoryStore, actorID string, reactionType domain.ReactionType, entityType domain.EntityType, entityID string) {
	t.Helper()
	err := mem.CreateReaction(domain.Reaction{
		ID:         "r-" + actorID + "-" + entityID + "-" + string(reactionType),
		ActorID:    actorID,
		EntityType: entityType,
		EntityID:   entityID,
		Type:       reactionType,
		CreatedAt:  time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("seed reaction: %v", err)
	}
}

func answerOrder(answers []domain.Answer) []string {
	ids := make([]string, 0, len(answers))
	for _, answer := range answers {
		ids = append(ids, answer.ID)
	}
	return ids
}

func sameOrder(got, want []string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func TestRankAnswersDeterministic(t *testing.T) {
	a, mem := newTestApp(t)
	seedQuestion(t, mem, "q1", "asker")
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	seedAnswer(t, mem, "a1", "q1", "u1", base)
	seedAnswer(t, mem, "a2", "q1", "u2", base.Add(time.Minute))
	seedAnswer(t, mem, "a3", "q1", "u3", base.Add(2*time.Minute))
	seedReaction(t, mem, "asker", domain.ReactionHelped, domain.EntityAnswer, "a2")
	seedReaction(t, mem, "other", domain.ReactionSaved, domain.EntityAnswer, "a3")

	first, err := a.RankAnswers("q1")
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := a.RankAnswers("q1")
		if err != nil {
			t.Fatalf("rank again: %v", err)
		}
		if !sameOrder(answerOrder(again), answerOrder(first)) {
			t.Fatalf("order changed across calls: %v vs %v", answerOrder(again), answerOrder(first))
		}
	}
}

func TestRankAnswersHelpedFirst(t *testing.T) {
	a, mem := newTestApp(t)
	seedQuestion(t, mem, "q1", "asker")
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	// Later answer, but helped; the earlier one has two saves.
	seedAnswer(t, mem, "a-saved", "q1", "member", base)
	seedAnswer(t, mem, "a-helped", "q1", "admin", base.Add(time.Hour))
	seedReaction(t, mem, "asker", domain.ReactionHelped, domain.EntityAnswer, "a-helped")
	seedReaction(t, mem, "u1", domain.ReactionSaved, domain.EntityAnswer, "a-saved")
	seedReaction(t, mem, "u2", domain.ReactionSaved, domain.EntityAnswer, "a-saved")

	ranked, err := a.RankAnswers("q1")
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if !sameOrder(answerOrder(ranked), []string{"a-helped", "a-saved"}) {
		t.Fatalf("expected helped answer first, got %v", answerOrder(ranked))
	}
}

func TestRankAnswersTieBreakCascade(t *testing.T) {
	a, mem := newTestApp(t)
	seedQuestion(t, mem, "q1", "asker")
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	// No helped reactions anywhere in q1; cascade decides.
	seedAnswer(t, mem, "a-more-saves", "q1", "u1", base.Add(3*time.Hour))
	seedAnswer(t, mem, "a-trusted", "q1", "trusted", base.Add(2*time.Hour))
	seedAnswer(t, mem, "a-early", "q1", "u3", base)
	seedAnswer(t, mem, "a-late", "q1", "u4", base.Add(time.Hour))

	seedReaction(t, mem, "x1", domain.ReactionSaved, domain.EntityAnswer, "a-more-saves")
	seedReaction(t, mem, "x2", domain.ReactionSaved, domain.EntityAnswer, "a-more-saves")

	// The trusted contributor earned a helped on another thread.
	seedQuestion(t, mem, "q-other", "other-asker")
	seedAnswer(t, mem, "a-other", "q-other", "trusted", base)
	seedReaction(t, mem, "other-asker", domain.ReactionHelped, domain.EntityAnswer, "a-other")

	ranked, err := a.RankAnswers("q1")
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	want := []string{"a-more-saves", "a-trusted", "a-early", "a-late"}
	if !sameOrder(answerOrder(ranked), want) {
		t.Fatalf("expected %v, got %v", want, answerOrder(ranked))
	}
}

func TestRankAnswersUnknownQuestion(t *testing.T) {
	a, _ := newTestApp(t)
	if _, err := a.RankAnswers("missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRankAnswersEmptyQuestion(t *testing.T) {
	a, mem := newTestApp(t)
	seedQuestion(t, mem, "q1", "asker")
	ranked, err := a.RankAnswers("q1")
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if len(ranked) != 0 {
		t.Fatalf("expected no answers, got %d", len(ranked))
	}
}

package app

import (
	"testing"
	"time"

	"wayfare/pkg/domain"
)

func TestSubmitReactionHelpedAuthorOnly(t *testing.T) {
	a, mem := newTestApp(t)
	seedQuestion(t, mem, "q1", "asker")
	seedAnswer(t, mem, "a1", "q1", "member", time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))

	if _, err := a.SubmitReaction("asker", domain.ReactionHelped, domain.EntityAnswer, "a1"); err != nil {
		t.Fatalf("question author helped should pass: %v", err)
	}
	if _, err := a.SubmitReaction("member", domain.ReactionHelped, domain.EntityAnswer, "a1"); err != ErrHelpedAuthorOnly {
		t.Fatalf("expected ErrHelpedAuthorOnly, got %v", err)
	}
}

func TestSubmitReactionHelpedTargetsAnswersOnly(t *testing.T) {
	a, mem := newTestApp(t)
	seedQuestion(t, mem, "q1", "asker")
	if _, err := a.SubmitReaction("asker", domain.ReactionHelped, domain.EntityQuestion, "q1"); err != ErrHelpedTargetsAnswers {
		t.Fatalf("expected ErrHelpedTargetsAnswers, got %v", err)
	}
}

func TestSubmitReactionSavedScope(t *testing.T) {
	a, mem := newTestApp(t)
	seedQuestion(t, mem, "q1", "asker")
	if _, err := a.SubmitReaction("anyone", domain.ReactionSaved, domain.EntityQuestion, "q1"); err != ErrSavedScope {
		t.Fatalf("expected ErrSavedScope, got %v", err)
	}
}

func TestSubmitReactionThanksUnrestricted(t *testing.T) {
	a, mem := newTestApp(t)
	seedQuestion(t, mem, "q1", "asker")
	reaction, err := a.SubmitReaction("anyone", domain.ReactionThanks, domain.EntityQuestion, "q1")
	if err != nil {
		t.Fatalf("thanks on question should pass: %v", err)
	}
	if reaction.ID == "" || reaction.ActorID != "anyone" {
		t.Fatalf("unexpected reaction: %+v", reaction)
	}
}

func TestSubmitReactionMissingTarget(t *testing.T) {
	a, _ := newTestApp(t)
	if _, err := a.SubmitReaction("anyone", domain.ReactionSaved, domain.EntityAnswer, "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := a.SubmitReaction("anyone", domain.ReactionHelped, domain.EntityAnswer, "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for helped on missing answer, got %v", err)
	}
}

func TestSubmitReactionRejectionWritesNothing(t *testing.T) {
	a, mem := newTestApp(t)
	seedQuestion(t, mem, "q1", "asker")
	seedAnswer(t, mem, "a1", "q1", "member", time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	if _, err := a.SubmitReaction("member", domain.ReactionHelped, domain.EntityAnswer, "a1"); err == nil {
		t.Fatalf("expected rejection")
	}
	reactions, err := mem.ListReactionsByTarget(domain.EntityAnswer, []string{"a1"})
	if err != nil {
		t.Fatalf("list reactions: %v", err)
	}
	if len(reactions) != 0 {
		t.Fatalf("rejected reaction must not reach the ledger, found %d rows", len(reactions))
	}
}

func TestSubmitReactionKeepsDuplicates(t *testing.T) {
	a, mem := newTestApp(t)
	seedQuestion(t, mem, "q1", "asker")
	seedAnswer(t, mem, "a1", "q1", "member", time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))
	for i := 0; i < 3; i++ {
		if _, err := a.SubmitReaction("fan", domain.ReactionSaved, domain.EntityAnswer, "a1"); err != nil {
			t.Fatalf("save %d: %v", i, err)
		}
	}
	reactions, err := mem.ListReactionsByTarget(domain.EntityAnswer, []string{"a1"})
	if err != nil {
		t.Fatalf("list reactions: %v", err)
	}
	if len(reactions) != 3 {
		t.Fatalf("ledger must keep every row, got %d", len(reactions))
	}
}

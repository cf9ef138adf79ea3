package app

import (
	"strings"
	"testing"
	"time"

	"wayfare/pkg/domain"
	"wayfare/pkg/store"
)

func seedCatalog(t *testing.T, mem *store.MemoryStore) {
	t.Helper()
	if err := mem.SaveCity(domain.City{ID: "city-tbilisi", Name: "Tbilisi", Country: "Georgia"}); err != nil {
		t.Fatalf("seed city: %v", err)
	}
	if err := mem.SaveTopic(domain.Topic{ID: "topic-housing", Name: "Housing"}); err != nil {
		t.Fatalf("seed topic: %v", err)
	}
}

func TestGenerateCardScenario(t *testing.T) {
	a, mem := newTestApp(t)
	seedCatalog(t, mem)
	question := seedQuestion(t, mem, "q1", "asker")

	t2 := time.Date(2025, 3, 1, 11, 0, 0, 0, time.UTC)
	t1 := t2.Add(time.Hour)
	seedAnswer(t, mem, "a1", "q1", "admin", t1)
	seedAnswer(t, mem, "a2", "q1", "member", t2)
	seedReaction(t, mem, "asker", domain.ReactionHelped, domain.EntityAnswer, "a1")
	seedReaction(t, mem, "u1", domain.ReactionSaved, domain.EntityAnswer, "a2")
	seedReaction(t, mem, "u2", domain.ReactionSaved, domain.EntityAnswer, "a2")

	ranked, err := a.RankAnswers("q1")
	if err != nil {
		t.Fatalf("rank: %v", err)
	}
	if !sameOrder(answerOrder(ranked), []string{"a1", "a2"}) {
		t.Fatalf("helped flag must dominate saves, got %v", answerOrder(ranked))
	}

	card, err := a.GenerateCard("asker", "q1")
	if err != nil {
		t.Fatalf("generate card: %v", err)
	}
	if card.Title != "Tbilisi — Housing for 2 months" {
		t.Fatalf("unexpected title: %q", card.Title)
	}
	if card.Status != domain.CardDraft {
		t.Fatalf("expected DRAFT, got %s", card.Status)
	}
	if card.CityID != question.CityID || card.TopicID != question.TopicID ||
		card.Duration != question.Duration || card.BudgetTier != question.BudgetTier {
		t.Fatalf("card must copy question fields verbatim: %+v", card)
	}
	if len(card.Requirements) != len(question.Requirements) {
		t.Fatalf("requirements not copied: %v", card.Requirements)
	}
	for i := range card.Requirements {
		if card.Requirements[i] != question.Requirements[i] {
			t.Fatalf("requirements not copied verbatim: %v", card.Requirements)
		}
	}

	sources, err := mem.ListCardSources(card.ID)
	if err != nil {
		t.Fatalf("list sources: %v", err)
	}
	if len(sources) != 2 {
		t.Fatalf("both answers are candidates, got %d sources", len(sources))
	}
	if sources[0].AnswerID != "a1" {
		t.Fatalf("top-ranked answer must be the primary source, got %s", sources[0].AnswerID)
	}

	updated, ok, err := mem.GetQuestion("q1")
	if err != nil || !ok {
		t.Fatalf("fetch question: ok=%v err=%v", ok, err)
	}
	if updated.Status != domain.QuestionCompiling {
		t.Fatalf("expected COMPILING_SUMMARY, got %s", updated.Status)
	}

	lastRec := card.Recommendations[len(card.Recommendations)-1]
	if !strings.HasPrefix(lastRec, "Based on community answers, ") || !strings.HasSuffix(lastRec, "...") {
		t.Fatalf("unexpected derived recommendation: %q", lastRec)
	}
	if !strings.Contains(lastRec, "Answer a1") {
		t.Fatalf("derived recommendation must quote the top answer, got %q", lastRec)
	}
}

func TestGenerateCardAuthorOnly(t *testing.T) {
	a, mem := newTestApp(t)
	seedCatalog(t, mem)
	seedQuestion(t, mem, "q1", "asker")
	if _, err := a.GenerateCard("stranger", "q1"); err != ErrForbidden {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestGenerateCardUnknownQuestion(t *testing.T) {
	a, _ := newTestApp(t)
	if _, err := a.GenerateCard("asker", "missing"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGenerateCardRepeatedCallsAddDrafts(t *testing.T) {
	a, mem := newTestApp(t)
	seedCatalog(t, mem)
	seedQuestion(t, mem, "q1", "asker")
	first, err := a.GenerateCard("asker", "q1")
	if err != nil {
		t.Fatalf("first generate: %v", err)
	}
	second, err := a.GenerateCard("asker", "q1")
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("regeneration must create a distinct card")
	}
	if second.Status != domain.CardDraft {
		t.Fatalf("expected DRAFT, got %s", second.Status)
	}
	// The status transition happens once and never reverts.
	question, ok, err := mem.GetQuestion("q1")
	if err != nil || !ok {
		t.Fatalf("fetch question: %v", err)
	}
	if question.Status != domain.QuestionCompiling {
		t.Fatalf("expected COMPILING_SUMMARY after regeneration, got %s", question.Status)
	}
	drafts, err := a.ListDraftCards(domain.User{ID: "admin", IsAdmin: true})
	if err != nil {
		t.Fatalf("list drafts: %v", err)
	}
	if len(drafts) != 2 {
		t.Fatalf("expected both drafts listed for review, got %d", len(drafts))
	}
}

func TestGenerateCardTakesTopThree(t *testing.T) {
	a, mem := newTestApp(t)
	seedCatalog(t, mem)
	seedQuestion(t, mem, "q1", "asker")
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, id := range []string{"a1", "a2", "a3", "a4", "a5"} {
		seedAnswer(t, mem, id, "q1", "u-"+id, base.Add(time.Duration(i)*time.Minute))
	}
	card, err := a.GenerateCard("asker", "q1")
	if err != nil {
		t.Fatalf("generate card: %v", err)
	}
	sources, err := mem.ListCardSources(card.ID)
	if err != nil {
		t.Fatalf("list sources: %v", err)
	}
	if len(sources) != 3 {
		t.Fatalf("expected 3 sources, got %d", len(sources))
	}
}

func TestSynthesizeCardDeterministic(t *testing.T) {
	question := domain.Question{
		CityID:       "c1",
		TopicID:      "t1",
		Duration:     "6 weeks",
		BudgetTier:   domain.BudgetLow,
		Requirements: []string{"walkable"},
	}
	city := domain.City{ID: "c1", Name: "Porto"}
	topic := domain.Topic{ID: "t1", Name: "Food"}
	answers := []domain.Answer{{ID: "a1", Body: "<p>Try the riverside market early.</p>"}}
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	first := synthesizeCard(question, city, topic, answers, now)
	second := synthesizeCard(question, city, topic, answers, now)
	if first.Title != second.Title || first.Summary != second.Summary {
		t.Fatalf("synthesis must be deterministic")
	}
	if first.Title != "Porto — Food for 6 weeks" {
		t.Fatalf("unexpected title: %q", first.Title)
	}
	if first.Summary != "For a 6 weeks stay in Porto, locals recommend balancing food with your low budget tier." {
		t.Fatalf("unexpected summary: %q", first.Summary)
	}
	last := first.Recommendations[len(first.Recommendations)-1]
	if last != "Based on community answers, Try the riverside market early...." {
		t.Fatalf("markup must be stripped from the excerpt, got %q", last)
	}
}

func TestSynthesizeCardWithoutAnswers(t *testing.T) {
	question := domain.Question{Duration: "1 month", BudgetTier: domain.BudgetHigh}
	card := synthesizeCard(question, domain.City{Name: "Osaka"}, domain.Topic{Name: "Transit"}, nil, time.Now())
	if len(card.Recommendations) != len(baselineRecommendations) {
		t.Fatalf("no derived recommendation expected, got %v", card.Recommendations)
	}
	if len(card.Risks) != 2 || len(card.FitFor) != 2 {
		t.Fatalf("baseline risks/fit-for expected: %v %v", card.Risks, card.FitFor)
	}
}

func TestEditCardLifecycle(t *testing.T) {
	a, mem := newTestApp(t)
	seedCatalog(t, mem)
	seedQuestion(t, mem, "q1", "asker")
	card, err := a.GenerateCard("asker", "q1")
	if err != nil {
		t.Fatalf("generate card: %v", err)
	}

	admin := domain.User{ID: "admin", IsAdmin: true}
	member := domain.User{ID: "member"}

	if _, err := a.EditCard(member, card.ID, CardUpdate{}); err != ErrForbidden {
		t.Fatalf("non-admin edit must fail, got %v", err)
	}

	published := domain.CardPublished
	title := "Curated Tbilisi housing"
	edited, err := a.EditCard(admin, card.ID, CardUpdate{Title: &title, Status: &published})
	if err != nil {
		t.Fatalf("publish: %v", err)
	}
	if edited.Status != domain.CardPublished || edited.Title != title {
		t.Fatalf("unexpected card after publish: %+v", edited)
	}

	draft := domain.CardDraft
	if _, err := a.EditCard(admin, card.ID, CardUpdate{Status: &draft}); err != ErrCardUnpublish {
		t.Fatalf("unpublish must fail, got %v", err)
	}
}

func TestGetCardVisibility(t *testing.T) {
	a, mem := newTestApp(t)
	seedCatalog(t, mem)
	seedQuestion(t, mem, "q1", "asker")
	card, err := a.GenerateCard("asker", "q1")
	if err != nil {
		t.Fatalf("generate card: %v", err)
	}
	member := domain.User{ID: "member"}
	admin := domain.User{ID: "admin", IsAdmin: true}

	if _, err := a.GetCard(member, card.ID); err != ErrForbidden {
		t.Fatalf("draft must be hidden from members, got %v", err)
	}
	if _, err := a.GetCard(admin, card.ID); err != nil {
		t.Fatalf("admin must see drafts: %v", err)
	}

	published := domain.CardPublished
	if _, err := a.EditCard(admin, card.ID, CardUpdate{Status: &published}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if _, err := a.GetCard(member, card.ID); err != nil {
		t.Fatalf("published card must be public: %v", err)
	}
}

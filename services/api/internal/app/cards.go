package app

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/net/html"

	"wayfare/internal/util"
	"wayfare/pkg/domain"
	"wayfare/pkg/store"
)

const answerExcerptLen = 80

var (
	baselineRecommendations = []string{
		"Pick a neighborhood close to daily amenities and reliable transit.",
		"Test internet speeds within the first week and have a backup option.",
		"Budget a 10-15% buffer for unexpected fees.",
	}
	baselineRisks = []string{
		"Seasonal price spikes can impact your budget.",
		"Short-term rental rules change quickly.",
	}
	baselineFitFor = []string{
		"Remote workers",
		"Slow travel couples",
	}
)

// synthesizeCard deterministically derives a draft card from a question and
// its ranked answers. City/topic/duration/budget tier/requirements are copied
// verbatim from the question and the templates are fixed, so the same
// snapshot always produces the same card fields.
func synthesizeCard(question domain.Question, city domain.City, topic domain.Topic, ranked []domain.Answer, now time.Time) domain.Card {
	recommendations := append([]string(nil), baselineRecommendations...)
	if len(ranked) > 0 {
		excerpt := textExcerpt(ranked[0].Body, answerExcerptLen)
		recommendations = append(recommendations, fmt.Sprintf("Based on community answers, %s...", excerpt))
	}
	return domain.Card{
		Title: fmt.Sprintf("%s — %s for %s", city.Name, topic.Name, question.Duration),
		Summary: fmt.Sprintf(
			"For a %s stay in %s, locals recommend balancing %s with your %s budget tier.",
			question.Duration, city.Name, strings.ToLower(topic.Name), question.BudgetTier,
		),
		CityID:          question.CityID,
		TopicID:         question.TopicID,
		Duration:        question.Duration,
		BudgetTier:      question.BudgetTier,
		Requirements:    append([]string(nil), question.Requirements...),
		Recommendations: recommendations,
		Risks:           append([]string(nil), baselineRisks...),
		FitFor:          append([]string(nil), baselineFitFor...),
		Status:          domain.CardDraft,
		UpdatedAt:       now,
	}
}

// GenerateCard synthesizes a draft card from the question's top-ranked
// answers. Author-only. The card, its provenance rows, and the question's
// OPEN -> COMPILING_SUMMARY transition commit in one transaction. The
// status move applies only while the question is still OPEN; regenerating
// simply adds another draft.
func (a *App) GenerateCard(actorID, questionID string) (domain.Card, error) {
	question, ok, err := a.store.GetQuestion(questionID)
	if err != nil {
		return domain.Card{}, fmt.Errorf("fetch question: %w", err)
	}
	if !ok {
		return domain.Card{}, ErrNotFound
	}
	if question.AuthorID != actorID {
		return domain.Card{}, ErrForbidden
	}
	city, ok, err := a.store.GetCity(question.CityID)
	if err != nil {
		return domain.Card{}, fmt.Errorf("fetch city: %w", err)
	}
	if !ok {
		return domain.Card{}, ErrNotFound
	}
	topic, ok, err := a.store.GetTopic(question.TopicID)
	if err != nil {
		return domain.Card{}, fmt.Errorf("fetch topic: %w", err)
	}
	if !ok {
		return domain.Card{}, ErrNotFound
	}
	ranked, err := a.RankAnswers(questionID)
	if err != nil {
		return domain.Card{}, err
	}
	if len(ranked) > a.topAnswerCount {
		ranked = ranked[:a.topAnswerCount]
	}

	card := synthesizeCard(question, city, topic, ranked, a.now())
	card.ID = util.NewID()
	answerIDs := make([]string, 0, len(ranked))
	for _, answer := range ranked {
		answerIDs = append(answerIDs, answer.ID)
	}
	if err := a.store.CreateCardWithSources(card, questionID, answerIDs); err != nil {
		return domain.Card{}, fmt.Errorf("create card: %w", err)
	}
	return card, nil
}

// CardUpdate carries the optional fields of an admin card edit. Nil means
// "leave unchanged".
type CardUpdate struct {
	Title           *string
	Summary         *string
	Recommendations *[]string
	Risks           *[]string
	FitFor          *[]string
	Status          *domain.CardStatus
}

// EditCard applies an admin edit to a card. Any field may be overwritten,
// but status only moves DRAFT -> PUBLISHED, never backwards.
func (a *App) EditCard(actor domain.User, cardID string, update CardUpdate) (domain.Card, error) {
	if !actor.IsAdmin {
		return domain.Card{}, ErrForbidden
	}
	card, ok, err := a.store.GetCard(cardID)
	if err != nil {
		return domain.Card{}, fmt.Errorf("fetch card: %w", err)
	}
	if !ok {
		return domain.Card{}, ErrNotFound
	}
	if update.Status != nil {
		if card.Status == domain.CardPublished && *update.Status == domain.CardDraft {
			return domain.Card{}, ErrCardUnpublish
		}
		card.Status = *update.Status
	}
	if update.Title != nil {
		card.Title = *update.Title
	}
	if update.Summary != nil {
		card.Summary = *update.Summary
	}
	if update.Recommendations != nil {
		card.Recommendations = *update.Recommendations
	}
	if update.Risks != nil {
		card.Risks = *update.Risks
	}
	if update.FitFor != nil {
		card.FitFor = *update.FitFor
	}
	card.UpdatedAt = a.now()
	if err := a.store.UpdateCard(card); err != nil {
		return domain.Card{}, fmt.Errorf("update card: %w", err)
	}
	return card, nil
}

// GetCard returns a card; unpublished cards are visible to admins only.
func (a *App) GetCard(actor domain.User, cardID string) (domain.Card, error) {
	card, ok, err := a.store.GetCard(cardID)
	if err != nil {
		return domain.Card{}, fmt.Errorf("fetch card: %w", err)
	}
	if !ok {
		return domain.Card{}, ErrNotFound
	}
	if card.Status != domain.CardPublished && !actor.IsAdmin {
		return domain.Card{}, ErrForbidden
	}
	return card, nil
}

// ListCards returns cards matching the filter. Drafts are included only
// when an admin asks for them.
func (a *App) ListCards(filter store.CardFilter, includeDrafts bool, actor domain.User) ([]domain.Card, error) {
	if !includeDrafts || !actor.IsAdmin {
		filter.Status = domain.CardPublished
	}
	cards, err := a.store.ListCards(filter)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	return cards, nil
}

// ListDraftCards returns all DRAFT cards for admin review.
func (a *App) ListDraftCards(actor domain.User) ([]domain.Card, error) {
	if !actor.IsAdmin {
		return nil, ErrForbidden
	}
	cards, err := a.store.ListCards(store.CardFilter{Status: domain.CardDraft})
	if err != nil {
		return nil, fmt.Errorf("list draft cards: %w", err)
	}
	return cards, nil
}

// textExcerpt strips markup and returns the first maxLen runes.
func textExcerpt(raw string, maxLen int) string {
	text := stripMarkup(raw)
	runes := []rune(text)
	if len(runes) > maxLen {
		runes = runes[:maxLen]
	}
	return string(runes)
}

func stripMarkup(raw string) string {
	if !strings.ContainsRune(raw, '<') {
		return strings.TrimSpace(raw)
	}
	var b strings.Builder
	tokenizer := html.NewTokenizer(strings.NewReader(raw))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(tokenizer.Text())
		}
	}
}

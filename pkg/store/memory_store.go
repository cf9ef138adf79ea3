package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"wayfare/pkg/domain"
)

// MemoryStore is an in-memory Store used by tests and local tooling.
type MemoryStore struct {
	mu sync.RWMutex

	users     map[string]domain.User
	profiles  map[string]domain.UserProfile
	cities    map[string]domain.City
	topics    map[string]domain.Topic
	questions map[string]domain.Question
	answers   map[string]domain.Answer
	reactions []domain.Reaction
	cards     map[string]domain.Card
	sources   []domain.CardSource
	reports   map[string]domain.Report
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:     make(map[string]domain.User),
		profiles:  make(map[string]domain.UserProfile),
		cities:    make(map[string]domain.City),
		topics:    make(map[string]domain.Topic),
		questions: make(map[string]domain.Question),
		answers:   make(map[string]domain.Answer),
		cards:     make(map[string]domain.Card),
		reports:   make(map[string]domain.Report),
	}
}

func (s *MemoryStore) SaveUser(u domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	return nil
}

func (s *MemoryStore) GetUserByEmail(email string) (domain.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, true, nil
		}
	}
	return domain.User{}, false, nil
}

func (s *MemoryStore) GetUserByID(id string) (domain.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok, nil
}

func (s *MemoryStore) SaveProfile(p domain.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[p.UserID] = p
	return nil
}

func (s *MemoryStore) GetProfile(userID string) (domain.UserProfile, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[userID]
	return p, ok, nil
}

func (s *MemoryStore) SaveCity(c domain.City) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cities[c.ID] = c
	return nil
}

func (s *MemoryStore) GetCity(id string) (domain.City, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cities[id]
	return c, ok, nil
}

func (s *MemoryStore) ListCities() ([]domain.City, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]domain.City, 0, len(s.cities))
	for _, c := range s.cities {
		res = append(res, c)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res, nil
}

func (s *MemoryStore) SaveTopic(t domain.Topic) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics[t.ID] = t
	return nil
}

func (s *MemoryStore) GetTopic(id string) (domain.Topic, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.topics[id]
	return t, ok, nil
}

func (s *MemoryStore) ListTopics() ([]domain.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]domain.Topic, 0, len(s.topics))
	for _, t := range s.topics {
		res = append(res, t)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
	return res, nil
}

func (s *MemoryStore) SaveQuestion(q domain.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions[q.ID] = q
	return nil
}

func (s *MemoryStore) GetQuestion(id string) (domain.Question, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.questions[id]
	return q, ok, nil
}

func (s *MemoryStore) ListQuestions(filter QuestionFilter) ([]domain.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]domain.Question, 0, len(s.questions))
	for _, q := range s.questions {
		if filter.CityID != "" && q.CityID != filter.CityID {
			continue
		}
		if filter.TopicID != "" && q.TopicID != filter.TopicID {
			continue
		}
		if filter.AuthorID != "" && q.AuthorID != filter.AuthorID {
			continue
		}
		if filter.Status != "" && q.Status != filter.Status {
			continue
		}
		res = append(res, q)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res, nil
}

func (s *MemoryStore) CountQuestionsByAuthorSince(authorID string, since time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, q := range s.questions {
		if q.AuthorID == authorID && !q.CreatedAt.Before(since) {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) ListThreads(limit, offset int) ([]Thread, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	threads := make([]Thread, 0, len(s.questions))
	for _, q := range s.questions {
		thread := Thread{Question: q}
		if author, ok := s.users[q.AuthorID]; ok {
			thread.AuthorEmail = author.Email
		}
		for _, a := range s.answers {
			if a.QuestionID == q.ID && a.CreatedAt.After(thread.LastAnswerAt) {
				thread.LastAnswerAt = a.CreatedAt
			}
		}
		threads = append(threads, thread)
	}
	activity := func(t Thread) time.Time {
		if !t.LastAnswerAt.IsZero() {
			return t.LastAnswerAt
		}
		return t.Question.CreatedAt
	}
	sort.Slice(threads, func(i, j int) bool { return activity(threads[i]).After(activity(threads[j])) })
	if offset >= len(threads) {
		return []Thread{}, nil
	}
	threads = threads[offset:]
	if len(threads) > limit {
		threads = threads[:limit]
	}
	return threads, nil
}

func (s *MemoryStore) SaveAnswer(a domain.Answer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.answers[a.ID] = a
	return nil
}

func (s *MemoryStore) GetAnswer(id string) (domain.Answer, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.answers[id]
	return a, ok, nil
}

func (s *MemoryStore) ListAnswersByQuestion(questionID string) ([]domain.Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]domain.Answer, 0)
	for _, a := range s.answers {
		if a.QuestionID == questionID {
			res = append(res, a)
		}
	}
	sortAnswersByCreation(res)
	return res, nil
}

func (s *MemoryStore) ListAnswersByAuthor(authorID string) ([]domain.Answer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]domain.Answer, 0)
	for _, a := range s.answers {
		if a.AuthorID == authorID {
			res = append(res, a)
		}
	}
	sortAnswersByCreation(res)
	return res, nil
}

func (s *MemoryStore) CreateReaction(r domain.Reaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reactions = append(s.reactions, r)
	return nil
}

func (s *MemoryStore) ListReactionsByTarget(entityType domain.EntityType, entityIDs []string) ([]domain.Reaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	wanted := make(map[string]bool, len(entityIDs))
	for _, id := range entityIDs {
		wanted[id] = true
	}
	res := make([]domain.Reaction, 0)
	for _, r := range s.reactions {
		if r.EntityType == entityType && wanted[r.EntityID] {
			res = append(res, r)
		}
	}
	return res, nil
}

func (s *MemoryStore) ListReactionsByActor(actorID string, reactionType domain.ReactionType, entityType domain.EntityType) ([]domain.Reaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]domain.Reaction, 0)
	for _, r := range s.reactions {
		if r.ActorID == actorID && r.Type == reactionType && r.EntityType == entityType {
			res = append(res, r)
		}
	}
	return res, nil
}

func (s *MemoryStore) CountHelpedByAuthors(authorIDs []string) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	wanted := make(map[string]bool, len(authorIDs))
	for _, id := range authorIDs {
		wanted[id] = true
	}
	counts := make(map[string]int, len(authorIDs))
	for _, r := range s.reactions {
		if r.EntityType != domain.EntityAnswer || r.Type != domain.ReactionHelped {
			continue
		}
		answer, ok := s.answers[r.EntityID]
		if !ok || !wanted[answer.AuthorID] {
			continue
		}
		counts[answer.AuthorID]++
	}
	return counts, nil
}

func (s *MemoryStore) CountSavesOnAuthorAnswers(authorID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, r := range s.reactions {
		if r.EntityType != domain.EntityAnswer || r.Type != domain.ReactionSaved {
			continue
		}
		if answer, ok := s.answers[r.EntityID]; ok && answer.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) CreateCardWithSources(card domain.Card, questionID string, answerIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if question, ok := s.questions[questionID]; ok && question.Status == domain.QuestionOpen {
		question.Status = domain.QuestionCompiling
		s.questions[questionID] = question
	}
	s.cards[card.ID] = card
	for _, answerID := range answerIDs {
		s.sources = append(s.sources, domain.CardSource{
			ID:       card.ID + ":" + answerID,
			CardID:   card.ID,
			AnswerID: answerID,
		})
	}
	return nil
}

func (s *MemoryStore) GetCard(id string) (domain.Card, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cards[id]
	return c, ok, nil
}

func (s *MemoryStore) UpdateCard(card domain.Card) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cards[card.ID] = card
	return nil
}

func (s *MemoryStore) ListCards(filter CardFilter) ([]domain.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]domain.Card, 0, len(s.cards))
	for _, c := range s.cards {
		if filter.CityID != "" && c.CityID != filter.CityID {
			continue
		}
		if filter.TopicID != "" && c.TopicID != filter.TopicID {
			continue
		}
		if filter.BudgetTier != "" && c.BudgetTier != filter.BudgetTier {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if !containsAll(c.Requirements, filter.Requirements) {
			continue
		}
		res = append(res, c)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].UpdatedAt.After(res[j].UpdatedAt) })
	return res, nil
}

func (s *MemoryStore) ListCardSources(cardID string) ([]domain.CardSource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]domain.CardSource, 0)
	for _, src := range s.sources {
		if src.CardID == cardID {
			res = append(res, src)
		}
	}
	return res, nil
}

func (s *MemoryStore) CountCardSourcesByAuthor(authorID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	count := 0
	for _, src := range s.sources {
		if answer, ok := s.answers[src.AnswerID]; ok && answer.AuthorID == authorID {
			count++
		}
	}
	return count, nil
}

func (s *MemoryStore) SaveReport(r domain.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[r.ID] = r
	return nil
}

func (s *MemoryStore) GetReport(id string) (domain.Report, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[id]
	return r, ok, nil
}

func (s *MemoryStore) ListReports() ([]domain.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]domain.Report, 0, len(s.reports))
	for _, r := range s.reports {
		res = append(res, r)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].CreatedAt.After(res[j].CreatedAt) })
	return res, nil
}

func sortAnswersByCreation(answers []domain.Answer) {
	sort.Slice(answers, func(i, j int) bool {
		if answers[i].CreatedAt.Equal(answers[j].CreatedAt) {
			return strings.Compare(answers[i].ID, answers[j].ID) < 0
		}
		return answers[i].CreatedAt.Before(answers[j].CreatedAt)
	})
}

func containsAll(have, want []string) bool {
	if len(want) == 0 {
		return true
	}
	set := make(map[string]bool, len(have))
	for _, item := range have {
		set[item] = true
	}
	for _, item := range want {
		if !set[item] {
			return false
		}
	}
	return true
}

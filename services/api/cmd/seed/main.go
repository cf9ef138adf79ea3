// Command seed loads demo catalog data and a small sample thread into the
// database. Safe to run repeatedly; existing rows are left alone.
package main

import (
	"log"
	"time"

	"wayfare/internal/util"
	"wayfare/pkg/domain"
	"wayfare/pkg/store"
	"wayfare/services/api/internal/config"
)

var cities = []domain.City{
	{Name: "Tbilisi", Country: "Georgia"},
	{Name: "Istanbul", Country: "Turkey"},
	{Name: "Dubai", Country: "UAE"},
	{Name: "Bangkok", Country: "Thailand"},
	{Name: "Bali", Country: "Indonesia"},
}

var topics = []string{
	"Areas",
	"Housing",
	"Internet/Work",
	"Safety",
	"Transport",
	"Documents",
	"Cost of Living",
}

func main() {
	cfg, err := config.Load(config.ConfigPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	db, err := store.NewGormStore(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open store: %v", err)
	}
	if err := seed(db); err != nil {
		log.Fatalf("seed failed: %v", err)
	}
	log.Println("seed complete")
}

func seed(db store.Store) error {
	now := time.Now().UTC()

	existingCities, err := db.ListCities()
	if err != nil {
		return err
	}
	if len(existingCities) == 0 {
		for _, city := range cities {
			city.ID = util.NewID()
			if err := db.SaveCity(city); err != nil {
				return err
			}
		}
	}
	existingTopics, err := db.ListTopics()
	if err != nil {
		return err
	}
	if len(existingTopics) == 0 {
		for _, name := range topics {
			if err := db.SaveTopic(domain.Topic{ID: util.NewID(), Name: name}); err != nil {
				return err
			}
		}
	}

	admin, err := ensureUser(db, "admin@travel.dev", true, now)
	if err != nil {
		return err
	}
	if err := db.SaveProfile(domain.UserProfile{
		UserID:             admin.ID,
		TravelStyle:        "Slow travel",
		CitiesOfExperience: []string{"Tbilisi", "Bangkok"},
	}); err != nil {
		return err
	}
	member, err := ensureUser(db, "member@travel.dev", false, now)
	if err != nil {
		return err
	}
	if err := db.SaveProfile(domain.UserProfile{
		UserID:             member.ID,
		TravelStyle:        "Remote work",
		CitiesOfExperience: []string{"Bali"},
	}); err != nil {
		return err
	}

	questions, err := db.ListQuestions(store.QuestionFilter{})
	if err != nil {
		return err
	}
	if len(questions) > 0 {
		return nil
	}

	tbilisi, err := cityByName(db, "Tbilisi")
	if err != nil {
		return err
	}
	housing, err := topicByName(db, "Housing")
	if err != nil {
		return err
	}

	question := domain.Question{
		ID:           util.NewID(),
		CityID:       tbilisi.ID,
		TopicID:      housing.ID,
		AuthorID:     member.ID,
		Duration:     "2 months",
		BudgetTier:   domain.BudgetMid,
		Requirements: []string{"quiet", "good_internet"},
		Body:         "Where should I stay for a 2-month remote work stint?",
		Status:       domain.QuestionOpen,
		CreatedAt:    now,
	}
	if err := db.SaveQuestion(question); err != nil {
		return err
	}
	answer := domain.Answer{
		ID:         util.NewID(),
		QuestionID: question.ID,
		AuthorID:   admin.ID,
		Body:       "Stay near Vake for walkability and cafes. Check internet speed before booking.",
		Context:    map[string]string{"lived": "true", "when": "2023", "duration": "3 months"},
		CreatedAt:  now,
	}
	if err := db.SaveAnswer(answer); err != nil {
		return err
	}

	card := domain.Card{
		ID:           util.NewID(),
		Title:        "Tbilisi — Housing for 2 months",
		CityID:       tbilisi.ID,
		TopicID:      housing.ID,
		Duration:     "2 months",
		BudgetTier:   domain.BudgetMid,
		Requirements: []string{"quiet", "good_internet"},
		Summary:      "Vake and Saburtalo are popular for mid-budget remote workers staying 1-3 months.",
		Recommendations: []string{
			"Tour apartments for noise and internet quality.",
			"Negotiate monthly rates directly with hosts.",
			"Check proximity to groceries and cafes.",
		},
		Risks: []string{
			"Short-term contracts can include surprise utilities.",
			"Listings may exaggerate internet speeds.",
		},
		FitFor:    []string{"Remote workers", "Solo travelers"},
		Status:    domain.CardDraft,
		UpdatedAt: now,
	}
	if err := db.CreateCardWithSources(card, question.ID, []string{answer.ID}); err != nil {
		return err
	}
	card.Status = domain.CardPublished
	if err := db.UpdateCard(card); err != nil {
		return err
	}

	// A second, still-open thread so the demo feed has something answerable.
	openQuestion := domain.Question{
		ID:           util.NewID(),
		CityID:       tbilisi.ID,
		TopicID:      housing.ID,
		AuthorID:     member.ID,
		Duration:     "6 weeks",
		BudgetTier:   domain.BudgetLow,
		Requirements: []string{"walkable"},
		Body:         "Is Saburtalo reasonable on a low budget for six weeks?",
		Status:       domain.QuestionOpen,
		CreatedAt:    now,
	}
	return db.SaveQuestion(openQuestion)
}

func ensureUser(db store.Store, email string, isAdmin bool, now time.Time) (domain.User, error) {
	user, ok, err := db.GetUserByEmail(email)
	if err != nil {
		return domain.User{}, err
	}
	if ok {
		return user, nil
	}
	user = domain.User{
		ID:        util.NewID(),
		Email:     email,
		IsAdmin:   isAdmin,
		CreatedAt: now,
	}
	if err := db.SaveUser(user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

func cityByName(db store.Store, name string) (domain.City, error) {
	all, err := db.ListCities()
	if err != nil {
		return domain.City{}, err
	}
	for _, city := range all {
		if city.Name == name {
			return city, nil
		}
	}
	return domain.City{}, errNotSeeded(name)
}

func topicByName(db store.Store, name string) (domain.Topic, error) {
	all, err := db.ListTopics()
	if err != nil {
		return domain.Topic{}, err
	}
	for _, topic := range all {
		if topic.Name == name {
			return topic, nil
		}
	}
	return domain.Topic{}, errNotSeeded(name)
}

type errNotSeeded string

func (e errNotSeeded) Error() string { return "missing seed row: " + string(e) }

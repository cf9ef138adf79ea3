package app

import (
	"fmt"

	"wayfare/pkg/domain"
	"wayfare/pkg/store"
)

// ContributorStats aggregates a user's trust signals across threads.
type ContributorStats struct {
	HelpedAnswers int `json:"helpedAnswers"`
	CardsUsed     int `json:"cardsUsed"`
	AnswerSaves   int `json:"answerSaves"`
}

// ProfileView is the "me" page: profile plus trust stats and activity.
type ProfileView struct {
	Profile    domain.UserProfile `json:"profile"`
	Stats      ContributorStats   `json:"stats"`
	SavedCards []domain.Reaction  `json:"savedCards"`
	Questions  []domain.Question  `json:"questions"`
	Answers    []domain.Answer    `json:"answers"`
}

// GetProfile assembles the profile view for a user.
func (a *App) GetProfile(userID string) (ProfileView, error) {
	profile, ok, err := a.store.GetProfile(userID)
	if err != nil {
		return ProfileView{}, fmt.Errorf("fetch profile: %w", err)
	}
	if !ok {
		profile = domain.UserProfile{UserID: userID, CitiesOfExperience: []string{}}
	}
	helpedTotals, err := a.store.CountHelpedByAuthors([]string{userID})
	if err != nil {
		return ProfileView{}, fmt.Errorf("count helped: %w", err)
	}
	cardsUsed, err := a.store.CountCardSourcesByAuthor(userID)
	if err != nil {
		return ProfileView{}, fmt.Errorf("count card sources: %w", err)
	}
	answerSaves, err := a.store.CountSavesOnAuthorAnswers(userID)
	if err != nil {
		return ProfileView{}, fmt.Errorf("count saves: %w", err)
	}
	savedCards, err := a.store.ListReactionsByActor(userID, domain.ReactionSaved, domain.EntityCard)
	if err != nil {
		return ProfileView{}, fmt.Errorf("list saved cards: %w", err)
	}
	questions, err := a.store.ListQuestions(store.QuestionFilter{AuthorID: userID})
	if err != nil {
		return ProfileView{}, fmt.Errorf("list questions: %w", err)
	}
	answers, err := a.store.ListAnswersByAuthor(userID)
	if err != nil {
		return ProfileView{}, fmt.Errorf("list answers: %w", err)
	}
	return ProfileView{
		Profile: profile,
		Stats: ContributorStats{
			HelpedAnswers: helpedTotals[userID],
			CardsUsed:     cardsUsed,
			AnswerSaves:   answerSaves,
		},
		SavedCards: savedCards,
		Questions:  questions,
		Answers:    answers,
	}, nil
}

// ProfileUpdate carries the optional profile fields. Nil means unchanged.
type ProfileUpdate struct {
	Language           *string
	TravelStyle        *string
	BudgetTier         *domain.BudgetTier
	CitiesOfExperience *[]string
}

// UpdateProfile upserts the user's profile fields.
func (a *App) UpdateProfile(userID string, update ProfileUpdate) (domain.UserProfile, error) {
	profile, ok, err := a.store.GetProfile(userID)
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("fetch profile: %w", err)
	}
	if !ok {
		profile = domain.UserProfile{UserID: userID, CitiesOfExperience: []string{}}
	}
	if update.Language != nil {
		profile.Language = *update.Language
	}
	if update.TravelStyle != nil {
		profile.TravelStyle = *update.TravelStyle
	}
	if update.BudgetTier != nil {
		if _, valid := domain.ParseBudgetTier(string(*update.BudgetTier)); !valid {
			return domain.UserProfile{}, ErrInvalidBudgetTier
		}
		profile.BudgetTier = *update.BudgetTier
	}
	if update.CitiesOfExperience != nil {
		profile.CitiesOfExperience = *update.CitiesOfExperience
	}
	if err := a.store.SaveProfile(profile); err != nil {
		return domain.UserProfile{}, fmt.Errorf("save profile: %w", err)
	}
	return profile, nil
}

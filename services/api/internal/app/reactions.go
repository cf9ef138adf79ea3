package app

import (
	"fmt"

	"wayfare/internal/util"
	"wayfare/pkg/domain"
)

// authorizeReaction is a pure predicate over the proposed reaction plus the
// already-resolved owning question author (empty unless needed). It must be
// checked before any ledger write.
func authorizeReaction(actorID string, reactionType domain.ReactionType, entityType domain.EntityType, questionAuthorID string) error {
	switch reactionType {
	case domain.ReactionHelped:
		if entityType != domain.EntityAnswer {
			return ErrHelpedTargetsAnswers
		}
		if actorID != questionAuthorID {
			return ErrHelpedAuthorOnly
		}
	case domain.ReactionSaved:
		if entityType != domain.EntityAnswer && entityType != domain.EntityCard {
			return ErrSavedScope
		}
	case domain.ReactionThanks:
		// unrestricted
	default:
		return ErrInvalidReactionType
	}
	return nil
}

// SubmitReaction validates and appends a reaction to the ledger. The same
// actor may react to the same target repeatedly; the ledger keeps every row.
func (a *App) SubmitReaction(actorID string, reactionType domain.ReactionType, entityType domain.EntityType, entityID string) (domain.Reaction, error) {
	questionAuthorID := ""
	if reactionType == domain.ReactionHelped && entityType == domain.EntityAnswer {
		answer, ok, err := a.store.GetAnswer(entityID)
		if err != nil {
			return domain.Reaction{}, fmt.Errorf("fetch answer: %w", err)
		}
		if !ok {
			return domain.Reaction{}, ErrNotFound
		}
		question, ok, err := a.store.GetQuestion(answer.QuestionID)
		if err != nil {
			return domain.Reaction{}, fmt.Errorf("fetch question: %w", err)
		}
		if !ok {
			return domain.Reaction{}, ErrNotFound
		}
		questionAuthorID = question.AuthorID
	}
	if err := authorizeReaction(actorID, reactionType, entityType, questionAuthorID); err != nil {
		return domain.Reaction{}, err
	}
	if err := a.targetExists(entityType, entityID); err != nil {
		return domain.Reaction{}, err
	}

	reaction := domain.Reaction{
		ID:         util.NewID(),
		ActorID:    actorID,
		EntityType: entityType,
		EntityID:   entityID,
		Type:       reactionType,
		CreatedAt:  a.now(),
	}
	if err := a.store.CreateReaction(reaction); err != nil {
		return domain.Reaction{}, fmt.Errorf("create reaction: %w", err)
	}
	return reaction, nil
}

func (a *App) targetExists(entityType domain.EntityType, entityID string) error {
	var ok bool
	var err error
	switch entityType {
	case domain.EntityQuestion:
		_, ok, err = a.store.GetQuestion(entityID)
	case domain.EntityAnswer:
		_, ok, err = a.store.GetAnswer(entityID)
	case domain.EntityCard:
		_, ok, err = a.store.GetCard(entityID)
	default:
		return ErrInvalidEntityType
	}
	if err != nil {
		return fmt.Errorf("fetch %s: %w", entityType, err)
	}
	if !ok {
		return ErrNotFound
	}
	return nil
}

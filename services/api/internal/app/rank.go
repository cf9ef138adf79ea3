package app

import (
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"wayfare/pkg/domain"
)

type rankSignals struct {
	helped           map[string]bool
	saveCounts       map[string]int
	authorHelpedSums map[string]int
}

// RankAnswers returns a question's answers ordered by trust: answers the
// question author marked helped first, then by save count, then by how
// often the contributor's answers have been marked helped anywhere, then
// by creation time. The sort is stable, so a fixed snapshot always yields
// the same order.
func (a *App) RankAnswers(questionID string) ([]domain.Answer, error) {
	if _, ok, err := a.store.GetQuestion(questionID); err != nil {
		return nil, fmt.Errorf("fetch question: %w", err)
	} else if !ok {
		return nil, ErrNotFound
	}
	answers, err := a.store.ListAnswersByQuestion(questionID)
	if err != nil {
		return nil, fmt.Errorf("fetch answers: %w", err)
	}
	if len(answers) == 0 {
		return []domain.Answer{}, nil
	}
	signals, err := a.fetchRankSignals(answers)
	if err != nil {
		return nil, err
	}
	rankAnswers(answers, signals)
	return answers, nil
}

func (a *App) fetchRankSignals(answers []domain.Answer) (rankSignals, error) {
	answerIDs := make([]string, 0, len(answers))
	seenAuthors := make(map[string]bool, len(answers))
	authorIDs := make([]string, 0, len(answers))
	for _, answer := range answers {
		answerIDs = append(answerIDs, answer.ID)
		if !seenAuthors[answer.AuthorID] {
			seenAuthors[answer.AuthorID] = true
			authorIDs = append(authorIDs, answer.AuthorID)
		}
	}

	var reactions []domain.Reaction
	var helpedTotals map[string]int
	var g errgroup.Group
	g.Go(func() error {
		var err error
		reactions, err = a.store.ListReactionsByTarget(domain.EntityAnswer, answerIDs)
		if err != nil {
			return fmt.Errorf("fetch reactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		helpedTotals, err = a.store.CountHelpedByAuthors(authorIDs)
		if err != nil {
			return fmt.Errorf("fetch helped totals: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return rankSignals{}, err
	}

	signals := rankSignals{
		helped:           make(map[string]bool),
		saveCounts:       make(map[string]int),
		authorHelpedSums: helpedTotals,
	}
	for _, reaction := range reactions {
		switch reaction.Type {
		case domain.ReactionHelped:
			signals.helped[reaction.EntityID] = true
		case domain.ReactionSaved:
			signals.saveCounts[reaction.EntityID]++
		}
	}
	return signals, nil
}

// rankAnswers sorts in place by (helped flag, save count, contributor
// helped-total, creation time). Remaining ties keep their original order.
func rankAnswers(answers []domain.Answer, signals rankSignals) {
	sort.SliceStable(answers, func(i, j int) bool {
		left, right := answers[i], answers[j]
		leftHelped, rightHelped := signals.helped[left.ID], signals.helped[right.ID]
		if leftHelped != rightHelped {
			return leftHelped
		}
		leftSaves, rightSaves := signals.saveCounts[left.ID], signals.saveCounts[right.ID]
		if leftSaves != rightSaves {
			return leftSaves > rightSaves
		}
		leftTotal, rightTotal := signals.authorHelpedSums[left.AuthorID], signals.authorHelpedSums[right.AuthorID]
		if leftTotal != rightTotal {
			return leftTotal > rightTotal
		}
		return left.CreatedAt.Before(right.CreatedAt)
	})
}

package app

import (
	"fmt"
	"time"
)

// FeedItem is a thread row for the public feed: a question rendered as a
// short title with its activity timestamps.
type FeedItem struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	AuthorID      string     `json:"authorId"`
	AuthorName    string     `json:"authorName"`
	CreatedAt     time.Time  `json:"createdAt"`
	LastMessageAt *time.Time `json:"lastMessageAt,omitempty"`
}

// Feed lists question threads ordered by last activity, newest first.
func (a *App) Feed(limit, offset int) ([]FeedItem, error) {
	threads, err := a.store.ListThreads(limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list threads: %w", err)
	}
	items := make([]FeedItem, 0, len(threads))
	for _, thread := range threads {
		title := thread.Question.Body
		if len([]rune(title)) > answerExcerptLen {
			title = textExcerpt(title, answerExcerptLen) + "…"
		}
		item := FeedItem{
			ID:         thread.Question.ID,
			Title:      title,
			AuthorID:   thread.Question.AuthorID,
			AuthorName: thread.AuthorEmail,
			CreatedAt:  thread.Question.CreatedAt,
		}
		if !thread.LastAnswerAt.IsZero() {
			lastAnswerAt := thread.LastAnswerAt
			item.LastMessageAt = &lastAnswerAt
		}
		items = append(items, item)
	}
	return items, nil
}

package app

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"wayfare/internal/util"
	"wayfare/pkg/domain"
)

const mediaURLExpiry = 7 * 24 * time.Hour

// CreateAnswer appends an immutable answer to a question.
func (a *App) CreateAnswer(authorID, questionID, body string, answerContext map[string]string, mediaURL string) (domain.Answer, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return domain.Answer{}, ErrBodyRequired
	}
	if _, ok, err := a.store.GetQuestion(questionID); err != nil {
		return domain.Answer{}, fmt.Errorf("fetch question: %w", err)
	} else if !ok {
		return domain.Answer{}, ErrNotFound
	}
	answer := domain.Answer{
		ID:         util.NewID(),
		QuestionID: questionID,
		AuthorID:   authorID,
		Body:       body,
		Context:    answerContext,
		MediaURL:   mediaURL,
		CreatedAt:  a.now(),
	}
	if err := a.store.SaveAnswer(answer); err != nil {
		return domain.Answer{}, fmt.Errorf("create answer: %w", err)
	}
	return answer, nil
}

// UploadAnswerMedia stores answer media and returns a presigned URL that
// callers pass back as mediaUrl when creating the answer.
func (a *App) UploadAnswerMedia(ctx context.Context, authorID, filename, contentType string, r io.Reader, size int64) (string, error) {
	if a.media == nil {
		return "", ErrMediaNotConfigured
	}
	if size <= 0 {
		return "", ErrMediaContentRequired
	}
	ext := path.Ext(filename)
	key := fmt.Sprintf("answers/%s/%s%s", authorID, util.NewID(), ext)
	if err := a.media.Put(ctx, key, r, size, contentType); err != nil {
		return "", fmt.Errorf("store media: %w", err)
	}
	url, err := a.media.PresignGet(ctx, key, mediaURLExpiry)
	if err != nil {
		return "", fmt.Errorf("presign media: %w", err)
	}
	return url, nil
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	app_errors "nutricare/backend/internal/errors"
	"nutricare/backend/internal/model"
	"nutricare/backend/internal/repository"
)

// TranscriptService manages threads and their visible transcripts.
type TranscriptService struct {
	repo repository.Repository
}

func NewTranscriptService(repo repository.Repository) *TranscriptService {
	return &TranscriptService{repo: repo}
}

func (s *TranscriptService) CreateThread(ctx context.Context, userID, title string) (*model.Thread, error) {
	if title == "" {
		title = "New conversation"
	}
	thread := &model.Thread{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     truncate(title, 50),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := s.repo.CreateThread(ctx, thread); err != nil {
		return nil, fmt.Errorf("could not create thread: %w", err)
	}
	return thread, nil
}

func (s *TranscriptService) ListThreads(ctx context.Context, userID string) ([]*model.Thread, error) {
	return s.repo.GetThreads(ctx, userID)
}

func (s *TranscriptService) GetFullThread(ctx context.Context, threadID string) (*model.FullThread, error) {
	thread, err := s.repo.GetThread(ctx, threadID)
	if err != nil {
		return nil, translateRepoErr(err)
	}
	messages, err := s.repo.GetDisplayMessages(ctx, threadID)
	if err != nil {
		return nil, fmt.Errorf("could not get transcript: %w", err)
	}
	return &model.FullThread{Thread: *thread, Messages: messages}, nil
}

func (s *TranscriptService) DeleteThread(ctx context.Context, threadID string) error {
	return translateRepoErr(s.repo.DeleteThread(ctx, threadID))
}

// EditDisplayMessage replaces the visible text of a previously sent user
// message in place. This is a pure transcript mutation: it does not re-trigger
// a model call, and the assistant's context window keeps the original wording.
// The resulting divergence between display history and model context is the
// intended behavior. Bot messages are not editable.
func (s *TranscriptService) EditDisplayMessage(ctx context.Context, threadID, messageID, content string) error {
	msg, err := s.repo.GetDisplayMessage(ctx, threadID, messageID)
	if err != nil {
		return translateRepoErr(err)
	}
	if msg.Type != model.DisplayUser {
		return fmt.Errorf("%w: only user messages can be edited", app_errors.ErrConflict)
	}
	return translateRepoErr(s.repo.UpdateDisplayMessageContent(ctx, threadID, messageID, content))
}

// translateRepoErr maps repository sentinels onto domain-level errors.
func translateRepoErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return app_errors.ErrNotFound
	}
	return err
}

// truncate shortens a string to a specified number of runes.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

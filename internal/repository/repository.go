package repository

import (
	"context"

	"nutricare/backend/internal/model"
)

// Repository defines the interface for transcript storage. The transcript is
// the UI-facing display history of a thread; it is deliberately independent of
// the in-memory conversation window the assistant core keeps, and the two can
// diverge (editing a display message never touches the window).
type Repository interface {
	CreateThread(ctx context.Context, thread *model.Thread) error
	GetThread(ctx context.Context, threadID string) (*model.Thread, error)
	GetThreads(ctx context.Context, userID string) ([]*model.Thread, error)
	DeleteThread(ctx context.Context, threadID string) error

	AddDisplayMessage(ctx context.Context, threadID string, message *model.DisplayMessage) error
	GetDisplayMessages(ctx context.Context, threadID string) ([]model.DisplayMessage, error)
	UpdateDisplayMessageContent(ctx context.Context, threadID, messageID, content string) error
	GetDisplayMessage(ctx context.Context, threadID, messageID string) (*model.DisplayMessage, error)
}

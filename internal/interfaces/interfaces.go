package interfaces

import (
	"context"

	"nutricare/backend/internal/model"
	"nutricare/backend/internal/service"
)

// This file defines the interfaces for our core services.
// Depending on these interfaces, instead of concrete implementations, allows for
// decoupling (e.g., API layer from Service layer) and easier testing via mocking.

// AssistantService defines the contract for running conversational exchanges.
type AssistantService interface {
	// HandleUserMessage runs one exchange: it persists the user's display
	// message, obtains the assistant's reply, and streams reveal increments
	// into streamChan, closing it when the turn settles or is stopped.
	HandleUserMessage(ctx context.Context, req *service.SendMessageRequest, streamChan chan<- model.StreamEvent)

	// ResetConversation clears the assistant's context window for a thread.
	// The display transcript is untouched.
	ResetConversation(threadID string)
}

// TranscriptService defines the contract for thread and transcript management.
type TranscriptService interface {
	CreateThread(ctx context.Context, userID, title string) (*model.Thread, error)
	ListThreads(ctx context.Context, userID string) ([]*model.Thread, error)
	GetFullThread(ctx context.Context, threadID string) (*model.FullThread, error)
	DeleteThread(ctx context.Context, threadID string) error

	// EditDisplayMessage replaces a user message's visible text in place.
	// It never re-triggers a model call and never alters the assistant's
	// context window.
	EditDisplayMessage(ctx context.Context, threadID, messageID, content string) error
}

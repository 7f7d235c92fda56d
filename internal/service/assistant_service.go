package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"nutricare/backend/internal/assistant"
	"nutricare/backend/internal/model"
	"nutricare/backend/internal/repository"
	"nutricare/backend/internal/typing"
)

// AssistantService sits between the HTTP surface and the assistant core. It
// owns the caller-side responsibilities the core deliberately does not: the
// display transcript, and the simulated typing reveal of each reply.
type AssistantService struct {
	repo           repository.Repository
	orchestrator   *assistant.Orchestrator
	revealInterval time.Duration
}

// SendMessageRequest is the structure for a new message request from the client.
type SendMessageRequest struct {
	ThreadID string `json:"thread_id"`
	Content  string `json:"content" validate:"required,min=1,max=4000"`
	// WholeReveal selects the full-page reveal style (one increment carrying
	// the entire reply) over the widget's rune-by-rune style.
	WholeReveal bool `json:"whole_reveal,omitempty"`
}

func NewAssistantService(repo repository.Repository, orchestrator *assistant.Orchestrator, revealInterval time.Duration) *AssistantService {
	return &AssistantService{
		repo:           repo,
		orchestrator:   orchestrator,
		revealInterval: revealInterval,
	}
}

// HandleUserMessage is the core function that processes one exchange and
// streams the reveal. Ordering guarantees:
//   - the user's display message is persisted before the model call;
//   - increments stop the moment ctx is canceled (client stop/disconnect);
//   - whatever was revealed by then is committed as the bot's display
//     message, truncated rather than discarded;
//   - the channel is always closed.
func (s *AssistantService) HandleUserMessage(
	ctx context.Context,
	req *SendMessageRequest,
	streamChan chan<- model.StreamEvent,
) {
	defer close(streamChan)

	userMessage := &model.DisplayMessage{
		ID:        uuid.NewString(),
		Type:      model.DisplayUser,
		Content:   req.Content,
		Timestamp: time.Now(),
	}
	if err := s.repo.AddDisplayMessage(ctx, req.ThreadID, userMessage); err != nil {
		slog.Error("Could not save user display message", "thread_id", req.ThreadID, "error", err)
		streamChan <- model.StreamEvent{Error: "Could not save message"}
		return
	}

	granularity := typing.ByRune
	if req.WholeReveal {
		granularity = typing.ByMessage
	}
	presenter := typing.NewPresenter(s.revealInterval, granularity)
	presenter.BeginRequest()

	// Respond never fails: a blocked or degraded exchange still yields
	// displayable text.
	response := s.orchestrator.Respond(ctx, req.ThreadID, req.Content)

	for chunk := range presenter.Reveal(ctx, response) {
		streamChan <- model.StreamEvent{Content: chunk}
	}

	committed := presenter.Transcript()
	if presenter.State() == typing.Stopped {
		slog.Info("Reveal stopped early, committing partial reply",
			"thread_id", req.ThreadID,
			"revealed", len(committed),
			"full", len(response),
		)
	}

	// A stop before the first increment leaves nothing to commit and nothing
	// in the visible transcript.
	if committed != "" {
		botMessage := &model.DisplayMessage{
			ID:        uuid.NewString(),
			Type:      model.DisplayBot,
			Content:   committed,
			Timestamp: time.Now(),
		}
		// Persist with a fresh context: ctx is typically canceled already
		// when the client stopped the reveal.
		saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.repo.AddDisplayMessage(saveCtx, req.ThreadID, botMessage); err != nil {
			slog.Error("Failed to save bot display message", "thread_id", req.ThreadID, "error", err)
			return
		}
	}

	streamChan <- model.StreamEvent{Done: true, Full: committed}
}

// ResetConversation clears the assistant's context window for a thread. It is
// exposed for "new conversation" actions; the display transcript survives.
func (s *AssistantService) ResetConversation(threadID string) {
	s.orchestrator.Reset(threadID)
}

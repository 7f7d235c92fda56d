package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"nutricare/backend/internal/assistant"
	"nutricare/backend/internal/llm"
	mock_llm "nutricare/backend/internal/llm/mocks"
	"nutricare/backend/internal/model"
	mock_repo "nutricare/backend/internal/repository/mocks"
	"nutricare/backend/internal/service"
)

type assistantMocks struct {
	repo *mock_repo.MockRepository
	llm  *mock_llm.MockProvider
}

func setupAssistantService(t *testing.T) (*service.AssistantService, assistantMocks) {
	mocks := assistantMocks{
		repo: mock_repo.NewMockRepository(t),
		llm:  mock_llm.NewMockProvider(t),
	}
	orchestrator := assistant.NewOrchestrator(mocks.llm, "test-model",
		assistant.WithPick(func(n int) int { return 0 }),
	)
	svc := service.NewAssistantService(mocks.repo, orchestrator, time.Millisecond)
	return svc, mocks
}

func collectEvents(ch <-chan model.StreamEvent) []model.StreamEvent {
	var events []model.StreamEvent
	for ev := range ch {
		events = append(events, ev)
	}
	return events
}

func TestAssistantService_HandleUserMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - full reveal and both messages persisted", func(t *testing.T) {
		svc, mocks := setupAssistantService(t)

		var persisted []*model.DisplayMessage
		mocks.repo.On("AddDisplayMessage", mock.Anything, "t1", mock.AnythingOfType("*model.DisplayMessage")).
			Run(func(args mock.Arguments) {
				persisted = append(persisted, args.Get(2).(*model.DisplayMessage))
			}).
			Return(nil).Twice()
		mocks.llm.On("Generate", mock.Anything, mock.Anything).
			Return(&llm.GenerateResponse{Response: "Eat more fiber."}, nil).Once()

		streamChan := make(chan model.StreamEvent, 64)
		svc.HandleUserMessage(ctx, &service.SendMessageRequest{ThreadID: "t1", Content: "Diet for diabetes?"}, streamChan)

		events := collectEvents(streamChan)
		require.NotEmpty(t, events)

		final := events[len(events)-1]
		assert.True(t, final.Done)
		assert.Equal(t, "Eat more fiber.", final.Full)

		// The increments reassemble into the full reply.
		var assembled string
		for _, ev := range events[:len(events)-1] {
			assembled += ev.Content
		}
		assert.Equal(t, "Eat more fiber.", assembled)

		require.Len(t, persisted, 2)
		assert.Equal(t, model.DisplayUser, persisted[0].Type)
		assert.Equal(t, "Diet for diabetes?", persisted[0].Content)
		assert.Equal(t, model.DisplayBot, persisted[1].Type)
		assert.Equal(t, "Eat more fiber.", persisted[1].Content)
	})

	t.Run("Whole reveal emits a single increment", func(t *testing.T) {
		svc, mocks := setupAssistantService(t)

		mocks.repo.On("AddDisplayMessage", mock.Anything, "t1", mock.Anything).Return(nil).Twice()
		mocks.llm.On("Generate", mock.Anything, mock.Anything).
			Return(&llm.GenerateResponse{Response: "One shot."}, nil).Once()

		streamChan := make(chan model.StreamEvent, 8)
		svc.HandleUserMessage(ctx, &service.SendMessageRequest{ThreadID: "t1", Content: "hi there", WholeReveal: true}, streamChan)

		events := collectEvents(streamChan)
		require.Len(t, events, 2)
		assert.Equal(t, "One shot.", events[0].Content)
		assert.True(t, events[1].Done)
	})

	t.Run("Failure - user message cannot be saved", func(t *testing.T) {
		svc, mocks := setupAssistantService(t)

		mocks.repo.On("AddDisplayMessage", mock.Anything, "t1", mock.Anything).
			Return(errors.New("db error")).Once()

		streamChan := make(chan model.StreamEvent, 1)
		svc.HandleUserMessage(ctx, &service.SendMessageRequest{ThreadID: "t1", Content: "hello"}, streamChan)

		events := collectEvents(streamChan)
		require.Len(t, events, 1)
		assert.NotEmpty(t, events[0].Error)
	})

	t.Run("Model failure still streams a fallback reply", func(t *testing.T) {
		svc, mocks := setupAssistantService(t)

		mocks.repo.On("AddDisplayMessage", mock.Anything, "t1", mock.Anything).Return(nil).Twice()
		mocks.llm.On("Generate", mock.Anything, mock.Anything).
			Return(nil, errors.New("network unreachable")).Once()

		streamChan := make(chan model.StreamEvent, 256)
		svc.HandleUserMessage(ctx, &service.SendMessageRequest{ThreadID: "t1", Content: "Suggest a meal plan"}, streamChan)

		events := collectEvents(streamChan)
		final := events[len(events)-1]
		require.True(t, final.Done)
		assert.NotEmpty(t, final.Full, "a degraded exchange still shows an on-brand reply")
	})

	t.Run("Canceled context commits the partial reveal", func(t *testing.T) {
		svc, mocks := setupAssistantService(t)

		long := ""
		for i := 0; i < 200; i++ {
			long += "n"
		}

		var botContent string
		mocks.repo.On("AddDisplayMessage", mock.Anything, "t1", mock.Anything).
			Run(func(args mock.Arguments) {
				msg := args.Get(2).(*model.DisplayMessage)
				if msg.Type == model.DisplayBot {
					botContent = msg.Content
				}
			}).
			Return(nil)
		mocks.llm.On("Generate", mock.Anything, mock.Anything).
			Return(&llm.GenerateResponse{Response: long}, nil).Once()

		cancelCtx, cancel := context.WithCancel(ctx)
		streamChan := make(chan model.StreamEvent)
		go svc.HandleUserMessage(cancelCtx, &service.SendMessageRequest{ThreadID: "t1", Content: "hydration tips"}, streamChan)

		// Read a few increments, then stop the turn.
		for i := 0; i < 3; i++ {
			<-streamChan
		}
		cancel()
		events := collectEvents(streamChan)

		// The committed bot message is a truncation, not a deletion.
		assert.NotEmpty(t, botContent)
		assert.Less(t, len(botContent), len(long))
		if len(events) > 0 {
			final := events[len(events)-1]
			if final.Done {
				assert.Equal(t, botContent, final.Full)
			}
		}
	})
}

func TestAssistantService_ResetConversation(t *testing.T) {
	svc, mocks := setupAssistantService(t)
	ctx := context.Background()

	mocks.repo.On("AddDisplayMessage", mock.Anything, "t1", mock.Anything).Return(nil).Twice()
	mocks.llm.On("Generate", mock.Anything, mock.MatchedBy(func(req *llm.GenerateRequest) bool {
		// Fresh conversation: system + user only.
		return len(req.Messages) == 2
	})).Return(&llm.GenerateResponse{Response: "Sure."}, nil).Twice()

	streamChan := make(chan model.StreamEvent, 64)
	svc.HandleUserMessage(ctx, &service.SendMessageRequest{ThreadID: "t1", Content: "Is keto safe?"}, streamChan)
	collectEvents(streamChan)

	// Without the reset the second call would carry the prior exchange and
	// fail the MatchedBy above.
	svc.ResetConversation("t1")

	mocks.repo.On("AddDisplayMessage", mock.Anything, "t1", mock.Anything).Return(nil).Twice()
	streamChan = make(chan model.StreamEvent, 64)
	svc.HandleUserMessage(ctx, &service.SendMessageRequest{ThreadID: "t1", Content: "What about fasting?"}, streamChan)
	collectEvents(streamChan)
}

// The `_test` suffix creates a "black box" test package: the tests can only
// reach the api package through its exported identifiers, which is the
// preferred approach for testing a package's public surface.
package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"nutricare/backend/internal/api"
	app_errors "nutricare/backend/internal/errors"
	"nutricare/backend/internal/interfaces/mocks"
	"nutricare/backend/internal/model"
	"nutricare/backend/internal/service"
)

func setupAssistantHandler(t *testing.T) (*api.AssistantHandler, *mocks.MockAssistantService, *mocks.MockTranscriptService) {
	mockAssistant := mocks.NewMockAssistantService(t)
	mockTranscripts := mocks.NewMockTranscriptService(t)
	handler := api.NewAssistantHandler(mockAssistant, mockTranscripts)
	return handler, mockAssistant, mockTranscripts
}

// addChiURLParams simulates how the chi router injects URL parameters
// (e.g. `{threadID}`) into the request's context; without it, chi.URLParam
// returns an empty string inside the handlers.
func addChiURLParams(req *http.Request, params map[string]string) *http.Request {
	chiCtx := chi.NewRouteContext()
	for key, value := range params {
		chiCtx.URLParams.Add(key, value)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, chiCtx))
}

func TestAssistantHandler_CreateThread(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, _, mockTranscripts := setupAssistantHandler(t)
		expected := &model.Thread{ID: "t1", Title: "Meal plan"}
		mockTranscripts.On("CreateThread", mock.Anything, "default-user", "Meal plan").
			Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/v1/threads", strings.NewReader(`{"title": "Meal plan"}`))
		rr := httptest.NewRecorder()
		handler.CreateThread(rr, req)

		assert.Equal(t, http.StatusCreated, rr.Code)
		var returned model.Thread
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &returned))
		assert.Equal(t, "t1", returned.ID)
	})

	t.Run("Invalid JSON", func(t *testing.T) {
		handler, _, _ := setupAssistantHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/v1/threads", strings.NewReader(`{not json`))
		rr := httptest.NewRecorder()
		handler.CreateThread(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Title too long fails validation", func(t *testing.T) {
		handler, _, _ := setupAssistantHandler(t)

		long := strings.Repeat("x", 150)
		req := httptest.NewRequest(http.MethodPost, "/v1/threads", strings.NewReader(`{"title": "`+long+`"}`))
		rr := httptest.NewRecorder()
		handler.CreateThread(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestAssistantHandler_GetThreads(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, _, mockTranscripts := setupAssistantHandler(t)
		expected := []*model.Thread{{ID: "t1", Title: "Meal plan"}}
		mockTranscripts.On("ListThreads", mock.Anything, "default-user").Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/v1/threads", nil)
		rr := httptest.NewRecorder()
		handler.GetThreads(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		var returned []*model.Thread
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &returned))
		assert.Equal(t, expected, returned)
	})

	t.Run("Failure - service returns error", func(t *testing.T) {
		handler, _, mockTranscripts := setupAssistantHandler(t)
		mockTranscripts.On("ListThreads", mock.Anything, "default-user").
			Return(nil, errors.New("db down")).Once()

		req := httptest.NewRequest(http.MethodGet, "/v1/threads", nil)
		rr := httptest.NewRecorder()
		handler.GetThreads(rr, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})
}

func TestAssistantHandler_GetThread(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, _, mockTranscripts := setupAssistantHandler(t)
		expected := &model.FullThread{Thread: model.Thread{ID: "t1"}}
		mockTranscripts.On("GetFullThread", mock.Anything, "t1").Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/v1/threads/t1", nil)
		req = addChiURLParams(req, map[string]string{"threadID": "t1"})
		rr := httptest.NewRecorder()
		handler.GetThread(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Not found", func(t *testing.T) {
		handler, _, mockTranscripts := setupAssistantHandler(t)
		mockTranscripts.On("GetFullThread", mock.Anything, "missing").
			Return(nil, app_errors.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/v1/threads/missing", nil)
		req = addChiURLParams(req, map[string]string{"threadID": "missing"})
		rr := httptest.NewRecorder()
		handler.GetThread(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestAssistantHandler_DeleteThread(t *testing.T) {
	handler, mockAssistant, mockTranscripts := setupAssistantHandler(t)
	mockTranscripts.On("DeleteThread", mock.Anything, "t1").Return(nil).Once()
	// Deleting a thread also clears its assistant context window.
	mockAssistant.On("ResetConversation", "t1").Once()

	req := httptest.NewRequest(http.MethodDelete, "/v1/threads/t1", nil)
	req = addChiURLParams(req, map[string]string{"threadID": "t1"})
	rr := httptest.NewRecorder()
	handler.DeleteThread(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAssistantHandler_EditMessage(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, _, mockTranscripts := setupAssistantHandler(t)
		mockTranscripts.On("EditDisplayMessage", mock.Anything, "t1", "m1", "new wording").
			Return(nil).Once()

		req := httptest.NewRequest(http.MethodPut, "/v1/threads/t1/messages/m1", strings.NewReader(`{"content": "new wording"}`))
		req = addChiURLParams(req, map[string]string{"threadID": "t1", "messageID": "m1"})
		rr := httptest.NewRecorder()
		handler.EditMessage(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Empty content fails validation", func(t *testing.T) {
		handler, _, _ := setupAssistantHandler(t)

		req := httptest.NewRequest(http.MethodPut, "/v1/threads/t1/messages/m1", strings.NewReader(`{"content": ""}`))
		req = addChiURLParams(req, map[string]string{"threadID": "t1", "messageID": "m1"})
		rr := httptest.NewRecorder()
		handler.EditMessage(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("Editing a bot message conflicts", func(t *testing.T) {
		handler, _, mockTranscripts := setupAssistantHandler(t)
		mockTranscripts.On("EditDisplayMessage", mock.Anything, "t1", "m2", "tampered").
			Return(app_errors.ErrConflict).Once()

		req := httptest.NewRequest(http.MethodPut, "/v1/threads/t1/messages/m2", strings.NewReader(`{"content": "tampered"}`))
		req = addChiURLParams(req, map[string]string{"threadID": "t1", "messageID": "m2"})
		rr := httptest.NewRecorder()
		handler.EditMessage(rr, req)

		assert.Equal(t, http.StatusConflict, rr.Code)
	})
}

func TestAssistantHandler_ResetConversation(t *testing.T) {
	handler, mockAssistant, _ := setupAssistantHandler(t)
	mockAssistant.On("ResetConversation", "t1").Once()

	req := httptest.NewRequest(http.MethodPost, "/v1/threads/t1/reset", nil)
	req = addChiURLParams(req, map[string]string{"threadID": "t1"})
	rr := httptest.NewRecorder()
	handler.ResetConversation(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAssistantHandler_HandleStreamMessage(t *testing.T) {
	t.Run("Success - events are written as SSE data", func(t *testing.T) {
		handler, mockAssistant, _ := setupAssistantHandler(t)

		mockAssistant.On("HandleUserMessage", mock.Anything, mock.MatchedBy(func(req *service.SendMessageRequest) bool {
			// The thread ID comes from the URL, not the body.
			return req.ThreadID == "t1" && req.Content == "Diet for diabetes?"
		}), mock.Anything).
			Run(func(args mock.Arguments) {
				ch := args.Get(2).(chan<- model.StreamEvent)
				ch <- model.StreamEvent{Content: "Eat "}
				ch <- model.StreamEvent{Content: "more fiber."}
				ch <- model.StreamEvent{Done: true, Full: "Eat more fiber."}
				close(ch)
			}).Once()

		req := httptest.NewRequest(http.MethodPost, "/v1/threads/t1/messages", strings.NewReader(`{"content": "Diet for diabetes?"}`))
		req = addChiURLParams(req, map[string]string{"threadID": "t1"})
		rr := httptest.NewRecorder()
		handler.HandleStreamMessage(rr, req)

		assert.Equal(t, "text/event-stream", rr.Header().Get("Content-Type"))
		body := rr.Body.String()
		assert.Contains(t, body, `data: {"content":"Eat ","done":false}`)
		assert.Contains(t, body, `"full":"Eat more fiber."`)
	})

	t.Run("Invalid body sends a stream error", func(t *testing.T) {
		handler, _, _ := setupAssistantHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/v1/threads/t1/messages", strings.NewReader(`{broken`))
		req = addChiURLParams(req, map[string]string{"threadID": "t1"})
		rr := httptest.NewRecorder()
		handler.HandleStreamMessage(rr, req)

		assert.Contains(t, rr.Body.String(), "event: error")
	})

	t.Run("Missing content fails validation", func(t *testing.T) {
		handler, _, _ := setupAssistantHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/v1/threads/t1/messages", strings.NewReader(`{}`))
		req = addChiURLParams(req, map[string]string{"threadID": "t1"})
		rr := httptest.NewRecorder()
		handler.HandleStreamMessage(rr, req)

		assert.Contains(t, rr.Body.String(), "event: error")
		assert.Contains(t, rr.Body.String(), "Content")
	})

	t.Run("Service error event uses the error SSE event", func(t *testing.T) {
		handler, mockAssistant, _ := setupAssistantHandler(t)

		mockAssistant.On("HandleUserMessage", mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				ch := args.Get(2).(chan<- model.StreamEvent)
				ch <- model.StreamEvent{Error: "Could not save message"}
				close(ch)
			}).Once()

		req := httptest.NewRequest(http.MethodPost, "/v1/threads/t1/messages", strings.NewReader(`{"content": "hello"}`))
		req = addChiURLParams(req, map[string]string{"threadID": "t1"})
		rr := httptest.NewRecorder()
		handler.HandleStreamMessage(rr, req)

		assert.Contains(t, rr.Body.String(), "event: error")
		assert.Contains(t, rr.Body.String(), "Could not save message")
	})
}

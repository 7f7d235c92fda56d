package api

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"nutricare/backend/internal/interfaces"
	"nutricare/backend/internal/model"
	"nutricare/backend/internal/service"
)

// defaultUserID stands in until the external identity provider is wired to
// this service; authentication is out of scope here.
const defaultUserID = "default-user"

// AssistantHandler handles HTTP requests for threads, transcripts, and the
// streaming assistant exchange.
type AssistantHandler struct {
	assistant   interfaces.AssistantService
	transcripts interfaces.TranscriptService
}

func NewAssistantHandler(assistant interfaces.AssistantService, transcripts interfaces.TranscriptService) *AssistantHandler {
	return &AssistantHandler{assistant: assistant, transcripts: transcripts}
}

// CreateThread godoc
// @Summary      Open a conversation thread
// @Tags         Threads
// @Accept       json
// @Produce      json
// @Param        thread  body  CreateThreadRequest  true  "Thread title"
// @Success      201  {object}  model.Thread
// @Failure      400  {object}  ErrorResponse
// @Router       /v1/threads [post]
func (h *AssistantHandler) CreateThread(w http.ResponseWriter, r *http.Request) {
	var req CreateThreadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload"})
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, err)
		return
	}
	thread, err := h.transcripts.CreateThread(r.Context(), defaultUserID, req.Title)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, thread)
}

// GetThreads godoc
// @Summary      List conversation threads
// @Tags         Threads
// @Produce      json
// @Success      200  {array}  model.Thread
// @Failure      500  {object}  ErrorResponse
// @Router       /v1/threads [get]
func (h *AssistantHandler) GetThreads(w http.ResponseWriter, r *http.Request) {
	threads, err := h.transcripts.ListThreads(r.Context(), defaultUserID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, threads)
}

// GetThread godoc
// @Summary      Get a thread with its transcript
// @Tags         Threads
// @Produce      json
// @Param        threadID  path  string  true  "Thread ID"
// @Success      200  {object}  model.FullThread
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/threads/{threadID} [get]
func (h *AssistantHandler) GetThread(w http.ResponseWriter, r *http.Request) {
	threadID := chi.URLParam(r, "threadID")
	fullThread, err := h.transcripts.GetFullThread(r.Context(), threadID)
	if err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, fullThread)
}

// DeleteThread godoc
// @Summary      Delete a thread and its transcript
// @Tags         Threads
// @Produce      json
// @Param        threadID  path  string  true  "Thread ID"
// @Success      200  {object}  StatusResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /v1/threads/{threadID} [delete]
func (h *AssistantHandler) DeleteThread(w http.ResponseWriter, r *http.Request) {
	threadID := chi.URLParam(r, "threadID")
	if err := h.transcripts.DeleteThread(r.Context(), threadID); err != nil {
		respondWithError(w, err)
		return
	}
	// The assistant's context window for the thread goes with it.
	h.assistant.ResetConversation(threadID)
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// EditMessage godoc
// @Summary      Edit a user message's visible text in place
// @Description  Pure transcript mutation: no model call is re-triggered and the
// @Description  assistant's context window keeps the original wording.
// @Tags         Threads
// @Accept       json
// @Produce      json
// @Param        threadID   path  string              true  "Thread ID"
// @Param        messageID  path  string              true  "Message ID"
// @Param        message    body  EditMessageRequest  true  "New content"
// @Success      200  {object}  StatusResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Failure      409  {object}  ErrorResponse
// @Router       /v1/threads/{threadID}/messages/{messageID} [put]
func (h *AssistantHandler) EditMessage(w http.ResponseWriter, r *http.Request) {
	threadID := chi.URLParam(r, "threadID")
	messageID := chi.URLParam(r, "messageID")

	var req EditMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload"})
		return
	}
	if err := validateRequest(&req); err != nil {
		respondWithError(w, err)
		return
	}
	if err := h.transcripts.EditDisplayMessage(r.Context(), threadID, messageID, req.Content); err != nil {
		respondWithError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// ResetConversation godoc
// @Summary      Reset the assistant's context window for a thread
// @Description  Clears the conversation memory used for follow-up context.
// @Description  The visible transcript is untouched.
// @Tags         Assistant
// @Produce      json
// @Param        threadID  path  string  true  "Thread ID"
// @Success      200  {object}  StatusResponse
// @Router       /v1/threads/{threadID}/reset [post]
func (h *AssistantHandler) ResetConversation(w http.ResponseWriter, r *http.Request) {
	threadID := chi.URLParam(r, "threadID")
	h.assistant.ResetConversation(threadID)
	respondWithJSON(w, http.StatusOK, StatusResponse{Status: "ok"})
}

// HandleStreamMessage godoc
// @Summary      Send a message and stream the assistant's reply
// @Description  Streams reveal increments as SSE data events. Closing the
// @Description  connection stops the reveal; the partial text is committed to
// @Description  the transcript rather than discarded.
// @Tags         Assistant
// @Accept       json
// @Produce      text/event-stream
// @Param        threadID  path  string                      true  "Thread ID"
// @Param        message   body  service.SendMessageRequest  true  "User message"
// @Success      200  {object}  model.StreamEvent
// @Router       /v1/threads/{threadID}/messages [post]
func (h *AssistantHandler) HandleStreamMessage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	var req service.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Warn("Error decoding stream request body", "error", err)
		sendStreamError(w, "Invalid request body")
		return
	}
	req.ThreadID = chi.URLParam(r, "threadID")
	if err := validateRequest(&req); err != nil {
		sendStreamError(w, err.Error())
		return
	}

	streamChan := make(chan model.StreamEvent)
	go h.assistant.HandleUserMessage(r.Context(), &req, streamChan)

	clientGone := false
	for event := range streamChan {
		// Keep draining after a disconnect so the service goroutine can
		// finish committing the partial transcript and close the channel.
		if clientGone {
			continue
		}
		if r.Context().Err() != nil {
			slog.Debug("Client disconnected during stream")
			clientGone = true
			continue
		}
		if event.Error != "" {
			sendStreamError(w, event.Error)
			continue
		}
		if err := writeStreamEvent(w, event); err != nil {
			clientGone = true
		}
	}
}

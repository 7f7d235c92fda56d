package assistant

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"

	"nutricare/backend/internal/llm"
)

// Fixed sampling parameters for every model call.
const (
	temperature = 0.7
	maxTokens   = 800
)

// refusals are returned when the topic filter blocks a message. Terminal for
// the turn: no model call, no session mutation.
var refusals = []string{
	"I'm a nutrition specialist and can only provide guidance on health, diet, and wellness topics. Is there something about your nutrition I can help with?",
	"That's outside what I can help with. I'd be glad to talk about your diet, health goals, or any wellness questions you have.",
	"I focus on nutrition and healthy living, so I can't discuss that. What would you like to know about your diet or health?",
}

// fallbacks are returned when the upstream model call fails. A degraded
// exchange still produces a plausible, on-brand reply, never a raw error.
var fallbacks = []string{
	"I'd be happy to help with your nutrition questions! Could you tell me a bit more about your dietary goals?",
	"Let's talk about your nutrition. Are you looking for meal ideas, advice on a health condition, or general wellness tips?",
	"I'm here to help with diet and wellness. What aspect of your nutrition would you like to work on?",
}

// followUpPhrases mark a message as a likely continuation of the previous
// exchange. Substring match, same looseness as the topic filter.
var followUpPhrases = []string{
	"more", "tell me more", "elaborate", "also", "what about", "and", "continue", "go on",
}

// Orchestrator is the single entry point for the conversational assistant. It
// coordinates filtering, prompt assembly, the model call, response cleanup,
// and the session window update, in that order.
//
// Respond never returns an error: every failure path resolves to displayable
// text, either a refusal or a fallback.
type Orchestrator struct {
	provider llm.Provider
	model    string
	filter   *TopicFilter
	prompts  *PromptBuilder
	clean    *ResponsePostProcessor
	sessions *sessionRegistry
	pick     func(n int) int
}

// OrchestratorOption customizes an Orchestrator at construction time.
type OrchestratorOption func(*Orchestrator)

// WithPick injects the random index source used to choose refusals and
// fallbacks. Tests use this to make selection deterministic.
func WithPick(pick func(n int) int) OrchestratorOption {
	return func(o *Orchestrator) { o.pick = pick }
}

// WithExtraDenyTerms extends the built-in deny-list.
func WithExtraDenyTerms(terms ...string) OrchestratorOption {
	return func(o *Orchestrator) { o.filter = NewTopicFilter(terms...) }
}

func NewOrchestrator(provider llm.Provider, modelID string, opts ...OrchestratorOption) *Orchestrator {
	o := &Orchestrator{
		provider: provider,
		model:    modelID,
		filter:   NewTopicFilter(),
		prompts:  NewPromptBuilder(),
		clean:    NewResponsePostProcessor(),
		sessions: newSessionRegistry(),
		pick:     rand.Intn,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Session exposes the session for a conversation key. Used by tests and by
// callers that want to observe window state; mutation stays inside Respond.
func (o *Orchestrator) Session(sessionID string) *ConversationSession {
	return o.sessions.get(sessionID)
}

// Reset clears the conversation state for one session key.
func (o *Orchestrator) Reset(sessionID string) {
	o.sessions.reset(sessionID)
}

// Respond runs one full exchange and returns the text to display. The session
// window is updated only after a successful round trip, strictly before
// Respond returns: by the time the caller has a response, a rapid second call
// already sees this exchange in its context window.
func (o *Orchestrator) Respond(ctx context.Context, sessionID, message string) string {
	trimmed := strings.TrimSpace(message)
	lowered := strings.ToLower(trimmed)
	sess := o.sessions.get(sessionID)

	// Computed for parity with the original behavior; continuity itself comes
	// from the context window, so the flag only surfaces in debug logs.
	isFollowUp := sess.MessageCount() > 0 && containsAny(lowered, followUpPhrases)
	slog.Debug("Processing assistant turn",
		"session_id", sessionID,
		"is_follow_up", isFollowUp,
		"last_topic", sess.LastTopic(),
	)

	if o.filter.Blocked(lowered) {
		slog.Info("Blocked disallowed message", "session_id", sessionID)
		return refusals[o.pick(len(refusals))]
	}

	req := &llm.GenerateRequest{
		Model:       o.model,
		Messages:    o.prompts.Build(trimmed, sess.Window()),
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
	resp, err := o.provider.Generate(ctx, req)
	if err != nil {
		slog.Error("Model call failed, returning fallback", "session_id", sessionID, "error", err)
		return fallbacks[o.pick(len(fallbacks))]
	}

	cleaned := o.clean.Clean(resp.Response)
	if cleaned == "" {
		// A reply that was nothing but identity leakage is treated like a
		// malformed payload: no session mutation.
		slog.Warn("Model reply empty after cleanup, returning fallback", "session_id", sessionID)
		return fallbacks[o.pick(len(fallbacks))]
	}
	sess.AppendExchange(trimmed, cleaned)
	return cleaned
}

func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

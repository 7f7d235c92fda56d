package assistant

import (
	"strings"
	"sync"

	"nutricare/backend/internal/llm"
	"nutricare/backend/internal/model"
)

// windowLimit caps the per-session context window at the four most recent
// user/assistant exchanges.
const windowLimit = 8

// topicKeywords is the fixed list of nutrition/health topics the session
// tracks. Extraction is first-match-wins by list order, not by position in
// the text.
var topicKeywords = []string{
	"diabetes", "hypertension", "cholesterol", "weight loss", "weight gain",
	"obesity", "protein", "vitamin", "fiber", "keto", "vegan", "vegetarian",
	"gluten", "allergy", "pregnancy", "anemia", "thyroid", "digestion",
}

// ConversationSession is the bounded, in-memory record of one conversation:
// the trailing message window fed back to the model, the last detected topic,
// and a count of completed exchanges. It holds no persistence; a process
// restart clears it, independent of any transcript the UI keeps.
//
// Unlike the single-threaded UI this design came from, the server sees real
// concurrency, so the session guards its state with a mutex. Appends are
// atomic: a user message only ever enters the window together with its
// assistant reply.
type ConversationSession struct {
	mu           sync.Mutex
	window       []llm.Message
	lastTopic    string
	messageCount int
}

func NewConversationSession() *ConversationSession {
	return &ConversationSession{}
}

// AppendExchange records one completed user/assistant exchange. It is the only
// mutator and must be called exactly once per successful exchange, never for a
// blocked or failed one. The window keeps its most recent entries (FIFO
// eviction of the oldest pair once the cap is reached).
func (s *ConversationSession) AppendExchange(userMsg, assistantMsg string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.window = append(s.window,
		llm.Message{Role: model.RoleUser, Content: userMsg},
		llm.Message{Role: model.RoleAssistant, Content: assistantMsg},
	)
	if len(s.window) > windowLimit {
		s.window = s.window[len(s.window)-windowLimit:]
	}
	s.lastTopic = extractTopic(userMsg)
	s.messageCount++
}

// Window returns a snapshot of the current context window. The caller may
// append to or reorder the result without affecting the session.
func (s *ConversationSession) Window() []llm.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot := make([]llm.Message, len(s.window))
	copy(snapshot, s.window)
	return snapshot
}

// LastTopic returns the topic detected during the most recent exchange, or an
// empty string if none was recognized.
func (s *ConversationSession) LastTopic() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastTopic
}

// MessageCount returns the number of completed exchanges.
func (s *ConversationSession) MessageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.messageCount
}

// Reset clears the session back to its initial empty state.
func (s *ConversationSession) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.window = nil
	s.lastTopic = ""
	s.messageCount = 0
}

// extractTopic scans the message for known nutrition topics and returns the
// first keyword (by list order) it contains, or an empty string.
func extractTopic(message string) string {
	lowered := strings.ToLower(message)
	for _, keyword := range topicKeywords {
		if strings.Contains(lowered, keyword) {
			return keyword
		}
	}
	return ""
}

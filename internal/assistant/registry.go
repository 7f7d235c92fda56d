package assistant

import "sync"

// sessionRegistry hands out one ConversationSession per conversation key,
// creating sessions on first use. This turns the implicit process-wide
// singleton of the original design into explicit per-conversation state, so
// concurrent conversations never share a window.
type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*ConversationSession
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[string]*ConversationSession)}
}

func (r *sessionRegistry) get(sessionID string) *ConversationSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	sess, ok := r.sessions[sessionID]
	if !ok {
		sess = NewConversationSession()
		r.sessions[sessionID] = sess
	}
	return sess
}

func (r *sessionRegistry) reset(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sess, ok := r.sessions[sessionID]; ok {
		sess.Reset()
	}
}

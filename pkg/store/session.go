package store

import "time"

// Message is one entry of the conversation history
type Message struct {
	Role    string    `json:"role"` // "user" | "assistant"
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// Session is the per-conversation state owned by the router.
// It is passed in and returned on every turn; persistence is the job of a SessionStore.
type Session struct {
	ID string `json:"id"`

	// "NONE" | "AWAITING_WEB_SEARCH_CONSENT"
	PendingConfirmation string `json:"pending_confirmation"`

	// Last successful answer, sent by e-mail commands
	LastAnswer string `json:"last_answer,omitempty"`

	// Question waiting for web search consent
	LastEscalationQuery string `json:"last_escalation_query,omitempty"`

	// Metadata for last interaction
	LastMode    string   `json:"last_mode,omitempty"`
	LastSources []string `json:"last_sources,omitempty"`

	History []Message `json:"history,omitempty"`
}

const (
	PendingNone             = "NONE"
	PendingWebSearchConsent = "AWAITING_WEB_SEARCH_CONSENT"

	RoleUser      = "user"
	RoleAssistant = "assistant"

	// DefaultHistoryLimit keeps roughly fifteen exchanges
	DefaultHistoryLimit = 30
)

// NewSession returns an idle session
func NewSession(id string) Session {
	return Session{ID: id, PendingConfirmation: PendingNone}
}

// AwaitingConsent reports whether a yes/no answer about a web search is expected
func (s Session) AwaitingConsent() bool {
	return s.PendingConfirmation == PendingWebSearchConsent
}

// Clone returns a deep copy so that a returned session never aliases the input
func (s Session) Clone() Session {
	out := s
	if s.LastSources != nil {
		out.LastSources = append([]string(nil), s.LastSources...)
	}
	if s.History != nil {
		out.History = append([]Message(nil), s.History...)
	}
	return out
}

// AppendHistory records a message and trims the oldest entries beyond limit
func (s *Session) AppendHistory(role, content string, limit int, now time.Time) {
	s.History = append(s.History, Message{Role: role, Content: content, At: now})
	if limit > 0 && len(s.History) > limit {
		s.History = append([]Message(nil), s.History[len(s.History)-limit:]...)
	}
}

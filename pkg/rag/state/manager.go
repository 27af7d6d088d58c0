package state

import (
	"ai-tutor-be/internal/pkg/logger"
	"ai-tutor-be/pkg/rag/intent"
	"ai-tutor-be/pkg/store"
)

// Outcome is how the handler selected for a turn finished
type Outcome string

const (
	OutcomeAnswered Outcome = "ANSWERED" // handler produced a reply
	OutcomeMiss     Outcome = "MISS"     // retrieval found nothing trustworthy
	OutcomeFailed   Outcome = "FAILED"   // handler error, state must not move
)

// Next is the transition table of the conversation. It is total: every
// (pending, kind, outcome) triple yields a state.
//
//	any      + failure                 -> unchanged
//	any      + EmailCommand            -> unchanged
//	any      + Retrieval miss          -> AWAITING (new escalation query)
//	any      + Confirmation            -> NONE
//	any      + any other answered turn -> NONE (a topic change drops the offer)
func Next(pending string, kind intent.Kind, outcome Outcome) string {
	switch {
	case outcome == OutcomeFailed:
		return pending
	case kind == intent.KindEmailCommand:
		return pending
	case kind == intent.KindRetrieval && outcome == OutcomeMiss:
		return store.PendingWebSearchConsent
	default:
		return store.PendingNone
	}
}

// Manager applies transitions to a session and logs them
type Manager struct {
	logger logger.ILogger
}

func NewManager(logger logger.ILogger) *Manager {
	return &Manager{logger: logger}
}

// Apply moves the session to the state Next prescribes. escalationQuery is
// recorded when the turn opens a web-search offer.
func (m *Manager) Apply(s *store.Session, kind intent.Kind, outcome Outcome, escalationQuery string) {
	from := s.PendingConfirmation
	to := Next(from, kind, outcome)

	switch {
	case to == store.PendingWebSearchConsent && outcome == OutcomeMiss:
		s.LastEscalationQuery = escalationQuery
	case to == store.PendingNone:
		s.LastEscalationQuery = ""
	}
	s.PendingConfirmation = to

	if from != to {
		m.logger.Info("STATE", "Transitioned", map[string]interface{}{
			"session": s.ID,
			"from":    from,
			"to":      to,
			"intent":  string(kind),
		})
	} else if from == store.PendingWebSearchConsent && outcome == OutcomeMiss {
		m.logger.Info("STATE", "Escalation query replaced", map[string]interface{}{
			"session": s.ID,
			"query":   escalationQuery,
		})
	}
}

// RecordAnswer stores a successful reply as the one an e-mail command sends
func (m *Manager) RecordAnswer(s *store.Session, answer, mode string, sources []string) {
	s.LastAnswer = answer
	s.LastMode = mode
	s.LastSources = sources
}

package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ai-tutor-be/internal/repository/contract"
	"ai-tutor-be/pkg/store"
)

// Manager loads and saves conversation state through a repository
type Manager struct {
	repo         contract.SessionRepository
	historyLimit int
	now          func() time.Time
}

func NewManager(repo contract.SessionRepository, historyLimit int) *Manager {
	if historyLimit <= 0 {
		historyLimit = store.DefaultHistoryLimit
	}
	return &Manager{repo: repo, historyLimit: historyLimit, now: time.Now}
}

// NewID returns a fresh session identifier
func NewID() string {
	return uuid.NewString()
}

// LoadOrCreate returns the stored session or a new idle one. An empty id
// gets a generated one.
func (m *Manager) LoadOrCreate(ctx context.Context, id string) (store.Session, error) {
	if id == "" {
		return store.NewSession(NewID()), nil
	}

	s, err := m.repo.Get(ctx, id)
	if err != nil {
		return store.Session{}, fmt.Errorf("load session: %w", err)
	}
	if s == nil {
		return store.NewSession(id), nil
	}
	if s.PendingConfirmation == "" {
		s.PendingConfirmation = store.PendingNone
	}
	return *s, nil
}

// Find returns nil, nil for an unknown id
func (m *Manager) Find(ctx context.Context, id string) (*store.Session, error) {
	s, err := m.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return s, nil
}

func (m *Manager) Save(ctx context.Context, s store.Session) error {
	if err := m.repo.Save(ctx, &s); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Record appends one exchange to the history, trimmed to the configured cap
func (m *Manager) Record(s *store.Session, userText, reply string) {
	now := m.now()
	s.AppendHistory(store.RoleUser, userText, m.historyLimit, now)
	s.AppendHistory(store.RoleAssistant, reply, m.historyLimit, now)
}

// Reset forgets a session entirely
func (m *Manager) Reset(ctx context.Context, id string) error {
	return m.repo.Delete(ctx, id)
}

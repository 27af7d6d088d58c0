package memory

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"ai-tutor-be/internal/repository/contract"
	"ai-tutor-be/pkg/store"
)

type SessionRepository struct {
	cache *cache.Cache
}

// NewSessionRepository keeps sessions for ttl after their last save and
// purges expired ones every ten minutes.
func NewSessionRepository(ttl time.Duration) contract.SessionRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &SessionRepository{cache: cache.New(ttl, 10*time.Minute)}
}

// Save stores a copy; later changes to session do not leak into the cache
func (r *SessionRepository) Save(ctx context.Context, session *store.Session) error {
	r.cache.Set(session.ID, session.Clone(), cache.DefaultExpiration)
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, id string) (*store.Session, error) {
	x, found := r.cache.Get(id)
	if !found {
		return nil, nil
	}
	s := x.(store.Session).Clone()
	return &s, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	r.cache.Delete(id)
	return nil
}

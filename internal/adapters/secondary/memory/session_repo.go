package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"csv-insight-service/internal/core/domain"
	ports "csv-insight-service/internal/core/ports/output"
)

type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*domain.Session
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionRepository keeps uploads in process memory. Sessions idle for
// longer than ttl are treated as gone; ttl <= 0 keeps them until deleted.
func NewSessionRepository(ttl time.Duration) ports.SessionRepository {
	return &sessionRepository{
		sessions: make(map[uuid.UUID]*domain.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (r *sessionRepository) Save(ctx context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *session
	r.sessions[session.ID] = &cp
	r.evictExpiredLocked()
	return nil
}

func (r *sessionRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if r.expired(s) {
		delete(r.sessions, id)
		return nil, domain.ErrSessionNotFound
	}

	s.LastAccess = r.now()
	cp := *s
	return &cp, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, id)
	return nil
}

func (r *sessionRepository) expired(s *domain.Session) bool {
	return r.ttl > 0 && r.now().Sub(s.LastAccess) > r.ttl
}

func (r *sessionRepository) evictExpiredLocked() {
	if r.ttl <= 0 {
		return
	}
	for id, s := range r.sessions {
		if r.expired(s) {
			delete(r.sessions, id)
		}
	}
}

package booking

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/gramsehat/backend/pkg/model"
)

// ErrSessionNotFound is returned for unknown or expired booking sessions
var ErrSessionNotFound = errors.New("booking session not found or expired")

// SessionStore holds booking wizard sessions between requests
type SessionStore interface {
	Save(ctx context.Context, state model.BookingState) error
	Load(ctx context.Context, sessionID string) (model.BookingState, error)
}

type memorySession struct {
	state     model.BookingState
	expiresAt time.Time
}

// MemoryStore is an in-process SessionStore. Like the Redis store, every save
// restarts the session's TTL.
type MemoryStore struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]memorySession
}

// NewMemoryStore creates an empty MemoryStore. A ttl of zero keeps sessions forever.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memorySession),
	}
}

// WithClock replaces the store's time source
func (s *MemoryStore) WithClock(now func() time.Time) *MemoryStore {
	s.now = now
	return s
}

// Save stores the state under its session id and drops expired sessions
func (s *MemoryStore) Save(ctx context.Context, state model.BookingState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
		}
	}

	sess := memorySession{state: state}
	if s.ttl > 0 {
		sess.expiresAt = now.Add(s.ttl)
	}
	s.sessions[state.SessionID] = sess
	return nil
}

// Load returns the stored state. Expired sessions are removed and reported as not found.
func (s *MemoryStore) Load(ctx context.Context, sessionID string) (model.BookingState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[sessionID]
	if !ok {
		return model.BookingState{}, ErrSessionNotFound
	}
	if s.expired(sess, s.now()) {
		delete(s.sessions, sessionID)
		return model.BookingState{}, ErrSessionNotFound
	}
	return sess.state, nil
}

func (s *MemoryStore) expired(sess memorySession, now time.Time) bool {
	return !sess.expiresAt.IsZero() && !now.Before(sess.expiresAt)
}

var _ SessionStore = (*MemoryStore)(nil)

package show

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/magoslive/show-core/core/events"
)

// ErrSessionNotFound indicates an unknown session id. Surfaced to the
// caller, never retried.
var ErrSessionNotFound = errors.New("session not found")

const defaultSessionTTL = 30 * time.Minute

// Store is the keyed registry of live sessions. Each session carries
// its own lock, so polls on different sessions never contend; the
// store's lock only guards the map itself.
type Store struct {
	clock func() time.Time
	ttl   time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

type StoreOption func(*Store)

// WithClock injects the time source, for deterministic elapsed-time
// gating in tests.
func WithClock(clock func() time.Time) StoreOption {
	return func(s *Store) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithTTL sets how long a session lives after creation, regardless of
// activity.
func WithTTL(ttl time.Duration) StoreOption {
	return func(s *Store) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		clock:    time.Now,
		ttl:      defaultSessionTTL,
		sessions: make(map[string]*Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the store's notion of the current time.
func (s *Store) Now() time.Time {
	return s.clock()
}

// Publish makes a session visible to clients. Call only after its
// asset bundle, or the best-effort partial result, is attached.
func (s *Store) Publish(session *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
}

func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Advance is the poll contract: safe to call arbitrarily often, by any
// number of clients, advancing state at most once per elapsed-time
// boundary.
func (s *Store) Advance(id string) (*events.Event, error) {
	session, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	return session.Advance(s.clock()), nil
}

// Sweep evicts sessions whose TTL since creation has expired and
// returns how many were removed. Each session's own lock is taken
// before removal so an in-flight Advance is never raced.
func (s *Store) Sweep(now time.Time) int {
	s.mu.RLock()
	var expired []*Session
	for _, session := range s.sessions {
		if now.Sub(session.CreatedAt) >= s.ttl {
			expired = append(expired, session)
		}
	}
	s.mu.RUnlock()

	for _, session := range expired {
		session.mu.Lock()
		s.mu.Lock()
		delete(s.sessions, session.ID)
		s.mu.Unlock()
		session.mu.Unlock()
	}

	if len(expired) > 0 {
		logger.Info("swept expired sessions", "count", len(expired))
	}
	return len(expired)
}

// StartSweeper runs Sweep on the given interval until the context is
// cancelled.
func (s *Store) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep(s.clock())
			}
		}
	}()
}

package web

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-riskboard/pkg/session"
)

// Store keeps sessions in memory and forgets them after an idle TTL.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry
	ttl     time.Duration
	factory func() *session.Session
	now     func() time.Time
}

type entry struct {
	session  *session.Session
	lastSeen time.Time
}

// NewStore builds a store that creates sessions with factory.
func NewStore(ttl time.Duration, factory func() *session.Session) *Store {
	return &Store{
		entries: make(map[string]*entry),
		ttl:     ttl,
		factory: factory,
		now:     time.Now,
	}
}

// Get returns the live session for id and refreshes its idle timer.
func (s *Store) Get(id string) (*session.Session, bool) {
	if id == "" {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	now := s.now()
	if s.expired(e, now) {
		delete(s.entries, id)
		return nil, false
	}
	e.lastSeen = now
	return e.session, true
}

// Create starts a new session under a fresh random id.
func (s *Store) Create() (string, *session.Session) {
	id := uuid.NewString()
	sess := s.factory()
	s.mu.Lock()
	s.entries[id] = &entry{session: sess, lastSeen: s.now()}
	s.mu.Unlock()
	return id, sess
}

// Len reports how many sessions are held, expired or not.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep drops expired sessions and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for id, e := range s.entries {
		if s.expired(e, now) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}

// Run sweeps on every interval tick until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Sweep()
		}
	}
}

func (s *Store) expired(e *entry, now time.Time) bool {
	return s.ttl > 0 && now.Sub(e.lastSeen) > s.ttl
}

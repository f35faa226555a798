package view

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Sessions maps browser session ids to their Composer. Idle sessions are
// dropped after ttl.
type Sessions struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]*sessionEntry
}

type sessionEntry struct {
	composer *Composer
	lastSeen time.Time
}

// NewSessions creates a registry. ttl <= 0 keeps sessions forever.
func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]*sessionEntry),
	}
}

// NewID returns a fresh random session id.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like one produced by NewID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Get returns the Composer for id, creating it on first use.
func (s *Sessions) Get(id string) *Composer {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)

	e, ok := s.entries[id]
	if !ok {
		e = &sessionEntry{composer: NewComposer()}
		s.entries[id] = e
	}
	e.lastSeen = now
	return e.composer
}

// Lookup returns the Composer for id without creating one.
func (s *Sessions) Lookup(id string) (*Composer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)

	e, ok := s.entries[id]
	if !ok {
		return nil, false
	}
	e.lastSeen = now
	return e.composer, true
}

// Len returns the number of live sessions.
func (s *Sessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// sweepLocked drops sessions idle for longer than ttl unless a request is
// still running for them.
func (s *Sessions) sweepLocked(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for id, e := range s.entries {
		if now.Sub(e.lastSeen) <= s.ttl {
			continue
		}
		if e.composer.Snapshot().Processing {
			continue
		}
		delete(s.entries, id)
		slog.Debug("session expired", "session", id)
	}
}

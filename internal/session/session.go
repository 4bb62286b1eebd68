package session

import (
	"sync"
	"time"
)

// Selection is one user's progress through the registration hierarchy
// plus transient menu state. Fields are filled in progressively; later
// fields are overwritten as earlier ones are re-chosen.
type Selection struct {
	Level   string
	Course  string
	Faculty string
	Group   string

	// GroupPage is the zero-based group pagination offset, reset
	// whenever a faculty is selected.
	GroupPage int
	// SearchMode gates whether the user's next free-text message is
	// interpreted as a group search.
	SearchMode bool

	lastSeen time.Time
}

// Registered reports whether the selection carries enough of the
// hierarchy to open the schedule menu.
func (s *Selection) Registered() bool {
	return s.Level != "" && s.Course != ""
}

// Store keeps one Selection per user id. Selections live until idle
// longer than the TTL; the janitor goroutine evicts stale entries so
// the map cannot grow without bound.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Selection
	ttl      time.Duration
}

// NewStore creates a store. ttl <= 0 disables eviction.
func NewStore(ttl time.Duration) *Store {
	s := &Store{
		sessions: make(map[int64]*Selection),
		ttl:      ttl,
	}
	if ttl > 0 {
		go s.janitor(ttl / 10)
	}
	return s
}

// Get returns the user's selection, creating it on first touch.
func (s *Store) Get(userID int64) *Selection {
	s.mu.Lock()
	defer s.mu.Unlock()
	sel, ok := s.sessions[userID]
	if !ok {
		sel = &Selection{}
		s.sessions[userID] = sel
	}
	sel.lastSeen = time.Now()
	return sel
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func (s *Store) janitor(interval time.Duration) {
	for {
		time.Sleep(interval)
		s.evictStale(time.Now())
	}
}

func (s *Store) evictStale(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, sel := range s.sessions {
		if now.Sub(sel.lastSeen) > s.ttl {
			delete(s.sessions, id)
		}
	}
}

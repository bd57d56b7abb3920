package planner

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// SessionStore keeps one Session per visitor id in memory. Idle sessions
// expire after the configured TTL; every access extends it.
type SessionStore struct {
	mu    sync.Mutex
	items *cache.Cache
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	return &SessionStore{
		items: cache.New(ttl, ttl),
	}
}

// Get returns the session for id, creating it on first use.
func (s *SessionStore) Get(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	var sess *Session
	if v, found := s.items.Get(id); found {
		sess = v.(*Session)
	} else {
		sess = NewSession()
	}
	s.items.SetDefault(id, sess)
	return sess
}

// Delete forgets the session for id.
func (s *SessionStore) Delete(id string) {
	s.items.Delete(id)
}

// Count is the number of sessions currently held, expired ones included
// until the janitor runs.
func (s *SessionStore) Count() int {
	return s.items.ItemCount()
}

package server

import (
	"sync"
	"time"

	"github.com/ZaguanLabs/medlai"
)

const defaultSessionIdle = 30 * time.Minute

// sessionStore maps client session ids to request-token sessions so a
// newer submission from the same client supersedes the older one.
type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*sessionEntry
	idle     time.Duration
	now      func() time.Time
}

type sessionEntry struct {
	session  *medlai.Session
	lastUsed time.Time
}

func newSessionStore(idle time.Duration) *sessionStore {
	if idle <= 0 {
		idle = defaultSessionIdle
	}
	return &sessionStore{
		sessions: make(map[string]*sessionEntry),
		idle:     idle,
		now:      time.Now,
	}
}

// get returns the session for id, creating it on first use. An empty id gets
// a throwaway session that nothing else can supersede.
func (s *sessionStore) get(id string) *medlai.Session {
	if id == "" {
		return medlai.NewSession()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.prune(now)

	e, ok := s.sessions[id]
	if !ok {
		e = &sessionEntry{session: medlai.NewSession()}
		s.sessions[id] = e
	}
	e.lastUsed = now
	return e.session
}

func (s *sessionStore) prune(now time.Time) {
	for id, e := range s.sessions {
		if now.Sub(e.lastUsed) > s.idle {
			delete(s.sessions, id)
		}
	}
}

func (s *sessionStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

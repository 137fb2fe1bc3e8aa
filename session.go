package medlai

import (
	"sync"

	"github.com/google/uuid"
)

// Session tracks the current submission token. Starting a new submission
// invalidates every earlier token, so results of abandoned submissions can be
// recognised and dropped when they finally resolve.
type Session struct {
	mu      sync.Mutex
	current uuid.UUID
}

// NewSession creates a session with no active submission.
func NewSession() *Session {
	return &Session{}
}

// Begin starts a new submission and returns its token.
func (s *Session) Begin() uuid.UUID {
	token := uuid.New()
	s.mu.Lock()
	s.current = token
	s.mu.Unlock()
	return token
}

// IsCurrent reports whether token belongs to the latest submission.
func (s *Session) IsCurrent(token uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return token != uuid.Nil && token == s.current
}

// Current returns the latest token, or uuid.Nil before the first submission.
func (s *Session) Current() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Package chat keeps conversation state and routes classified messages to
// the matching core.
package chat

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"

	// DefaultSessionTTL is how long an idle session survives.
	DefaultSessionTTL = 30 * time.Minute
)

type Message struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	SentAt  time.Time `json:"sent_at"`
}

type Session struct {
	ID        string    `json:"id"`
	Messages  []Message `json:"messages"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SessionStore holds sessions in memory. Idle sessions are evicted lazily on
// access once their TTL has passed.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration

	now func() time.Time
}

func NewSessionStore(ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionStore{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the session with the given id, creating a fresh one when the
// id is empty, unknown, or expired.
func (s *SessionStore) Get(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictExpired()

	if id != "" {
		if session, ok := s.sessions[id]; ok {
			return session
		}
	}

	now := s.now()
	session := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.sessions[session.ID] = session

	return session
}

// Append records a message on the session and refreshes its idle timer.
func (s *SessionStore) Append(id, role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return
	}

	now := s.now()
	session.Messages = append(session.Messages, Message{
		Role:    role,
		Content: content,
		SentAt:  now,
	})
	session.UpdatedAt = now
}

// History returns a copy of the session's messages, oldest first.
func (s *SessionStore) History(id string) []Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil
	}

	history := make([]Message, len(session.Messages))
	copy(history, session.Messages)
	return history
}

// Clear removes the session and reports whether it existed.
func (s *SessionStore) Clear(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return false
	}
	delete(s.sessions, id)
	return true
}

func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// evictExpired must be called with the lock held.
func (s *SessionStore) evictExpired() {
	cutoff := s.now().Add(-s.ttl)
	for id, session := range s.sessions {
		if session.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
		}
	}
}

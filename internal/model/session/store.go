package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store exposes session lookup and mutation for the bot.
type Store interface {
	// Get returns the session for senderID, creating an empty one if absent.
	Get(senderID string) Session
	SetName(senderID, name string) Session
	// Touch records an inbound message for senderID.
	Touch(senderID string) Session
	Len() int
}

// MemoryStore implements Store with a mutex-guarded map. Sessions are never
// evicted.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
	now      func() time.Time
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
		now:      time.Now,
	}
}

// Get returns a copy of the session, creating it on first use.
func (s *MemoryStore) Get(senderID string) Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.getOrCreate(senderID)
}

// SetName stores the display name for senderID.
func (s *MemoryStore) SetName(senderID, name string) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.getOrCreate(senderID)
	sess.Name = name
	return *sess
}

// Touch bumps the message counter and last-seen timestamp.
func (s *MemoryStore) Touch(senderID string) Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.getOrCreate(senderID)
	sess.Messages++
	sess.LastSeen = s.now().UTC()
	return *sess
}

// Len returns the number of known senders.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// getOrCreate must be called with mu held.
func (s *MemoryStore) getOrCreate(senderID string) *Session {
	if sess, ok := s.sessions[senderID]; ok {
		return sess
	}

	now := s.now().UTC()
	sess := &Session{
		ID:        uuid.NewString(),
		SenderID:  senderID,
		CreatedAt: now,
		LastSeen:  now,
	}
	s.sessions[senderID] = sess
	return sess
}

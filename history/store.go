// Package history holds the single ordered log of a conversation.
package history

import (
	"sync"

	"github.com/google/uuid"
	"github.com/sat8bit/roundtable/message"
	"github.com/sat8bit/roundtable/persona"
)

// Store is an append-only log. Entries are never edited or removed.
type Store struct {
	mu       sync.RWMutex
	messages []message.Message
}

func NewStore() *Store {
	return &Store{
		messages: make([]message.Message, 0, 64),
	}
}

// Append stores m at the end of the log, assigning its sequence number. A
// zero ID is replaced by a fresh one.
func (s *Store) Append(m message.Message) message.Message {
	s.mu.Lock()
	defer s.mu.Unlock()

	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	m.Seq = len(s.messages)
	s.messages = append(s.messages, m)
	return m
}

// Add is a shorthand for appending a new entry.
func (s *Store) Add(role message.Role, speaker *persona.Persona, content string) message.Message {
	return s.Append(message.New(role, speaker, content))
}

// Messages returns a copy of the log in append order.
func (s *Store) Messages() []message.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]message.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.messages)
}

// Last returns the most recent entry.
func (s *Store) Last() (message.Message, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.messages) == 0 {
		return message.Message{}, false
	}
	return s.messages[len(s.messages)-1], true
}

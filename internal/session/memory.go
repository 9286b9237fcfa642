package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

type memoryEntry struct {
	payload []byte
	expires time.Time
}

type memoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryStore builds an in-process Store used when Redis is not configured.
// State does not survive restarts; expiry is enforced lazily on access.
// Entries hold the same msgpack payloads the Redis store would, so reads
// always return an independent copy.
func NewMemoryStore(ttl time.Duration) Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &memoryStore{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (s *memoryStore) Get(_ context.Context, id string) (*State, error) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if s.now().After(entry.expires) {
		s.mu.Lock()
		delete(s.entries, id)
		s.mu.Unlock()
		return nil, ErrNotFound
	}
	var state State
	if err := msgpack.Unmarshal(entry.payload, &state); err != nil {
		return nil, fmt.Errorf("session: decode %s: %w", id, err)
	}
	return &state, nil
}

func (s *memoryStore) Put(_ context.Context, id string, state *State) error {
	if state == nil {
		return errors.New("session: nil state")
	}
	state.UpdatedAt = s.now().UTC()
	payload, err := msgpack.Marshal(state)
	if err != nil {
		return fmt.Errorf("session: encode %s: %w", id, err)
	}
	s.mu.Lock()
	s.entries[id] = memoryEntry{payload: payload, expires: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Clear(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.entries, id)
	s.mu.Unlock()
	return nil
}

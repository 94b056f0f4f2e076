package progress

import (
	"context"
	"sync"
)

// MemoryStore keeps every aggregate in process memory, guarded by a lock per user.
type MemoryStore struct {
	aggregateStore

	mu    sync.Mutex
	users map[string]*memoryEntry
}

type memoryEntry struct {
	mu  sync.Mutex
	agg *userAggregate
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{users: make(map[string]*memoryEntry)}
	s.aggregateStore = newAggregateStore(s)
	return s
}

func (s *MemoryStore) entry(userID string) *memoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.users[userID]
	if !ok {
		e = &memoryEntry{}
		s.users[userID] = e
	}
	return e
}

func (s *MemoryStore) view(_ context.Context, userID string, fn func(*userAggregate) error) error {
	e := s.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.agg == nil {
		return fn(newUserAggregate(userID))
	}
	return fn(e.agg)
}

func (s *MemoryStore) update(_ context.Context, userID string, fn func(*userAggregate) error) error {
	e := s.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()

	agg := e.agg
	if agg == nil {
		agg = newUserAggregate(userID)
	}
	if err := fn(agg); err != nil {
		return err
	}
	e.agg = agg
	return nil
}

package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is an in-process snapshot store for runs without Redis and
// for tests. Entries expire lazily on Get.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	ttl     time.Duration
}

// NewMemoryStore creates an in-memory snapshot store. ttl <= 0 disables
// expiry.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]*Entry),
		ttl:     ttl,
	}
}

// Get retrieves a snapshot by key.
func (s *MemoryStore) Get(ctx context.Context, key Key) (*Entry, error) {
	s.mu.RLock()
	entry, ok := s.entries[key.String()]
	s.mu.RUnlock()

	if !ok {
		CacheMisses.Inc()
		return nil, ErrCacheMiss
	}

	if s.ttl > 0 && entry.Age() > s.ttl {
		s.mu.Lock()
		delete(s.entries, key.String())
		s.mu.Unlock()
		CacheMisses.Inc()
		return nil, ErrCacheMiss
	}

	CacheHits.WithLabelValues("memory").Inc()
	return entry, nil
}

// Put stores a snapshot under key.
func (s *MemoryStore) Put(ctx context.Context, key Key, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key.String()] = entry
	return nil
}

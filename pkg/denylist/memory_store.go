package denylist

import (
	"context"
	"sync"
	"time"
)

// MemoryStore implements Store using in-memory storage.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]time.Time
	ticker  *time.Ticker
	done    chan struct{}
	once    sync.Once
	now     func() time.Time
}

// NewMemoryStore creates an in-memory denylist. A positive cleanupInterval
// starts a goroutine that drops entries past their horizon; stop it with Close.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]time.Time),
		done:    make(chan struct{}),
		now:     time.Now,
	}

	if cleanupInterval > 0 {
		s.ticker = time.NewTicker(cleanupInterval)
		go s.cleanupLoop()
	}

	return s
}

// Revoke marks id as revoked until the given horizon. A later horizon for an
// already revoked id extends the entry; an earlier one is ignored.
func (s *MemoryStore) Revoke(ctx context.Context, id string, until time.Time) error {
	if id == "" {
		return ErrEmptyID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if current, ok := s.entries[id]; !ok || until.After(current) {
		s.entries[id] = until
	}
	return nil
}

// IsRevoked reports whether id is on the list.
func (s *MemoryStore) IsRevoked(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, ErrEmptyID
	}

	s.mu.RLock()
	_, ok := s.entries[id]
	s.mu.RUnlock()

	return ok, nil
}

// DeleteExpired drops entries whose horizon has passed.
func (s *MemoryStore) DeleteExpired(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, until := range s.entries {
		if now.After(until) {
			delete(s.entries, id)
		}
	}
	return nil
}

// Len returns the number of entries currently held.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Close stops the cleanup goroutine. It is safe to call more than once.
func (s *MemoryStore) Close() error {
	s.once.Do(func() {
		if s.ticker != nil {
			s.ticker.Stop()
		}
		close(s.done)
	})
	return nil
}

func (s *MemoryStore) cleanupLoop() {
	for {
		select {
		case <-s.ticker.C:
			_ = s.DeleteExpired(context.Background())
		case <-s.done:
			return
		}
	}
}

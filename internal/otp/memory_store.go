package otp

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps codes in a process-local map. It is the store used when
// no redis address is configured, and in tests, where the clock can be
// substituted.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]Entry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		entries: make(map[string]Entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// SetClock replaces the store's time source. Tests only.
func (s *MemoryStore) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *MemoryStore) Issue(ctx context.Context, destination string) (string, error) {
	code, err := GenerateCode()
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[destination] = Entry{
		Code:      code,
		ExpiresAt: s.now().Add(s.ttl),
	}
	return code, nil
}

func (s *MemoryStore) Verify(ctx context.Context, destination, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[destination]
	if !ok {
		return ErrNotFound
	}

	if s.now().After(entry.ExpiresAt) {
		delete(s.entries, destination)
		return ErrExpired
	}

	if code != entry.Code {
		// Entry survives so the caller may retry until expiry.
		return ErrMismatch
	}

	// Deletion on success guarantees single use.
	delete(s.entries, destination)
	return nil
}

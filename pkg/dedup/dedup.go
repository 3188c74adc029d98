// Package dedup guards against double form submissions. Mobile clients on
// flaky connections retry POSTs, and the legacy data set carries the
// resulting duplicates; the guard claims a short-lived key per submission
// identity so only the first attempt in the window goes through.
package dedup

import (
	"context"
	"strings"
	"sync"
	"time"
)

// Window is how long a claim blocks identical submissions.
const Window = 5 * time.Second

// Store claims submission keys for a TTL. Claim returns true when the key
// was free and is now held by the caller.
type Store interface {
	Claim(ctx context.Context, key string, ttl time.Duration) (bool, error)
}

// Key builds the submission identity for a record. Fields are lowercased
// and trimmed so "John Doe " and "john doe" collide.
func Key(kind string, fields ...string) string {
	parts := make([]string, 0, len(fields)+1)
	parts = append(parts, kind)
	for _, f := range fields {
		parts = append(parts, strings.ToLower(strings.TrimSpace(f)))
	}
	return "dedup:" + strings.Join(parts, ":")
}

// MemoryStore is the single-process default. Entries are pruned lazily on
// each claim.
type MemoryStore struct {
	mu      sync.Mutex
	expires map[string]time.Time
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{expires: make(map[string]time.Time), now: time.Now}
}

// Claim implements Store.
func (m *MemoryStore) Claim(_ context.Context, key string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for k, exp := range m.expires {
		if now.After(exp) {
			delete(m.expires, k)
		}
	}

	if exp, held := m.expires[key]; held && now.Before(exp) {
		return false, nil
	}
	m.expires[key] = now.Add(ttl)
	return true, nil
}

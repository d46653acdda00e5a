package revocation

import (
	"context"
	"sync"
	"time"
)

// MemoryRegistry is the process-local revocation set. It is not durable: a
// restart forgets prior revocations, which is acceptable only because
// session tokens are short-lived. A janitor goroutine prunes entries whose
// underlying token has expired so the map does not grow unbounded.
type MemoryRegistry struct {
	mu      sync.RWMutex
	entries map[string]time.Time // token -> expiry of the underlying token

	done     chan struct{}
	stopOnce sync.Once
}

func NewMemoryRegistry(pruneInterval time.Duration) *MemoryRegistry {
	if pruneInterval <= 0 {
		pruneInterval = 5 * time.Minute
	}
	r := &MemoryRegistry{
		entries: make(map[string]time.Time),
		done:    make(chan struct{}),
	}
	go r.janitor(pruneInterval)
	return r
}

func (r *MemoryRegistry) Revoke(_ context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token already expired; nothing to remember.
		return nil
	}
	r.mu.Lock()
	r.entries[token] = time.Now().Add(ttl)
	r.mu.Unlock()
	return nil
}

func (r *MemoryRegistry) IsRevoked(_ context.Context, token string) (bool, error) {
	r.mu.RLock()
	expiry, ok := r.entries[token]
	r.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		// Stale entry; the janitor will collect it.
		return false, nil
	}
	return true, nil
}

func (r *MemoryRegistry) Close() error {
	r.stopOnce.Do(func() { close(r.done) })
	return nil
}

func (r *MemoryRegistry) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			now := time.Now()
			r.mu.Lock()
			for token, expiry := range r.entries {
				if now.After(expiry) {
					delete(r.entries, token)
				}
			}
			r.mu.Unlock()
		case <-r.done:
			return
		}
	}
}

// size is used by tests to observe pruning.
func (r *MemoryRegistry) size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

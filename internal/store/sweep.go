package store

import (
	"context"
	"log/slog"
	"time"
)

// DefaultSweepInterval is how often the sweeper scans for expired contexts.
const DefaultSweepInterval = 10 * time.Minute

// EvictExpired deletes every context whose age exceeds the retention
// window and reports how many were removed. Each deletion takes the
// context's own mutex, the same path request handlers use, so an expiring
// context is never observed half-mutated.
func (s *Store) EvictExpired() int {
	cutoff := s.now().Add(-s.retention)

	s.mu.RLock()
	var expired []*contextEntry
	for _, entry := range s.contexts {
		if entry.createdAt.Before(cutoff) {
			expired = append(expired, entry)
		}
	}
	s.mu.RUnlock()

	evicted := 0
	for _, entry := range expired {
		entry.mu.Lock()
		s.mu.Lock()
		// An entry is only ever deleted here, so presence just guards
		// against a double sweep.
		if _, ok := s.contexts[entry.id]; ok {
			delete(s.contexts, entry.id)
			evicted++
		}
		s.mu.Unlock()
		entry.mu.Unlock()
	}
	return evicted
}

// RunSweeper evicts expired contexts on a fixed interval until ctx is
// cancelled. Best-effort: a request racing an eviction may observe
// NotFound immediately after a successful call, and callers tolerate that.
func (s *Store) RunSweeper(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if logger == nil {
		logger = slog.Default()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.EvictExpired(); n > 0 {
				logger.Info("evicted expired contexts", "count", n, "retention", s.retention)
			}
		}
	}
}

package store

import (
	"testing"
	"time"

	"github.com/MostafaSwaisy/github-mcp-server/internal/errors"
)

// fakeClock lets eviction tests move time forward deterministically.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func TestEvictExpired(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	s := New(Options{Retention: 24 * time.Hour, Now: clock.Now})

	oldID, err := s.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	clock.Advance(23 * time.Hour)
	freshID, err := s.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Strictly before the window closes: nothing is evicted.
	if n := s.EvictExpired(); n != 0 {
		t.Errorf("EvictExpired before cutoff = %d, want 0", n)
	}
	if _, err := s.Snapshot(oldID); err != nil {
		t.Errorf("old context should still exist: %v", err)
	}

	// Past 24h for the old context only.
	clock.Advance(2 * time.Hour)
	if n := s.EvictExpired(); n != 1 {
		t.Errorf("EvictExpired past cutoff = %d, want 1", n)
	}

	if _, err := s.Snapshot(oldID); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("evicted context lookup = %v, want NOT_FOUND", err)
	}
	if _, err := s.Snapshot(freshID); err != nil {
		t.Errorf("fresh context should survive the sweep: %v", err)
	}
}

func TestEvictExpired_NeverResurrects(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)}
	s := New(Options{Retention: time.Hour, Now: clock.Now})

	id, _ := s.Create()
	clock.Advance(2 * time.Hour)
	s.EvictExpired()

	// All operations on the evicted id must report NotFound.
	if err := s.AddFile(id, "a.txt", "x", nil); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("AddFile after eviction = %v, want NOT_FOUND", err)
	}
	if err := s.RemoveFile(id, "a.txt"); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("RemoveFile after eviction = %v, want NOT_FOUND", err)
	}

	// A repeated sweep is a no-op.
	if n := s.EvictExpired(); n != 0 {
		t.Errorf("second EvictExpired = %d, want 0", n)
	}
}

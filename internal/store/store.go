// Package store implements the volatile, process-lifetime registry of
// contexts: named working sets of staged files. Nothing here survives a
// restart; durable state lives in GitHub.
package store

import (
	"crypto/rand"
	"sort"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/MostafaSwaisy/github-mcp-server/internal/codec"
	"github.com/MostafaSwaisy/github-mcp-server/internal/errors"
)

// DefaultRetention is how long a context lives before the sweeper may
// evict it.
const DefaultRetention = 24 * time.Hour

// FileEntry is one staged file inside a context. Content is held in its
// base64 transport form and decoded on read.
type FileEntry struct {
	Path    string
	Content string
	Size    int
	AddedAt time.Time
}

// RepoInfo is the commit target a context was last associated with.
type RepoInfo struct {
	Owner  string `json:"owner"`
	Repo   string `json:"repo"`
	Branch string `json:"branch"`
}

// contextEntry is the live state of one context. The mutex serializes all
// mutations and reads of files/repoInfo; id and createdAt are immutable
// after creation and may be read without it.
type contextEntry struct {
	mu        sync.Mutex
	id        string
	createdAt time.Time
	files     map[string]FileEntry
	repoInfo  *RepoInfo
}

// Options configures a Store.
type Options struct {
	// Retention is how long contexts live before eviction.
	// Defaults to DefaultRetention.
	Retention time.Duration

	// Now supplies the current time. Defaults to time.Now.
	// Tests inject a fake to exercise eviction deterministically.
	Now func() time.Time
}

// Store is the in-memory context registry. The registry mutex guards only
// the map; each context carries its own mutex so operations on different
// contexts never contend.
type Store struct {
	mu       sync.RWMutex
	contexts map[string]*contextEntry

	entropyMu sync.Mutex
	entropy   *ulid.MonotonicEntropy

	retention time.Duration
	now       func() time.Time
}

// New creates an empty Store.
func New(opts Options) *Store {
	if opts.Retention <= 0 {
		opts.Retention = DefaultRetention
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Store{
		contexts:  make(map[string]*contextEntry),
		entropy:   ulid.Monotonic(rand.Reader, 0),
		retention: opts.Retention,
		now:       opts.Now,
	}
}

// Create allocates a fresh context and returns its id.
func (s *Store) Create() (string, error) {
	id, err := s.newID()
	if err != nil {
		return "", errors.NewInternal(err)
	}

	entry := &contextEntry{
		id:        id,
		createdAt: s.now(),
		files:     make(map[string]FileEntry),
	}

	s.mu.Lock()
	s.contexts[id] = entry
	s.mu.Unlock()

	return id, nil
}

// AddFile inserts or overwrites the entry for path, recomputing size and
// addedAt from the given raw content. If repo is non-nil it replaces the
// context's repo info (last write wins).
func (s *Store) AddFile(contextID, path, content string, repo *RepoInfo) error {
	entry, err := s.lookup(contextID)
	if err != nil {
		return err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	entry.files[path] = FileEntry{
		Path:    path,
		Content: codec.Encode(content),
		Size:    len(content),
		AddedAt: s.now(),
	}
	if repo != nil {
		info := *repo
		entry.repoInfo = &info
	}
	return nil
}

// RemoveFile deletes the entry for path. An unknown context and an unknown
// path are distinct not-found conditions.
func (s *Store) RemoveFile(contextID, path string) error {
	entry, err := s.lookup(contextID)
	if err != nil {
		return err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if _, ok := entry.files[path]; !ok {
		return errors.NewFileNotFound(contextID, path)
	}
	delete(entry.files, path)
	return nil
}

// FileSnapshot is one decoded file in a context snapshot.
type FileSnapshot struct {
	Path    string    `json:"path"`
	Content string    `json:"content"`
	Size    int       `json:"size"`
	AddedAt time.Time `json:"added_at"`
}

// Snapshot is a point-in-time copy of a context's live state.
type Snapshot struct {
	ID        string         `json:"context_id"`
	CreatedAt time.Time      `json:"created_at"`
	RepoInfo  *RepoInfo      `json:"repo_info,omitempty"`
	Files     []FileSnapshot `json:"files"`
	FileCount int            `json:"file_count"`
}

// Snapshot returns the live state of a context with content decoded.
// Files are sorted by path for stable output.
func (s *Store) Snapshot(contextID string) (*Snapshot, error) {
	entry, err := s.lookup(contextID)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	files := make([]FileSnapshot, 0, len(entry.files))
	for _, f := range entry.files {
		content, err := codec.Decode(f.Content)
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		files = append(files, FileSnapshot{
			Path:    f.Path,
			Content: content,
			Size:    f.Size,
			AddedAt: f.AddedAt,
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	snap := &Snapshot{
		ID:        entry.id,
		CreatedAt: entry.createdAt,
		Files:     files,
		FileCount: len(files),
	}
	if entry.repoInfo != nil {
		info := *entry.repoInfo
		snap.RepoInfo = &info
	}
	return snap, nil
}

// Len reports the number of live contexts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.contexts)
}

// lookup resolves a context id to its live entry.
func (s *Store) lookup(contextID string) (*contextEntry, error) {
	s.mu.RLock()
	entry, ok := s.contexts[contextID]
	s.mu.RUnlock()
	if !ok {
		return nil, errors.NewContextNotFound(contextID)
	}
	return entry, nil
}

// newID generates a ULID. The monotonic entropy source is not safe for
// concurrent use, so it is guarded separately from the registry mutex.
func (s *Store) newID() (string, error) {
	s.entropyMu.Lock()
	defer s.entropyMu.Unlock()

	id, err := ulid.New(ulid.Timestamp(s.now()), s.entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

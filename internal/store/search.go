package store

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/MostafaSwaisy/github-mcp-server/internal/codec"
	"github.com/MostafaSwaisy/github-mcp-server/internal/errors"
)

// MaxPreviewChars bounds the preview attached to each match.
const MaxPreviewChars = 200

// Match is one matching line within a file.
type Match struct {
	Line    int    `json:"line"` // 1-based
	Text    string `json:"text"`
	Preview string `json:"preview"`
}

// FileMatches groups the matches found in a single file.
type FileMatches struct {
	Path    string  `json:"path"`
	Matches []Match `json:"matches"`
}

// SearchResult is the outcome of scanning a context's files for a query.
type SearchResult struct {
	Query        string        `json:"query"`
	Files        []FileMatches `json:"files"`
	TotalMatches int           `json:"total_matches"`
	FilesScanned int           `json:"files_scanned"`
}

// SearchFiles scans every file in the context line by line for the query as
// a case-insensitive substring. Files with no matches are omitted from the
// result but still counted as scanned.
func (s *Store) SearchFiles(contextID, query string) (*SearchResult, error) {
	entry, err := s.lookup(contextID)
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(query)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	result := &SearchResult{
		Query:        query,
		Files:        []FileMatches{},
		FilesScanned: len(entry.files),
	}

	for _, f := range entry.files {
		content, err := codec.Decode(f.Content)
		if err != nil {
			return nil, errors.NewInternal(err)
		}

		var matches []Match
		for i, line := range strings.Split(content, "\n") {
			if !strings.Contains(strings.ToLower(line), needle) {
				continue
			}
			matches = append(matches, Match{
				Line:    i + 1,
				Text:    line,
				Preview: truncatePreview(line, MaxPreviewChars),
			})
		}
		if len(matches) > 0 {
			result.Files = append(result.Files, FileMatches{Path: f.Path, Matches: matches})
			result.TotalMatches += len(matches)
		}
	}

	sort.Slice(result.Files, func(i, j int) bool { return result.Files[i].Path < result.Files[j].Path })
	return result, nil
}

// truncatePreview shortens a line to approximately maxChars without
// splitting a multi-byte rune, preferring a word boundary when one is
// close enough.
func truncatePreview(s string, maxChars int) string {
	if len(s) <= maxChars {
		return s
	}

	truncateAt := maxChars
	for truncateAt > 0 && !utf8.RuneStart(s[truncateAt]) {
		truncateAt--
	}
	if truncateAt == 0 {
		return "..."
	}

	truncated := s[:truncateAt]
	if lastSpace := strings.LastIndex(truncated, " "); lastSpace > truncateAt/2 {
		truncated = truncated[:lastSpace]
	}
	return truncated + "..."
}

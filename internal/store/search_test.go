package store

import (
	"strings"
	"testing"
)

func newSearchFixture(t *testing.T) (*Store, string) {
	t.Helper()
	s := New(Options{})
	id, err := s.Create()
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	files := map[string]string{
		"main.go":   "package main\n\nfunc main() {\n\tprintln(\"TODO: wire config\")\n}\n",
		"util.go":   "package main\n\n// helper for the TODO list\nfunc helper() {}\n",
		"README.md": "no matches here\n",
	}
	for p, c := range files {
		if err := s.AddFile(id, p, c, nil); err != nil {
			t.Fatalf("AddFile failed: %v", err)
		}
	}
	return s, id
}

func TestSearchFiles_CaseInsensitiveSubstring(t *testing.T) {
	s, id := newSearchFixture(t)

	result, err := s.SearchFiles(id, "todo")
	if err != nil {
		t.Fatalf("SearchFiles failed: %v", err)
	}

	if result.FilesScanned != 3 {
		t.Errorf("FilesScanned = %d, want 3", result.FilesScanned)
	}
	if result.TotalMatches != 2 {
		t.Errorf("TotalMatches = %d, want 2", result.TotalMatches)
	}
	if len(result.Files) != 2 {
		t.Fatalf("matched files = %d, want 2", len(result.Files))
	}

	// Sorted by path: main.go then util.go.
	if result.Files[0].Path != "main.go" || result.Files[1].Path != "util.go" {
		t.Errorf("matched paths = %q, %q", result.Files[0].Path, result.Files[1].Path)
	}

	m := result.Files[0].Matches[0]
	if m.Line != 4 {
		t.Errorf("Line = %d, want 4 (1-based)", m.Line)
	}
	if !strings.Contains(m.Text, "TODO: wire config") {
		t.Errorf("Text = %q, want the raw line", m.Text)
	}
}

func TestSearchFiles_NoMatches(t *testing.T) {
	s, id := newSearchFixture(t)

	result, err := s.SearchFiles(id, "nonexistent-needle")
	if err != nil {
		t.Fatalf("SearchFiles failed: %v", err)
	}
	if result.TotalMatches != 0 || len(result.Files) != 0 {
		t.Errorf("TotalMatches = %d, Files = %d, want 0, 0", result.TotalMatches, len(result.Files))
	}
	if result.FilesScanned != 3 {
		t.Errorf("FilesScanned = %d, want 3", result.FilesScanned)
	}
}

func TestSearchFiles_Idempotent(t *testing.T) {
	s, id := newSearchFixture(t)

	first, err := s.SearchFiles(id, "package")
	if err != nil {
		t.Fatalf("SearchFiles failed: %v", err)
	}
	second, err := s.SearchFiles(id, "package")
	if err != nil {
		t.Fatalf("SearchFiles failed: %v", err)
	}
	if first.TotalMatches != second.TotalMatches {
		t.Errorf("repeated search: %d vs %d matches", first.TotalMatches, second.TotalMatches)
	}
}

func TestSearchFiles_PreviewBounded(t *testing.T) {
	s := New(Options{})
	id, _ := s.Create()

	long := "needle " + strings.Repeat("x", 500)
	if err := s.AddFile(id, "big.txt", long, nil); err != nil {
		t.Fatalf("AddFile failed: %v", err)
	}

	result, err := s.SearchFiles(id, "needle")
	if err != nil {
		t.Fatalf("SearchFiles failed: %v", err)
	}
	preview := result.Files[0].Matches[0].Preview
	if len(preview) > MaxPreviewChars+len("...") {
		t.Errorf("preview length = %d, want <= %d", len(preview), MaxPreviewChars+3)
	}
	if result.Files[0].Matches[0].Text != long {
		t.Error("Text should carry the raw line unbounded")
	}
}

func TestTruncatePreview_UTF8Safe(t *testing.T) {
	s := strings.Repeat("é", 100)
	got := truncatePreview(s, 25)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("truncated preview %q missing ellipsis", got)
	}
	for _, r := range got {
		if r == '�' {
			t.Fatalf("preview %q contains a split rune", got)
		}
	}
}

package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/MostafaSwaisy/github-mcp-server/internal/commit"
	"github.com/MostafaSwaisy/github-mcp-server/internal/config"
	"github.com/MostafaSwaisy/github-mcp-server/internal/github"
	"github.com/MostafaSwaisy/github-mcp-server/internal/store"
)

// testObjects answers the commit sequence in memory with a fast-forward
// check on the ref update.
type testObjects struct {
	head    string
	commits int
}

func newTestObjects() *testObjects {
	return &testObjects{head: "commit-0"}
}

func (o *testObjects) BranchHead(ctx context.Context, owner, repo, branch string) (string, error) {
	return o.head, nil
}

func (o *testObjects) CommitTree(ctx context.Context, owner, repo, commitSHA string) (string, error) {
	return "tree-" + commitSHA, nil
}

func (o *testObjects) CreateBlob(ctx context.Context, owner, repo string, content []byte) (string, error) {
	return fmt.Sprintf("blob-%d", len(content)), nil
}

func (o *testObjects) CreateTree(ctx context.Context, owner, repo, baseTree string, blobs []commit.BlobRef) (string, error) {
	return "tree-new", nil
}

func (o *testObjects) CreateCommit(ctx context.Context, owner, repo, message, treeSHA, parentSHA string) (string, error) {
	o.commits++
	return fmt.Sprintf("commit-%d", o.commits), nil
}

func (o *testObjects) UpdateRef(ctx context.Context, owner, repo, branch, newSHA string) (string, error) {
	o.head = newSHA
	return newSHA, nil
}

// testReader serves a single canned file and branch.
type testReader struct{}

func (testReader) ListRepositories(ctx context.Context, perPage int) ([]github.Repository, error) {
	return []github.Repository{{Name: "hello-world", FullName: "octocat/hello-world"}}, nil
}

func (testReader) GetBranch(ctx context.Context, owner, repo, branch string) (*github.BranchInfo, error) {
	if branch != "main" {
		return nil, &github.APIError{StatusCode: 404, Message: "Branch not found"}
	}
	return &github.BranchInfo{Name: "main", Commit: github.BranchCommit{SHA: "head-sha"}}, nil
}

func (testReader) ListCommits(ctx context.Context, owner, repo, branch string, perPage int) ([]github.RepoCommit, error) {
	return []github.RepoCommit{{SHA: "c1"}}, nil
}

func (testReader) GetContents(ctx context.Context, owner, repo, path, ref string) (*github.RepoContent, error) {
	if path != "README.md" {
		return nil, &github.APIError{StatusCode: 404, Message: "Not Found"}
	}
	return &github.RepoContent{
		Type:     "file",
		Path:     "README.md",
		SHA:      "readme-sha",
		Size:     5,
		Encoding: "base64",
		Content:  "aGVsbG8=",
	}, nil
}

// testSetup wires handlers against an in-memory store and fakes.
func testSetup(t *testing.T) (*Handlers, *testObjects) {
	t.Helper()

	st := store.New(store.Options{})
	objects := newTestObjects()
	builder := commit.NewBuilder(objects, nil)
	return NewHandlers(st, builder, testReader{}), objects
}

// makeRequest creates a CallToolRequest with the given arguments.
func makeRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
}

// createContext runs the create handler and returns the new context id.
func createContext(t *testing.T, h *Handlers) string {
	t.Helper()

	result, err := h.HandleCreateContext(context.Background(), makeRequest(nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("context_create failed: %v", extractErrorMessage(result))
	}

	var out map[string]any
	if err := json.Unmarshal([]byte(result.Content[0].(mcp.TextContent).Text), &out); err != nil {
		t.Fatalf("failed to unmarshal create result: %v", err)
	}
	return out["context_id"].(string)
}

func TestHandleCreateContext(t *testing.T) {
	h, _ := testSetup(t)
	id := createContext(t, h)
	if id == "" {
		t.Fatal("expected a non-empty context id")
	}
}

func TestHandleAddFile(t *testing.T) {
	h, _ := testSetup(t)
	ctx := context.Background()
	contextID := createContext(t, h)

	tests := []struct {
		name      string
		args      map[string]any
		wantError bool
		errorCode string
	}{
		{
			name: "add valid file",
			args: map[string]any{
				"context_id": contextID,
				"path":       "src/main.go",
				"content":    "package main",
			},
			wantError: false,
		},
		{
			name: "add with repo target",
			args: map[string]any{
				"context_id": contextID,
				"path":       "README.md",
				"content":    "# hi",
				"owner":      "octocat",
				"repo":       "hello-world",
			},
			wantError: false,
		},
		{
			name: "add without path",
			args: map[string]any{
				"context_id": contextID,
				"content":    "orphan",
			},
			wantError: true,
			errorCode: "INVALID_REQUEST",
		},
		{
			name: "add to unknown context",
			args: map[string]any{
				"context_id": "missing",
				"path":       "a.txt",
			},
			wantError: true,
			errorCode: "NOT_FOUND",
		},
		{
			name: "add with owner but no repo",
			args: map[string]any{
				"context_id": contextID,
				"path":       "a.txt",
				"owner":      "octocat",
			},
			wantError: true,
			errorCode: "INVALID_REQUEST",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := h.HandleAddFile(ctx, makeRequest(tt.args))
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if tt.wantError {
				if !result.IsError {
					t.Errorf("expected error result, got success")
				}
				if tt.errorCode != "" {
					assertErrorCode(t, result, tt.errorCode)
				}
			} else if result.IsError {
				t.Errorf("expected success, got error: %v", extractErrorMessage(result))
			}
		})
	}
}

func TestHandleRemoveFile(t *testing.T) {
	h, _ := testSetup(t)
	ctx := context.Background()
	contextID := createContext(t, h)

	addResult, _ := h.HandleAddFile(ctx, makeRequest(map[string]any{
		"context_id": contextID,
		"path":       "a.txt",
		"content":    "x",
	}))
	if addResult.IsError {
		t.Fatalf("setup add failed: %v", extractErrorMessage(addResult))
	}

	result, err := h.HandleRemoveFile(ctx, makeRequest(map[string]any{
		"context_id": contextID,
		"path":       "a.txt",
	}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got error: %v", extractErrorMessage(result))
	}

	// Second removal reports the missing path
	result, _ = h.HandleRemoveFile(ctx, makeRequest(map[string]any{
		"context_id": contextID,
		"path":       "a.txt",
	}))
	if !result.IsError {
		t.Error("expected error result for removed path")
	}
	assertErrorCode(t, result, "NOT_FOUND")
}

func TestHandleGetContext(t *testing.T) {
	h, _ := testSetup(t)
	ctx := context.Background()
	contextID := createContext(t, h)

	for _, path := range []string{"b.txt", "a.txt"} {
		addResult, _ := h.HandleAddFile(ctx, makeRequest(map[string]any{
			"context_id": contextID,
			"path":       path,
			"content":    "content of " + path,
		}))
		if addResult.IsError {
			t.Fatalf("setup add failed: %v", extractErrorMessage(addResult))
		}
	}

	result, err := h.HandleGetContext(ctx, makeRequest(map[string]any{"context_id": contextID}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got error: %v", extractErrorMessage(result))
	}

	var snap struct {
		FileCount int `json:"file_count"`
		Files     []struct {
			Path    string `json:"path"`
			Content string `json:"content"`
		} `json:"files"`
	}
	if err := json.Unmarshal([]byte(result.Content[0].(mcp.TextContent).Text), &snap); err != nil {
		t.Fatalf("failed to unmarshal snapshot: %v", err)
	}
	if snap.FileCount != 2 {
		t.Errorf("file count = %d, want 2", snap.FileCount)
	}
	if snap.Files[0].Path != "a.txt" || snap.Files[1].Path != "b.txt" {
		t.Errorf("files not sorted by path: %+v", snap.Files)
	}
	if snap.Files[0].Content != "content of a.txt" {
		t.Errorf("content round trip failed: %q", snap.Files[0].Content)
	}
}

func TestHandleSearch(t *testing.T) {
	h, _ := testSetup(t)
	ctx := context.Background()
	contextID := createContext(t, h)

	addResult, _ := h.HandleAddFile(ctx, makeRequest(map[string]any{
		"context_id": contextID,
		"path":       "notes.txt",
		"content":    "TODO buy milk\ndone: walk dog\ntodo call home",
	}))
	if addResult.IsError {
		t.Fatalf("setup add failed: %v", extractErrorMessage(addResult))
	}

	result, err := h.HandleSearch(ctx, makeRequest(map[string]any{
		"context_id": contextID,
		"query":      "todo",
	}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got error: %v", extractErrorMessage(result))
	}

	var out struct {
		TotalMatches int `json:"total_matches"`
	}
	if err := json.Unmarshal([]byte(result.Content[0].(mcp.TextContent).Text), &out); err != nil {
		t.Fatalf("failed to unmarshal search result: %v", err)
	}
	if out.TotalMatches != 2 {
		t.Errorf("total matches = %d, want 2", out.TotalMatches)
	}
}

func TestHandlePushFiles(t *testing.T) {
	h, objects := testSetup(t)
	ctx := context.Background()

	result, err := h.HandlePushFiles(ctx, makeRequest(map[string]any{
		"owner":   "octocat",
		"repo":    "hello-world",
		"message": "add two files",
		"files": []any{
			map[string]any{"path": "a.txt", "content": "aaa"},
			map[string]any{"path": "b.txt", "content": "bb"},
		},
	}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got error: %v", extractErrorMessage(result))
	}

	var out struct {
		CommitSHA string `json:"commit_sha"`
		Files     []struct {
			Path string `json:"path"`
		} `json:"files"`
	}
	if err := json.Unmarshal([]byte(result.Content[0].(mcp.TextContent).Text), &out); err != nil {
		t.Fatalf("failed to unmarshal push result: %v", err)
	}
	if out.CommitSHA == "" {
		t.Error("expected a commit sha")
	}
	if len(out.Files) != 2 {
		t.Errorf("files = %d, want 2", len(out.Files))
	}
	if objects.head != out.CommitSHA {
		t.Errorf("branch head = %q, want %q", objects.head, out.CommitSHA)
	}
}

func TestHandlePushFilesValidation(t *testing.T) {
	h, _ := testSetup(t)
	ctx := context.Background()

	tests := []struct {
		name string
		args map[string]any
	}{
		{
			name: "missing message",
			args: map[string]any{
				"owner": "octocat",
				"repo":  "hello-world",
				"files": []any{map[string]any{"path": "a.txt"}},
			},
		},
		{
			name: "empty files",
			args: map[string]any{
				"owner":   "octocat",
				"repo":    "hello-world",
				"message": "m",
				"files":   []any{},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := h.HandlePushFiles(ctx, makeRequest(tt.args))
			if err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if !result.IsError {
				t.Fatal("expected error result, got success")
			}
			assertErrorCode(t, result, "INVALID_REQUEST")
		})
	}
}

func TestHandleCommitFile(t *testing.T) {
	h, objects := testSetup(t)
	ctx := context.Background()

	result, err := h.HandleCommitFile(ctx, makeRequest(map[string]any{
		"owner":   "octocat",
		"repo":    "hello-world",
		"path":    "notes.md",
		"content": "hello",
		"message": "add notes",
	}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got error: %v", extractErrorMessage(result))
	}
	if objects.commits != 1 {
		t.Errorf("commits created = %d, want 1", objects.commits)
	}
}

func TestHandleFetchFile(t *testing.T) {
	h, _ := testSetup(t)
	ctx := context.Background()

	result, err := h.HandleFetchFile(ctx, makeRequest(map[string]any{
		"owner": "octocat",
		"repo":  "hello-world",
		"path":  "README.md",
	}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got error: %v", extractErrorMessage(result))
	}

	var out struct {
		Content string `json:"content"`
	}
	if err := json.Unmarshal([]byte(result.Content[0].(mcp.TextContent).Text), &out); err != nil {
		t.Fatalf("failed to unmarshal fetch result: %v", err)
	}
	if out.Content != "hello" {
		t.Errorf("content = %q, want hello", out.Content)
	}

	result, _ = h.HandleFetchFile(ctx, makeRequest(map[string]any{
		"owner": "octocat",
		"repo":  "hello-world",
		"path":  "missing.txt",
	}))
	if !result.IsError {
		t.Fatal("expected error result for missing file")
	}
	assertErrorCode(t, result, "NOT_FOUND")
}

func TestHandleListRepos(t *testing.T) {
	h, _ := testSetup(t)

	result, err := h.HandleListRepos(context.Background(), makeRequest(nil))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got error: %v", extractErrorMessage(result))
	}
}

func TestHandleGetBranch(t *testing.T) {
	h, _ := testSetup(t)
	ctx := context.Background()

	result, err := h.HandleGetBranch(ctx, makeRequest(map[string]any{
		"owner": "octocat",
		"repo":  "hello-world",
	}))
	if err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if result.IsError {
		t.Fatalf("expected success, got error: %v", extractErrorMessage(result))
	}

	result, _ = h.HandleGetBranch(ctx, makeRequest(map[string]any{
		"owner":  "octocat",
		"repo":   "hello-world",
		"branch": "gone",
	}))
	if !result.IsError {
		t.Fatal("expected error result for unknown branch")
	}
	assertErrorCode(t, result, "NOT_FOUND")
}

func TestNewServerRegistersTools(t *testing.T) {
	st := store.New(store.Options{})
	builder := commit.NewBuilder(newTestObjects(), nil)
	cfg := config.Default()

	s := NewServer(st, builder, testReader{}, cfg, "test")
	if s == nil {
		t.Fatal("expected a server")
	}
}

func TestValidateDisabledTools(t *testing.T) {
	unknown := ValidateDisabledTools([]string{"context_create", "no_such_tool"})
	if len(unknown) != 1 || unknown[0] != "no_such_tool" {
		t.Errorf("unknown = %v, want [no_such_tool]", unknown)
	}
}

func TestAllToolNames(t *testing.T) {
	names := AllToolNames()
	if len(names) != len(toolRegistry) {
		t.Fatalf("names = %d, want %d", len(names), len(toolRegistry))
	}
	for _, name := range names {
		if !strings.HasPrefix(name, "context_") && !strings.HasPrefix(name, "github_") {
			t.Errorf("unexpected tool name %q", name)
		}
	}
}

// assertErrorCode checks the code field of a JSON error payload.
func assertErrorCode(t *testing.T, result *mcp.CallToolResult, expectedCode string) {
	t.Helper()

	if len(result.Content) == 0 {
		t.Errorf("no content in error result")
		return
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Errorf("content is not TextContent")
		return
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(text.Text), &payload); err != nil {
		t.Errorf("failed to unmarshal error payload: %v", err)
		return
	}

	errorObj, ok := payload["error"].(map[string]any)
	if !ok {
		t.Errorf("no error object in payload")
		return
	}

	code, ok := errorObj["code"].(string)
	if !ok {
		t.Errorf("no code in error object")
		return
	}
	if code != expectedCode {
		t.Errorf("error code = %q, want %q", code, expectedCode)
	}
}

// extractErrorMessage returns the raw text of an error result for logging.
func extractErrorMessage(result *mcp.CallToolResult) string {
	if len(result.Content) == 0 {
		return "<no content>"
	}

	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		return "<not text content>"
	}

	return text.Text
}

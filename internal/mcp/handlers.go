package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/MostafaSwaisy/github-mcp-server/internal/commit"
	"github.com/MostafaSwaisy/github-mcp-server/internal/errors"
	"github.com/MostafaSwaisy/github-mcp-server/internal/ops"
	"github.com/MostafaSwaisy/github-mcp-server/internal/store"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	store   *store.Store
	builder *commit.Builder
	reader  ops.RepoReader
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(st *store.Store, builder *commit.Builder, reader ops.RepoReader) *Handlers {
	return &Handlers{store: st, builder: builder, reader: reader}
}

// Request types for each tool

// AddFileRequest represents the arguments for context_add_file.
type AddFileRequest struct {
	ContextID string `json:"context_id"`
	Path      string `json:"path"`
	Content   string `json:"content,omitempty"`
	Owner     string `json:"owner,omitempty"`
	Repo      string `json:"repo,omitempty"`
	Branch    string `json:"branch,omitempty"`
}

// RemoveFileRequest represents the arguments for context_remove_file.
type RemoveFileRequest struct {
	ContextID string `json:"context_id"`
	Path      string `json:"path"`
}

// GetContextRequest represents the arguments for context_get.
type GetContextRequest struct {
	ContextID string `json:"context_id"`
}

// SearchRequest represents the arguments for context_search.
type SearchRequest struct {
	ContextID string `json:"context_id"`
	Query     string `json:"query"`
}

// PushFilesRequest represents the arguments for github_push_files.
type PushFilesRequest struct {
	Owner   string      `json:"owner"`
	Repo    string      `json:"repo"`
	Branch  string      `json:"branch,omitempty"`
	Message string      `json:"message"`
	Files   []FileEntry `json:"files"`
}

// FileEntry is one file in a push request.
type FileEntry struct {
	Path    string `json:"path"`
	Content string `json:"content,omitempty"`
}

// CommitFileRequest represents the arguments for github_commit_file.
type CommitFileRequest struct {
	Owner   string `json:"owner"`
	Repo    string `json:"repo"`
	Branch  string `json:"branch,omitempty"`
	Path    string `json:"path"`
	Content string `json:"content,omitempty"`
	Message string `json:"message"`
}

// FetchFileRequest represents the arguments for github_fetch_file.
type FetchFileRequest struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
	Path  string `json:"path"`
	Ref   string `json:"ref,omitempty"`
}

// ListReposRequest represents the arguments for github_list_repos.
type ListReposRequest struct {
	Limit int `json:"limit,omitempty"`
}

// ListCommitsRequest represents the arguments for github_list_commits.
type ListCommitsRequest struct {
	Owner  string `json:"owner"`
	Repo   string `json:"repo"`
	Branch string `json:"branch,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

// GetBranchRequest represents the arguments for github_get_branch.
type GetBranchRequest struct {
	Owner  string `json:"owner"`
	Repo   string `json:"repo"`
	Branch string `json:"branch,omitempty"`
}

// Handler implementations

// HandleCreateContext handles the context_create tool call.
func (h *Handlers) HandleCreateContext(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.CreateContext(h.store)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleAddFile handles the context_add_file tool call.
func (h *Handlers) HandleAddFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[AddFileRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.AddFile(h.store, ops.AddFileInput{
		ContextID: input.ContextID,
		Path:      input.Path,
		Content:   input.Content,
		Owner:     input.Owner,
		Repo:      input.Repo,
		Branch:    input.Branch,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleRemoveFile handles the context_remove_file tool call.
func (h *Handlers) HandleRemoveFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[RemoveFileRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.RemoveFile(h.store, ops.RemoveFileInput{
		ContextID: input.ContextID,
		Path:      input.Path,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleGetContext handles the context_get tool call.
func (h *Handlers) HandleGetContext(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[GetContextRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.GetContext(h.store, ops.GetContextInput{ContextID: input.ContextID})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleSearch handles the context_search tool call.
func (h *Handlers) HandleSearch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SearchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Search(h.store, ops.SearchInput{
		ContextID: input.ContextID,
		Query:     input.Query,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandlePushFiles handles the github_push_files tool call.
func (h *Handlers) HandlePushFiles(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PushFilesRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	files := make([]commit.File, len(input.Files))
	for i, file := range input.Files {
		files[i] = commit.File{Path: file.Path, Content: file.Content}
	}

	result, err := ops.PushFiles(ctx, h.builder, ops.PushFilesInput{
		Owner:   input.Owner,
		Repo:    input.Repo,
		Branch:  input.Branch,
		Message: input.Message,
		Files:   files,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleCommitFile handles the github_commit_file tool call.
func (h *Handlers) HandleCommitFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CommitFileRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.CommitFile(ctx, h.builder, ops.CommitFileInput{
		Owner:   input.Owner,
		Repo:    input.Repo,
		Branch:  input.Branch,
		Path:    input.Path,
		Content: input.Content,
		Message: input.Message,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleFetchFile handles the github_fetch_file tool call.
func (h *Handlers) HandleFetchFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FetchFileRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.FetchFile(ctx, h.reader, ops.FetchFileInput{
		Owner: input.Owner,
		Repo:  input.Repo,
		Path:  input.Path,
		Ref:   input.Ref,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleListRepos handles the github_list_repos tool call.
func (h *Handlers) HandleListRepos(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListReposRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ListRepos(ctx, h.reader, ops.ListReposInput{Limit: input.Limit})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleListCommits handles the github_list_commits tool call.
func (h *Handlers) HandleListCommits(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ListCommitsRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ListCommits(ctx, h.reader, ops.ListCommitsInput{
		Owner:  input.Owner,
		Repo:   input.Repo,
		Branch: input.Branch,
		Limit:  input.Limit,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleGetBranch handles the github_get_branch tool call.
func (h *Handlers) HandleGetBranch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[GetBranchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.GetBranch(ctx, h.reader, ops.GetBranchInput{
		Owner:  input.Owner,
		Repo:   input.Repo,
		Branch: input.Branch,
	})
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if sErr, ok := err.(*errors.ServerError); ok {
		errorObj := map[string]any{
			"code":    sErr.Code,
			"message": sErr.Message,
			"status":  sErr.Status,
		}
		// Only include details for non-internal errors to avoid leaking
		// sensitive info like file paths or upstream response bodies
		if sErr.Code != errors.ErrInternal && sErr.Details != nil {
			errorObj["details"] = sErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}

package web

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/MostafaSwaisy/github-mcp-server/internal/commit"
	"github.com/MostafaSwaisy/github-mcp-server/internal/errors"
	"github.com/MostafaSwaisy/github-mcp-server/internal/ops"
	"github.com/MostafaSwaisy/github-mcp-server/internal/store"
)

// Handlers contains HTTP route handlers for the JSON API.
type Handlers struct {
	store   *store.Store
	builder *commit.Builder
	reader  ops.RepoReader
	logger  *slog.Logger
	version string
}

// maxBodyBytes bounds request bodies; commit payloads carry file content.
const maxBodyBytes = 8 << 20

// HandleHealth handles GET /healthz.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"version":  h.version,
		"contexts": h.store.Len(),
	})
}

// HandleCreateContext handles POST /v1/contexts.
func (h *Handlers) HandleCreateContext(w http.ResponseWriter, r *http.Request) {
	result, err := ops.CreateContext(h.store)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// HandleGetContext handles GET /v1/contexts/{id}.
func (h *Handlers) HandleGetContext(w http.ResponseWriter, r *http.Request) {
	result, err := ops.GetContext(h.store, ops.GetContextInput{ContextID: r.PathValue("id")})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// addFileBody is the request body for POST /v1/contexts/{id}/files.
type addFileBody struct {
	Path    string `json:"path"`
	Content string `json:"content"`
	Owner   string `json:"owner,omitempty"`
	Repo    string `json:"repo,omitempty"`
	Branch  string `json:"branch,omitempty"`
}

// HandleAddFile handles POST /v1/contexts/{id}/files.
func (h *Handlers) HandleAddFile(w http.ResponseWriter, r *http.Request) {
	var body addFileBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}

	result, err := ops.AddFile(h.store, ops.AddFileInput{
		ContextID: r.PathValue("id"),
		Path:      body.Path,
		Content:   body.Content,
		Owner:     body.Owner,
		Repo:      body.Repo,
		Branch:    body.Branch,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleRemoveFile handles DELETE /v1/contexts/{id}/files/{path...}.
func (h *Handlers) HandleRemoveFile(w http.ResponseWriter, r *http.Request) {
	result, err := ops.RemoveFile(h.store, ops.RemoveFileInput{
		ContextID: r.PathValue("id"),
		Path:      r.PathValue("path"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleSearch handles GET /v1/contexts/{id}/search?q=.
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	result, err := ops.Search(h.store, ops.SearchInput{
		ContextID: r.PathValue("id"),
		Query:     r.URL.Query().Get("q"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// pushFilesBody is the request body for POST /v1/push.
type pushFilesBody struct {
	Owner   string        `json:"owner"`
	Repo    string        `json:"repo"`
	Branch  string        `json:"branch,omitempty"`
	Message string        `json:"message"`
	Files   []commit.File `json:"files"`
}

// HandlePushFiles handles POST /v1/push.
func (h *Handlers) HandlePushFiles(w http.ResponseWriter, r *http.Request) {
	var body pushFilesBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}

	result, err := ops.PushFiles(r.Context(), h.builder, ops.PushFilesInput{
		Owner:   body.Owner,
		Repo:    body.Repo,
		Branch:  body.Branch,
		Message: body.Message,
		Files:   body.Files,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// commitFileBody is the request body for POST /v1/commit.
type commitFileBody struct {
	Owner   string `json:"owner"`
	Repo    string `json:"repo"`
	Branch  string `json:"branch,omitempty"`
	Path    string `json:"path"`
	Content string `json:"content"`
	Message string `json:"message"`
}

// HandleCommitFile handles POST /v1/commit.
func (h *Handlers) HandleCommitFile(w http.ResponseWriter, r *http.Request) {
	var body commitFileBody
	if err := decodeBody(r, &body); err != nil {
		writeError(w, err)
		return
	}

	result, err := ops.CommitFile(r.Context(), h.builder, ops.CommitFileInput{
		Owner:   body.Owner,
		Repo:    body.Repo,
		Branch:  body.Branch,
		Path:    body.Path,
		Content: body.Content,
		Message: body.Message,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

// HandleListRepos handles GET /v1/repos.
func (h *Handlers) HandleListRepos(w http.ResponseWriter, r *http.Request) {
	result, err := ops.ListRepos(r.Context(), h.reader, ops.ListReposInput{
		Limit: parseIntParam(r, "limit", 0),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleGetBranch handles GET /v1/repos/{owner}/{repo}/branches/{branch}.
func (h *Handlers) HandleGetBranch(w http.ResponseWriter, r *http.Request) {
	result, err := ops.GetBranch(r.Context(), h.reader, ops.GetBranchInput{
		Owner:  r.PathValue("owner"),
		Repo:   r.PathValue("repo"),
		Branch: r.PathValue("branch"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleListCommits handles GET /v1/repos/{owner}/{repo}/commits.
func (h *Handlers) HandleListCommits(w http.ResponseWriter, r *http.Request) {
	result, err := ops.ListCommits(r.Context(), h.reader, ops.ListCommitsInput{
		Owner:  r.PathValue("owner"),
		Repo:   r.PathValue("repo"),
		Branch: r.URL.Query().Get("branch"),
		Limit:  parseIntParam(r, "limit", 0),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HandleFetchFile handles GET /v1/repos/{owner}/{repo}/contents/{path...}.
func (h *Handlers) HandleFetchFile(w http.ResponseWriter, r *http.Request) {
	result, err := ops.FetchFile(r.Context(), h.reader, ops.FetchFileInput{
		Owner: r.PathValue("owner"),
		Repo:  r.PathValue("repo"),
		Path:  r.PathValue("path"),
		Ref:   r.URL.Query().Get("ref"),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// decodeBody unmarshals a JSON request body with a size cap.
func decodeBody(r *http.Request, dst any) error {
	body := http.MaxBytesReader(nil, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		return errors.NewInvalidRequest("invalid JSON body: " + err.Error())
	}
	return nil
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

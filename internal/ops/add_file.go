package ops

import (
	"strings"

	"github.com/MostafaSwaisy/github-mcp-server/internal/errors"
	"github.com/MostafaSwaisy/github-mcp-server/internal/store"
)

// AddFileInput contains parameters for the AddFile operation.
type AddFileInput struct {
	ContextID string // required
	Path      string // required
	Content   string // may be empty
	Owner     string // optional; with Repo, records the commit target
	Repo      string
	Branch    string // default: "main" when a repo is given
}

// AddFileOutput contains the result of the AddFile operation.
type AddFileOutput struct {
	ContextID string `json:"context_id"`
	Path      string `json:"path"`
	Size      int    `json:"size"`
	FileCount int    `json:"file_count"`
}

// AddFile stages a file in a context, overwriting any existing entry for
// the same path. When a repo is named, the context's repo info is
// replaced (last write wins).
func AddFile(st *store.Store, input AddFileInput) (*AddFileOutput, error) {
	if strings.TrimSpace(input.ContextID) == "" {
		return nil, errors.NewInvalidRequest("context_id is required")
	}
	if strings.TrimSpace(input.Path) == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}

	var repo *store.RepoInfo
	if input.Owner != "" || input.Repo != "" {
		if err := validateRepoTarget(input.Owner, input.Repo); err != nil {
			return nil, err
		}
		branch := input.Branch
		if branch == "" {
			branch = DefaultBranch
		}
		repo = &store.RepoInfo{Owner: input.Owner, Repo: input.Repo, Branch: branch}
	}

	if err := st.AddFile(input.ContextID, input.Path, input.Content, repo); err != nil {
		return nil, err
	}

	snap, err := st.Snapshot(input.ContextID)
	if err != nil {
		// The context can be evicted between the write and the read;
		// callers tolerate the race.
		return nil, err
	}
	return &AddFileOutput{
		ContextID: input.ContextID,
		Path:      input.Path,
		Size:      len(input.Content),
		FileCount: snap.FileCount,
	}, nil
}

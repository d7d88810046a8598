package ops

import (
	"context"
	"strings"

	"github.com/MostafaSwaisy/github-mcp-server/internal/commit"
	"github.com/MostafaSwaisy/github-mcp-server/internal/errors"
)

// PushFilesInput contains parameters for the PushFiles operation.
type PushFilesInput struct {
	Owner   string        // required
	Repo    string        // required
	Branch  string        // default: "main"
	Message string        // required
	Files   []commit.File // required, non-empty; duplicate paths: last wins
}

// PushFiles creates a single atomic commit containing every file in the
// request. The branch is updated optimistically: if it moved while the
// commit was being built, the operation fails with CONFLICT and the
// caller decides whether to re-resolve and retry.
func PushFiles(ctx context.Context, builder *commit.Builder, input PushFilesInput) (*commit.Result, error) {
	if err := validateRepoTarget(input.Owner, input.Repo); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Message) == "" {
		return nil, errors.NewInvalidRequest("message is required")
	}
	if len(input.Files) == 0 {
		return nil, errors.NewInvalidRequest("files must not be empty")
	}

	branch := input.Branch
	if branch == "" {
		branch = DefaultBranch
	}

	return builder.Commit(ctx, commit.Request{
		Owner:   input.Owner,
		Repo:    input.Repo,
		Branch:  branch,
		Message: input.Message,
		Files:   input.Files,
	})
}

package ops

import (
	"context"
	"strings"

	"github.com/MostafaSwaisy/github-mcp-server/internal/commit"
	"github.com/MostafaSwaisy/github-mcp-server/internal/errors"
)

// CommitFileInput contains parameters for the CommitFile operation.
type CommitFileInput struct {
	Owner   string // required
	Repo    string // required
	Branch  string // default: "main"
	Path    string // required
	Content string // may be empty, producing an empty file
	Message string // required
}

// CommitFile commits a single file. It is the n=1 case of the same
// atomic sequence PushFiles uses, not a separate code path.
func CommitFile(ctx context.Context, builder *commit.Builder, input CommitFileInput) (*commit.Result, error) {
	if strings.TrimSpace(input.Path) == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}

	return PushFiles(ctx, builder, PushFilesInput{
		Owner:   input.Owner,
		Repo:    input.Repo,
		Branch:  input.Branch,
		Message: input.Message,
		Files:   []commit.File{{Path: input.Path, Content: input.Content}},
	})
}

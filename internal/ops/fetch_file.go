package ops

import (
	"context"
	"strings"

	"github.com/MostafaSwaisy/github-mcp-server/internal/errors"
	"github.com/MostafaSwaisy/github-mcp-server/internal/github"
)

// FetchFileInput contains parameters for the FetchFile operation.
type FetchFileInput struct {
	Owner string // required
	Repo  string // required
	Path  string // required
	Ref   string // optional branch, tag, or commit SHA
}

// FetchFileOutput contains the result of the FetchFile operation.
type FetchFileOutput struct {
	Owner   string `json:"owner"`
	Repo    string `json:"repo"`
	Path    string `json:"path"`
	Ref     string `json:"ref,omitempty"`
	SHA     string `json:"sha"`
	Size    int    `json:"size"`
	Content string `json:"content"`
}

// FetchFile reads a single file from a repository. Read-only pass-through
// to GitHub; no context store involvement.
func FetchFile(ctx context.Context, reader RepoReader, input FetchFileInput) (*FetchFileOutput, error) {
	if err := validateRepoTarget(input.Owner, input.Repo); err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Path) == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}

	content, err := reader.GetContents(ctx, input.Owner, input.Repo, input.Path, input.Ref)
	if err != nil {
		if github.IsNotFound(err) {
			return nil, errors.NewFileNotFoundInRepo(input.Owner, input.Repo, input.Path)
		}
		return nil, errors.NewUpstream(err)
	}
	if content.Type != "file" {
		return nil, errors.NewInvalidRequest("path does not point at a file: " + input.Path)
	}

	text, err := content.Decoded()
	if err != nil {
		return nil, errors.NewUpstream(err)
	}

	return &FetchFileOutput{
		Owner:   input.Owner,
		Repo:    input.Repo,
		Path:    content.Path,
		Ref:     input.Ref,
		SHA:     content.SHA,
		Size:    content.Size,
		Content: text,
	}, nil
}

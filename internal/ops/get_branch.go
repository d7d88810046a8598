package ops

import (
	"context"
	"time"

	"github.com/MostafaSwaisy/github-mcp-server/internal/errors"
	"github.com/MostafaSwaisy/github-mcp-server/internal/github"
)

// GetBranchInput contains parameters for the GetBranch operation.
type GetBranchInput struct {
	Owner  string // required
	Repo   string // required
	Branch string // optional, defaults to DefaultBranch
}

// GetBranchOutput contains the result of the GetBranch operation.
type GetBranchOutput struct {
	Owner       string    `json:"owner"`
	Repo        string    `json:"repo"`
	Branch      string    `json:"branch"`
	HeadSHA     string    `json:"head_sha"`
	HeadMessage string    `json:"head_message"`
	HeadDate    time.Time `json:"head_date"`
	Protected   bool      `json:"protected"`
}

// GetBranch reports the current head of a branch. Callers that hit a commit
// conflict use this to observe where the branch moved.
func GetBranch(ctx context.Context, reader RepoReader, input GetBranchInput) (*GetBranchOutput, error) {
	if err := validateRepoTarget(input.Owner, input.Repo); err != nil {
		return nil, err
	}
	branch := input.Branch
	if branch == "" {
		branch = DefaultBranch
	}

	info, err := reader.GetBranch(ctx, input.Owner, input.Repo, branch)
	if err != nil {
		if github.IsNotFound(err) {
			return nil, errors.NewBranchNotFound(input.Owner, input.Repo, branch)
		}
		return nil, errors.NewUpstream(err)
	}

	return &GetBranchOutput{
		Owner:       input.Owner,
		Repo:        input.Repo,
		Branch:      info.Name,
		HeadSHA:     info.Commit.SHA,
		HeadMessage: info.Commit.Commit.Message,
		HeadDate:    info.Commit.Commit.Author.Date,
		Protected:   info.Protected,
	}, nil
}

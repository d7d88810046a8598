package ops

import (
	"context"
	"time"

	"github.com/MostafaSwaisy/github-mcp-server/internal/errors"
	"github.com/MostafaSwaisy/github-mcp-server/internal/github"
)

// ListCommitsInput contains parameters for the ListCommits operation.
type ListCommitsInput struct {
	Owner  string // required
	Repo   string // required
	Branch string // optional, defaults to DefaultBranch
	Limit  int    // optional, defaults to DefaultListLimit
}

// CommitSummary is one commit in a ListCommits response.
type CommitSummary struct {
	SHA     string    `json:"sha"`
	Message string    `json:"message"`
	Author  string    `json:"author"`
	Date    time.Time `json:"date"`
}

// ListCommitsOutput contains the result of the ListCommits operation.
type ListCommitsOutput struct {
	Owner   string          `json:"owner"`
	Repo    string          `json:"repo"`
	Branch  string          `json:"branch"`
	Commits []CommitSummary `json:"commits"`
	Count   int             `json:"count"`
}

// ListCommits lists recent commits on a branch, newest first.
func ListCommits(ctx context.Context, reader RepoReader, input ListCommitsInput) (*ListCommitsOutput, error) {
	if err := validateRepoTarget(input.Owner, input.Repo); err != nil {
		return nil, err
	}
	branch := input.Branch
	if branch == "" {
		branch = DefaultBranch
	}

	commits, err := reader.ListCommits(ctx, input.Owner, input.Repo, branch, clampLimit(input.Limit))
	if err != nil {
		if github.IsNotFound(err) {
			return nil, errors.NewRepoNotFound(input.Owner, input.Repo)
		}
		return nil, errors.NewUpstream(err)
	}

	out := &ListCommitsOutput{
		Owner:   input.Owner,
		Repo:    input.Repo,
		Branch:  branch,
		Commits: make([]CommitSummary, 0, len(commits)),
	}
	for _, commit := range commits {
		out.Commits = append(out.Commits, CommitSummary{
			SHA:     commit.SHA,
			Message: commit.Commit.Message,
			Author:  commit.Commit.Author.Name,
			Date:    commit.Commit.Author.Date,
		})
	}
	out.Count = len(out.Commits)
	return out, nil
}

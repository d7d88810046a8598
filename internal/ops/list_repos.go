package ops

import (
	"context"
	"time"

	"github.com/MostafaSwaisy/github-mcp-server/internal/errors"
)

// ListReposInput contains parameters for the ListRepos operation.
type ListReposInput struct {
	Limit int // optional, defaults to DefaultListLimit
}

// RepoSummary is one repository in a ListRepos response.
type RepoSummary struct {
	Name          string    `json:"name"`
	FullName      string    `json:"full_name"`
	Private       bool      `json:"private"`
	Description   string    `json:"description,omitempty"`
	DefaultBranch string    `json:"default_branch"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ListReposOutput contains the result of the ListRepos operation.
type ListReposOutput struct {
	Repos []RepoSummary `json:"repos"`
	Count int           `json:"count"`
}

// ListRepos lists repositories visible to the authenticated user, newest
// activity first.
func ListRepos(ctx context.Context, reader RepoReader, input ListReposInput) (*ListReposOutput, error) {
	repos, err := reader.ListRepositories(ctx, clampLimit(input.Limit))
	if err != nil {
		return nil, errors.NewUpstream(err)
	}

	out := &ListReposOutput{Repos: make([]RepoSummary, 0, len(repos))}
	for _, repo := range repos {
		out.Repos = append(out.Repos, RepoSummary{
			Name:          repo.Name,
			FullName:      repo.FullName,
			Private:       repo.Private,
			Description:   repo.Description,
			DefaultBranch: repo.DefaultBranch,
			UpdatedAt:     repo.UpdatedAt,
		})
	}
	out.Count = len(out.Repos)
	return out, nil
}

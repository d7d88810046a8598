// Package ops implements the server's operations: the context store and
// commit operations that make up the core, and the thin read-only
// pass-throughs to GitHub. Every boundary (MCP, HTTP) calls through this
// package, which owns request validation.
package ops

import (
	"context"
	"strings"

	"github.com/MostafaSwaisy/github-mcp-server/internal/errors"
	"github.com/MostafaSwaisy/github-mcp-server/internal/github"
)

// DefaultBranch is used when a request names a repo but no branch.
const DefaultBranch = "main"

// List limits for the pass-through endpoints.
const (
	DefaultListLimit = 30
	MaxListLimit     = 100
)

// RepoReader is the read-only GitHub surface the pass-through operations
// consume. *github.Client satisfies it.
type RepoReader interface {
	ListRepositories(ctx context.Context, perPage int) ([]github.Repository, error)
	GetBranch(ctx context.Context, owner, repo, branch string) (*github.BranchInfo, error)
	ListCommits(ctx context.Context, owner, repo, branch string, perPage int) ([]github.RepoCommit, error)
	GetContents(ctx context.Context, owner, repo, path, ref string) (*github.RepoContent, error)
}

// validateRepoTarget checks the (owner, repo) coordinates every GitHub
// operation needs.
func validateRepoTarget(owner, repo string) error {
	if strings.TrimSpace(owner) == "" {
		return errors.NewInvalidRequest("owner is required")
	}
	if strings.TrimSpace(repo) == "" {
		return errors.NewInvalidRequest("repo is required")
	}
	return nil
}

// clampLimit applies default and maximum bounds to a list limit.
func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

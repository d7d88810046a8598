package commit

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/MostafaSwaisy/github-mcp-server/internal/errors"
	"github.com/MostafaSwaisy/github-mcp-server/internal/github"
)

// regularFileMode is the git mode for a regular (non-executable) file.
const regularFileMode = "100644"

// gitHubObjects adapts the GitHub client to the ObjectStore capability
// set, translating its API errors into the server's error taxonomy.
type gitHubObjects struct {
	client *github.Client
}

// NewGitHubObjectStore wraps a GitHub client as an ObjectStore.
func NewGitHubObjectStore(client *github.Client) ObjectStore {
	return &gitHubObjects{client: client}
}

func (g *gitHubObjects) BranchHead(ctx context.Context, owner, repo, branch string) (string, error) {
	sha, err := g.client.BranchHead(ctx, owner, repo, branch)
	if err != nil {
		// GitHub reports a missing repo and a missing ref identically.
		if github.IsNotFound(err) {
			return "", errors.NewBranchNotFound(owner, repo, branch)
		}
		return "", errors.NewUpstream(err)
	}
	return sha, nil
}

func (g *gitHubObjects) CommitTree(ctx context.Context, owner, repo, commitSHA string) (string, error) {
	sha, err := g.client.CommitTree(ctx, owner, repo, commitSHA)
	if err != nil {
		return "", errors.NewUpstream(err)
	}
	return sha, nil
}

func (g *gitHubObjects) CreateBlob(ctx context.Context, owner, repo string, content []byte) (string, error) {
	sha, err := g.client.CreateBlob(ctx, owner, repo, content)
	if err != nil {
		return "", errors.NewUpstream(err)
	}
	return sha, nil
}

func (g *gitHubObjects) CreateTree(ctx context.Context, owner, repo, baseTree string, blobs []BlobRef) (string, error) {
	entries := make([]github.TreeEntry, len(blobs))
	for i, blob := range blobs {
		entries[i] = github.TreeEntry{
			Path: blob.Path,
			Mode: regularFileMode,
			Type: "blob",
			SHA:  blob.SHA,
		}
	}

	sha, err := g.client.CreateTree(ctx, owner, repo, baseTree, entries)
	if err != nil {
		return "", errors.NewUpstream(err)
	}
	return sha, nil
}

func (g *gitHubObjects) CreateCommit(ctx context.Context, owner, repo, message, treeSHA, parentSHA string) (string, error) {
	sha, err := g.client.CreateCommit(ctx, owner, repo, message, treeSHA, parentSHA)
	if err != nil {
		return "", errors.NewUpstream(err)
	}
	return sha, nil
}

func (g *gitHubObjects) UpdateRef(ctx context.Context, owner, repo, branch, newSHA string) (string, error) {
	sha, err := g.client.UpdateRef(ctx, owner, repo, branch, newSHA)
	if err == nil {
		return sha, nil
	}

	switch {
	case github.IsNotFastForward(err):
		return "", errors.NewConflict(fmt.Sprintf("branch %s moved since its head was resolved", branch))
	case github.IsNotFound(err):
		return "", errors.NewBranchNotFound(owner, repo, branch)
	case isAPIError(err):
		return "", errors.NewUpstream(err)
	default:
		// No HTTP response arrived. The update may or may not have
		// applied; the caller must re-resolve the head.
		return "", errors.NewAmbiguousRefUpdate(err)
	}
}

// isAPIError reports whether GitHub answered with a definite HTTP
// response, as opposed to a transport failure or timeout.
func isAPIError(err error) bool {
	var apiError *github.APIError
	return stderrors.As(err, &apiError)
}

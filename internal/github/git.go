package github

import (
	"context"
	"fmt"
	"net/url"

	"github.com/MostafaSwaisy/github-mcp-server/internal/codec"
)

// BranchHead resolves a branch to its head commit SHA.
func (client *Client) BranchHead(ctx context.Context, owner, repo, branch string) (string, error) {
	var ref Ref
	path := fmt.Sprintf("/repos/%s/%s/git/ref/heads/%s", owner, repo, url.PathEscape(branch))
	if err := client.get(ctx, path, &ref); err != nil {
		return "", fmt.Errorf("resolving head of %s/%s@%s: %w", owner, repo, branch, err)
	}
	return ref.Object.SHA, nil
}

// CommitTree returns the tree SHA of a commit object.
func (client *Client) CommitTree(ctx context.Context, owner, repo, commitSHA string) (string, error) {
	var commit GitCommit
	path := fmt.Sprintf("/repos/%s/%s/git/commits/%s", owner, repo, commitSHA)
	if err := client.get(ctx, path, &commit); err != nil {
		return "", fmt.Errorf("fetching commit %s in %s/%s: %w", commitSHA, owner, repo, err)
	}
	return commit.Tree.SHA, nil
}

// CreateBlob uploads content as a blob object and returns its
// content-derived SHA. The content is sent base64-encoded.
func (client *Client) CreateBlob(ctx context.Context, owner, repo string, content []byte) (string, error) {
	request := struct {
		Content  string `json:"content"`
		Encoding string `json:"encoding"`
	}{Content: codec.Encode(string(content)), Encoding: "base64"}

	var blob Blob
	path := fmt.Sprintf("/repos/%s/%s/git/blobs", owner, repo)
	if err := client.post(ctx, path, request, &blob); err != nil {
		return "", fmt.Errorf("creating blob in %s/%s: %w", owner, repo, err)
	}
	return blob.SHA, nil
}

// CreateTree creates a tree object over baseTree. GitHub merges the
// entries over the base tree: unrelated paths are preserved, entries for
// existing paths replace them.
func (client *Client) CreateTree(ctx context.Context, owner, repo, baseTree string, entries []TreeEntry) (string, error) {
	request := struct {
		BaseTree string      `json:"base_tree,omitempty"`
		Entries  []TreeEntry `json:"tree"`
	}{BaseTree: baseTree, Entries: entries}

	var tree Tree
	path := fmt.Sprintf("/repos/%s/%s/git/trees", owner, repo)
	if err := client.post(ctx, path, request, &tree); err != nil {
		return "", fmt.Errorf("creating tree in %s/%s: %w", owner, repo, err)
	}
	return tree.SHA, nil
}

// CreateCommit creates a commit object with a single parent.
func (client *Client) CreateCommit(ctx context.Context, owner, repo, message, treeSHA, parentSHA string) (string, error) {
	request := struct {
		Message string   `json:"message"`
		Tree    string   `json:"tree"`
		Parents []string `json:"parents"`
	}{Message: message, Tree: treeSHA, Parents: []string{parentSHA}}

	var commit GitCommit
	path := fmt.Sprintf("/repos/%s/%s/git/commits", owner, repo)
	if err := client.post(ctx, path, request, &commit); err != nil {
		return "", fmt.Errorf("creating commit in %s/%s: %w", owner, repo, err)
	}
	return commit.SHA, nil
}

// UpdateRef points a branch at newSHA without force. GitHub rejects the
// update with a non-fast-forward error when the branch no longer points
// where the new commit's parent says it should, which is the
// compare-and-swap guard the commit builder relies on.
func (client *Client) UpdateRef(ctx context.Context, owner, repo, branch, newSHA string) (string, error) {
	request := struct {
		SHA   string `json:"sha"`
		Force bool   `json:"force"`
	}{SHA: newSHA, Force: false}

	var ref Ref
	path := fmt.Sprintf("/repos/%s/%s/git/refs/heads/%s", owner, repo, url.PathEscape(branch))
	if err := client.patch(ctx, path, request, &ref); err != nil {
		return "", fmt.Errorf("updating ref heads/%s in %s/%s: %w", branch, owner, repo, err)
	}
	return ref.Object.SHA, nil
}

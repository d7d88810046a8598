package github

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

// ListRepositories lists repositories accessible to the authenticated
// user, most recently updated first.
func (client *Client) ListRepositories(ctx context.Context, perPage int) ([]Repository, error) {
	if perPage <= 0 || perPage > 100 {
		perPage = 30
	}

	var repos []Repository
	path := fmt.Sprintf("/user/repos?sort=updated&per_page=%d", perPage)
	if err := client.get(ctx, path, &repos); err != nil {
		return nil, fmt.Errorf("listing repositories: %w", err)
	}
	return repos, nil
}

// GetBranch fetches a single branch with its head commit.
func (client *Client) GetBranch(ctx context.Context, owner, repo, branch string) (*BranchInfo, error) {
	var info BranchInfo
	path := fmt.Sprintf("/repos/%s/%s/branches/%s", owner, repo, url.PathEscape(branch))
	if err := client.get(ctx, path, &info); err != nil {
		return nil, fmt.Errorf("fetching branch %s/%s@%s: %w", owner, repo, branch, err)
	}
	return &info, nil
}

// ListCommits lists commits on a branch, newest first.
func (client *Client) ListCommits(ctx context.Context, owner, repo, branch string, perPage int) ([]RepoCommit, error) {
	if perPage <= 0 || perPage > 100 {
		perPage = 30
	}

	var commits []RepoCommit
	path := fmt.Sprintf("/repos/%s/%s/commits?per_page=%d", owner, repo, perPage)
	if branch != "" {
		path += "&sha=" + url.QueryEscape(branch)
	}
	if err := client.get(ctx, path, &commits); err != nil {
		return nil, fmt.Errorf("listing commits in %s/%s: %w", owner, repo, err)
	}
	return commits, nil
}

// RepoContent is a file fetched through the contents endpoint. Content is
// base64-encoded when Type is "file".
type RepoContent struct {
	Type     string `json:"type"`
	Name     string `json:"name"`
	Path     string `json:"path"`
	SHA      string `json:"sha"`
	Size     int    `json:"size"`
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// Decoded returns the file's raw text. GitHub wraps the base64 payload
// across lines, so whitespace is stripped before decoding.
func (content *RepoContent) Decoded() (string, error) {
	if content.Encoding != "base64" {
		return "", fmt.Errorf("unexpected content encoding %q", content.Encoding)
	}
	compact := strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == ' ' {
			return -1
		}
		return r
	}, content.Content)

	raw, err := base64.StdEncoding.DecodeString(compact)
	if err != nil {
		return "", fmt.Errorf("decoding content of %s: %w", content.Path, err)
	}
	return string(raw), nil
}

// GetContents fetches a single file's content at a path, optionally
// pinned to a ref (branch, tag, or commit SHA).
func (client *Client) GetContents(ctx context.Context, owner, repo, filePath, ref string) (*RepoContent, error) {
	var content RepoContent
	path := fmt.Sprintf("/repos/%s/%s/contents/%s", owner, repo, escapePath(filePath))
	if ref != "" {
		path += "?ref=" + url.QueryEscape(ref)
	}
	if err := client.get(ctx, path, &content); err != nil {
		return nil, fmt.Errorf("fetching contents of %s in %s/%s: %w", filePath, owner, repo, err)
	}
	return &content, nil
}

// escapePath escapes each segment of a repository-relative path while
// preserving the separators.
func escapePath(path string) string {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		segments[i] = url.PathEscape(segment)
	}
	return strings.Join(segments, "/")
}

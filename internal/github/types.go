package github

import "time"

// User is a GitHub user reference.
type User struct {
	Login string `json:"login"`
	ID    int64  `json:"id"`
}

// Repository is a repository as returned by the list endpoint.
type Repository struct {
	Name          string    `json:"name"`
	FullName      string    `json:"full_name"`
	Owner         User      `json:"owner"`
	Private       bool      `json:"private"`
	Description   string    `json:"description"`
	DefaultBranch string    `json:"default_branch"`
	HTMLURL       string    `json:"html_url"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Ref is a git reference (branch head).
type Ref struct {
	Ref    string    `json:"ref"`
	Object RefObject `json:"object"`
}

// RefObject is the object a reference points at.
type RefObject struct {
	Type string `json:"type"`
	SHA  string `json:"sha"`
}

// GitCommit is a low-level commit object from the git data API.
type GitCommit struct {
	SHA     string      `json:"sha"`
	Message string      `json:"message"`
	Tree    ObjectRef   `json:"tree"`
	Parents []ObjectRef `json:"parents"`
}

// ObjectRef is a bare (sha, url) pair inside git objects.
type ObjectRef struct {
	SHA string `json:"sha"`
	URL string `json:"url"`
}

// Blob is the response to blob creation.
type Blob struct {
	SHA string `json:"sha"`
}

// Tree is the response to tree creation.
type Tree struct {
	SHA string `json:"sha"`
}

// TreeEntry describes a single entry in a tree creation request.
type TreeEntry struct {
	// Path is the file path relative to the repository root.
	Path string `json:"path"`

	// Mode is the file mode: "100644" (regular), "100755" (executable),
	// "120000" (symlink), "160000" (submodule), "040000" (directory).
	Mode string `json:"mode"`

	// Type is the object type: "blob", "tree", or "commit".
	Type string `json:"type"`

	// SHA is the blob SHA for an already-uploaded blob.
	SHA string `json:"sha"`
}

// BranchInfo is a branch as returned by the branches endpoint.
type BranchInfo struct {
	Name      string       `json:"name"`
	Commit    BranchCommit `json:"commit"`
	Protected bool         `json:"protected"`
}

// BranchCommit is the head commit attached to a branch response.
type BranchCommit struct {
	SHA    string        `json:"sha"`
	Commit CommitDetails `json:"commit"`
}

// RepoCommit is one entry from the commit list endpoint.
type RepoCommit struct {
	SHA     string        `json:"sha"`
	Commit  CommitDetails `json:"commit"`
	HTMLURL string        `json:"html_url"`
}

// CommitDetails carries the message and author of a commit.
type CommitDetails struct {
	Message string       `json:"message"`
	Author  CommitAuthor `json:"author"`
}

// CommitAuthor is the author block inside commit details.
type CommitAuthor struct {
	Name string    `json:"name"`
	Date time.Time `json:"date"`
}

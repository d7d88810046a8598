// Package commit turns a set of in-memory file edits into exactly one new
// commit on a branch, using the remote object store's content-addressable
// primitives: blob → tree → commit → ref update.
package commit

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/MostafaSwaisy/github-mcp-server/internal/errors"
)

// blobConcurrency bounds parallel blob uploads per commit attempt. Blob
// creation is independent per file and its ordering has no observable
// effect.
const blobConcurrency = 4

// stage names the step of the commit sequence an error occurred in.
type stage string

const (
	stageResolving stage = "resolving"
	stageBlobs     stage = "blobs"
	stageTree      stage = "tree"
	stageCommit    stage = "commit"
	stageRef       stage = "ref"
)

// BlobRef pairs a repository-relative path with an uploaded blob SHA.
type BlobRef struct {
	Path string `json:"path"`
	SHA  string `json:"blob_sha"`
}

// ObjectStore is the capability set the builder needs from the remote
// versioned repository. Implementations return *errors.ServerError values
// so the builder and its callers can branch on the error code.
type ObjectStore interface {
	// BranchHead resolves a branch to its head commit SHA.
	BranchHead(ctx context.Context, owner, repo, branch string) (string, error)

	// CommitTree returns the tree SHA of a commit.
	CommitTree(ctx context.Context, owner, repo, commitSHA string) (string, error)

	// CreateBlob uploads file content and returns its blob SHA.
	CreateBlob(ctx context.Context, owner, repo string, content []byte) (string, error)

	// CreateTree creates a tree over baseTree with one regular-file
	// entry per blob. Paths absent from blobs keep their base tree
	// content.
	CreateTree(ctx context.Context, owner, repo, baseTree string, blobs []BlobRef) (string, error)

	// CreateCommit creates a commit with exactly one parent.
	CreateCommit(ctx context.Context, owner, repo, message, treeSHA, parentSHA string) (string, error)

	// UpdateRef points the branch at newSHA, failing with a CONFLICT
	// error rather than overwriting if the branch moved since its head
	// was resolved.
	UpdateRef(ctx context.Context, owner, repo, branch, newSHA string) (string, error)
}

// File is one (path, content) pair in a commit request. Empty content is
// legal and produces an empty file.
type File struct {
	Path    string `json:"path"`
	Content string `json:"content"`
}

// Request is the unit the builder operates on. It exists for the duration
// of one commit attempt and is never stored.
type Request struct {
	Owner   string
	Repo    string
	Branch  string
	Message string
	Files   []File
}

// Result describes a successfully created commit.
type Result struct {
	CommitSHA string    `json:"commit_sha"`
	Branch    string    `json:"branch"`
	Message   string    `json:"message"`
	Files     []BlobRef `json:"files"`
}

// Builder drives the atomic commit sequence against an ObjectStore.
type Builder struct {
	objects ObjectStore
	logger  *slog.Logger
}

// NewBuilder creates a Builder.
func NewBuilder(objects ObjectStore, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{objects: objects, logger: logger}
}

// Commit creates exactly one new commit on the target branch, or fails
// without touching the branch ref. Failures before the ref update leave
// only orphan objects behind, which are harmless: the object store is
// content-addressed and immutable, and reclaims them itself.
//
// The ref update is optimistic: no lock is held across the round trips.
// If a concurrent writer moved the branch, the update fails with CONFLICT
// and is never retried here; the caller re-resolves the head and decides.
func (b *Builder) Commit(ctx context.Context, req Request) (*Result, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	files := dedupe(req.Files)

	headSHA, err := b.objects.BranchHead(ctx, req.Owner, req.Repo, req.Branch)
	if err != nil {
		return nil, staged(stageResolving, err)
	}

	baseTree, err := b.objects.CommitTree(ctx, req.Owner, req.Repo, headSHA)
	if err != nil {
		return nil, staged(stageResolving, err)
	}

	blobs := make([]BlobRef, len(files))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(blobConcurrency)
	for i, file := range files {
		group.Go(func() error {
			sha, err := b.objects.CreateBlob(groupCtx, req.Owner, req.Repo, []byte(file.Content))
			if err != nil {
				return err
			}
			blobs[i] = BlobRef{Path: file.Path, SHA: sha}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, staged(stageBlobs, err)
	}

	treeSHA, err := b.objects.CreateTree(ctx, req.Owner, req.Repo, baseTree, blobs)
	if err != nil {
		return nil, staged(stageTree, err)
	}

	commitSHA, err := b.objects.CreateCommit(ctx, req.Owner, req.Repo, req.Message, treeSHA, headSHA)
	if err != nil {
		return nil, staged(stageCommit, err)
	}

	newHead, err := b.objects.UpdateRef(ctx, req.Owner, req.Repo, req.Branch, commitSHA)
	if err != nil {
		return nil, staged(stageRef, err)
	}

	b.logger.Info("commit created",
		"owner", req.Owner,
		"repo", req.Repo,
		"branch", req.Branch,
		"commit", newHead,
		"parent", headSHA,
		"files", len(blobs),
	)

	return &Result{
		CommitSHA: newHead,
		Branch:    req.Branch,
		Message:   req.Message,
		Files:     blobs,
	}, nil
}

// validate rejects a malformed request before any remote call is made.
func validate(req Request) error {
	if req.Owner == "" || req.Repo == "" {
		return errors.NewInvalidRequest("owner and repo are required")
	}
	if req.Branch == "" {
		return errors.NewInvalidRequest("branch is required")
	}
	if req.Message == "" {
		return errors.NewInvalidRequest("commit message is required")
	}
	if len(req.Files) == 0 {
		return errors.NewInvalidRequest("files must not be empty")
	}
	for _, file := range req.Files {
		if file.Path == "" {
			return errors.NewInvalidRequest("file path must not be empty")
		}
	}
	return nil
}

// dedupe collapses duplicate paths within one request: the last
// occurrence wins, at the position of the first.
func dedupe(files []File) []File {
	index := make(map[string]int, len(files))
	out := make([]File, 0, len(files))
	for _, file := range files {
		if i, ok := index[file.Path]; ok {
			out[i] = file
			continue
		}
		index[file.Path] = len(out)
		out = append(out, file)
	}
	return out
}

// staged tags an error with the step of the commit sequence it came from.
func staged(step stage, err error) error {
	if sErr, ok := err.(*errors.ServerError); ok {
		if sErr.Details == nil {
			sErr.Details = map[string]any{}
		}
		sErr.Details["stage"] = string(step)
		return sErr
	}
	wrapped := errors.NewUpstream(fmt.Errorf("%s: %w", step, err))
	wrapped.Details = map[string]any{"stage": string(step)}
	return wrapped
}

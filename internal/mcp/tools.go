package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// Tool definitions. Descriptions are what MCP clients show the model, so
// they state defaults and failure modes the caller must handle.

var contextCreateToolDef = mcp.NewTool("context_create",
	mcp.WithDescription("Create a new session context for staging files. Returns the context id. Contexts are in-memory and evicted after the retention period (24h by default)."),
)

var contextAddFileToolDef = mcp.NewTool("context_add_file",
	mcp.WithDescription("Stage a file in a context. Adding the same path again overwrites the previous content. Optionally records the target repository for a later push."),
	mcp.WithString("context_id", mcp.Required(), mcp.Description("Context to stage into")),
	mcp.WithString("path", mcp.Required(), mcp.Description("Repository-relative file path")),
	mcp.WithString("content", mcp.Description("File content; may be empty")),
	mcp.WithString("owner", mcp.Description("Target repository owner; requires repo")),
	mcp.WithString("repo", mcp.Description("Target repository name; requires owner")),
	mcp.WithString("branch", mcp.Description("Target branch, default main")),
)

var contextRemoveFileToolDef = mcp.NewTool("context_remove_file",
	mcp.WithDescription("Remove a staged file from a context. Fails with NOT_FOUND when either the context or the path is unknown."),
	mcp.WithString("context_id", mcp.Required(), mcp.Description("Context to remove from")),
	mcp.WithString("path", mcp.Required(), mcp.Description("Staged file path")),
)

var contextGetToolDef = mcp.NewTool("context_get",
	mcp.WithDescription("Fetch a snapshot of a context: every staged file with its content, the recorded repository target, and the file count."),
	mcp.WithString("context_id", mcp.Required(), mcp.Description("Context to fetch")),
)

var contextSearchToolDef = mcp.NewTool("context_search",
	mcp.WithDescription("Search staged files in a context for a case-insensitive substring. Returns matching lines with truncated previews."),
	mcp.WithString("context_id", mcp.Required(), mcp.Description("Context to search")),
	mcp.WithString("query", mcp.Required(), mcp.Description("Substring to look for")),
)

var pushFilesToolDef = mcp.NewTool("github_push_files",
	mcp.WithDescription("Push multiple files to a branch as one atomic commit. Either every file lands in a single new commit or the branch is untouched. Fails with CONFLICT if the branch moved during the push; re-check the branch head before retrying."),
	mcp.WithString("owner", mcp.Required(), mcp.Description("Repository owner")),
	mcp.WithString("repo", mcp.Required(), mcp.Description("Repository name")),
	mcp.WithString("branch", mcp.Description("Target branch, default main")),
	mcp.WithString("message", mcp.Required(), mcp.Description("Commit message")),
	mcp.WithArray("files", mcp.Required(),
		mcp.Description("Files to commit; when a path repeats, the last occurrence wins"),
		mcp.Items(map[string]any{
			"type": "object",
			"properties": map[string]any{
				"path":    map[string]any{"type": "string", "description": "Repository-relative file path"},
				"content": map[string]any{"type": "string", "description": "File content; may be empty"},
			},
			"required": []string{"path"},
		}),
	),
)

var commitFileToolDef = mcp.NewTool("github_commit_file",
	mcp.WithDescription("Commit a single file to a branch. Same atomic semantics as github_push_files with one file."),
	mcp.WithString("owner", mcp.Required(), mcp.Description("Repository owner")),
	mcp.WithString("repo", mcp.Required(), mcp.Description("Repository name")),
	mcp.WithString("branch", mcp.Description("Target branch, default main")),
	mcp.WithString("path", mcp.Required(), mcp.Description("Repository-relative file path")),
	mcp.WithString("content", mcp.Description("File content; may be empty")),
	mcp.WithString("message", mcp.Required(), mcp.Description("Commit message")),
)

var fetchFileToolDef = mcp.NewTool("github_fetch_file",
	mcp.WithDescription("Read a single file from a repository at an optional ref."),
	mcp.WithString("owner", mcp.Required(), mcp.Description("Repository owner")),
	mcp.WithString("repo", mcp.Required(), mcp.Description("Repository name")),
	mcp.WithString("path", mcp.Required(), mcp.Description("Repository-relative file path")),
	mcp.WithString("ref", mcp.Description("Branch, tag, or commit SHA; default branch when empty")),
)

var listReposToolDef = mcp.NewTool("github_list_repos",
	mcp.WithDescription("List repositories visible to the authenticated user, most recently updated first."),
	mcp.WithNumber("limit", mcp.Description("Maximum repositories to return, default 30, max 100")),
)

var listCommitsToolDef = mcp.NewTool("github_list_commits",
	mcp.WithDescription("List recent commits on a branch, newest first."),
	mcp.WithString("owner", mcp.Required(), mcp.Description("Repository owner")),
	mcp.WithString("repo", mcp.Required(), mcp.Description("Repository name")),
	mcp.WithString("branch", mcp.Description("Branch, default main")),
	mcp.WithNumber("limit", mcp.Description("Maximum commits to return, default 30, max 100")),
)

var getBranchToolDef = mcp.NewTool("github_get_branch",
	mcp.WithDescription("Report the current head of a branch. Use after a CONFLICT to observe where the branch moved."),
	mcp.WithString("owner", mcp.Required(), mcp.Description("Repository owner")),
	mcp.WithString("repo", mcp.Required(), mcp.Description("Repository name")),
	mcp.WithString("branch", mcp.Description("Branch, default main")),
)

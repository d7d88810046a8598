package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/MostafaSwaisy/github-mcp-server/internal/commit"
	"github.com/MostafaSwaisy/github-mcp-server/internal/config"
	"github.com/MostafaSwaisy/github-mcp-server/internal/ops"
	"github.com/MostafaSwaisy/github-mcp-server/internal/store"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"context_create": {
		def:     contextCreateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCreateContext },
	},
	"context_add_file": {
		def:     contextAddFileToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleAddFile },
	},
	"context_remove_file": {
		def:     contextRemoveFileToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleRemoveFile },
	},
	"context_get": {
		def:     contextGetToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleGetContext },
	},
	"context_search": {
		def:     contextSearchToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleSearch },
	},
	"github_push_files": {
		def:     pushFilesToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePushFiles },
	},
	"github_commit_file": {
		def:     commitFileToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleCommitFile },
	},
	"github_fetch_file": {
		def:     fetchFileToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFetchFile },
	},
	"github_list_repos": {
		def:     listReposToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleListRepos },
	},
	"github_list_commits": {
		def:     listCommitsToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleListCommits },
	},
	"github_get_branch": {
		def:     getBranchToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleGetBranch },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with all tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
func NewServer(st *store.Store, builder *commit.Builder, reader ops.RepoReader, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"github-mcp-server",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(st, builder, reader)

	disabled := make(map[string]bool)
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(st *store.Store, builder *commit.Builder, reader ops.RepoReader, cfg *config.Config, version string) error {
	s := NewServer(st, builder, reader, cfg, version)
	return server.ServeStdio(s)
}

// ToolHandlerFunc is the signature for tool handlers.
type ToolHandlerFunc func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

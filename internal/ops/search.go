package ops

import (
	"strings"

	"github.com/MostafaSwaisy/github-mcp-server/internal/errors"
	"github.com/MostafaSwaisy/github-mcp-server/internal/store"
)

// SearchInput contains parameters for the Search operation.
type SearchInput struct {
	ContextID string // required
	Query     string // required, matched as a case-insensitive substring
}

// Search scans every staged file in a context line by line for the query.
// Matching is substring containment, not regex or token-based.
func Search(st *store.Store, input SearchInput) (*store.SearchResult, error) {
	if strings.TrimSpace(input.ContextID) == "" {
		return nil, errors.NewInvalidRequest("context_id is required")
	}
	if strings.TrimSpace(input.Query) == "" {
		return nil, errors.NewInvalidRequest("query is required")
	}
	return st.SearchFiles(input.ContextID, input.Query)
}

package ops

import (
	"strings"

	"github.com/MostafaSwaisy/github-mcp-server/internal/errors"
	"github.com/MostafaSwaisy/github-mcp-server/internal/store"
)

// GetContextInput contains parameters for the GetContext operation.
type GetContextInput struct {
	ContextID string // required
}

// GetContext returns a point-in-time snapshot of a context: every staged
// path with decoded content and metadata, the recorded repo info, and the
// file count. The snapshot reflects the live state at call time.
func GetContext(st *store.Store, input GetContextInput) (*store.Snapshot, error) {
	if strings.TrimSpace(input.ContextID) == "" {
		return nil, errors.NewInvalidRequest("context_id is required")
	}
	return st.Snapshot(input.ContextID)
}

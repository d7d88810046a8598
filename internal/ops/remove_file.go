package ops

import (
	"strings"

	"github.com/MostafaSwaisy/github-mcp-server/internal/errors"
	"github.com/MostafaSwaisy/github-mcp-server/internal/store"
)

// RemoveFileInput contains parameters for the RemoveFile operation.
type RemoveFileInput struct {
	ContextID string // required
	Path      string // required
}

// RemoveFileOutput contains the result of the RemoveFile operation.
type RemoveFileOutput struct {
	ContextID string `json:"context_id"`
	Path      string `json:"path"`
	Removed   bool   `json:"removed"`
}

// RemoveFile deletes a staged file from a context. An unknown context and
// an unknown path are reported as distinct not-found conditions.
func RemoveFile(st *store.Store, input RemoveFileInput) (*RemoveFileOutput, error) {
	if strings.TrimSpace(input.ContextID) == "" {
		return nil, errors.NewInvalidRequest("context_id is required")
	}
	if strings.TrimSpace(input.Path) == "" {
		return nil, errors.NewInvalidRequest("path is required")
	}

	if err := st.RemoveFile(input.ContextID, input.Path); err != nil {
		return nil, err
	}
	return &RemoveFileOutput{ContextID: input.ContextID, Path: input.Path, Removed: true}, nil
}

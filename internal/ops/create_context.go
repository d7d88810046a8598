package ops

import (
	"time"

	"github.com/MostafaSwaisy/github-mcp-server/internal/store"
)

// CreateContextOutput contains the result of the CreateContext operation.
type CreateContextOutput struct {
	ContextID string    `json:"context_id"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateContext allocates a fresh, empty context. Always succeeds.
func CreateContext(st *store.Store) (*CreateContextOutput, error) {
	id, err := st.Create()
	if err != nil {
		return nil, err
	}

	snap, err := st.Snapshot(id)
	if err != nil {
		return nil, err
	}
	return &CreateContextOutput{ContextID: id, CreatedAt: snap.CreatedAt}, nil
}

package web

import (
	"encoding/json"
	"net/http"

	"github.com/MostafaSwaisy/github-mcp-server/internal/errors"
)

// writeJSON encodes data as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError maps an error to its HTTP status and a JSON error body.
// Internal error details are not exposed to avoid leaking upstream
// response bodies.
func writeError(w http.ResponseWriter, err error) {
	sErr, ok := err.(*errors.ServerError)
	if !ok {
		sErr = errors.NewInternal(nil)
	}

	errorObj := map[string]any{
		"code":    sErr.Code,
		"message": sErr.Message,
	}
	if sErr.Code != errors.ErrInternal && sErr.Details != nil {
		errorObj["details"] = sErr.Details
	}

	writeJSON(w, sErr.Status, map[string]any{"error": errorObj})
}

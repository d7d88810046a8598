package errors

import "fmt"

// ErrorCode represents a machine-readable error code. Callers branch on the
// code (e.g., re-resolve and retry only on CONFLICT), so every failure path
// must carry one.
type ErrorCode string

const (
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrConflict       ErrorCode = "CONFLICT"        // 409
	ErrUpstream       ErrorCode = "UPSTREAM"        // 502
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// ServerError represents a structured error with code, status, and details.
type ServerError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *ServerError {
	return &ServerError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewContextNotFound creates a 404 error for an unknown context id.
func NewContextNotFound(contextID string) *ServerError {
	return &ServerError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("context not found: %s", contextID),
		Details: map[string]any{"context_id": contextID},
	}
}

// NewFileNotFound creates a 404 error for a path absent from a context.
func NewFileNotFound(contextID, path string) *ServerError {
	return &ServerError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("file not found in context %s: %s", contextID, path),
		Details: map[string]any{"context_id": contextID, "path": path},
	}
}

// NewFileNotFoundInRepo creates a 404 error for a path absent from a
// repository.
func NewFileNotFoundInRepo(owner, repo, path string) *ServerError {
	return &ServerError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("file not found in %s/%s: %s", owner, repo, path),
		Details: map[string]any{"owner": owner, "repo": repo, "path": path},
	}
}

// NewRepoNotFound creates a 404 error for an unknown repository.
func NewRepoNotFound(owner, repo string) *ServerError {
	return &ServerError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("repository not found: %s/%s", owner, repo),
		Details: map[string]any{"owner": owner, "repo": repo},
	}
}

// NewBranchNotFound creates a 404 error for an unknown branch.
func NewBranchNotFound(owner, repo, branch string) *ServerError {
	return &ServerError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("branch not found: %s/%s@%s", owner, repo, branch),
		Details: map[string]any{"owner": owner, "repo": repo, "branch": branch},
	}
}

// NewConflict creates a 409 error for an optimistic concurrency failure.
// The caller must re-resolve the branch head before retrying.
func NewConflict(msg string) *ServerError {
	return &ServerError{
		Code:    ErrConflict,
		Status:  409,
		Message: msg,
	}
}

// NewAmbiguousRefUpdate creates a 409 error for a ref update whose outcome is
// unknown (the request was sent but no response arrived). Distinct from a
// plain conflict: the update may or may not have applied, so the caller must
// re-resolve the branch head before deciding whether to retry.
func NewAmbiguousRefUpdate(err error) *ServerError {
	return &ServerError{
		Code:    ErrConflict,
		Status:  409,
		Message: fmt.Sprintf("ref update outcome unknown: %v", err),
		Details: map[string]any{"ambiguous": true},
	}
}

// NewUpstream creates a 502 error for a GitHub call that failed for reasons
// outside this server's control.
func NewUpstream(err error) *ServerError {
	msg := "upstream error"
	if err != nil {
		msg = err.Error()
	}
	return &ServerError{
		Code:    ErrUpstream,
		Status:  502,
		Message: msg,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *ServerError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &ServerError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a ServerError with the given code.
func Is(err error, code ErrorCode) bool {
	if sErr, ok := err.(*ServerError); ok {
		return sErr.Code == code
	}
	return false
}

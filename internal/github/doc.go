// Package github provides a typed client for the subset of the GitHub
// REST API this server consumes: the low-level git object primitives
// (blob, tree, commit, ref) that the commit builder drives, plus the
// read-only repository endpoints behind the pass-through operations.
//
// The client authenticates with a personal access token, pins the API
// version header, and maps non-2xx responses to a structured *APIError
// so callers can branch on status without string matching. All requests
// are made over HTTPS; the client refuses non-HTTPS base URLs.
package github

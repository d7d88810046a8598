// Package web exposes the server's operations as a JSON API over HTTP.
// It is a thin boundary: every route decodes, calls into ops, and encodes.
package web

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/MostafaSwaisy/github-mcp-server/internal/commit"
	"github.com/MostafaSwaisy/github-mcp-server/internal/config"
	"github.com/MostafaSwaisy/github-mcp-server/internal/ops"
	"github.com/MostafaSwaisy/github-mcp-server/internal/store"
)

// NewServer creates and configures the HTTP server for the JSON API.
func NewServer(st *store.Store, builder *commit.Builder, reader ops.RepoReader, cfg *config.Config, logger *slog.Logger, version string) *http.Server {
	if logger == nil {
		logger = slog.Default()
	}

	h := &Handlers{
		store:   st,
		builder: builder,
		reader:  reader,
		logger:  logger,
		version: version,
	}

	mux := http.NewServeMux()

	// Routes using Go 1.22+ pattern syntax
	mux.HandleFunc("GET /healthz", h.HandleHealth)
	mux.HandleFunc("POST /v1/contexts", h.HandleCreateContext)
	mux.HandleFunc("GET /v1/contexts/{id}", h.HandleGetContext)
	mux.HandleFunc("POST /v1/contexts/{id}/files", h.HandleAddFile)
	mux.HandleFunc("DELETE /v1/contexts/{id}/files/{path...}", h.HandleRemoveFile)
	mux.HandleFunc("GET /v1/contexts/{id}/search", h.HandleSearch)
	mux.HandleFunc("POST /v1/push", h.HandlePushFiles)
	mux.HandleFunc("POST /v1/commit", h.HandleCommitFile)
	mux.HandleFunc("GET /v1/repos", h.HandleListRepos)
	mux.HandleFunc("GET /v1/repos/{owner}/{repo}/branches/{branch}", h.HandleGetBranch)
	mux.HandleFunc("GET /v1/repos/{owner}/{repo}/commits", h.HandleListCommits)
	mux.HandleFunc("GET /v1/repos/{owner}/{repo}/contents/{path...}", h.HandleFetchFile)

	handler := securityHeaders(requestLogger(logger, mux))

	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Bind, cfg.Port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// securityHeaders adds security-related HTTP headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Security-Policy", "default-src 'none'")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		next.ServeHTTP(w, r)
	})
}

// requestLogger assigns each request an id and logs one line per request.
func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(recorder, r)

		logger.Info("request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", recorder.status,
			"duration", time.Since(start),
		)
	})
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// Run starts the HTTP server and handles graceful shutdown on SIGINT/SIGTERM.
func Run(srv *http.Server, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	logger.Info("server listening", "addr", srv.Addr)

	if strings.Contains(srv.Addr, "0.0.0.0") || strings.Contains(srv.Addr, "::") {
		logger.Warn("server is binding to all interfaces and may be accessible from the network")
	}

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		logger.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

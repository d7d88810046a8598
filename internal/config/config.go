// Package config holds application configuration, loaded from the
// environment. A .env file is honored when present (loaded by main).
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration.
type Config struct {
	// GitHubToken authenticates every GitHub call. Credential handling
	// beyond carrying this token is the client's concern.
	GitHubToken string

	// GitHubAPIURL overrides the GitHub API base URL, e.g. for GitHub
	// Enterprise. Empty means the public API.
	GitHubAPIURL string

	// Bind and Port are the HTTP server's listen address.
	Bind string
	Port int

	// ContextRetention is how long a context lives before the sweeper
	// may evict it.
	ContextRetention time.Duration

	// SweepInterval is how often the eviction sweeper runs.
	SweepInterval time.Duration

	// DisabledTools lists MCP tool names excluded from registration.
	DisabledTools []string
}

// Default returns the default configuration; the GitHub token has no
// default and must come from the environment.
func Default() *Config {
	return &Config{
		Bind:             "127.0.0.1",
		Port:             8080,
		ContextRetention: 24 * time.Hour,
		SweepInterval:    10 * time.Minute,
	}
}

// FromEnv builds a Config from environment variables, applying defaults
// for anything unset.
//
//	GITHUB_TOKEN       required
//	GITHUB_API_URL     optional, HTTPS base URL
//	SERVER_BIND        optional, default 127.0.0.1
//	SERVER_PORT        optional, default 8080
//	CONTEXT_RETENTION  optional Go duration, default 24h
//	SWEEP_INTERVAL     optional Go duration, default 10m
//	MCP_DISABLED_TOOLS optional comma-separated tool names
func FromEnv() (*Config, error) {
	cfg := Default()

	cfg.GitHubToken = os.Getenv("GITHUB_TOKEN")
	if cfg.GitHubToken == "" {
		return nil, fmt.Errorf("GITHUB_TOKEN is required")
	}
	cfg.GitHubAPIURL = os.Getenv("GITHUB_API_URL")

	if bind := os.Getenv("SERVER_BIND"); bind != "" {
		cfg.Bind = bind
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		n, err := strconv.Atoi(port)
		if err != nil || n < 1 || n > 65535 {
			return nil, fmt.Errorf("invalid SERVER_PORT %q", port)
		}
		cfg.Port = n
	}

	var err error
	if cfg.ContextRetention, err = durationEnv("CONTEXT_RETENTION", cfg.ContextRetention); err != nil {
		return nil, err
	}
	if cfg.SweepInterval, err = durationEnv("SWEEP_INTERVAL", cfg.SweepInterval); err != nil {
		return nil, err
	}

	if disabled := os.Getenv("MCP_DISABLED_TOOLS"); disabled != "" {
		for _, name := range strings.Split(disabled, ",") {
			if name = strings.TrimSpace(name); name != "" {
				cfg.DisabledTools = append(cfg.DisabledTools, name)
			}
		}
	}

	return cfg, nil
}

// durationEnv parses an optional duration variable, keeping fallback when
// the variable is unset.
func durationEnv(name string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(name)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, value)
	}
	return d, nil
}

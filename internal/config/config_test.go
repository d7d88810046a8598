package config

import (
	"testing"
	"time"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "tok")
	t.Setenv("GITHUB_API_URL", "")
	t.Setenv("SERVER_BIND", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("CONTEXT_RETENTION", "")
	t.Setenv("SWEEP_INTERVAL", "")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if cfg.GitHubToken != "tok" {
		t.Errorf("GitHubToken = %q", cfg.GitHubToken)
	}
	if cfg.Bind != "127.0.0.1" || cfg.Port != 8080 {
		t.Errorf("listen = %s:%d, want 127.0.0.1:8080", cfg.Bind, cfg.Port)
	}
	if cfg.ContextRetention != 24*time.Hour {
		t.Errorf("ContextRetention = %v, want 24h", cfg.ContextRetention)
	}
	if cfg.SweepInterval != 10*time.Minute {
		t.Errorf("SweepInterval = %v, want 10m", cfg.SweepInterval)
	}
}

func TestFromEnv_RequiresToken(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	if _, err := FromEnv(); err == nil {
		t.Error("FromEnv should fail without GITHUB_TOKEN")
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "tok")
	t.Setenv("GITHUB_API_URL", "https://ghe.example.com/api/v3")
	t.Setenv("SERVER_BIND", "0.0.0.0")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CONTEXT_RETENTION", "1h")
	t.Setenv("SWEEP_INTERVAL", "30s")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if cfg.GitHubAPIURL != "https://ghe.example.com/api/v3" {
		t.Errorf("GitHubAPIURL = %q", cfg.GitHubAPIURL)
	}
	if cfg.Bind != "0.0.0.0" || cfg.Port != 9090 {
		t.Errorf("listen = %s:%d", cfg.Bind, cfg.Port)
	}
	if cfg.ContextRetention != time.Hour {
		t.Errorf("ContextRetention = %v", cfg.ContextRetention)
	}
	if cfg.SweepInterval != 30*time.Second {
		t.Errorf("SweepInterval = %v", cfg.SweepInterval)
	}
}

func TestFromEnv_DisabledTools(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "tok")
	t.Setenv("MCP_DISABLED_TOOLS", "github_push_files, context_search ,")

	cfg, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	want := []string{"github_push_files", "context_search"}
	if len(cfg.DisabledTools) != len(want) {
		t.Fatalf("DisabledTools = %v, want %v", cfg.DisabledTools, want)
	}
	for i, name := range want {
		if cfg.DisabledTools[i] != name {
			t.Errorf("DisabledTools[%d] = %q, want %q", i, cfg.DisabledTools[i], name)
		}
	}
}

func TestFromEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"bad port", "SERVER_PORT", "not-a-port"},
		{"port out of range", "SERVER_PORT", "70000"},
		{"bad retention", "CONTEXT_RETENTION", "yesterday"},
		{"negative interval", "SWEEP_INTERVAL", "-5m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GITHUB_TOKEN", "tok")
			t.Setenv(tt.key, tt.value)
			if _, err := FromEnv(); err == nil {
				t.Errorf("FromEnv should reject %s=%q", tt.key, tt.value)
			}
		})
	}
}

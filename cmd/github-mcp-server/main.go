package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/MostafaSwaisy/github-mcp-server/internal/commit"
	"github.com/MostafaSwaisy/github-mcp-server/internal/config"
	"github.com/MostafaSwaisy/github-mcp-server/internal/github"
	"github.com/MostafaSwaisy/github-mcp-server/internal/mcp"
	"github.com/MostafaSwaisy/github-mcp-server/internal/store"
)

// Version is set via -ldflags at build time.
var Version = "dev"

// cliCommands contains known CLI subcommands.
var cliCommands = map[string]bool{
	"serve": true, "fetch": true, "commit": true,
	"repos": true, "commits": true, "branch": true,
	"help": true,
}

// isCLIMode determines if we should run CLI vs MCP server.
func isCLIMode() bool {
	if len(os.Args) < 2 {
		return false // No args → MCP server
	}
	arg := os.Args[1]
	if cliCommands[arg] {
		return true
	}
	if arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" {
		return true
	}
	return false // Default → MCP server
}

// isHelpOrVersion returns true if the user is requesting help or version info.
func isHelpOrVersion() bool {
	if len(os.Args) < 2 {
		return false
	}
	arg := os.Args[1]
	return arg == "--help" || arg == "-h" || arg == "--version" || arg == "-v" || arg == "help"
}

// isTerminal returns true if stdin is a terminal (not piped).
func isTerminal() bool {
	stat, _ := os.Stdin.Stat()
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// printBanner displays a friendly banner when run interactively without args.
func printBanner() {
	fmt.Println(`
  github-mcp-server

  Session file contexts and atomic multi-file commits for GitHub.

  Usage: github-mcp-server <command> [options]
         github-mcp-server --help

  MCP server mode requires piped input.`)
}

// deps bundles everything the CLI and the MCP server run on.
type deps struct {
	cfg     *config.Config
	store   *store.Store
	client  *github.Client
	builder *commit.Builder
	logger  *slog.Logger
}

// initDeps loads configuration and wires the store, GitHub client, and
// commit builder.
func initDeps() (*deps, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	client, err := github.NewClient(github.Config{
		BaseURL: cfg.GitHubAPIURL,
		Token:   cfg.GitHubToken,
		Logger:  logger,
	})
	if err != nil {
		return nil, err
	}

	st := store.New(store.Options{Retention: cfg.ContextRetention})
	builder := commit.NewBuilder(commit.NewGitHubObjectStore(client), logger)

	return &deps{
		cfg:     cfg,
		store:   st,
		client:  client,
		builder: builder,
		logger:  logger,
	}, nil
}

// startSweeper runs the context eviction loop until stop is called.
func startSweeper(d *deps) (stop func()) {
	ctx, cancel := context.WithCancel(context.Background())
	go d.store.RunSweeper(ctx, d.cfg.SweepInterval, d.logger)
	return cancel
}

func main() {
	// No args + interactive terminal → show banner and exit
	if len(os.Args) < 2 && isTerminal() {
		printBanner()
		return
	}

	// A .env file is a convenience for local runs; absence is fine.
	_ = godotenv.Load()

	// Handle --help/--version before config load (no token needed)
	if isHelpOrVersion() {
		app := newCLIApp(nil)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	d, err := initDeps()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	// CLI mode: known subcommand
	if isCLIMode() {
		app := newCLIApp(d)
		if err := app.Run(os.Args); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Unknown argument + terminal → show error (don't start MCP server)
	if len(os.Args) >= 2 && isTerminal() {
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", os.Args[1])
		fmt.Fprintf(os.Stderr, "Run 'github-mcp-server --help' for usage.\n")
		os.Exit(1)
	}

	// MCP server mode (default)
	stopSweep := startSweeper(d)
	defer stopSweep()

	if err := mcp.Run(d.store, d.builder, d.client, d.cfg, Version); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

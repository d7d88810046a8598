package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/MostafaSwaisy/github-mcp-server/internal/errors"
	"github.com/MostafaSwaisy/github-mcp-server/internal/ops"
	"github.com/MostafaSwaisy/github-mcp-server/internal/web"
)

// newCLIApp creates the CLI application with all commands.
func newCLIApp(d *deps) *cli.App {
	app := &cli.App{
		Name:    "github-mcp-server",
		Usage:   "Session file contexts and atomic GitHub commits",
		Version: Version,
		Commands: []*cli.Command{
			serveCmd(d),
			fetchCmd(d),
			commitCmd(d),
			reposCmd(d),
			commitsCmd(d),
			branchCmd(d),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// serveCmd creates the serve command.
func serveCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP JSON API server",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Aliases: []string{"b"}, Usage: "Listen address (overrides SERVER_BIND)"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "Listen port (overrides SERVER_PORT)"},
		},
		Action: func(c *cli.Context) error {
			if bind := c.String("bind"); bind != "" {
				d.cfg.Bind = bind
			}
			if port := c.Int("port"); port != 0 {
				d.cfg.Port = port
			}

			stopSweep := startSweeper(d)
			defer stopSweep()

			srv := web.NewServer(d.store, d.builder, d.client, d.cfg, d.logger, Version)
			return web.Run(srv, d.logger)
		},
	}
}

// fetchCmd creates the fetch command.
func fetchCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:      "fetch",
		Usage:     "Fetch a single file from a repository",
		ArgsUsage: "<owner>/<repo> <path>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "ref", Usage: "Branch, tag, or commit SHA"},
			&cli.BoolFlag{Name: "raw", Usage: "Print file content only, no JSON"},
		},
		Action: func(c *cli.Context) error {
			owner, repo, err := splitRepoArg(c.Args().Get(0))
			if err != nil {
				return outputError(err)
			}

			output, err := ops.FetchFile(c.Context, d.client, ops.FetchFileInput{
				Owner: owner,
				Repo:  repo,
				Path:  c.Args().Get(1),
				Ref:   c.String("ref"),
			})
			if err != nil {
				return outputError(err)
			}

			if c.Bool("raw") {
				fmt.Print(output.Content)
				return nil
			}
			return outputJSON(output)
		},
	}
}

// commitCmd creates the commit command (reads file content from stdin).
func commitCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:      "commit",
		Usage:     "Commit a single file to a branch (reads content from stdin)",
		ArgsUsage: "<owner>/<repo> <path>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "branch", Aliases: []string{"b"}, Value: "main", Usage: "Target branch"},
			&cli.StringFlag{Name: "message", Aliases: []string{"m"}, Required: true, Usage: "Commit message"},
		},
		Action: func(c *cli.Context) error {
			owner, repo, err := splitRepoArg(c.Args().Get(0))
			if err != nil {
				return outputError(err)
			}

			if !stdinHasData() {
				return outputError(errors.NewInvalidRequest("file content must be piped on stdin"))
			}
			content, err := readStdin()
			if err != nil {
				return outputError(errors.NewInternal(err))
			}

			output, err := ops.CommitFile(c.Context, d.builder, ops.CommitFileInput{
				Owner:   owner,
				Repo:    repo,
				Branch:  c.String("branch"),
				Path:    c.Args().Get(1),
				Content: content,
				Message: c.String("message"),
			})
			if err != nil {
				return outputError(err)
			}

			return outputJSON(output)
		},
	}
}

// reposCmd creates the repos command.
func reposCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:  "repos",
		Usage: "List repositories visible to the authenticated user",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum repositories to return"},
		},
		Action: func(c *cli.Context) error {
			output, err := ops.ListRepos(c.Context, d.client, ops.ListReposInput{
				Limit: c.Int("limit"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// commitsCmd creates the commits command.
func commitsCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:      "commits",
		Usage:     "List recent commits on a branch",
		ArgsUsage: "<owner>/<repo>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "branch", Aliases: []string{"b"}, Usage: "Branch, default main"},
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Usage: "Maximum commits to return"},
		},
		Action: func(c *cli.Context) error {
			owner, repo, err := splitRepoArg(c.Args().Get(0))
			if err != nil {
				return outputError(err)
			}

			output, err := ops.ListCommits(c.Context, d.client, ops.ListCommitsInput{
				Owner:  owner,
				Repo:   repo,
				Branch: c.String("branch"),
				Limit:  c.Int("limit"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// branchCmd creates the branch command.
func branchCmd(d *deps) *cli.Command {
	return &cli.Command{
		Name:      "branch",
		Usage:     "Show the current head of a branch",
		ArgsUsage: "<owner>/<repo> [branch]",
		Action: func(c *cli.Context) error {
			owner, repo, err := splitRepoArg(c.Args().Get(0))
			if err != nil {
				return outputError(err)
			}

			output, err := ops.GetBranch(c.Context, d.client, ops.GetBranchInput{
				Owner:  owner,
				Repo:   repo,
				Branch: c.Args().Get(1),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(output)
		},
	}
}

// Helper functions

// splitRepoArg parses an "owner/repo" argument.
func splitRepoArg(arg string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(arg, "/")
	if !ok || owner == "" || repo == "" {
		return "", "", errors.NewInvalidRequest(fmt.Sprintf("expected <owner>/<repo>, got %q", arg))
	}
	return owner, repo, nil
}

// outputJSON marshals result to stdout as JSON.
func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	if sErr, ok := err.(*errors.ServerError); ok {
		return cli.Exit(fmt.Sprintf("[%s] %s", sErr.Code, sErr.Message), 1)
	}
	return cli.Exit(err.Error(), 1)
}

// stdinHasData returns true if stdin has piped data (not a terminal).
func stdinHasData() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads all content from stdin.
func readStdin() (string, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

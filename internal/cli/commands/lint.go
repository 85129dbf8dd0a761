package commands

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/sqlsleuth/sqlsleuth/pkg/lint"
)

// LintOptions holds options for the lint command.
type LintOptions struct {
	Format  string   // Output format: text, json
	Disable []string // Rule IDs to disable
	Watch   bool     // Re-lint on file changes
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint <path>...",
		Short: "Run lint rules on SQL files",
		Long: `Lex, parse and lint SQL files.

Every file is lexed and parsed with the configured dialect, then all
registered rules run against the parse tree. Unlexable characters and
unparsable sections are reported alongside rule violations.`,
		Example: `  # Lint a file
  sqlsleuth lint query.sql

  # Lint a directory tree with the duckdb dialect
  sqlsleuth lint --dialect duckdb ./models

  # Disable specific rules
  sqlsleuth lint --disable AL05,CV11 query.sql

  # Re-lint whenever files change
  sqlsleuth lint --watch ./models`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, opts)
		},
		// The violation-count error is the exit signal, not output. Keep
		// cobra from echoing it into stdout so --format json stays
		// machine-parseable even when the command runs standalone.
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "text", "Output format: text, json")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Watch files and re-lint on change")

	return cmd
}

func runLint(cmd *cobra.Command, args []string, opts *LintOptions) error {
	cfg := getConfig(cmd)
	d, err := resolveDialect(cfg)
	if err != nil {
		return err
	}

	lintCfg := cfg.LintConfig()
	for _, id := range opts.Disable {
		rc := lintCfg.Rules[id]
		rc.Disabled = true
		lintCfg.Rules[id] = rc
	}
	linter := lint.NewLinter(d, lintCfg)

	paths, err := collectSQLFiles(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no .sql files found under %s", strings.Join(args, ", "))
	}

	lintOnce := func() (int, error) {
		results, err := linter.LintFiles(cmd.Context(), paths)
		if err != nil {
			return 0, err
		}
		return reportResults(cmd, results, opts.Format)
	}

	violations, err := lintOnce()
	if err != nil {
		return err
	}

	if opts.Watch {
		return watchAndLint(cmd, args, func() {
			if _, err := lintOnce(); err != nil {
				slog.Error("lint failed", "error", err)
			}
		})
	}

	if violations > 0 {
		return fmt.Errorf("found %d violation(s)", violations)
	}
	return nil
}

// collectSQLFiles expands the given files and directories into a flat list
// of .sql file paths.
func collectSQLFiles(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(d.Name(), ".sql") {
				paths = append(paths, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return paths, nil
}

// reportResults renders the lint results and returns the violation count.
func reportResults(cmd *cobra.Command, results []*lint.Result, format string) (int, error) {
	violations := 0
	for _, res := range results {
		violations += len(res.Diagnostics)
	}

	if format == "json" {
		return violations, writeJSON(cmd, results)
	}

	out := cmd.OutOrStdout()
	for _, res := range results {
		for _, diag := range res.Diagnostics {
			line, col := diag.LineCol()
			fmt.Fprintf(out, "%s:%d:%d: [%s] %s: %s\n",
				res.Path, line, col, diag.RuleID, diag.Severity, diag.Message)
		}
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"Files", "Violations"})
	t.AppendRow(table.Row{len(results), violations})
	t.Render()

	return violations, nil
}

type jsonDiagnostic struct {
	Rule     string `json:"rule"`
	Severity string `json:"severity"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Message  string `json:"message"`
}

type jsonResult struct {
	Path        string           `json:"path"`
	Diagnostics []jsonDiagnostic `json:"diagnostics"`
}

func writeJSON(cmd *cobra.Command, results []*lint.Result) error {
	out := make([]jsonResult, 0, len(results))
	for _, res := range results {
		jr := jsonResult{Path: res.Path, Diagnostics: []jsonDiagnostic{}}
		for _, diag := range res.Diagnostics {
			line, col := diag.LineCol()
			jr.Diagnostics = append(jr.Diagnostics, jsonDiagnostic{
				Rule:     diag.RuleID,
				Severity: diag.Severity.String(),
				Line:     line,
				Column:   col,
				Message:  diag.Message,
			})
		}
		out = append(out, jr)
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// watchAndLint re-runs onChange whenever a .sql file under the given roots
// changes. Blocks until the command context is cancelled.
func watchAndLint(cmd *cobra.Command, roots []string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			root = filepath.Dir(root)
		}
		if err := watcher.Add(root); err != nil {
			return err
		}
	}

	fmt.Fprintln(cmd.ErrOrStderr(), "Watching for changes... (ctrl-c to stop)")
	for {
		select {
		case <-cmd.Context().Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(event.Name, ".sql") {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				onChange()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watch error", "error", err)
		}
	}
}

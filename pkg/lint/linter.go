package lint

import (
	"context"
	"os"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/sqlsleuth/sqlsleuth/pkg/dialect"
	"github.com/sqlsleuth/sqlsleuth/pkg/parser"
	"github.com/sqlsleuth/sqlsleuth/pkg/templater"
)

// Rule IDs for the built-in lexing and parsing checks. They behave like
// rules for reporting purposes but cannot be disabled.
const (
	LexRuleID   = "LXR"
	ParseRuleID = "PRS"
)

// RuleConfig carries per-rule configuration.
type RuleConfig struct {
	Disabled bool
	Severity string // override; empty keeps the rule default
	Options  map[string]any
}

// Config is the linter configuration.
type Config struct {
	Rules map[string]RuleConfig
}

// NewConfig returns an empty configuration (all rules enabled, defaults).
func NewConfig() *Config {
	return &Config{Rules: make(map[string]RuleConfig)}
}

// Result is the outcome of linting one file.
type Result struct {
	Path        string
	Tree        *parser.Segment // nil when parsing failed or input was empty
	Diagnostics []Diagnostic
}

// Linter runs all registered rules over SQL files in a fixed dialect.
type Linter struct {
	dialect *dialect.Dialect
	config  *Config
}

// NewLinter creates a linter. A nil config means defaults.
func NewLinter(d *dialect.Dialect, cfg *Config) *Linter {
	if cfg == nil {
		cfg = NewConfig()
	}
	return &Linter{dialect: d, config: cfg}
}

// LintString lints plain SQL text.
func (l *Linter) LintString(path, sql string) *Result {
	return l.lint(path, templater.FromString(sql))
}

// LintTemplated expands {{var}} placeholders in source against vars, then
// lints the expanded SQL. Diagnostic positions refer back to the original
// source.
func (l *Linter) LintTemplated(path, source string, vars map[string]string) (*Result, error) {
	tpl := templater.Placeholder{Vars: vars}
	tf, err := tpl.Process(path, source)
	if err != nil {
		return nil, err
	}
	return l.lint(path, tf), nil
}

func (l *Linter) lint(path string, tf *templater.TemplatedFile) *Result {
	res := &Result{Path: path}

	segments, lexErrs := l.dialect.Lexer().Lex(tf)
	for _, e := range lexErrs {
		res.Diagnostics = append(res.Diagnostics, Diagnostic{
			RuleID:   LexRuleID,
			Severity: SeverityError,
			Message:  e.Message,
			Pos:      e.Pos,
		})
	}

	tree, err := l.dialect.Parser().Parse(segments)
	if err != nil {
		if perr, ok := err.(*parser.ParseError); ok {
			res.Diagnostics = append(res.Diagnostics, Diagnostic{
				RuleID:   ParseRuleID,
				Severity: SeverityError,
				Message:  perr.Message,
				Pos:      perr.Pos,
			})
		}
		return res
	}
	if tree == nil {
		return res
	}
	res.Tree = tree

	for _, rule := range GetAll() {
		rc := l.config.Rules[rule.ID]
		if rc.Disabled {
			continue
		}
		if len(rule.Dialects) > 0 && !containsString(rule.Dialects, l.dialect.Name()) {
			continue
		}

		diags := rule.Check(tree, l.dialect, rc.Options)
		for i := range diags {
			if rc.Severity != "" {
				diags[i].Severity = ParseSeverity(rc.Severity)
			}
		}
		res.Diagnostics = append(res.Diagnostics, diags...)
	}

	sort.SliceStable(res.Diagnostics, func(i, j int) bool {
		return res.Diagnostics[i].Pos.SourceSlice.Start < res.Diagnostics[j].Pos.SourceSlice.Start
	})
	return res
}

// LintFiles lints the given paths concurrently, one worker per CPU.
// Results line up with paths by index. The first read error cancels the
// remaining work.
func (l *Linter) LintFiles(ctx context.Context, paths []string) ([]*Result, error) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	results := make([]*Result, len(paths))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			results[i] = l.LintString(path, string(data))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

package lint

import (
	"github.com/sqlsleuth/sqlsleuth/pkg/dialect"
	"github.com/sqlsleuth/sqlsleuth/pkg/parser"
)

// Severity classifies how serious a diagnostic is.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns the lowercase severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseSeverity maps a config string to a Severity. Unknown strings map to
// warning.
func ParseSeverity(s string) Severity {
	switch s {
	case "info":
		return SeverityInfo
	case "error":
		return SeverityError
	default:
		return SeverityWarning
	}
}

// RuleDef is a data-driven rule definition. Rules are stateless - all
// context comes via the Check function parameters.
type RuleDef struct {
	ID          string    // Unique identifier, e.g., "AL05"
	Name        string    // Human-readable name, e.g., "aliasing.unused"
	Group       string    // Category, e.g., "aliasing", "structure", "convention"
	Description string    // Human-readable description
	Severity    Severity  // Default severity
	Check       CheckFunc // The check function
	ConfigKeys  []string  // Configuration keys this rule accepts
	Dialects    []string  // Restrict to specific dialects; nil/empty means all dialects

	// Documentation fields for richer rule documentation
	Rationale   string // Why this rule exists, what problems it prevents
	BadExample  string // Code showing the anti-pattern
	GoodExample string // Code showing the correct pattern
}

// CheckFunc analyzes a parse tree and returns diagnostics. The tree is the
// file-level segment from parser.Parse; rules must treat it as read-only.
// The opts parameter carries rule-specific options from configuration.
type CheckFunc func(tree *parser.Segment, d *dialect.Dialect, opts map[string]any) []Diagnostic

// Diagnostic represents a lint finding.
type Diagnostic struct {
	RuleID   string
	Severity Severity
	Message  string
	Pos      parser.PositionMarker
	Fixes    []Fix // Optional: suggested fixes
}

// LineCol returns the 1-based source position of the finding.
func (d Diagnostic) LineCol() (line, col int) {
	return d.Pos.LineCol()
}

// Fix represents a suggested code fix.
type Fix struct {
	Description string
	TextEdits   []TextEdit
}

// TextEdit represents a text replacement over a source span.
type TextEdit struct {
	Pos     parser.PositionMarker
	NewText string
}

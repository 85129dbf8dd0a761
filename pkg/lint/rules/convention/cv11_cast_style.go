package convention

import (
	"github.com/sqlsleuth/sqlsleuth/pkg/dialect"
	"github.com/sqlsleuth/sqlsleuth/pkg/lint"
	"github.com/sqlsleuth/sqlsleuth/pkg/parser"
	"github.com/sqlsleuth/sqlsleuth/pkg/token"
)

func init() {
	lint.Register(CastStyle)
}

const (
	castStyleID       = "CV11"
	castStyleSeverity = lint.SeverityInfo
)

// CastStyle enforces a single type-casting style per codebase.
var CastStyle = lint.RuleDef{
	ID:          castStyleID,
	Name:        "convention.casting_style",
	Group:       "convention",
	Description: "Use a consistent type casting style.",
	Severity:    castStyleSeverity,
	Check:       checkCastStyle,
	ConfigKeys:  []string{"preferred_style"},
	Rationale:   "Mixing CAST(x AS t) and x::t in one codebase reads as two idioms for one operation.",
	BadExample:  "SELECT amount::int, CAST(total AS int) FROM orders",
	GoodExample: "SELECT CAST(amount AS int), CAST(total AS int) FROM orders",
}

func checkCastStyle(tree *parser.Segment, _ *dialect.Dialect, opts map[string]any) []lint.Diagnostic {
	style := "cast"
	if v, ok := opts["preferred_style"].(string); ok && v != "" {
		style = v
	}

	var diags []lint.Diagnostic
	switch style {
	case "shorthand":
		for _, cast := range lint.Collect(tree, token.CastExpression) {
			diags = append(diags, lint.Diagnostic{
				RuleID:   castStyleID,
				Severity: castStyleSeverity,
				Message:  "Use shorthand :: casting instead of CAST",
				Pos:      cast.Pos(),
			})
		}
	default:
		for _, leaf := range tree.Leaves(nil) {
			if leaf.IsType(token.CastingOperator) {
				diags = append(diags, lint.Diagnostic{
					RuleID:   castStyleID,
					Severity: castStyleSeverity,
					Message:  "Use CAST(... AS ...) instead of shorthand ::",
					Pos:      leaf.Pos(),
				})
			}
		}
	}
	return diags
}

package aliasing

import (
	"strings"

	"github.com/sqlsleuth/sqlsleuth/pkg/dialect"
	"github.com/sqlsleuth/sqlsleuth/pkg/lint"
	"github.com/sqlsleuth/sqlsleuth/pkg/parser"
	"github.com/sqlsleuth/sqlsleuth/pkg/token"
)

func init() {
	lint.Register(UnusedAlias)
}

const (
	unusedAliasID       = "AL05"
	unusedAliasSeverity = lint.SeverityWarning
)

// UnusedAlias flags table aliases that no column reference uses.
var UnusedAlias = lint.RuleDef{
	ID:          unusedAliasID,
	Name:        "aliasing.unused",
	Group:       "aliasing",
	Description: "Tables should not be aliased if the alias is not used.",
	Severity:    unusedAliasSeverity,
	Check:       checkUnusedAlias,
	Rationale:   "An unused alias is noise: it suggests qualified references that never come.",
	BadExample:  "SELECT a FROM t AS x",
	GoodExample: "SELECT x.a FROM t AS x",
}

func checkUnusedAlias(tree *parser.Segment, _ *dialect.Dialect, _ map[string]any) []lint.Diagnostic {
	var diags []lint.Diagnostic

	for _, sel := range lint.Collect(tree, token.SelectStatement) {
		// An unqualified wildcard may use any table, so nothing in this
		// select is provably unused.
		skip := false
		for _, wc := range lint.Collect(sel, token.WildcardExpression) {
			if len(identifierParts(wc)) == 0 {
				skip = true
				break
			}
		}
		if skip {
			continue
		}

		used := make(map[string]struct{})
		for _, ref := range lint.Collect(sel, token.ColumnReference) {
			if parts := identifierParts(ref); len(parts) >= 2 {
				used[identifierKey(parts[0])] = struct{}{}
			}
		}

		for _, from := range lint.Collect(sel, token.FromExpressionElement) {
			for _, alias := range lint.ChildrenOfKind(from, token.AliasExpression) {
				parts := identifierParts(alias)
				if len(parts) == 0 {
					continue
				}
				name := parts[len(parts)-1]
				if _, ok := used[identifierKey(name)]; !ok {
					diags = append(diags, lint.Diagnostic{
						RuleID:   unusedAliasID,
						Severity: unusedAliasSeverity,
						Message:  "Alias " + name.Raw() + " is never used in the query",
						Pos:      name.Pos(),
					})
				}
			}
		}
	}

	return diags
}

// identifierParts returns the identifier leaves directly under seg.
func identifierParts(seg *parser.Segment) []*parser.Segment {
	return lint.ChildrenOfKind(seg, token.NakedIdentifier, token.QuotedIdentifier)
}

// identifierKey folds an identifier to its comparison form: quoted
// identifiers keep case with quotes stripped, naked identifiers compare
// case-insensitively.
func identifierKey(seg *parser.Segment) string {
	raw := seg.Raw()
	if seg.IsType(token.QuotedIdentifier) {
		return strings.Trim(raw, `"`)
	}
	return strings.ToUpper(raw)
}

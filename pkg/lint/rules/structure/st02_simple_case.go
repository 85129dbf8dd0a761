package structure

import (
	"github.com/sqlsleuth/sqlsleuth/pkg/dialect"
	"github.com/sqlsleuth/sqlsleuth/pkg/lint"
	"github.com/sqlsleuth/sqlsleuth/pkg/parser"
	"github.com/sqlsleuth/sqlsleuth/pkg/token"
)

func init() {
	lint.Register(SimpleCase)
}

const (
	simpleCaseID       = "ST02"
	simpleCaseSeverity = lint.SeverityInfo
)

// SimpleCase flags CASE expressions that reduce to a bare condition.
var SimpleCase = lint.RuleDef{
	ID:          simpleCaseID,
	Name:        "structure.simple_case",
	Group:       "structure",
	Description: "Unnecessary CASE statement: the condition itself is the value.",
	Severity:    simpleCaseSeverity,
	Check:       checkSimpleCase,
	Rationale:   "CASE WHEN cond THEN true ELSE false END is a longer spelling of cond.",
	BadExample:  "SELECT CASE WHEN a > 0 THEN TRUE ELSE FALSE END FROM t",
	GoodExample: "SELECT a > 0 FROM t",
}

func checkSimpleCase(tree *parser.Segment, _ *dialect.Dialect, _ map[string]any) []lint.Diagnostic {
	var diags []lint.Diagnostic

	for _, caseExpr := range lint.Collect(tree, token.CaseExpression) {
		whens := lint.ChildrenOfKind(caseExpr, token.WhenClause)
		if len(whens) != 1 {
			continue
		}
		// CASE <operand> WHEN ... compares values; only the searched form
		// reduces to its condition.
		if len(lint.ChildrenOfKind(caseExpr, token.Expression)) > 0 {
			continue
		}

		exprs := lint.ChildrenOfKind(whens[0], token.Expression)
		if len(exprs) != 2 || !isBooleanLiteral(exprs[1]) {
			continue
		}
		if elses := lint.ChildrenOfKind(caseExpr, token.ElseClause); len(elses) == 1 {
			elseExprs := lint.ChildrenOfKind(elses[0], token.Expression)
			if len(elseExprs) != 1 || !isBooleanLiteral(elseExprs[0]) {
				continue
			}
		}

		diags = append(diags, lint.Diagnostic{
			RuleID:   simpleCaseID,
			Severity: simpleCaseSeverity,
			Message:  "CASE returning boolean literals can be replaced by its condition",
			Pos:      caseExpr.Pos(),
		})
	}

	return diags
}

// isBooleanLiteral reports whether the expression is exactly one boolean
// literal leaf.
func isBooleanLiteral(expr *parser.Segment) bool {
	leaves := expr.Leaves(nil)
	return len(leaves) == 1 && leaves[0].IsType(token.BooleanLiteral)
}

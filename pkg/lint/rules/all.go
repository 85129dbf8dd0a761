// Package rules pulls in every rule group so a single blank import
// registers the full rule set.
package rules

import (
	_ "github.com/sqlsleuth/sqlsleuth/pkg/lint/rules/aliasing"
	_ "github.com/sqlsleuth/sqlsleuth/pkg/lint/rules/convention"
	_ "github.com/sqlsleuth/sqlsleuth/pkg/lint/rules/structure"
)

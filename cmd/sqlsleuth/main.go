// Package main provides the sqlsleuth CLI.
package main

import "github.com/sqlsleuth/sqlsleuth/internal/cli"

func main() {
	cli.Execute()
}

package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a SQL file and print its syntax tree",
		Long: `Lex and parse a SQL file with the configured dialect and print the
resulting syntax tree, one segment per line with source positions.`,
		Example: `  # Print the tree for a file
  sqlsleuth parse query.sql

  # Parse with a specific dialect
  sqlsleuth parse --dialect postgres query.sql`,
		Args: cobra.ExactArgs(1),
		RunE: runParse,
	}
	return cmd
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg := getConfig(cmd)
	d, err := resolveDialect(cfg)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	segments, lexErrs := d.Lexer().LexString(string(data))
	for _, e := range lexErrs {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", args[0], e)
	}

	tree, err := d.Parser().Parse(segments)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}
	if tree == nil {
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), tree.StringTree())
	return nil
}

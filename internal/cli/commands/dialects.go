package commands

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/sqlsleuth/sqlsleuth/pkg/dialect"
)

// NewDialectsCommand creates the dialects command.
func NewDialectsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List registered SQL dialects",
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := table.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.AppendHeader(table.Row{"Dialect", "Grammar rules", "Lexer matchers"})
			for _, name := range dialect.List() {
				d, _ := dialect.Get(name)
				t.AppendRow(table.Row{name, len(d.GrammarNames()), len(d.LexerMatchers())})
			}
			t.Render()
			return nil
		},
	}
}

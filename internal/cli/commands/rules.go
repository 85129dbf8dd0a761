package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/sqlsleuth/sqlsleuth/pkg/lint"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group string // Filter by group
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List available lint rules",
		Long: `List all registered lint rules, or show the full documentation of a
single rule.`,
		Example: `  # List all rules
  sqlsleuth rules

  # Show details for one rule
  sqlsleuth rules AL05

  # List rules in the convention group
  sqlsleuth rules --group convention`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0])
			}
			return listRules(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Group, "group", "", "Filter by rule group")
	return cmd
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	rules := lint.GetAll()
	if opts.Group != "" {
		rules = lint.GetByGroup(opts.Group)
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.AppendHeader(table.Row{"ID", "Name", "Group", "Severity", "Description"})
	for _, r := range rules {
		t.AppendRow(table.Row{r.ID, r.Name, r.Group, r.Severity, r.Description})
	}
	t.Render()
	return nil
}

func showRule(cmd *cobra.Command, id string) error {
	r, ok := lint.GetByID(id)
	if !ok {
		return fmt.Errorf("unknown rule %q", id)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s: %s\n", r.ID, r.Name)
	fmt.Fprintf(out, "Group:    %s\n", r.Group)
	fmt.Fprintf(out, "Severity: %s\n", r.Severity)
	fmt.Fprintf(out, "\n%s\n", r.Description)
	if r.Rationale != "" {
		fmt.Fprintf(out, "\nRationale:\n  %s\n", r.Rationale)
	}
	if r.BadExample != "" {
		fmt.Fprintf(out, "\nAnti-pattern:\n  %s\n", r.BadExample)
	}
	if r.GoodExample != "" {
		fmt.Fprintf(out, "\nBest practice:\n  %s\n", r.GoodExample)
	}
	if len(r.ConfigKeys) > 0 {
		fmt.Fprintf(out, "\nConfig keys: %v\n", r.ConfigKeys)
	}
	return nil
}

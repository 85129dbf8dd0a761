// Package cli provides the command-line interface for sqlsleuth.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/sqlsleuth/sqlsleuth/internal/cli/commands"
	"github.com/sqlsleuth/sqlsleuth/internal/config"
)

var cfgFile string

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sqlsleuth",
		Short: "sqlsleuth - SQL linter and parser",
		Long: `sqlsleuth lexes and parses SQL into a lossless syntax tree and runs
lint rules against it. Dialect grammars (ansi, postgres, duckdb) control
both lexing and parsing.`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)

			if cfg.Verbose && cfg.ConfigFileUsed != "" {
				fmt.Fprintf(os.Stderr, "Using config file: %s\n", cfg.ConfigFileUsed)
			}

			ctx := context.WithValue(cmd.Context(), commands.ConfigKey{}, cfg)
			cmd.SetContext(ctx)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./sqlsleuth.yaml)")
	rootCmd.PersistentFlags().StringP("dialect", "d", "", "SQL dialect (ansi, postgres, duckdb)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(
		commands.NewLintCommand(),
		commands.NewParseCommand(),
		commands.NewDialectsCommand(),
		commands.NewRulesCommand(),
	)

	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

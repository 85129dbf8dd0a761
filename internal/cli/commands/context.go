// Package commands implements the sqlsleuth subcommands.
package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sqlsleuth/sqlsleuth/internal/config"
	"github.com/sqlsleuth/sqlsleuth/pkg/dialect"

	// Register the built-in dialects.
	_ "github.com/sqlsleuth/sqlsleuth/pkg/dialects/ansi"
	_ "github.com/sqlsleuth/sqlsleuth/pkg/dialects/duckdb"
	_ "github.com/sqlsleuth/sqlsleuth/pkg/dialects/postgres"

	// Register the built-in lint rules.
	_ "github.com/sqlsleuth/sqlsleuth/pkg/lint/rules"
)

// ConfigKey is the context key under which the root command stores the
// loaded configuration.
type ConfigKey struct{}

// getConfig retrieves the loaded configuration from the command context.
func getConfig(cmd *cobra.Command) *config.Config {
	if cfg, ok := cmd.Context().Value(ConfigKey{}).(*config.Config); ok {
		return cfg
	}
	return &config.Config{Dialect: config.DefaultDialect, Output: config.DefaultOutput}
}

// resolveDialect looks up the configured dialect.
func resolveDialect(cfg *config.Config) (*dialect.Dialect, error) {
	d, ok := dialect.Get(cfg.Dialect)
	if !ok {
		return nil, fmt.Errorf("unknown dialect %q (available: %s)",
			cfg.Dialect, strings.Join(dialect.List(), ", "))
	}
	return d, nil
}

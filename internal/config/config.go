// Package config loads sqlsleuth configuration from file, environment
// variables and CLI flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/sqlsleuth/sqlsleuth/pkg/lint"
)

// maxUpwardSearchLevels limits how far up the directory tree to search for
// config files.
const maxUpwardSearchLevels = 10

// Defaults.
const (
	DefaultDialect = "ansi"
	DefaultOutput  = "text"
)

// RuleSettings carries per-rule configuration from the config file.
type RuleSettings struct {
	Disabled bool           `koanf:"disabled"`
	Severity string         `koanf:"severity"`
	Options  map[string]any `koanf:"options"`
}

// Config is the resolved sqlsleuth configuration.
type Config struct {
	Dialect string                  `koanf:"dialect"`
	Output  string                  `koanf:"output"`
	Verbose bool                    `koanf:"verbose"`
	Rules   map[string]RuleSettings `koanf:"rules"`
	Vars    map[string]string       `koanf:"vars"` // template placeholder values

	// ConfigFileUsed is the file the config was loaded from, if any.
	ConfigFileUsed string `koanf:"-"`
}

// LintConfig converts the rule settings into the linter's configuration.
func (c *Config) LintConfig() *lint.Config {
	lc := lint.NewConfig()
	for id, rs := range c.Rules {
		lc.Rules[id] = lint.RuleConfig{
			Disabled: rs.Disabled,
			Severity: rs.Severity,
			Options:  rs.Options,
		}
	}
	return lc
}

// configExistsIn checks if a sqlsleuth config file exists in the directory.
func configExistsIn(dir string) string {
	for _, name := range []string{"sqlsleuth.yaml", "sqlsleuth.yml"} {
		candidate := filepath.Join(dir, name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}

// findConfigFile returns the config file to use: the explicit path if
// given, otherwise the nearest sqlsleuth.yaml walking upward from the
// working directory.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for i := 0; i < maxUpwardSearchLevels; i++ {
		if found := configExistsIn(dir); found != "" {
			return found
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// Load loads configuration with precedence (highest to lowest):
// flags > env vars (SQLSLEUTH_ prefix) > config file > defaults.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"dialect": DefaultDialect,
		"output":  DefaultOutput,
		"verbose": false,
	}, "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	configFileUsed := findConfigFile(cfgFile)
	if configFileUsed != "" {
		if err := k.Load(file.Provider(configFileUsed), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", configFileUsed, err)
		}
	}

	// SQLSLEUTH_DIALECT -> dialect
	if err := k.Load(env.Provider("SQLSLEUTH_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "SQLSLEUTH_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	cfg.ConfigFileUsed = configFileUsed

	return &cfg, nil
}

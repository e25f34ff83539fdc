// Package config loads prismagen settings and tsconfig path aliases.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// File names looked up in the project directory.
const (
	FileName   = ".prismagen.yaml"
	DotEnvName = ".env"
)

// EnvPrefix prefixes every environment override, e.g. PRISMAGEN_SCHEMA_DIR.
const EnvPrefix = "PRISMAGEN_"

// Config represents the prismagen configuration.
type Config struct {
	SchemaDir       string  `yaml:"schema_dir"`
	TSConfig        string  `yaml:"tsconfig"`
	OutputRoot      string  `yaml:"output_root"`
	SoftDeleteField string  `yaml:"soft_delete_field"`
	Extension       string  `yaml:"extension"`
	Layout          Layout  `yaml:"layout"`
	Compat          Compat  `yaml:"compat"`
	History         History `yaml:"history"`
	LogLevel        string  `yaml:"log_level"`

	// Dir is the project directory the config was loaded from. Relative
	// paths are resolved against it.
	Dir string `yaml:"-"`
}

// Layout overrides the module-relative output directories. Empty entries
// keep the generator defaults.
type Layout struct {
	Entity           string `yaml:"entity"`
	Mapper           string `yaml:"mapper"`
	Repository       string `yaml:"repository"`
	PrismaRepository string `yaml:"prisma_repository"`
}

// Compat holds switches that reproduce older output.
type Compat struct {
	// LegacyUpdate emits findMany({ where: data }) as the body of update()
	// when no mapper is generated.
	LegacyUpdate bool `yaml:"legacy_update"`
}

// History configures the generation history database.
type History struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		SchemaDir:       "prisma",
		TSConfig:        "tsconfig.json",
		OutputRoot:      ".",
		SoftDeleteField: "deletedAt",
		Extension:       ".ts",
		History: History{
			Enabled: true,
			Path:    ".prismagen/history.db",
		},
		LogLevel: "warn",
	}
}

// Load reads configuration for the project in dir.
// Resolution order: defaults, .prismagen.yaml, .env, PRISMAGEN_* environment
// variables. Both files are optional. Command-line flags are applied by the
// caller.
func Load(dir string) (*Config, error) {
	cfg := Default()
	cfg.Dir = dir

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
		}
		slog.Debug("loaded config file", "path", filepath.Join(dir, FileName))
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	dotenv, err := godotenv.Read(filepath.Join(dir, DotEnvName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", DotEnvName, err)
	}

	if err := cfg.applyEnv(envLookup(dotenv)); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envLookup returns a lookup that prefers the process environment over
// values from the .env file.
func envLookup(dotenv map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok && strings.TrimSpace(v) != ""
	}
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"SCHEMA_DIR":        &c.SchemaDir,
		"TSCONFIG":          &c.TSConfig,
		"OUTPUT_ROOT":       &c.OutputRoot,
		"SOFT_DELETE_FIELD": &c.SoftDeleteField,
		"EXTENSION":         &c.Extension,
		"HISTORY_PATH":      &c.History.Path,
		"LOG_LEVEL":         &c.LogLevel,
	}
	for key, dst := range strs {
		if v, ok := lookup(EnvPrefix + key); ok {
			*dst = strings.TrimSpace(v)
		}
	}

	bools := map[string]*bool{
		"LEGACY_UPDATE":   &c.Compat.LegacyUpdate,
		"HISTORY_ENABLED": &c.History.Enabled,
	}
	for key, dst := range bools {
		v, ok := lookup(EnvPrefix + key)
		if !ok {
			continue
		}
		b, err := parseBool(v)
		if err != nil {
			return fmt.Errorf("invalid %s%s: %w", EnvPrefix, key, err)
		}
		*dst = b
	}
	return nil
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("not a boolean: %q", v)
}

// Resolve returns p joined to the project directory unless p is absolute.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.Dir, p)
}

// SchemaPath returns the absolute schema directory.
func (c *Config) SchemaPath() string { return c.Resolve(c.SchemaDir) }

// TSConfigPath returns the absolute tsconfig path.
func (c *Config) TSConfigPath() string { return c.Resolve(c.TSConfig) }

// HistoryPath returns the absolute history database path.
func (c *Config) HistoryPath() string { return c.Resolve(c.History.Path) }

// Level returns the configured log level, defaulting to warn.
func (c *Config) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return level
}

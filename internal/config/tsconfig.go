package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/tailscale/hujson"
)

// DefaultAlias is used when tsconfig.json declares no usable paths.
const (
	DefaultAlias     = "src"
	DefaultAliasBase = "src/"
)

// Aliases maps module alias names to base paths, e.g. "app" -> "src/app/".
type Aliases struct {
	bases map[string]string
	// Fallback is set when the default alias was used instead of tsconfig.
	Fallback bool
}

type tsConfig struct {
	CompilerOptions struct {
		Paths map[string][]string `json:"paths"`
	} `json:"compilerOptions"`
}

// DefaultAliases returns the single "src" -> "src/" alias.
func DefaultAliases() Aliases {
	return Aliases{
		bases:    map[string]string{DefaultAlias: DefaultAliasBase},
		Fallback: true,
	}
}

// LoadAliases reads compilerOptions.paths from a tsconfig file. Comments and
// trailing commas are accepted. A missing file, a parse failure or an empty
// paths object yields DefaultAliases and a warning, not an error.
func LoadAliases(path string) (Aliases, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		slog.Warn("tsconfig not found, using default module", "path", path, "module", DefaultAlias)
		return DefaultAliases(), nil
	}
	if err != nil {
		return Aliases{}, fmt.Errorf("failed to read tsconfig: %w", err)
	}

	aliases, err := ParseAliases(data)
	if err != nil {
		slog.Warn("tsconfig unreadable, using default module", "path", path, "error", err)
		return DefaultAliases(), nil
	}
	if len(aliases.bases) == 0 {
		slog.Warn("tsconfig declares no paths, using default module", "path", path)
		return DefaultAliases(), nil
	}
	return aliases, nil
}

// ParseAliases parses tsconfig content. The alias name is the key with "@"
// and "/*" removed; the base path is the first value with "*" removed.
func ParseAliases(data []byte) (Aliases, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return Aliases{}, fmt.Errorf("failed to parse tsconfig: %w", err)
	}

	var cfg tsConfig
	if err := json.Unmarshal(std, &cfg); err != nil {
		return Aliases{}, fmt.Errorf("failed to parse tsconfig: %w", err)
	}

	bases := make(map[string]string, len(cfg.CompilerOptions.Paths))
	for key, values := range cfg.CompilerOptions.Paths {
		if len(values) == 0 {
			continue
		}
		name := strings.ReplaceAll(strings.ReplaceAll(key, "@", ""), "/*", "")
		bases[name] = strings.ReplaceAll(values[0], "*", "")
	}
	return Aliases{bases: bases}, nil
}

// Names returns the alias names in sorted order.
func (a Aliases) Names() []string {
	names := make([]string, 0, len(a.bases))
	for name := range a.bases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Base returns the base path of the named alias.
func (a Aliases) Base(name string) (string, bool) {
	base, ok := a.bases[name]
	return base, ok
}

// Len returns the number of aliases.
func (a Aliases) Len() int { return len(a.bases) }

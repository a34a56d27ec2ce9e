// Package config provides settings loading for nolintfmt.
// Settings can be supplied via a YAML file (e.g. .nolintfmt.yaml), a TOML
// file (any path ending in .toml) or programmatically for use in tests.
// Command-line flags take precedence over anything loaded here.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/Wladim1r/nolintfmt/internal/checks"
	"github.com/Wladim1r/nolintfmt/internal/nolint"
)

// DefaultPath is the settings file looked up in the working directory.
const DefaultPath = ".nolintfmt.yaml"

// Config is the top-level settings structure for nolintfmt.
type Config struct {
	// ConfigFile is the .clang-tidy file used to list enabled checks.
	// Example YAML:
	//   config_file: tools/.clang-tidy
	ConfigFile string `yaml:"config_file" toml:"config_file"`

	// ClangTidyBinary is the clang-tidy executable. Empty means "find it on
	// PATH".
	ClangTidyBinary string `yaml:"clang_tidy_binary" toml:"clang_tidy_binary"`

	// Separator is written after each comma in a rewritten check list.
	// Example YAML:
	//   separator: ""
	Separator string `yaml:"separator" toml:"separator"`

	// ExtraChecks are treated as enabled in addition to whatever clang-tidy
	// reports, e.g. clang-diagnostic-error.
	ExtraChecks []string `yaml:"extra_checks" toml:"extra_checks"`

	// Diff prints a unified diff for every changed file.
	Diff bool `yaml:"diff" toml:"diff"`
}

// DefaultConfig returns the settings used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		ConfigFile: checks.DefaultConfigFile,
		Separator:  nolint.DefaultSeparator,
	}
}

// fileConfig mirrors Config with pointers so that a key present in the file
// with a zero value (separator: "") can be told apart from a missing key.
type fileConfig struct {
	ConfigFile      *string  `yaml:"config_file" toml:"config_file"`
	ClangTidyBinary *string  `yaml:"clang_tidy_binary" toml:"clang_tidy_binary"`
	Separator       *string  `yaml:"separator" toml:"separator"`
	ExtraChecks     []string `yaml:"extra_checks" toml:"extra_checks"`
	Diff            *bool    `yaml:"diff" toml:"diff"`
}

// Load reads a settings file from path and merges it on top of the default
// configuration. Missing fields keep their default values and a missing
// file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading settings %q: %w", path, err)
	}

	var file fileConfig
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &file)
	} else {
		err = yaml.Unmarshal(data, &file)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing settings %q: %w", path, err)
	}

	if file.ConfigFile != nil && *file.ConfigFile != "" {
		cfg.ConfigFile = *file.ConfigFile
	}
	if file.ClangTidyBinary != nil {
		cfg.ClangTidyBinary = *file.ClangTidyBinary
	}
	if file.Separator != nil {
		cfg.Separator = *file.Separator
	}
	for _, c := range file.ExtraChecks {
		if c = strings.TrimSpace(c); c != "" {
			cfg.ExtraChecks = append(cfg.ExtraChecks, c)
		}
	}
	if file.Diff != nil {
		cfg.Diff = *file.Diff
	}

	return cfg, nil
}

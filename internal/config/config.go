// Package config holds the run options, their TOML file representation,
// environment overrides and validation.
package config

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"corpus/internal/core/errors"
	"corpus/internal/output"
)

// Options is the full set of knobs for one run. TOML keys match the CLI
// flag names so a config file reads like a saved command line.
type Options struct {
	Directories       []string `toml:"directories"`
	Extensions        []string `toml:"extensions"`
	ExcludeExtensions []string `toml:"exclude_extensions"`
	Patterns          []string `toml:"glob"`
	ExcludePatterns   []string `toml:"exclude_patterns"`
	IncludeFiles      []string `toml:"include_files"`
	IgnoreDirs        []string `toml:"ignore_dirs"`

	IncludeAll    bool `toml:"all"`
	IncludeHidden bool `toml:"hidden"`
	IncludeBinary bool `toml:"include_binary"`
	MaxDepth      int  `toml:"max_depth"`

	Output       string `toml:"output"`
	Outline      bool   `toml:"outline"`
	NoDump       bool   `toml:"no_dump"`
	Manifest     bool   `toml:"manifest"`
	NoTree       bool   `toml:"no_tree"`
	CleanContent bool   `toml:"clean_content"`
	Archive      string `toml:"archive"`

	ReadRate   float64 `toml:"read_rate"`
	Verbose    bool    `toml:"verbose"`
	ShowConfig bool    `toml:"show_config"`
}

// Defaults returns the options used when neither file, environment nor
// flags say otherwise.
func Defaults() Options {
	return Options{
		Directories:  []string{"."},
		Output:       output.Console,
		CleanContent: true,
	}
}

// LoadFile decodes a TOML options file over base. Missing file is an error;
// callers decide whether a config file is required.
func LoadFile(path string, base Options) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, errors.Wrap(err, errors.CodeNotFound, "read config file").
			WithContext(errors.CtxPath, path)
	}

	cfg := base
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return base, errors.Wrap(err, errors.CodeValidationError, "parse config file").
			WithContext(errors.CtxPath, path)
	}
	normalize(&cfg)
	return cfg, nil
}

func normalize(cfg *Options) {
	cfg.Output = strings.TrimSpace(cfg.Output)
	if cfg.Output == "" {
		cfg.Output = output.Console
	}
	if len(cfg.Directories) == 0 {
		cfg.Directories = []string{"."}
	}
}

// HasInclusionCriteria reports whether any positive file selection exists.
func (o Options) HasInclusionCriteria() bool {
	return len(o.Extensions) > 0 || o.IncludeAll || len(o.Patterns) > 0 || len(o.IncludeFiles) > 0
}

// SpecificFilesOnly reports whether the run should skip directory scanning
// and process only the explicitly named files.
func (o Options) SpecificFilesOnly() bool {
	return len(o.IncludeFiles) > 0 && len(o.Extensions) == 0 && !o.IncludeAll && len(o.Patterns) == 0
}

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"corpus/internal/archive"
	"corpus/internal/discover"
	"corpus/internal/output"
)

// Violation is one validation finding. All violations are collected before
// reporting so a user fixes a config in one round trip.
type Violation struct {
	Field   string
	Message string
}

func (v Violation) Error() string {
	return fmt.Sprintf("%s: %s", v.Field, v.Message)
}

// Validate checks the options as a whole and returns every violation found.
// An empty slice means the options are runnable.
func Validate(cfg Options) []Violation {
	var violations []Violation
	add := func(field, format string, args ...any) {
		violations = append(violations, Violation{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if !cfg.HasInclusionCriteria() {
		add("criteria", "no inclusion criteria given; use extensions, all, glob or include_files")
	}

	for _, dir := range cfg.Directories {
		info, err := os.Stat(dir)
		switch {
		case err != nil:
			add("directories", "directory does not exist: %s", dir)
		case !info.IsDir():
			add("directories", "not a directory: %s", dir)
		default:
			if f, err := os.Open(dir); err != nil {
				add("directories", "directory not readable: %s", dir)
			} else {
				f.Close()
			}
		}
	}

	baseDir := "."
	if len(cfg.Directories) > 0 {
		baseDir = cfg.Directories[0]
	}
	for _, file := range cfg.IncludeFiles {
		if _, ok := discover.ResolveExplicitFile(file, baseDir); !ok {
			add("include_files", "file not found: %s", file)
		}
	}

	for _, pattern := range cfg.Patterns {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			add("glob", "invalid pattern %q: %v", pattern, err)
		}
	}
	for _, pattern := range cfg.ExcludePatterns {
		if _, err := glob.Compile(pattern); err != nil {
			add("exclude_patterns", "invalid pattern %q: %v", pattern, err)
		}
	}

	if cfg.MaxDepth < 0 {
		add("max_depth", "must be zero or positive, got %d", cfg.MaxDepth)
	}
	if cfg.ReadRate < 0 {
		add("read_rate", "must be zero or positive, got %g", cfg.ReadRate)
	}

	if cfg.NoDump && cfg.Manifest {
		add("manifest", "no_dump and manifest are mutually exclusive")
	}

	if cfg.Output != output.Console {
		if dir := filepath.Dir(cfg.Output); dir != "." {
			if info, err := os.Stat(dir); err == nil && !info.IsDir() {
				add("output", "parent of output path is not a directory: %s", dir)
			}
		}
	}

	if cfg.Archive != "" {
		if !archive.SupportedFormat(cfg.Archive) {
			add("archive", "unsupported format %q; supported: %s, %s",
				cfg.Archive, archive.FormatZip, archive.FormatTarGz)
		}
		if cfg.Output == output.Console {
			add("archive", "archiving requires a file output, not console")
		}
	}

	return violations
}

// FormatViolations renders the collected violations for the terminal.
func FormatViolations(violations []Violation) string {
	lines := make([]string, 0, len(violations)+1)
	lines = append(lines, fmt.Sprintf("configuration invalid (%d problems):", len(violations)))
	for _, v := range violations {
		lines = append(lines, "  - "+v.Error())
	}
	return strings.Join(lines, "\n")
}

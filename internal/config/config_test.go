package config

import (
	"os"
	"path/filepath"
	"testing"

	"corpus/internal/output"
)

func TestDefaults(t *testing.T) {
	t.Parallel()

	cfg := Defaults()
	if len(cfg.Directories) != 1 || cfg.Directories[0] != "." {
		t.Fatalf("unexpected default directories: %v", cfg.Directories)
	}
	if cfg.Output != output.Console {
		t.Fatalf("unexpected default output: %q", cfg.Output)
	}
	if !cfg.CleanContent {
		t.Fatal("clean_content should default on")
	}
	if cfg.HasInclusionCriteria() {
		t.Fatal("defaults should carry no inclusion criteria")
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "corpus.toml")
	content := `
directories = ["src", "lib"]
extensions = ["py", "go"]
ignore_dirs = ["vendor"]
hidden = true
max_depth = 3
output = "out.txt"
clean_content = false
archive = "zip"
read_rate = 2.5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFile(path, Defaults())
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(cfg.Directories) != 2 || cfg.Directories[0] != "src" || cfg.Directories[1] != "lib" {
		t.Fatalf("unexpected directories: %v", cfg.Directories)
	}
	if len(cfg.Extensions) != 2 || cfg.Extensions[0] != "py" {
		t.Fatalf("unexpected extensions: %v", cfg.Extensions)
	}
	if len(cfg.IgnoreDirs) != 1 || cfg.IgnoreDirs[0] != "vendor" {
		t.Fatalf("unexpected ignore_dirs: %v", cfg.IgnoreDirs)
	}
	if !cfg.IncludeHidden {
		t.Fatal("hidden not applied")
	}
	if cfg.MaxDepth != 3 {
		t.Fatalf("unexpected max_depth: %d", cfg.MaxDepth)
	}
	if cfg.Output != "out.txt" {
		t.Fatalf("unexpected output: %q", cfg.Output)
	}
	if cfg.CleanContent {
		t.Fatal("clean_content should be off")
	}
	if cfg.Archive != "zip" {
		t.Fatalf("unexpected archive: %q", cfg.Archive)
	}
	if cfg.ReadRate != 2.5 {
		t.Fatalf("unexpected read_rate: %g", cfg.ReadRate)
	}
}

func TestLoadFilePartialKeepsBase(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "corpus.toml")
	if err := os.WriteFile(path, []byte(`extensions = ["rs"]`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	base := Defaults()
	base.Verbose = true
	cfg, err := LoadFile(path, base)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if !cfg.Verbose {
		t.Fatal("base value lost by partial file")
	}
	if len(cfg.Directories) != 1 || cfg.Directories[0] != "." {
		t.Fatalf("unexpected directories: %v", cfg.Directories)
	}
	if cfg.Output != output.Console {
		t.Fatalf("unexpected output: %q", cfg.Output)
	}
}

func TestLoadFileMissing(t *testing.T) {
	t.Parallel()

	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.toml"), Defaults()); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadFileMalformed(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte(`directories = [`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadFile(path, Defaults()); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}

func TestSpecificFilesOnly(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		mutate   func(*Options)
		expected bool
	}{
		{
			name:     "files only",
			mutate:   func(o *Options) { o.IncludeFiles = []string{"a.py"} },
			expected: true,
		},
		{
			name: "files plus extensions",
			mutate: func(o *Options) {
				o.IncludeFiles = []string{"a.py"}
				o.Extensions = []string{"py"}
			},
			expected: false,
		},
		{
			name: "files plus all",
			mutate: func(o *Options) {
				o.IncludeFiles = []string{"a.py"}
				o.IncludeAll = true
			},
			expected: false,
		},
		{
			name: "files plus glob",
			mutate: func(o *Options) {
				o.IncludeFiles = []string{"a.py"}
				o.Patterns = []string{"*.md"}
			},
			expected: false,
		},
		{
			name:     "no files",
			mutate:   func(o *Options) { o.Extensions = []string{"py"} },
			expected: false,
		},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := Defaults()
			tc.mutate(&cfg)
			if got := cfg.SpecificFilesOnly(); got != tc.expected {
				t.Fatalf("expected %v, got %v", tc.expected, got)
			}
		})
	}
}

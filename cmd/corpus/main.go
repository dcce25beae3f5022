// # cmd/corpus/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"corpus/internal/app"
	"corpus/internal/config"
	"corpus/internal/output"
	"corpus/internal/ui"
)

var (
	configPath  = flag.String("config", "", "Path to TOML config file (optional)")
	extensions  = flag.String("extensions", "", "Comma separated extensions to include (e.g. py,go,md)")
	excludeExts = flag.String("exclude-extensions", "", "Comma separated extensions to exclude")
	globs       = flag.String("glob", "", "Comma separated glob patterns to include")
	excludePats = flag.String("exclude-patterns", "", "Comma separated glob patterns to exclude")
	files       = flag.String("include-files", "", "Comma separated specific files to include")
	ignoreDirs  = flag.String("ignore-dirs", "", "Comma separated directories to skip entirely")
	all         = flag.Bool("all", false, "Include all file types")
	hidden      = flag.Bool("hidden", false, "Include hidden files and directories")
	binary      = flag.Bool("include-binary", false, "Include binary files")
	maxDepth    = flag.Int("max-depth", 0, "Maximum traversal depth, 0 for unlimited")
	outputPath  = flag.String("output", output.Console, "Output file path, or stdio for console")
	outlineFlag = flag.Bool("outline", false, "Emit a declaration outline of source files")
	noDump      = flag.Bool("no-dump", false, "Skip file content concatenation")
	manifest    = flag.Bool("manifest", false, "Emit a file manifest instead of content")
	noTree      = flag.Bool("no-tree", false, "Skip the directory tree")
	noClean     = flag.Bool("no-clean", false, "Keep file content whitespace untouched")
	archiveFmt  = flag.String("archive", "", "Archive the output file: zip or tar.gz")
	readRate    = flag.Float64("read-rate", 0, "Limit file reads per second, 0 for unlimited")
	showConfig  = flag.Bool("show-config", false, "Echo the effective configuration into the output")
	uiFlag      = flag.Bool("ui", false, "Interactively select file types and ignored directories")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	version     = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("corpus v%s\n", VERSION)
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logOutput := os.Stderr
	logger := slog.New(slog.NewTextHandler(logOutput, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg := config.Defaults()
	if *configPath != "" {
		loaded, err := config.LoadFile(*configPath, cfg)
		if err != nil {
			logger.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	config.ApplyEnvOverrides(&cfg, logger)
	applyFlags(&cfg)

	if cfg.Verbose && logLevel != slog.LevelDebug {
		logger = slog.New(slog.NewTextHandler(logOutput, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		slog.SetDefault(logger)
	}

	if *uiFlag {
		selection, err := ui.Run(cfg.Directories, cfg.Extensions)
		if err != nil {
			logger.Error("interactive selection failed", "error", err)
			os.Exit(1)
		}
		if selection.Canceled {
			logger.Info("selection canceled")
			os.Exit(0)
		}
		cfg.Extensions = mergeUnique(cfg.Extensions, selection.Extensions)
		cfg.IgnoreDirs = mergeUnique(cfg.IgnoreDirs, selection.IgnoreDirs)
	}

	if violations := config.Validate(cfg); len(violations) > 0 {
		fmt.Fprintln(os.Stderr, config.FormatViolations(violations))
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := app.New(cfg, logger).Run(ctx)
	if err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}

	if result.FileCount == 0 {
		fmt.Println("No files found matching the specified criteria.")
		return
	}
	fmt.Printf("Processed %d files from %d directories -> %s\n",
		result.FileCount, result.DirCount, cfg.Output)

	if cfg.Output != output.Console {
		if stats, err := app.OutputStats(cfg.Output); err == nil {
			fmt.Printf("\nOutput Statistics:\n%s\n", stats)
		}
	}
	if result.ArchivePath != "" {
		fmt.Printf("Archive created: %s\n", result.ArchivePath)
	}
}

// applyFlags copies explicitly set flags over the config, so the command
// line wins over file and environment values.
func applyFlags(cfg *config.Options) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "extensions":
			cfg.Extensions = splitList(*extensions)
		case "exclude-extensions":
			cfg.ExcludeExtensions = splitList(*excludeExts)
		case "glob":
			cfg.Patterns = splitList(*globs)
		case "exclude-patterns":
			cfg.ExcludePatterns = splitList(*excludePats)
		case "include-files":
			cfg.IncludeFiles = splitList(*files)
		case "ignore-dirs":
			cfg.IgnoreDirs = splitList(*ignoreDirs)
		case "all":
			cfg.IncludeAll = *all
		case "hidden":
			cfg.IncludeHidden = *hidden
		case "include-binary":
			cfg.IncludeBinary = *binary
		case "max-depth":
			cfg.MaxDepth = *maxDepth
		case "output":
			cfg.Output = *outputPath
		case "outline":
			cfg.Outline = *outlineFlag
		case "no-dump":
			cfg.NoDump = *noDump
		case "manifest":
			cfg.Manifest = *manifest
		case "no-tree":
			cfg.NoTree = *noTree
		case "no-clean":
			cfg.CleanContent = !*noClean
		case "archive":
			cfg.Archive = *archiveFmt
		case "read-rate":
			cfg.ReadRate = *readRate
		case "show-config":
			cfg.ShowConfig = *showConfig
		case "verbose":
			cfg.Verbose = *verbose
		}
	})

	if args := flag.Args(); len(args) > 0 {
		cfg.Directories = args
	}
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func mergeUnique(base, extra []string) []string {
	seen := make(map[string]bool, len(base))
	for _, v := range base {
		seen[v] = true
	}
	for _, v := range extra {
		if !seen[v] {
			base = append(base, v)
			seen[v] = true
		}
	}
	return base
}

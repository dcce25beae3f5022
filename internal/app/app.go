// Package app orchestrates one run: discovery, tree rendering, outline
// extraction, content emission and archiving, all appended in order to a
// single output sink.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"corpus/internal/archive"
	"corpus/internal/config"
	"corpus/internal/discover"
	"corpus/internal/emit"
	"corpus/internal/outline"
	"corpus/internal/output"
	"corpus/internal/render"
	"corpus/internal/shared/observability"
	"corpus/internal/shared/util"
)

// App drives a single flattening run.
type App struct {
	cfg config.Options
	log *slog.Logger
}

func New(cfg config.Options, logger *slog.Logger) *App {
	return &App{cfg: cfg, log: logger}
}

// Result carries run outcomes the caller may want to report.
type Result struct {
	FileCount   int
	DirCount    int
	Stats       emit.Stats
	ArchivePath string
}

// Run executes the full pipeline. The output file (when not console) is
// always excluded from its own content.
func (a *App) Run(ctx context.Context) (*Result, error) {
	sink, err := output.NewSink(a.cfg.Output)
	if err != nil {
		return nil, err
	}
	defer sink.Close()
	defer observability.LogRunTotals(a.log)

	runID := strings.Split(uuid.NewString(), "-")[0]
	header := fmt.Sprintf("## Corpus: %s (run %s)\n",
		time.Now().Format("2006-01-02 15:04:05"), runID)
	if err := sink.WriteString(header); err != nil {
		return nil, err
	}

	if a.cfg.ShowConfig {
		if err := sink.WriteString(a.configEcho()); err != nil {
			return nil, err
		}
	}

	a.log.Info("starting file discovery")
	rs, err := discover.Discover(discover.Request{
		Roots:             a.cfg.Directories,
		IncludeExtensions: a.cfg.Extensions,
		ExcludeExtensions: a.cfg.ExcludeExtensions,
		IncludePatterns:   a.cfg.Patterns,
		ExcludePatterns:   a.cfg.ExcludePatterns,
		IncludeFiles:      a.cfg.IncludeFiles,
		IgnoreDirs:        a.cfg.IgnoreDirs,
		IncludeAll:        a.cfg.IncludeAll,
		IncludeHidden:     a.cfg.IncludeHidden,
		IncludeBinary:     a.cfg.IncludeBinary,
		MaxDepth:          a.cfg.MaxDepth,
		SpecificOnly:      a.cfg.SpecificFilesOnly(),
	}, a.log)
	if err != nil {
		return nil, err
	}

	if !sink.IsConsole() {
		if resolved, rerr := util.ResolvePath(a.cfg.Output); rerr == nil {
			rs = rs.Without(resolved)
		}
	}

	result := &Result{FileCount: rs.FileCount(), DirCount: rs.DirCount()}
	if result.FileCount == 0 {
		a.log.Warn("no files found matching criteria")
		if err := sink.WriteString("## No files found matching criteria\n"); err != nil {
			return nil, err
		}
		return result, nil
	}
	a.log.Info("discovery complete", "files", result.FileCount, "dirs", result.DirCount)

	if !a.cfg.NoTree {
		if err := sink.WriteString("## Directory Tree\n"); err != nil {
			return nil, err
		}
		if err := sink.WriteString(render.Tree(rs)); err != nil {
			return nil, err
		}
		if err := sink.WriteString("\n"); err != nil {
			return nil, err
		}
	}

	if a.cfg.Outline {
		if err := a.writeOutlines(sink, rs); err != nil {
			return nil, err
		}
	}

	if a.cfg.Manifest {
		if err := emit.WriteManifest(sink, rs); err != nil {
			return nil, err
		}
	} else if !a.cfg.NoDump {
		limiter := util.NewLimiter(a.cfg.ReadRate, 1)
		emitter := emit.NewEmitter(sink, a.cfg.CleanContent, limiter, a.log)
		if err := emitter.WriteFileData(ctx, rs); err != nil {
			return nil, err
		}
		result.Stats = emitter.Statistics()
	}

	if err := sink.Close(); err != nil {
		return nil, err
	}

	if a.cfg.Archive != "" && !sink.IsConsole() {
		a.log.Info("creating archive", "format", a.cfg.Archive)
		archivePath, err := archive.Create(sink.Path(), a.cfg.Archive)
		if err != nil {
			a.log.Warn("failed to create archive", "error", err)
		} else {
			result.ArchivePath = archivePath
		}
	}

	return result, nil
}

func (a *App) writeOutlines(sink *output.Sink, rs *discover.ResultSet) error {
	if err := sink.WriteString("## Code Outline\n"); err != nil {
		return err
	}

	parser := outline.NewParser(a.log)
	outlined := 0
	for _, entry := range rs.Files() {
		if !parser.Supports(entry.AbsolutePath) {
			continue
		}
		outlined++

		if err := sink.WriteString(fmt.Sprintf("\n### File: %s\n", entry.RelativePath)); err != nil {
			return err
		}

		content, _, err := emit.ReadText(entry.AbsolutePath)
		if err != nil {
			if werr := sink.WriteString(fmt.Sprintf("ERROR: Failed to process file: %v\n", err)); werr != nil {
				return werr
			}
			continue
		}

		fo, err := parser.OutlineFile(entry.AbsolutePath, []byte(content))
		if err != nil {
			if werr := sink.WriteString(fmt.Sprintf("ERROR: Failed to process file: %v\n", err)); werr != nil {
				return werr
			}
			continue
		}
		if err := sink.WriteString(outline.FormatOutline(fo) + "\n"); err != nil {
			return err
		}
	}

	if outlined == 0 {
		return sink.WriteString("\nNo outline-capable files found.\n\n")
	}
	return nil
}

// configEcho renders the effective options as an output section, mirroring
// what the run actually used rather than what any one source supplied.
func (a *App) configEcho() string {
	cwd, _ := os.Getwd()
	lines := []string{
		"## Configuration",
		fmt.Sprintf("Working Directory: %s", cwd),
		fmt.Sprintf("Output File: %s", a.cfg.Output),
		fmt.Sprintf("Target Directories: %s", strings.Join(a.cfg.Directories, ", ")),
		"",
	}

	var inclusion []string
	if a.cfg.IncludeAll {
		inclusion = append(inclusion, "All files")
	}
	if len(a.cfg.Extensions) > 0 {
		inclusion = append(inclusion, "Extensions: "+strings.Join(a.cfg.Extensions, ", "))
	}
	if len(a.cfg.Patterns) > 0 {
		inclusion = append(inclusion, "Include patterns: "+strings.Join(a.cfg.Patterns, ", "))
	}
	if len(a.cfg.IncludeFiles) > 0 {
		inclusion = append(inclusion, "Specific files: "+strings.Join(a.cfg.IncludeFiles, ", "))
	}
	if len(inclusion) > 0 {
		lines = append(lines, "### Inclusion Criteria:")
		for _, c := range inclusion {
			lines = append(lines, "- "+c)
		}
		lines = append(lines, "")
	}

	var exclusion []string
	if len(a.cfg.ExcludeExtensions) > 0 {
		exclusion = append(exclusion, "Extensions: "+strings.Join(a.cfg.ExcludeExtensions, ", "))
	}
	if len(a.cfg.ExcludePatterns) > 0 {
		exclusion = append(exclusion, "Patterns: "+strings.Join(a.cfg.ExcludePatterns, ", "))
	}
	if len(a.cfg.IgnoreDirs) > 0 {
		exclusion = append(exclusion, "Directories: "+strings.Join(a.cfg.IgnoreDirs, ", "))
	}
	if !a.cfg.IncludeBinary {
		exclusion = append(exclusion, "Binary files")
	}
	if !a.cfg.IncludeHidden {
		exclusion = append(exclusion, "Hidden files")
	}
	if len(exclusion) > 0 {
		lines = append(lines, "### Exclusion Criteria:")
		for _, c := range exclusion {
			lines = append(lines, "- "+c)
		}
		lines = append(lines, "")
	}

	var options []string
	if a.cfg.MaxDepth > 0 {
		options = append(options, fmt.Sprintf("Maximum depth: %d", a.cfg.MaxDepth))
	}
	if a.cfg.CleanContent {
		options = append(options, "Content cleaning: enabled")
	} else {
		options = append(options, "Content cleaning: disabled")
	}
	if a.cfg.NoTree {
		options = append(options, "Directory tree: disabled")
	} else {
		options = append(options, "Directory tree: enabled")
	}
	if a.cfg.Outline {
		options = append(options, "Code outline: enabled")
	}
	switch {
	case a.cfg.NoDump:
		options = append(options, "File concatenation: disabled")
	case a.cfg.Manifest:
		options = append(options, "File manifest: enabled (no content)")
	default:
		options = append(options, "File concatenation: enabled")
	}
	if a.cfg.Archive != "" {
		options = append(options, "Archive format: "+a.cfg.Archive)
	}
	lines = append(lines, "### Options:")
	for _, o := range options {
		lines = append(lines, "- "+o)
	}
	lines = append(lines, "", "")
	return strings.Join(lines, "\n")
}

// OutputStats reads a finished output file back and summarizes its size.
func OutputStats(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	text := string(data)

	lineCount := strings.Count(text, "\n")
	if text != "" && !strings.HasSuffix(text, "\n") {
		lineCount++
	}
	printer := message.NewPrinter(language.English)
	return printer.Sprintf("Lines: %d\nTokens: %d\nCharacters: %d",
		lineCount, emit.CountTokens(text), len(text)), nil
}

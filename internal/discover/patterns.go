package discover

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"corpus/internal/shared/util"
)

// GlobSearch finds files matching the given patterns under each root.
// Patterns without a "**" segment search recursively, as if prefixed with
// "**/". Matching changes what is searched, not what is accepted: every
// match still passes through the filter. Relative paths are resolved
// against the root that produced the match, like scan entries.
func GlobSearch(roots, patterns []string, filter *Filter, logger *slog.Logger) ([]PathEntry, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(patterns) == 0 {
		return nil, nil
	}

	compiled := make([]compiledPattern, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		// A "**/" prefix makes plain patterns search recursively, but the
		// "/" after "**" always consumes a separator, so the prefixed form
		// alone would never match entries at the top of the tree. Compile
		// the pattern as given too.
		searches := []string{p}
		if !strings.Contains(p, "**") {
			searches = append(searches, "**/"+p)
		}
		for _, search := range searches {
			g, err := glob.Compile(search, '/')
			if err != nil {
				return nil, fmt.Errorf("invalid glob pattern %q: %w", p, err)
			}
			compiled = append(compiled, compiledPattern{raw: p, g: g})
		}
	}

	var matches []PathEntry
	seen := make(map[string]struct{})

	for _, root := range roots {
		base, err := util.ResolvePath(root)
		if err != nil {
			logger.Warn("invalid directory for glob search", "root", root, "error", err)
			continue
		}
		if info, err := os.Stat(base); err != nil || !info.IsDir() {
			logger.Warn("invalid directory for glob search", "root", root)
			continue
		}
		if filter.ShouldIgnoreDirectory(base) {
			logger.Debug("skipping ignored root for glob search", "root", base)
			continue
		}

		relBase := filepath.Dir(base)
		walkErr := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				logger.Debug("glob walk error", "path", path, "error", err)
				return nil
			}
			if d.IsDir() {
				if path != base && filter.ShouldIgnoreDirectory(path) {
					return filepath.SkipDir
				}
				return nil
			}

			rel, err := filepath.Rel(base, path)
			if err != nil {
				return nil
			}
			rel = filepath.ToSlash(rel)

			matchedPattern := ""
			for _, c := range compiled {
				if c.g.Match(rel) {
					matchedPattern = c.raw
					break
				}
			}
			if matchedPattern == "" {
				return nil
			}

			resolved, err := util.ResolvePath(path)
			if err != nil {
				logger.Warn("cannot resolve glob match", "path", path, "error", err)
				return nil
			}
			if _, ok := seen[resolved]; ok {
				return nil
			}

			decision := filter.ShouldIncludeGlobMatch(resolved)
			if !decision.Include {
				logger.Debug("glob match excluded", "path", resolved, "reason", decision.String())
				return nil
			}

			seen[resolved] = struct{}{}
			relPath := relativeOrSelf(relBase, resolved)
			matches = append(matches, PathEntry{
				AbsolutePath: resolved,
				RelativePath: relPath,
				Depth:        strings.Count(relPath, string(filepath.Separator)) + 1,
				Kind:         KindFile,
			})
			logger.Debug("glob match added", "path", resolved, "pattern", matchedPattern)
			return nil
		})
		if walkErr != nil {
			logger.Error("glob search failed", "root", base, "error", walkErr)
		}
	}

	logger.Info("glob search complete", "matches", len(matches))
	return matches, nil
}

// ResolveExplicitFile tries the path as absolute, then relative to baseDir,
// then relative to the working directory, then as given; the first existing
// regular file wins.
func ResolveExplicitFile(file string, baseDir string) (string, bool) {
	var attempts []string
	if filepath.IsAbs(file) {
		attempts = []string{file}
	} else {
		cwd, _ := os.Getwd()
		attempts = []string{
			filepath.Join(baseDir, file),
			filepath.Join(cwd, file),
			file,
		}
	}
	for _, attempt := range attempts {
		resolved, err := util.ResolvePath(attempt)
		if err != nil {
			continue
		}
		if info, err := os.Stat(resolved); err == nil && info.Mode().IsRegular() {
			return resolved, true
		}
	}
	return "", false
}

// AddExplicitFiles appends explicitly named files to the entry list.
// Explicit files bypass the filter entirely but must exist and be readable.
// Already-included resolved paths are skipped silently.
func AddExplicitFiles(entries []PathEntry, files []string, baseDir string, logger *slog.Logger) []PathEntry {
	if logger == nil {
		logger = slog.Default()
	}
	if len(files) == 0 {
		return entries
	}

	existing := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		existing[e.AbsolutePath] = struct{}{}
	}

	added := 0
	for _, file := range files {
		file = strings.TrimSpace(file)
		if file == "" {
			continue
		}

		resolved, ok := ResolveExplicitFile(file, baseDir)
		if !ok {
			logger.Warn("cannot include file: not found or not a regular file", "file", file)
			continue
		}
		if err := checkReadable(resolved); err != nil {
			logger.Warn("cannot include file: not readable", "file", file, "error", err)
			continue
		}
		if _, ok := existing[resolved]; ok {
			logger.Debug("file already included", "file", resolved)
			continue
		}

		relPath := util.RelativeTo(baseDir, resolved)
		entries = append(entries, PathEntry{
			AbsolutePath: resolved,
			RelativePath: relPath,
			Depth:        strings.Count(relPath, string(filepath.Separator)) + 1,
			Kind:         KindFile,
		})
		existing[resolved] = struct{}{}
		added++
		logger.Info("added explicit file", "file", relPath)
	}

	if added > 0 {
		logger.Info("explicit files added", "count", added)
	}
	return entries
}

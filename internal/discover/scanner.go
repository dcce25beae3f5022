package discover

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"corpus/internal/shared/observability"
	"corpus/internal/shared/util"
)

// Scanner walks root directories depth-first, consulting the filter at every
// directory and file. Pruning decisions are made once per directory and
// never revisited. A shared seen-set keyed on resolved absolute paths
// prevents duplicate emission when roots overlap or symlinks cause revisits.
type Scanner struct {
	filter   *Filter
	maxDepth int // 0 = unlimited
	log      *slog.Logger
	seen     map[string]struct{}
}

func NewScanner(filter *Filter, maxDepth int, logger *slog.Logger) *Scanner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{
		filter:   filter,
		maxDepth: maxDepth,
		log:      logger,
		seen:     make(map[string]struct{}),
	}
}

// Scan traverses every root and returns accepted entries in scan order.
// Invalid roots are logged and skipped; they never abort the scan.
// Relative paths are taken against each root's parent directory, so a scan
// of "src" yields "src", "src/main.py", and so on.
func (s *Scanner) Scan(roots []string) []PathEntry {
	start := time.Now()
	defer func() {
		observability.ScanDuration.Observe(time.Since(start).Seconds())
	}()

	var entries []PathEntry
	for _, root := range roots {
		resolved, err := util.ResolvePath(root)
		if err != nil {
			s.log.Error("cannot resolve root directory", "root", root, "error", err)
			continue
		}
		info, err := os.Stat(resolved)
		if err != nil {
			s.log.Error("root directory does not exist", "root", root, "error", err)
			continue
		}
		if !info.IsDir() {
			s.log.Error("root path is not a directory", "root", root)
			continue
		}
		if s.filter.ShouldIgnoreDirectory(resolved) {
			s.log.Info("skipping ignored root", "root", resolved)
			continue
		}

		s.log.Info("scanning directory", "root", resolved)
		parent := filepath.Dir(resolved)
		entries = append(entries, s.walk(resolved, parent, 1)...)
	}

	fileCount := 0
	for _, e := range entries {
		if e.Kind == KindFile {
			fileCount++
		}
	}
	s.log.Info("scan complete", "files", fileCount, "dirs", len(entries)-fileCount)
	return entries
}

func (s *Scanner) walk(current, relBase string, depth int) []PathEntry {
	var entries []PathEntry

	// Depth bounds recursion into directories; files directly inside a
	// directory at the limit are still emitted.
	if s.maxDepth > 0 && depth > s.maxDepth {
		return entries
	}

	if _, ok := s.seen[current]; ok {
		return entries
	}
	s.seen[current] = struct{}{}

	entries = append(entries, PathEntry{
		AbsolutePath: current,
		RelativePath: relativeOrSelf(relBase, current),
		Depth:        depth,
		Kind:         KindDirectory,
	})

	children, err := os.ReadDir(current)
	if err != nil {
		// Permission errors mean zero children here; traversal continues
		// elsewhere.
		s.log.Error("cannot list directory", "path", current, "error", err)
		return entries
	}

	sort.SliceStable(children, func(i, j int) bool {
		di, dj := children[i].IsDir(), children[j].IsDir()
		if di != dj {
			return di // directories before files
		}
		return strings.ToLower(children[i].Name()) < strings.ToLower(children[j].Name())
	})

	for _, child := range children {
		childPath := filepath.Join(current, child.Name())
		resolved, err := util.ResolvePath(childPath)
		if err != nil {
			s.log.Warn("cannot resolve path", "path", childPath, "error", err)
			continue
		}
		if _, ok := s.seen[resolved]; ok {
			continue
		}

		// Stat (not Lstat) so symlinked entries classify by target; the
		// seen-set breaks symlink cycles.
		info, err := os.Stat(resolved)
		if err != nil {
			s.log.Warn("cannot stat path", "path", childPath, "error", err)
			continue
		}

		if info.IsDir() {
			if s.filter.ShouldIgnoreDirectory(resolved) {
				s.log.Debug("pruning directory", "path", resolved)
				observability.DirsPruned.Inc()
				continue
			}
			entries = append(entries, s.walk(resolved, relBase, depth+1)...)
			continue
		}

		decision := s.filter.ShouldIncludeFile(resolved)
		if !decision.Include {
			s.log.Debug("excluding file", "path", resolved, "reason", decision.String())
			observability.FilesExcluded.WithLabelValues(decision.Reason.MetricLabel()).Inc()
			continue
		}

		s.seen[resolved] = struct{}{}
		observability.FilesIncluded.Inc()
		s.log.Debug("including file", "path", resolved, "reason", decision.String())
		entries = append(entries, PathEntry{
			AbsolutePath: resolved,
			RelativePath: relativeOrSelf(relBase, resolved),
			Depth:        depth + 1,
			Kind:         KindFile,
		})
	}

	return entries
}

func relativeOrSelf(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return rel
}

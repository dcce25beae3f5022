package discover

import (
	"log/slog"
	"sort"

	"corpus/internal/shared/util"
)

// Request bundles every discovery input for one run.
type Request struct {
	Roots             []string
	IncludeExtensions []string
	ExcludeExtensions []string
	IncludePatterns   []string
	ExcludePatterns   []string
	IncludeFiles      []string
	IgnoreDirs        []string
	IncludeAll        bool
	IncludeHidden     bool
	IncludeBinary     bool
	MaxDepth          int // 0 = unlimited

	// SpecificOnly skips directory scanning and glob search entirely; only
	// the explicit IncludeFiles are considered.
	SpecificOnly bool
}

// Discover runs the full pipeline: directory scan, glob search, explicit
// files, dedup by resolved absolute path (first occurrence wins), and the
// final stable sort. The result is deterministic for identical filesystem
// state.
func Discover(req Request, logger *slog.Logger) (*ResultSet, error) {
	if logger == nil {
		logger = slog.Default()
	}
	roots := req.Roots
	if len(roots) == 0 {
		roots = []string{"."}
	}

	filter, err := NewFilter(FilterOptions{
		IncludeExtensions: req.IncludeExtensions,
		ExcludeExtensions: req.ExcludeExtensions,
		IncludePatterns:   req.IncludePatterns,
		ExcludePatterns:   req.ExcludePatterns,
		IgnoreDirs:        req.IgnoreDirs,
		IncludeAll:        req.IncludeAll,
		IncludeHidden:     req.IncludeHidden,
		IncludeBinary:     req.IncludeBinary,
	}, logger)
	if err != nil {
		return nil, err
	}

	baseDir, err := util.ResolvePath(roots[0])
	if err != nil {
		baseDir = roots[0]
	}

	var entries []PathEntry
	if req.SpecificOnly {
		logger.Info("specific-files mode: directory scanning disabled")
	} else {
		scanner := NewScanner(filter, req.MaxDepth, logger)
		entries = scanner.Scan(roots)

		globMatches, err := GlobSearch(roots, req.IncludePatterns, filter, logger)
		if err != nil {
			return nil, err
		}
		entries = append(entries, globMatches...)
	}

	entries = AddExplicitFiles(entries, req.IncludeFiles, baseDir, logger)

	// Dedup preserving first occurrence: scan entries outrank glob matches
	// outrank explicit files for the same resolved path.
	seen := make(map[string]struct{}, len(entries))
	deduped := entries[:0]
	for _, e := range entries {
		if _, ok := seen[e.AbsolutePath]; ok {
			continue
		}
		seen[e.AbsolutePath] = struct{}{}
		deduped = append(deduped, e)
	}

	// Canonical ordering: directories sort before files, then relative path
	// ascending, leaving the file subset in lexicographic order.
	sort.SliceStable(deduped, func(i, j int) bool {
		fi, fj := deduped[i].Kind == KindFile, deduped[j].Kind == KindFile
		if fi != fj {
			return !fi
		}
		return deduped[i].RelativePath < deduped[j].RelativePath
	})

	rs := &ResultSet{Entries: deduped}
	logger.Info("discovery complete", "files", rs.FileCount(), "dirs", rs.DirCount())
	return rs, nil
}

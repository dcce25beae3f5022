package discover

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"corpus/internal/detect"
	"corpus/internal/shared/util"
)

// Reason tags a filter decision. Display formatting lives in String so the
// decision logic never branches on text.
type Reason int

const (
	ReasonPassed Reason = iota
	ReasonIncludeAll
	ReasonHidden
	ReasonIgnoredDir
	ReasonExcludePattern
	ReasonExcludedExtension
	ReasonNoCriteria
	ReasonNoMatch
	ReasonBinary
	ReasonUnreadable
)

func (r Reason) String() string {
	switch r {
	case ReasonPassed:
		return "passed all filters"
	case ReasonIncludeAll:
		return "include_all enabled"
	case ReasonHidden:
		return "hidden file"
	case ReasonIgnoredDir:
		return "in ignored directory"
	case ReasonExcludePattern:
		return "matches exclude pattern"
	case ReasonExcludedExtension:
		return "excluded extension"
	case ReasonNoCriteria:
		return "no include criteria specified"
	case ReasonNoMatch:
		return "does not match any include criteria"
	case ReasonBinary:
		return "binary file (use -include-binary to include)"
	case ReasonUnreadable:
		return "file is not readable"
	default:
		return "unknown"
	}
}

// MetricLabel is the stable short form used for the exclusion counter.
func (r Reason) MetricLabel() string {
	switch r {
	case ReasonHidden:
		return "hidden"
	case ReasonIgnoredDir:
		return "ignored_dir"
	case ReasonExcludePattern:
		return "exclude_pattern"
	case ReasonExcludedExtension:
		return "excluded_extension"
	case ReasonNoCriteria:
		return "no_criteria"
	case ReasonNoMatch:
		return "no_match"
	case ReasonBinary:
		return "binary"
	case ReasonUnreadable:
		return "unreadable"
	default:
		return "other"
	}
}

// Decision is the outcome of one filter evaluation. Detail carries the
// matched pattern or extension when one applies.
type Decision struct {
	Include bool
	Reason  Reason
	Detail  string
}

func (d Decision) String() string {
	if d.Detail != "" {
		return fmt.Sprintf("%s (%s)", d.Reason, d.Detail)
	}
	return d.Reason.String()
}

// FilterOptions holds the raw inclusion/exclusion criteria for one run.
// Extensions may be given with or without a leading dot, any case.
// Patterns are shell globs matched against a path's base name only.
// IgnoreDirs entries are resolved before use and match by prefix, so whole
// subtrees are covered.
type FilterOptions struct {
	IncludeExtensions []string
	ExcludeExtensions []string
	IncludePatterns   []string
	ExcludePatterns   []string
	IgnoreDirs        []string
	IncludeAll        bool
	IncludeHidden     bool
	IncludeBinary     bool
}

type compiledPattern struct {
	raw string
	g   glob.Glob
}

// Filter answers inclusion questions for single paths, independent of
// traversal order.
type Filter struct {
	includeExts map[string]struct{}
	excludeExts map[string]struct{}
	includePats []compiledPattern
	excludePats []compiledPattern
	ignoreDirs  []string

	includeAll    bool
	includeHidden bool
	includeBinary bool

	log *slog.Logger
}

// NewFilter compiles the criteria. Invalid glob patterns are a hard error;
// ignore dirs that cannot be resolved are dropped with a warning.
func NewFilter(opts FilterOptions, logger *slog.Logger) (*Filter, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f := &Filter{
		includeExts:   normalizeExtensions(opts.IncludeExtensions),
		excludeExts:   normalizeExtensions(opts.ExcludeExtensions),
		includeAll:    opts.IncludeAll,
		includeHidden: opts.IncludeHidden,
		includeBinary: opts.IncludeBinary,
		log:           logger,
	}

	var err error
	if f.includePats, err = compilePatterns(opts.IncludePatterns); err != nil {
		return nil, err
	}
	if f.excludePats, err = compilePatterns(opts.ExcludePatterns); err != nil {
		return nil, err
	}

	for _, dir := range opts.IgnoreDirs {
		resolved, err := util.ResolvePath(dir)
		if err != nil {
			logger.Warn("cannot resolve ignore dir, skipping", "dir", dir, "error", err)
			continue
		}
		f.ignoreDirs = append(f.ignoreDirs, resolved)
	}

	logger.Debug("filter initialized",
		"include_extensions", util.SortedStringKeys(f.includeExts),
		"exclude_extensions", util.SortedStringKeys(f.excludeExts),
		"include_patterns", opts.IncludePatterns,
		"exclude_patterns", opts.ExcludePatterns,
		"include_all", f.includeAll,
		"include_hidden", f.includeHidden,
		"include_binary", f.includeBinary)

	return f, nil
}

// HasIncludeCriteria reports whether any positive criterion is configured.
func (f *Filter) HasIncludeCriteria() bool {
	return f.includeAll || len(f.includeExts) > 0 || len(f.includePats) > 0
}

// ShouldIgnoreDirectory reports whether an entire directory subtree is out
// of scope. This gates subtree pruning, so it stays cheap: a prefix check
// against the ignore list and the hidden-name rule, nothing else.
func (f *Filter) ShouldIgnoreDirectory(path string) bool {
	resolved, err := util.ResolvePath(path)
	if err != nil {
		f.log.Debug("cannot resolve directory, ignoring", "path", path, "error", err)
		return true
	}
	for _, ignored := range f.ignoreDirs {
		if util.HasPathPrefix(resolved, ignored) {
			return true
		}
	}
	if !f.includeHidden && util.IsHiddenName(filepath.Base(path)) {
		return true
	}
	return false
}

// ShouldIncludeFile evaluates the rules in fixed precedence order; the first
// matching rule wins. Exclude rules outrank include rules, so a file
// matching both an include extension and an exclude pattern is excluded.
func (f *Filter) ShouldIncludeFile(path string) Decision {
	return f.evaluate(path, true)
}

// ShouldIncludeGlobMatch applies the exclusion, binary and readability rules
// to a file whose inclusion was already established by a path glob match.
// Positive criteria are not re-checked: glob patterns match full relative
// paths, which the base-name criteria here could not reproduce.
func (f *Filter) ShouldIncludeGlobMatch(path string) Decision {
	return f.evaluate(path, false)
}

func (f *Filter) evaluate(path string, requireCriteria bool) Decision {
	base := filepath.Base(path)

	// 1. Hidden files.
	if !f.includeHidden && util.IsHiddenName(base) {
		return Decision{Reason: ReasonHidden}
	}

	// 2. Ignored directory subtrees.
	resolved, err := util.ResolvePath(path)
	if err == nil {
		for _, ignored := range f.ignoreDirs {
			if util.HasPathPrefix(resolved, ignored) {
				return Decision{Reason: ReasonIgnoredDir, Detail: ignored}
			}
		}
	}

	// 3. Exclude patterns, matched against the base name only; matching the
	// full path would catch parent directory names that happen to appear in
	// a temp path.
	for _, p := range f.excludePats {
		if p.g.Match(base) {
			return Decision{Reason: ReasonExcludePattern, Detail: p.raw}
		}
	}

	// 4. Exclude extensions.
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := f.excludeExts[ext]; ok {
		return Decision{Reason: ReasonExcludedExtension, Detail: ext}
	}

	// 5. include_all bypasses the positive criteria but not the binary rule.
	if f.includeAll {
		if !f.includeBinary && detect.IsBinaryFile(path) {
			return Decision{Reason: ReasonBinary}
		}
		return Decision{Include: true, Reason: ReasonIncludeAll}
	}

	// 6. Positive criteria: at least one pattern or extension must match.
	detail := ""
	if requireCriteria {
		if len(f.includePats) == 0 && len(f.includeExts) == 0 {
			return Decision{Reason: ReasonNoCriteria}
		}
		matched := false
		for _, p := range f.includePats {
			if p.g.Match(base) {
				matched = true
				detail = p.raw
				break
			}
		}
		if !matched {
			if _, ok := f.includeExts[ext]; ok {
				matched = true
				detail = ext
			}
		}
		if !matched {
			return Decision{Reason: ReasonNoMatch}
		}
	}

	// 7. Binary files.
	if !f.includeBinary && detect.IsBinaryFile(path) {
		return Decision{Reason: ReasonBinary}
	}

	// 8. Accessibility.
	if err := checkReadable(path); err != nil {
		return Decision{Reason: ReasonUnreadable, Detail: err.Error()}
	}

	return Decision{Include: true, Reason: ReasonPassed, Detail: detail}
}

func checkReadable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var one [1]byte
	if _, err := f.Read(one[:]); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// normalizeExtensions lowercases and dot-prefixes, so "py" and ".PY" are
// equivalent.
func normalizeExtensions(exts []string) map[string]struct{} {
	out := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out[strings.ToLower(ext)] = struct{}{}
	}
	return out
}

func compilePatterns(patterns []string) ([]compiledPattern, error) {
	out := make([]compiledPattern, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", p, err)
		}
		out = append(out, compiledPattern{raw: p, g: g})
	}
	return out, nil
}

package util

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ResolvePath returns the canonical absolute form of p with symlinks and
// relative segments eliminated. When the target does not exist (so symlinks
// cannot be evaluated) the cleaned absolute path is returned instead.
func ResolvePath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return filepath.Clean(abs), nil
}

// HasPathPrefix returns true when path equals prefix or lies inside it.
// Both arguments must already be absolute, resolved paths.
func HasPathPrefix(path, prefix string) bool {
	path = filepath.Clean(path)
	prefix = filepath.Clean(prefix)
	if path == prefix {
		return true
	}
	return strings.HasPrefix(path, prefix+string(filepath.Separator))
}

// IsHiddenName returns true for dotfile/dot-directory base names.
func IsHiddenName(name string) bool {
	return strings.HasPrefix(name, ".") && name != "." && name != ".."
}

// SortedStringKeys returns the map's keys in sorted order.
func SortedStringKeys[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// EnsureParentDir creates the parent directories of path (0755) so the
// file itself can be created.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

// RelativeTo returns path relative to base, or the base name of path when it
// lies outside base.
func RelativeTo(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.Base(path)
	}
	return rel
}

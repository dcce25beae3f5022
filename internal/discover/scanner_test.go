package discover

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func relPaths(entries []PathEntry, kind Kind) []string {
	var out []string
	for _, e := range entries {
		if e.Kind == kind {
			out = append(out, filepath.ToSlash(e.RelativePath))
		}
	}
	return out
}

func TestScanBasicProject(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "main.py", []byte("print('hi')\n"))
	writeTestFile(t, dir, filepath.Join("src", "utils.py"), []byte("x = 1\n"))
	writeTestFile(t, dir, "config.bin", []byte{0x00, 0x01})
	writeTestFile(t, dir, ".hidden.py", []byte("secret\n"))

	f := newTestFilter(t, FilterOptions{IncludeExtensions: []string{"py"}})
	scanner := NewScanner(f, 0, slog.Default())
	entries := scanner.Scan([]string{dir})

	root := filepath.Base(dir)
	wantFiles := []string{root + "/src/utils.py", root + "/main.py"}
	gotFiles := relPaths(entries, KindFile)
	if len(gotFiles) != len(wantFiles) {
		t.Fatalf("expected files %v, got %v", wantFiles, gotFiles)
	}
	for i := range wantFiles {
		if gotFiles[i] != wantFiles[i] {
			t.Fatalf("expected files %v, got %v", wantFiles, gotFiles)
		}
	}

	gotDirs := relPaths(entries, KindDirectory)
	wantDirs := []string{root, root + "/src"}
	if len(gotDirs) != len(wantDirs) {
		t.Fatalf("expected dirs %v, got %v", wantDirs, gotDirs)
	}
}

func TestScanMaxDepth(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "top.py", []byte("x\n"))
	writeTestFile(t, dir, filepath.Join("a", "mid.py"), []byte("x\n"))
	writeTestFile(t, dir, filepath.Join("a", "b", "deep.py"), []byte("x\n"))

	f := newTestFilter(t, FilterOptions{IncludeExtensions: []string{"py"}})

	// Depth 1 covers the root directory only; its files sit at depth 2.
	scanner := NewScanner(f, 1, slog.Default())
	entries := scanner.Scan([]string{dir})
	got := relPaths(entries, KindFile)
	root := filepath.Base(dir)
	if len(got) != 1 || got[0] != root+"/top.py" {
		t.Fatalf("expected only top.py at depth 1, got %v", got)
	}

	// Depth 2 reaches "a" but prunes "a/b".
	scanner = NewScanner(f, 2, slog.Default())
	entries = scanner.Scan([]string{dir})
	got = relPaths(entries, KindFile)
	want := []string{root + "/a/mid.py", root + "/top.py"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestScanPrunesIgnoredSubtree(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "keep.py", []byte("x\n"))
	writeTestFile(t, dir, filepath.Join("vendor", "skip.py"), []byte("x\n"))
	writeTestFile(t, dir, filepath.Join("vendor", "nested", "skip2.py"), []byte("x\n"))

	f := newTestFilter(t, FilterOptions{
		IncludeExtensions: []string{"py"},
		IgnoreDirs:        []string{filepath.Join(dir, "vendor")},
	})
	scanner := NewScanner(f, 0, slog.Default())
	entries := scanner.Scan([]string{dir})

	got := relPaths(entries, KindFile)
	root := filepath.Base(dir)
	if len(got) != 1 || got[0] != root+"/keep.py" {
		t.Fatalf("expected pruned subtree, got %v", got)
	}
}

func TestScanOverlappingRootsDeduplicate(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, filepath.Join("src", "lib.py"), []byte("x\n"))

	f := newTestFilter(t, FilterOptions{IncludeExtensions: []string{"py"}})
	scanner := NewScanner(f, 0, slog.Default())
	entries := scanner.Scan([]string{dir, filepath.Join(dir, "src")})

	count := 0
	for _, e := range entries {
		if e.Kind == KindFile {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected one file across overlapping roots, got %d", count)
	}
}

func TestScanMissingRootSkipped(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, "a.py", []byte("x\n"))

	f := newTestFilter(t, FilterOptions{IncludeExtensions: []string{"py"}})
	scanner := NewScanner(f, 0, slog.Default())
	entries := scanner.Scan([]string{filepath.Join(dir, "missing"), dir})

	if got := relPaths(entries, KindFile); len(got) != 1 {
		t.Fatalf("expected scan to continue past missing root, got %v", got)
	}
}

func TestScanSymlinkCycle(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, dir, filepath.Join("sub", "a.py"), []byte("x\n"))
	if err := os.Symlink(dir, filepath.Join(dir, "sub", "loop")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	f := newTestFilter(t, FilterOptions{IncludeExtensions: []string{"py"}})
	scanner := NewScanner(f, 0, slog.Default())
	entries := scanner.Scan([]string{dir})

	if got := relPaths(entries, KindFile); len(got) != 1 {
		t.Fatalf("expected cycle to terminate with one file, got %v", got)
	}
}

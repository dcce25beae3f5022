package render

import (
	"testing"

	"corpus/internal/discover"
)

func fileEntry(abs string) discover.PathEntry {
	return discover.PathEntry{AbsolutePath: abs, Kind: discover.KindFile}
}

func TestTreeEmpty(t *testing.T) {
	t.Parallel()

	rs := &discover.ResultSet{}
	if got := Tree(rs); got != "(No files found)\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestTreeSingleFile(t *testing.T) {
	t.Parallel()

	rs := &discover.ResultSet{Entries: []discover.PathEntry{
		fileEntry("/proj/main.py"),
	}}

	want := "proj/\n└── main.py\n"
	if got := Tree(rs); got != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestTreeNestedLayout(t *testing.T) {
	t.Parallel()

	rs := &discover.ResultSet{Entries: []discover.PathEntry{
		fileEntry("/proj/main.py"),
		fileEntry("/proj/src/utils.py"),
		fileEntry("/proj/src/deep/x.py"),
	}}

	want := "proj/\n" +
		"├── src/\n" +
		"│   ├── deep/\n" +
		"│   │   └── x.py\n" +
		"│   └── utils.py\n" +
		"└── main.py\n"
	if got := Tree(rs); got != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestTreeCommonAncestor(t *testing.T) {
	t.Parallel()

	// Files from sibling directories share /work as deepest ancestor.
	rs := &discover.ResultSet{Entries: []discover.PathEntry{
		fileEntry("/work/alpha/a.py"),
		fileEntry("/work/beta/b.py"),
	}}

	want := "work/\n" +
		"├── alpha/\n" +
		"│   └── a.py\n" +
		"└── beta/\n" +
		"    └── b.py\n"
	if got := Tree(rs); got != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestTreeOrdersDirectoriesFirst(t *testing.T) {
	t.Parallel()

	rs := &discover.ResultSet{Entries: []discover.PathEntry{
		fileEntry("/p/aaa.txt"),
		fileEntry("/p/zdir/inner.txt"),
		fileEntry("/p/Bdir/inner.txt"),
	}}

	want := "p/\n" +
		"├── Bdir/\n" +
		"│   └── inner.txt\n" +
		"├── zdir/\n" +
		"│   └── inner.txt\n" +
		"└── aaa.txt\n"
	if got := Tree(rs); got != want {
		t.Fatalf("expected:\n%s\ngot:\n%s", want, got)
	}
}

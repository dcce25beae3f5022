package emit

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"corpus/internal/discover"
	"corpus/internal/output"
)

func runEmitter(t *testing.T, rs *discover.ResultSet, clean bool) (string, Stats) {
	t.Helper()

	outPath := filepath.Join(t.TempDir(), "out.txt")
	sink, err := output.NewSink(outPath)
	if err != nil {
		t.Fatalf("NewSink: %v", err)
	}

	emitter := NewEmitter(sink, clean, nil, slog.Default())
	if err := emitter.WriteFileData(context.Background(), rs); err != nil {
		t.Fatalf("WriteFileData: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	return string(data), emitter.Statistics()
}

func entryFor(t *testing.T, dir, name, content string) discover.PathEntry {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return discover.PathEntry{AbsolutePath: path, RelativePath: name, Kind: discover.KindFile}
}

func TestWriteFileData(t *testing.T) {
	dir := t.TempDir()
	rs := &discover.ResultSet{Entries: []discover.PathEntry{
		entryFor(t, dir, "a.py", "x = 1   \n\n\n\n\ny = 2\n"),
	}}

	got, stats := runEmitter(t, rs, true)

	if !strings.Contains(got, "## File Data\n") {
		t.Fatalf("missing section heading:\n%s", got)
	}
	if !strings.Contains(got, "--- File: a.py\n") {
		t.Fatalf("missing file header:\n%s", got)
	}
	if !strings.Contains(got, "--- Characters: ") || !strings.Contains(got, "--- Token Count: ") {
		t.Fatalf("missing counters:\n%s", got)
	}
	// Cleaning caps the blank run.
	if !strings.Contains(got, "x = 1\n\n\ny = 2\n") {
		t.Fatalf("content not cleaned:\n%s", got)
	}
	if !strings.Contains(got, "## Concatenation Summary\n") {
		t.Fatalf("missing summary:\n%s", got)
	}
	if !strings.Contains(got, "Files processed: 1\n") || !strings.Contains(got, "Files skipped: 0\n") {
		t.Fatalf("wrong summary counts:\n%s", got)
	}
	if !strings.Contains(got, "Completed at: ") {
		t.Fatalf("missing completion timestamp:\n%s", got)
	}

	if stats.Processed != 1 || stats.Skipped != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.Characters == 0 || stats.Tokens == 0 {
		t.Fatalf("expected nonzero totals: %+v", stats)
	}
}

func TestWriteFileDataEmpty(t *testing.T) {
	got, _ := runEmitter(t, &discover.ResultSet{}, true)
	if !strings.Contains(got, "## File Data\n(No files found)\n") {
		t.Fatalf("missing placeholder:\n%s", got)
	}
}

func TestWriteFileDataBinarySkipped(t *testing.T) {
	dir := t.TempDir()
	binPath := filepath.Join(dir, "blob.dat")
	if err := os.WriteFile(binPath, []byte{0x00, 0x01, 0x02}, 0o644); err != nil {
		t.Fatal(err)
	}

	rs := &discover.ResultSet{Entries: []discover.PathEntry{
		{AbsolutePath: binPath, RelativePath: "blob.dat", Kind: discover.KindFile},
	}}
	got, stats := runEmitter(t, rs, true)

	if !strings.Contains(got, "--- File: blob.dat\n--- Error: Binary file\n--- Content: <Unable to read file>\n") {
		t.Fatalf("missing binary error block:\n%s", got)
	}
	if stats.Skipped != 1 || stats.Processed != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if len(stats.Errors) != 1 {
		t.Fatalf("expected one recorded error, got %v", stats.Errors)
	}
}

func TestWriteFileDataUnreadable(t *testing.T) {
	dir := t.TempDir()
	rs := &discover.ResultSet{Entries: []discover.PathEntry{
		{AbsolutePath: filepath.Join(dir, "gone.txt"), RelativePath: "gone.txt", Kind: discover.KindFile},
		entryFor(t, dir, "ok.txt", "fine\n"),
	}}

	got, stats := runEmitter(t, rs, true)

	if !strings.Contains(got, "--- File: gone.txt\n--- Error: ") {
		t.Fatalf("missing error block:\n%s", got)
	}
	if !strings.Contains(got, "--- File: ok.txt\n") {
		t.Fatalf("later files must still be emitted:\n%s", got)
	}
	if stats.Processed != 1 || stats.Skipped != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if !strings.Contains(got, "### Errors (1):\n") {
		t.Fatalf("missing error section:\n%s", got)
	}
}

func TestWriteFileDataNoClean(t *testing.T) {
	dir := t.TempDir()
	rs := &discover.ResultSet{Entries: []discover.PathEntry{
		entryFor(t, dir, "raw.txt", "line   \n"),
	}}

	got, _ := runEmitter(t, rs, false)
	if !strings.Contains(got, "line   \n") {
		t.Fatalf("content must stay untouched without cleaning:\n%s", got)
	}
}

func TestWriteManifest(t *testing.T) {
	dir := t.TempDir()
	textEntry := entryFor(t, dir, "a.txt", "hello\n")
	binPath := filepath.Join(dir, "blob.dat")
	if err := os.WriteFile(binPath, []byte{0x00}, 0o644); err != nil {
		t.Fatal(err)
	}

	rs := &discover.ResultSet{Entries: []discover.PathEntry{
		textEntry,
		{AbsolutePath: binPath, RelativePath: "blob.dat", Kind: discover.KindFile},
	}}

	outPath := filepath.Join(t.TempDir(), "out.txt")
	sink, err := output.NewSink(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if err := WriteManifest(sink, rs); err != nil {
		t.Fatalf("WriteManifest: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	got := string(data)

	if !strings.Contains(got, "## File Manifest\n") {
		t.Fatalf("missing heading:\n%s", got)
	}
	if !strings.Contains(got, "  1. a.txt (6 bytes)\n") {
		t.Fatalf("missing first entry:\n%s", got)
	}
	if !strings.Contains(got, "  2. blob.dat (1 bytes) [BINARY]\n") {
		t.Fatalf("missing binary flag:\n%s", got)
	}
	if !strings.Contains(got, "Total: 2 files, 7 bytes\n") {
		t.Fatalf("missing total:\n%s", got)
	}
}

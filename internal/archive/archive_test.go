package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeSource(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "project.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	return path
}

func TestCreateZip(t *testing.T) {
	t.Parallel()

	src := writeSource(t, "flattened output\n")
	archivePath, err := Create(src, FormatZip)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if archivePath != src+".zip" {
		t.Fatalf("unexpected archive path %q", archivePath)
	}
	if _, err := os.Stat(src); err != nil {
		t.Fatalf("original file removed: %v", err)
	}

	r, err := zip.OpenReader(archivePath)
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	defer r.Close()

	if len(r.File) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(r.File))
	}
	entry := r.File[0]
	if entry.Name != "project.txt" {
		t.Fatalf("unexpected entry name %q", entry.Name)
	}
	rc, err := entry.Open()
	if err != nil {
		t.Fatalf("open entry: %v", err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read entry: %v", err)
	}
	if string(data) != "flattened output\n" {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestCreateTarGz(t *testing.T) {
	t.Parallel()

	src := writeSource(t, "tarred output\n")
	archivePath, err := Create(src, FormatTarGz)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if archivePath != src+".tar.gz" {
		t.Fatalf("unexpected archive path %q", archivePath)
	}

	f, err := os.Open(archivePath)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer f.Close()

	gr, err := gzip.NewReader(f)
	if err != nil {
		t.Fatalf("gzip reader: %v", err)
	}
	defer gr.Close()

	tr := tar.NewReader(gr)
	header, err := tr.Next()
	if err != nil {
		t.Fatalf("tar next: %v", err)
	}
	if header.Name != "project.txt" {
		t.Fatalf("unexpected entry name %q", header.Name)
	}
	data, err := io.ReadAll(tr)
	if err != nil {
		t.Fatalf("read entry: %v", err)
	}
	if string(data) != "tarred output\n" {
		t.Fatalf("unexpected content %q", data)
	}
	if _, err := tr.Next(); err != io.EOF {
		t.Fatalf("expected single entry, got %v", err)
	}
}

func TestCreateUnsupportedFormat(t *testing.T) {
	t.Parallel()

	src := writeSource(t, "x")
	if _, err := Create(src, "rar"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestCreateMissingFile(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "nope.txt")
	if _, err := Create(missing, FormatZip); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestSupportedFormat(t *testing.T) {
	t.Parallel()

	cases := []struct {
		format   string
		expected bool
	}{
		{format: "zip", expected: true},
		{format: "tar.gz", expected: true},
		{format: "tgz", expected: false},
		{format: "", expected: false},
	}
	for _, tc := range cases {
		if got := SupportedFormat(tc.format); got != tc.expected {
			t.Fatalf("SupportedFormat(%q): expected %v, got %v", tc.format, tc.expected, got)
		}
	}
}

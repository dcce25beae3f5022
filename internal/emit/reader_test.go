package emit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"
)

func writeBytes(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadTextUTF8(t *testing.T) {
	dir := t.TempDir()
	path := writeBytes(t, dir, "plain.txt", []byte("héllo wörld\n"))

	content, encoding, err := ReadText(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if encoding != "utf-8" {
		t.Fatalf("expected utf-8, got %q", encoding)
	}
	if content != "héllo wörld\n" {
		t.Fatalf("unexpected content: %q", content)
	}
}

func TestReadTextBOM(t *testing.T) {
	dir := t.TempDir()
	path := writeBytes(t, dir, "bom.txt", append([]byte{0xEF, 0xBB, 0xBF}, []byte("data")...))

	content, encoding, err := ReadText(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if encoding != "utf-8-sig" {
		t.Fatalf("expected utf-8-sig, got %q", encoding)
	}
	if content != "data" {
		t.Fatalf("BOM must be stripped, got %q", content)
	}
}

func TestReadTextLatin1(t *testing.T) {
	dir := t.TempDir()
	// "café" in ISO 8859-1: é is the single byte 0xE9, invalid as UTF-8.
	path := writeBytes(t, dir, "latin.txt", []byte{'c', 'a', 'f', 0xE9})

	content, encoding, err := ReadText(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if encoding != "latin-1" {
		t.Fatalf("expected latin-1, got %q", encoding)
	}
	if content != "café" {
		t.Fatalf("expected decoded text, got %q", content)
	}
}

func TestReadTextEmpty(t *testing.T) {
	dir := t.TempDir()
	path := writeBytes(t, dir, "empty.txt", nil)

	content, encoding, err := ReadText(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != "" || encoding != "utf-8" {
		t.Fatalf("expected empty utf-8 content, got %q (%s)", content, encoding)
	}
}

func TestReadTextMissing(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := ReadText(filepath.Join(dir, "missing.txt")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestReadTextAlwaysValidUTF8(t *testing.T) {
	dir := t.TempDir()
	raw := []byte{0x80, 0xFF, 0x00, 'a', 'b'}
	path := writeBytes(t, dir, "junk.bin", raw)

	content, _, err := ReadText(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(content, "ab") {
		t.Fatalf("expected salvaged content, got %q", content)
	}
	if !utf8.ValidString(content) {
		t.Fatal("decoded content must be valid UTF-8")
	}
}

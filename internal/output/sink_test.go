package output

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewSinkCreatesParentDirs(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "deep", "nested", "out.txt")
	sink, err := NewSink(path)
	if err != nil {
		t.Fatalf("NewSink: %v", err)
	}
	if sink.IsConsole() {
		t.Fatal("file sink reported as console")
	}
	if err := sink.WriteString("hello\n"); err != nil {
		t.Fatalf("WriteString: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(data) != "hello\n" {
		t.Fatalf("unexpected content %q", data)
	}
}

func TestNewSinkConsole(t *testing.T) {
	t.Parallel()

	sink, err := NewSink(Console)
	if err != nil {
		t.Fatalf("NewSink: %v", err)
	}
	if !sink.IsConsole() {
		t.Fatal("console sentinel not recognized")
	}
	if sink.Path() != Console {
		t.Fatalf("unexpected path %q", sink.Path())
	}
}

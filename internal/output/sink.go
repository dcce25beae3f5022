// Package output provides the single write target a run appends to: either
// a file on disk or the console. All producing components write to the same
// sink in strict sequence, so ordering is by construction.
package output

import (
	"bufio"
	"os"

	cerrors "corpus/internal/core/errors"
	"corpus/internal/shared/util"
)

// Console is the sentinel path that routes output to stdout.
const Console = "stdio"

type Sink struct {
	path string
	file *os.File
	buf  *bufio.Writer
}

// NewSink opens (and truncates) the output file, creating parent
// directories as needed. The Console sentinel writes to stdout.
func NewSink(path string) (*Sink, error) {
	if path == Console {
		return &Sink{path: path, buf: bufio.NewWriter(os.Stdout)}, nil
	}

	if err := util.EnsureParentDir(path); err != nil {
		return nil, cerrors.Wrap(err, cerrors.CodeUnwritable, "cannot create output directory")
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, cerrors.Wrap(err, cerrors.CodeUnwritable, "cannot create output file")
	}
	return &Sink{path: path, file: f, buf: bufio.NewWriter(f)}, nil
}

func (s *Sink) WriteString(data string) error {
	_, err := s.buf.WriteString(data)
	return err
}

// Flush pushes buffered data through without closing the sink.
func (s *Sink) Flush() error {
	return s.buf.Flush()
}

func (s *Sink) Close() error {
	if err := s.buf.Flush(); err != nil {
		return err
	}
	if s.file != nil {
		return s.file.Close()
	}
	return nil
}

func (s *Sink) Path() string    { return s.path }
func (s *Sink) IsConsole() bool { return s.path == Console }

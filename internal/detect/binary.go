// Package detect classifies files as binary or text. The classifier combines
// a known-binary extension set with a content sniff of the first 8 KiB: a
// null byte, or more than 30% bytes outside the printable ASCII range plus
// common control characters, marks the file binary. Errors classify as
// binary so unreadable files are never dumped into a text artifact.
package detect

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
)

const sniffLen = 8192

// nonTextThreshold is the fraction of non-text bytes above which content is
// considered binary.
const nonTextThreshold = 0.30

var binaryExtensions = map[string]struct{}{
	".exe": {}, ".dll": {}, ".so": {}, ".dylib": {}, ".bin": {}, ".obj": {},
	".o": {}, ".a": {}, ".lib": {},
	".zip": {}, ".tar": {}, ".gz": {}, ".bz2": {}, ".xz": {}, ".7z": {}, ".rar": {},
	".jpg": {}, ".jpeg": {}, ".png": {}, ".gif": {}, ".bmp": {}, ".ico": {},
	".svg": {}, ".webp": {},
	".mp3": {}, ".mp4": {}, ".avi": {}, ".mov": {}, ".wmv": {}, ".flv": {},
	".mkv": {}, ".wav": {},
	".pdf": {}, ".doc": {}, ".docx": {}, ".xls": {}, ".xlsx": {}, ".ppt": {}, ".pptx": {},
	".pyc": {}, ".pyo": {}, ".pyd": {}, ".class": {}, ".jar": {},
}

// IsBinaryExtension reports whether the path's suffix is a known binary type.
func IsBinaryExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := binaryExtensions[ext]
	return ok
}

// IsBinaryContent applies the byte heuristics to a content sample.
func IsBinaryContent(chunk []byte) bool {
	if len(chunk) == 0 {
		return false
	}
	if bytes.IndexByte(chunk, 0) >= 0 {
		return true
	}
	nonText := 0
	for _, b := range chunk {
		if b >= 32 && b < 127 {
			continue
		}
		switch b {
		case '\n', '\r', '\t', '\f', '\b':
			continue
		}
		nonText++
	}
	return float64(nonText)/float64(len(chunk)) > nonTextThreshold
}

// IsBinaryFile reports whether the file at path appears to be binary.
// Any read error classifies the file as binary.
func IsBinaryFile(path string) bool {
	if IsBinaryExtension(path) {
		return true
	}

	f, err := os.Open(path)
	if err != nil {
		return true
	}
	defer f.Close()

	chunk := make([]byte, sniffLen)
	n, err := f.Read(chunk)
	if n == 0 {
		// Empty files are text; any other zero-byte read is suspect.
		return err != nil && !errors.Is(err, io.EOF)
	}
	return IsBinaryContent(chunk[:n])
}

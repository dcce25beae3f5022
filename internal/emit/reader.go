package emit

import (
	"bytes"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"corpus/internal/core/errors"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadText reads a file and decodes it to valid UTF-8. Encodings are tried
// in a fixed order; the returned encoding name records which one succeeded.
// A file that defeats every decoder is salvaged with replacement runes so a
// single odd file never aborts a run.
func ReadText(path string) (content string, encoding string, err error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", "", errors.Wrap(err, errors.CodeUnreadable, "read file").
			WithContext(errors.CtxPath, path)
	}

	if bytes.HasPrefix(raw, utf8BOM) {
		raw = raw[len(utf8BOM):]
		if utf8.Valid(raw) {
			return string(raw), "utf-8-sig", nil
		}
	} else if utf8.Valid(raw) {
		return string(raw), "utf-8", nil
	}

	if decoded, decErr := charmap.ISO8859_1.NewDecoder().Bytes(raw); decErr == nil {
		return string(decoded), "latin-1", nil
	}
	if decoded, decErr := charmap.Windows1252.NewDecoder().Bytes(raw); decErr == nil {
		return string(decoded), "windows-1252", nil
	}

	return strings.ToValidUTF8(string(raw), "�"), "replacement", nil
}

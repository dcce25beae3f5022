package emit

import (
	"fmt"
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"corpus/internal/detect"
	"corpus/internal/discover"
	"corpus/internal/output"
)

// WriteManifest lists every file with its size, without emitting content.
// Binary files are flagged so a reader knows why their content would have
// been skipped.
func WriteManifest(sink *output.Sink, rs *discover.ResultSet) error {
	if err := sink.WriteString("## File Manifest\n"); err != nil {
		return err
	}

	files := rs.Files()
	if len(files) == 0 {
		return sink.WriteString("(No files found)\n\n")
	}

	printer := message.NewPrinter(language.English)
	totalSize := int64(0)
	for i, entry := range files {
		info, err := os.Stat(entry.AbsolutePath)
		if err != nil {
			line := fmt.Sprintf("%3d. %s (ERROR: %v)\n", i+1, entry.RelativePath, err)
			if werr := sink.WriteString(line); werr != nil {
				return werr
			}
			continue
		}
		totalSize += info.Size()

		indicator := ""
		if detect.IsBinaryFile(entry.AbsolutePath) {
			indicator = " [BINARY]"
		}
		line := fmt.Sprintf("%3d. %s (%s bytes)%s\n",
			i+1, entry.RelativePath, printer.Sprintf("%d", info.Size()), indicator)
		if err := sink.WriteString(line); err != nil {
			return err
		}
	}

	return sink.WriteString(fmt.Sprintf("\nTotal: %d files, %s bytes\n\n",
		len(files), printer.Sprintf("%d", totalSize)))
}

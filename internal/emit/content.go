package emit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"corpus/internal/detect"
	"corpus/internal/discover"
	"corpus/internal/output"
	"corpus/internal/shared/observability"
	"corpus/internal/shared/util"
)

const maxReportedErrors = 10

// Stats accumulates emission totals for the run summary.
type Stats struct {
	Processed  int
	Skipped    int
	Characters int
	Tokens     int
	Errors     []string
}

// Emitter writes the content section of a run: per-file blocks with
// character and token counts, then a summary. Files that cannot be read are
// reported inline and never abort the batch.
type Emitter struct {
	sink    *output.Sink
	clean   bool
	limiter *util.Limiter
	log     *slog.Logger
	printer *message.Printer
	stats   Stats
}

func NewEmitter(sink *output.Sink, clean bool, limiter *util.Limiter, logger *slog.Logger) *Emitter {
	return &Emitter{
		sink:    sink,
		clean:   clean,
		limiter: limiter,
		log:     logger,
		printer: message.NewPrinter(language.English),
	}
}

// WriteFileData emits every file of the result set under a "## File Data"
// heading, followed by the concatenation summary.
func (e *Emitter) WriteFileData(ctx context.Context, rs *discover.ResultSet) error {
	files := rs.Files()
	if len(files) == 0 {
		return e.sink.WriteString("## File Data\n(No files found)\n\n")
	}

	if err := e.sink.WriteString("## File Data\n"); err != nil {
		return err
	}

	for i, entry := range files {
		if err := e.limiter.Wait(ctx, 1); err != nil {
			return err
		}
		if err := e.emitOne(entry); err != nil {
			return err
		}
		if (i+1)%10 == 0 || i+1 == len(files) {
			e.log.Debug("content progress", "done", i+1, "total", len(files))
		}
	}

	return e.writeSummary()
}

func (e *Emitter) emitOne(entry discover.PathEntry) error {
	// The discovery filter already screened binaries, but include_all and
	// explicit file requests can smuggle them through.
	if detect.IsBinaryFile(entry.AbsolutePath) {
		e.recordError(fmt.Sprintf("Binary file skipped: %s", entry.RelativePath))
		e.stats.Skipped++
		return e.writeFileError(entry.RelativePath, "Binary file")
	}

	content, encoding, err := ReadText(entry.AbsolutePath)
	if err != nil {
		e.recordError(fmt.Sprintf("Error processing %s: %v", entry.RelativePath, err))
		e.stats.Skipped++
		return e.writeFileError(entry.RelativePath, err.Error())
	}
	if encoding != "utf-8" {
		e.log.Debug("non-utf8 source decoded", "path", entry.RelativePath, "encoding", encoding)
	}

	if e.clean {
		content = CleanContent(content)
	}

	chars := len(content)
	tokens := CountTokens(content)
	e.stats.Processed++
	e.stats.Characters += chars
	e.stats.Tokens += tokens

	header := fmt.Sprintf("--- File: %s\n--- Characters: %s\n--- Token Count: %s\n",
		entry.RelativePath, e.comma(chars), e.comma(tokens))
	if err := e.sink.WriteString(header); err != nil {
		return err
	}
	if err := e.sink.WriteString(content); err != nil {
		return err
	}
	observability.BytesEmitted.Add(float64(len(content)))
	return e.sink.WriteString("\n\n")
}

func (e *Emitter) writeFileError(relativePath, message string) error {
	observability.EmitErrors.Inc()
	block := fmt.Sprintf("--- File: %s\n--- Error: %s\n--- Content: <Unable to read file>\n\n",
		relativePath, message)
	return e.sink.WriteString(block)
}

func (e *Emitter) writeSummary() error {
	summary := "\n## Concatenation Summary\n"
	summary += fmt.Sprintf("Files processed: %d\n", e.stats.Processed)
	summary += fmt.Sprintf("Files skipped: %d\n", e.stats.Skipped)
	summary += fmt.Sprintf("Total characters: %s\n", e.comma(e.stats.Characters))
	summary += fmt.Sprintf("Total tokens: %s\n", e.comma(e.stats.Tokens))

	if len(e.stats.Errors) > 0 {
		summary += fmt.Sprintf("\n### Errors (%d):\n", len(e.stats.Errors))
		for i, msg := range e.stats.Errors {
			if i == maxReportedErrors {
				summary += fmt.Sprintf("... and %d more errors\n", len(e.stats.Errors)-maxReportedErrors)
				break
			}
			summary += fmt.Sprintf("- %s\n", msg)
		}
	}

	summary += fmt.Sprintf("\nCompleted at: %s\n\n", time.Now().Format("2006-01-02 15:04:05"))
	return e.sink.WriteString(summary)
}

func (e *Emitter) recordError(msg string) {
	e.stats.Errors = append(e.stats.Errors, msg)
	e.log.Warn(msg)
}

func (e *Emitter) comma(n int) string {
	return e.printer.Sprintf("%d", n)
}

// Statistics returns a copy of the accumulated totals.
func (e *Emitter) Statistics() Stats {
	out := e.stats
	out.Errors = append([]string(nil), e.stats.Errors...)
	return out
}

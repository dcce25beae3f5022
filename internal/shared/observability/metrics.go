package observability

import (
	"log/slog"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	FilesIncluded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "corpus_files_included_total",
		Help: "Total number of files accepted by the filter.",
	})

	FilesExcluded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "corpus_files_excluded_total",
		Help: "Total number of files rejected by the filter, by reason.",
	}, []string{"reason"})

	DirsPruned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "corpus_dirs_pruned_total",
		Help: "Total number of directory subtrees pruned during the scan.",
	})

	ScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "corpus_scan_seconds",
		Help:    "Time spent walking the root directories.",
		Buckets: prometheus.DefBuckets,
	})

	OutlineParseDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "corpus_outline_parse_seconds",
		Help:    "Time spent parsing a source file for the outline.",
		Buckets: prometheus.DefBuckets,
	}, []string{"language"})

	OutlineParseErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "corpus_outline_parse_errors_total",
		Help: "Total number of files whose outline degraded to an error placeholder.",
	})

	EmitErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "corpus_emit_errors_total",
		Help: "Total number of per-file errors recorded during content emission.",
	})

	BytesEmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "corpus_bytes_emitted_total",
		Help: "Total number of content bytes written to the output stream.",
	})
)

// LogRunTotals gathers the default registry and logs every metric that
// moved during the run at Debug. A one-shot process has no scrape
// endpoint, so this is how the counters leave the process.
func LogRunTotals(logger *slog.Logger) {
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		logger.Debug("failed to gather metrics", "error", err)
		return
	}
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), "corpus_") {
			continue
		}
		for _, m := range mf.GetMetric() {
			var value float64
			switch {
			case m.GetCounter() != nil:
				value = m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				value = float64(m.GetHistogram().GetSampleCount())
			default:
				continue
			}
			if value == 0 {
				continue
			}
			attrs := []any{"metric", mf.GetName(), "value", value}
			for _, lp := range m.GetLabel() {
				attrs = append(attrs, lp.GetName(), lp.GetValue())
			}
			logger.Debug("run metric", attrs...)
		}
	}
}

package metrics

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
)

// PrometheusExporter writes metrics in the Prometheus text exposition
// format, suitable for the node_exporter textfile collector.
type PrometheusExporter struct {
	mu       sync.Mutex
	writer   io.Writer
	filePath string
}

// PrometheusOption is a functional option for PrometheusExporter
type PrometheusOption func(*PrometheusExporter)

// WithPrometheusWriter sets the output writer for Prometheus metrics
func WithPrometheusWriter(w io.Writer) PrometheusOption {
	return func(p *PrometheusExporter) {
		p.writer = w
	}
}

// WithPrometheusFile writes the metrics to path, replacing it atomically
func WithPrometheusFile(path string) PrometheusOption {
	return func(p *PrometheusExporter) {
		p.filePath = path
	}
}

func NewPrometheusExporter(opts ...PrometheusOption) *PrometheusExporter {
	p := &PrometheusExporter{}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Export writes the aggregate
func (p *PrometheusExporter) Export(metrics *AggregateMetrics) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var sb strings.Builder
	writeMetrics(&sb, metrics)

	if p.filePath != "" {
		// Rename so the textfile collector never reads a partial file
		tmp := p.filePath + ".tmp"
		if err := os.WriteFile(tmp, []byte(sb.String()), 0644); err != nil {
			return fmt.Errorf("failed to write metrics file: %w", err)
		}
		if err := os.Rename(tmp, p.filePath); err != nil {
			return fmt.Errorf("failed to write metrics file: %w", err)
		}
	}
	if p.writer != nil {
		if _, err := io.WriteString(p.writer, sb.String()); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}

// ExportSingle is a no-op; only aggregates are exposed
func (p *PrometheusExporter) ExportSingle(metric *ComparisonMetrics) error {
	return nil
}

func writeMetrics(w io.Writer, a *AggregateMetrics) {
	fmt.Fprintf(w, "# HELP structeq_comparisons_total Comparisons run, by outcome\n")
	fmt.Fprintf(w, "# TYPE structeq_comparisons_total counter\n")
	for _, s := range []struct {
		status string
		count  int64
	}{
		{StatusPassed, a.Passed},
		{StatusFailed, a.Failed},
		{StatusSkipped, a.Skipped},
		{StatusError, a.Errors},
	} {
		fmt.Fprintf(w, "structeq_comparisons_total{status=%q} %d\n", s.status, s.count)
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "# HELP structeq_differences_total Differences found across all comparisons\n")
	fmt.Fprintf(w, "# TYPE structeq_differences_total counter\n")
	fmt.Fprintf(w, "structeq_differences_total %d\n", a.Differences)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "# HELP structeq_comparison_duration_ms Comparison duration in milliseconds\n")
	fmt.Fprintf(w, "# TYPE structeq_comparison_duration_ms gauge\n")
	fmt.Fprintf(w, "structeq_comparison_duration_ms{quantile=\"min\"} %.2f\n", a.MinDurationMs)
	fmt.Fprintf(w, "structeq_comparison_duration_ms{quantile=\"max\"} %.2f\n", a.MaxDurationMs)
	fmt.Fprintf(w, "structeq_comparison_duration_ms{quantile=\"avg\"} %.2f\n", a.AvgDurationMs)

	if len(a.ByFile) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "# HELP structeq_file_failures_total Failed comparisons per suite file\n")
		fmt.Fprintf(w, "# TYPE structeq_file_failures_total counter\n")
		for _, file := range sortedKeys(a.ByFile) {
			fa := a.ByFile[file]
			fmt.Fprintf(w, "structeq_file_failures_total{file=\"%s\"} %d\n", sanitizeLabel(file), fa.Failed+fa.Errors)
		}
	}

	if len(a.ByLocation) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "# HELP structeq_location_differences_total Differences per field location\n")
		fmt.Fprintf(w, "# TYPE structeq_location_differences_total counter\n")
		for _, location := range sortedKeys(a.ByLocation) {
			fmt.Fprintf(w, "structeq_location_differences_total{location=\"%s\"} %d\n", sanitizeLabel(location), a.ByLocation[location])
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// sanitizeLabel makes a string safe for use as a Prometheus label value
func sanitizeLabel(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, "\"", "\\\"")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

func (p *PrometheusExporter) Close() error {
	return nil
}

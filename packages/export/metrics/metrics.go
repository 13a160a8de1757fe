// Package metrics aggregates comparison results and exports them for CI
// dashboards, as a Prometheus textfile or as JSON.
package metrics

import (
	"time"

	"github.com/abdul-hamid-achik/structeq/packages/core/runner"
)

// Comparison statuses
const (
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
	StatusError   = "error"
)

// ComparisonMetrics is the record kept for one comparison
type ComparisonMetrics struct {
	Name        string    `json:"name"`
	File        string    `json:"file"`
	Status      string    `json:"status"`
	DurationMs  float64   `json:"duration_ms"`
	Differences int       `json:"differences"`
	Locations   []string  `json:"locations,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

// FromResult converts a runner result. Locations are the dotted field
// locations that differed, with "<root>" for a top-level mismatch.
func FromResult(file string, r *runner.ComparisonResult) *ComparisonMetrics {
	m := &ComparisonMetrics{
		Name:        r.Name,
		File:        file,
		DurationMs:  float64(r.Duration.Microseconds()) / 1000,
		Differences: len(r.Differences),
		Timestamp:   time.Now(),
	}

	switch {
	case r.Skipped:
		m.Status = StatusSkipped
	case r.Error != nil:
		m.Status = StatusError
	case r.Passed:
		m.Status = StatusPassed
	default:
		m.Status = StatusFailed
	}

	for _, d := range r.Differences {
		location := d.Path.Location()
		if location == "" {
			location = "<root>"
		}
		m.Locations = append(m.Locations, location)
	}
	return m
}

// AggregateMetrics summarizes every recorded comparison
type AggregateMetrics struct {
	Total           int64                     `json:"total"`
	Passed          int64                     `json:"passed"`
	Failed          int64                     `json:"failed"`
	Skipped         int64                     `json:"skipped"`
	Errors          int64                     `json:"errors"`
	Differences     int64                     `json:"differences"`
	TotalDurationMs float64                   `json:"total_duration_ms"`
	MinDurationMs   float64                   `json:"min_duration_ms"`
	MaxDurationMs   float64                   `json:"max_duration_ms"`
	AvgDurationMs   float64                   `json:"avg_duration_ms"`
	ByLocation      map[string]int64          `json:"by_location"`
	ByFile          map[string]*FileAggregate `json:"by_file"`

	timed int64
}

// FileAggregate summarizes the comparisons of one suite file
type FileAggregate struct {
	File        string `json:"file"`
	Total       int64  `json:"total"`
	Passed      int64  `json:"passed"`
	Failed      int64  `json:"failed"`
	Skipped     int64  `json:"skipped"`
	Errors      int64  `json:"errors"`
	Differences int64  `json:"differences"`
}

func newAggregate() *AggregateMetrics {
	return &AggregateMetrics{
		ByLocation: make(map[string]int64),
		ByFile:     make(map[string]*FileAggregate),
	}
}

func (a *AggregateMetrics) add(m *ComparisonMetrics) {
	a.Total++
	fa, ok := a.ByFile[m.File]
	if !ok {
		fa = &FileAggregate{File: m.File}
		a.ByFile[m.File] = fa
	}
	fa.Total++

	switch m.Status {
	case StatusPassed:
		a.Passed++
		fa.Passed++
	case StatusFailed:
		a.Failed++
		fa.Failed++
	case StatusSkipped:
		a.Skipped++
		fa.Skipped++
		return
	case StatusError:
		a.Errors++
		fa.Errors++
	}

	a.Differences += int64(m.Differences)
	fa.Differences += int64(m.Differences)
	for _, location := range m.Locations {
		a.ByLocation[location]++
	}

	// Skipped comparisons do not count towards durations
	a.timed++
	a.TotalDurationMs += m.DurationMs
	if a.timed == 1 || m.DurationMs < a.MinDurationMs {
		a.MinDurationMs = m.DurationMs
	}
	if m.DurationMs > a.MaxDurationMs {
		a.MaxDurationMs = m.DurationMs
	}
	a.AvgDurationMs = a.TotalDurationMs / float64(a.timed)
}

// Exporter is the interface for metrics exporters
type Exporter interface {
	// Export writes the aggregate to the target destination
	Export(metrics *AggregateMetrics) error

	// ExportSingle records a single comparison
	ExportSingle(metric *ComparisonMetrics) error

	// Close flushes any buffered data
	Close() error
}

// Collector collects metrics from comparison runs
type Collector struct {
	metrics   []*ComparisonMetrics
	aggregate *AggregateMetrics
	exporters []Exporter
}

func NewCollector(exporters ...Exporter) *Collector {
	return &Collector{
		metrics:   make([]*ComparisonMetrics, 0),
		exporters: exporters,
		aggregate: newAggregate(),
	}
}

// Record records a comparison metric
func (c *Collector) Record(m *ComparisonMetrics) {
	c.metrics = append(c.metrics, m)
	c.aggregate.add(m)

	for _, exp := range c.exporters {
		_ = exp.ExportSingle(m)
	}
}

// RecordRun records every comparison of a suite run
func (c *Collector) RecordRun(result *runner.RunResult) {
	for _, r := range result.Results {
		c.Record(FromResult(result.File, r))
	}
}

func (c *Collector) GetAggregate() *AggregateMetrics {
	return c.aggregate
}

// Flush exports all aggregated metrics
func (c *Collector) Flush() error {
	for _, exp := range c.exporters {
		if err := exp.Export(c.aggregate); err != nil {
			return err
		}
	}
	return nil
}

// Close closes all exporters
func (c *Collector) Close() error {
	for _, exp := range c.exporters {
		if err := exp.Close(); err != nil {
			return err
		}
	}
	return nil
}

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/abdul-hamid-achik/structeq/packages/core/runner"
	"github.com/abdul-hamid-achik/structeq/packages/recursive"
)

// JSONOutput represents the complete JSON output structure
type JSONOutput struct {
	Summary     JSONSummary      `json:"summary"`
	Comparisons []JSONComparison `json:"comparisons"`
	Duration    float64          `json:"duration"`
	Time        string           `json:"time"`
}

// JSONSummary represents the run summary
type JSONSummary struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// JSONComparison represents a single comparison result
type JSONComparison struct {
	Name        string           `json:"name"`
	File        string           `json:"file"`
	Passed      bool             `json:"passed"`
	Skipped     bool             `json:"skipped,omitempty"`
	SkipReason  string           `json:"skipReason,omitempty"`
	Duration    float64          `json:"duration"`
	Error       string           `json:"error,omitempty"`
	Differences []JSONDifference `json:"differences,omitempty"`
}

// JSONDifference represents one difference found by the comparator
type JSONDifference struct {
	Path     string `json:"path"`
	Actual   any    `json:"actual"`
	Expected any    `json:"expected"`
	Info     string `json:"info,omitempty"`
}

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	writer  io.Writer
	results []JSONComparison
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer:  os.Stdout,
		results: make([]JSONComparison, 0),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JSONWithWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

func (f *JSONFormatter) FormatResult(result *runner.RunResult) {
	for _, r := range result.Results {
		c := JSONComparison{
			Name:     r.Name,
			File:     result.File,
			Passed:   r.Passed,
			Skipped:  r.Skipped,
			Duration: float64(r.Duration.Milliseconds()),
		}

		if r.SkipReason != "" && r.SkipReason != "filtered out" {
			c.SkipReason = r.SkipReason
		}

		if r.Error != nil {
			c.Error = r.Error.Error()
		}

		if len(r.Differences) > 0 {
			c.Differences = make([]JSONDifference, len(r.Differences))
			for i, d := range r.Differences {
				c.Differences[i] = jsonDifference(d)
			}
		}

		f.results = append(f.results, c)
	}
}

func jsonDifference(d recursive.Difference) JSONDifference {
	return JSONDifference{
		Path:     d.Path.String(),
		Actual:   jsonValue(d.Actual),
		Expected: jsonValue(d.Other),
		Info:     d.AdditionalInformation,
	}
}

// jsonValue falls back to the printed form for values encoding/json rejects,
// such as functions or maps with struct keys.
func jsonValue(v any) any {
	if _, err := json.Marshal(v); err != nil {
		return fmt.Sprintf("%v", v)
	}
	return v
}

func (f *JSONFormatter) FormatError(err error) {
	// Errors are included in individual comparison results
}

func (f *JSONFormatter) FormatHeader(version string) {
	// No header needed for JSON output
}

// Flush writes the accumulated JSON output
func (f *JSONFormatter) Flush(totalDuration time.Duration) error {
	var passed, failed, skipped int
	for _, c := range f.results {
		if c.Skipped {
			skipped++
		} else if c.Passed {
			passed++
		} else {
			failed++
		}
	}

	output := JSONOutput{
		Summary: JSONSummary{
			Total:   len(f.results),
			Passed:  passed,
			Failed:  failed,
			Skipped: skipped,
		},
		Comparisons: f.results,
		Duration:    float64(totalDuration.Milliseconds()),
		Time:        time.Now().Format(time.RFC3339),
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/abdul-hamid-achik/structeq/packages/output"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	diffOutputFlag           string
	diffFailOnRegressionFlag bool
)

var diffCmd = &cobra.Command{
	Use:   "diff <before.json> <after.json>",
	Short: "Compare two JSON run reports",
	Long: `Compare two reports written by "structeq run --output json" and show
which comparisons started or stopped failing and which difference paths
appeared or disappeared between the runs.

Examples:
  structeq diff before.json after.json
  structeq diff before.json after.json --output json
  structeq diff before.json after.json --fail-on-regression`,
	Args: cobra.ExactArgs(2),
	RunE: diffCommand,
}

func init() {
	diffCmd.Flags().StringVarP(&diffOutputFlag, "output", "o", "console", "Output format: console, json")
	diffCmd.Flags().BoolVar(&diffFailOnRegressionFlag, "fail-on-regression", false, "Exit with a failure code if any comparison regressed")
}

// DiffResult holds the comparison result
type DiffResult struct {
	File1       string         `json:"file1"`
	File2       string         `json:"file2"`
	Comparisons []ReportChange `json:"comparisons"`
	Summary     DiffSummary    `json:"summary"`
}

// ReportChange describes how one comparison changed between two runs
type ReportChange struct {
	Name         string   `json:"name"`
	File         string   `json:"file,omitempty"`
	StatusChange string   `json:"statusChange"` // "improved", "regressed", "changed", "unchanged", "new", "removed"
	Passed1      bool     `json:"passed1"`
	Passed2      bool     `json:"passed2"`
	Introduced   []string `json:"introduced,omitempty"`
	Resolved     []string `json:"resolved,omitempty"`
	InFile1      bool     `json:"-"`
	InFile2      bool     `json:"-"`
}

// DiffSummary provides overall statistics
type DiffSummary struct {
	Total     int `json:"total"`
	Improved  int `json:"improved"`
	Regressed int `json:"regressed"`
	Changed   int `json:"changed"`
	Unchanged int `json:"unchanged"`
	New       int `json:"new"`
	Removed   int `json:"removed"`
}

func diffCommand(cmd *cobra.Command, args []string) error {
	file1, file2 := args[0], args[1]

	results1, err := loadReport(file1)
	if err != nil {
		return exitWith(ExitParseError, fmt.Errorf("failed to load %s: %w", file1, err))
	}
	results2, err := loadReport(file2)
	if err != nil {
		return exitWith(ExitParseError, fmt.Errorf("failed to load %s: %w", file2, err))
	}

	diff := compareReports(file1, file2, results1, results2)

	switch strings.ToLower(diffOutputFlag) {
	case "json":
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(diff); err != nil {
			return err
		}
	case "console", "":
		if noColorFlag {
			color.NoColor = true
		}
		writeDiffConsole(cmd.OutOrStdout(), diff)
	default:
		return exitWith(ExitUsageError, fmt.Errorf("unknown output format %q (use console or json)", diffOutputFlag))
	}

	if diffFailOnRegressionFlag && diff.Summary.Regressed > 0 {
		return exitWith(ExitTestFailure, fmt.Errorf("%d comparison(s) regressed", diff.Summary.Regressed))
	}
	return nil
}

func loadReport(path string) (*output.JSONOutput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var report output.JSONOutput
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, err
	}
	return &report, nil
}

// compareReports matches comparisons by file and name. Skipped comparisons
// count as absent from their run.
func compareReports(file1, file2 string, results1, results2 *output.JSONOutput) *DiffResult {
	diff := &DiffResult{File1: file1, File2: file2}

	index := func(report *output.JSONOutput) map[string]output.JSONComparison {
		m := make(map[string]output.JSONComparison)
		for _, c := range report.Comparisons {
			if !c.Skipped {
				m[c.File+"::"+c.Name] = c
			}
		}
		return m
	}
	before, after := index(results1), index(results2)

	keys := make([]string, 0, len(before)+len(after))
	for key := range before {
		keys = append(keys, key)
	}
	for key := range after {
		if _, ok := before[key]; !ok {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		c1, in1 := before[key]
		c2, in2 := after[key]

		change := ReportChange{InFile1: in1, InFile2: in2}
		if in1 {
			change.Name, change.File, change.Passed1 = c1.Name, c1.File, c1.Passed
		}
		if in2 {
			change.Name, change.File, change.Passed2 = c2.Name, c2.File, c2.Passed
		}

		switch {
		case in1 && in2:
			paths1, paths2 := differencePaths(c1), differencePaths(c2)
			change.Introduced = subtract(paths2, paths1)
			change.Resolved = subtract(paths1, paths2)

			switch {
			case change.Passed1 != change.Passed2 && change.Passed2:
				change.StatusChange = "improved"
				diff.Summary.Improved++
			case change.Passed1 != change.Passed2:
				change.StatusChange = "regressed"
				diff.Summary.Regressed++
			case len(paths2) < len(paths1):
				change.StatusChange = "improved"
				diff.Summary.Improved++
			case len(paths2) > len(paths1):
				change.StatusChange = "regressed"
				diff.Summary.Regressed++
			case len(change.Introduced) > 0 || c1.Error != c2.Error:
				change.StatusChange = "changed"
				diff.Summary.Changed++
			default:
				change.StatusChange = "unchanged"
				diff.Summary.Unchanged++
			}
		case in1:
			change.StatusChange = "removed"
			diff.Summary.Removed++
		default:
			change.StatusChange = "new"
			diff.Summary.New++
		}

		diff.Comparisons = append(diff.Comparisons, change)
		diff.Summary.Total++
	}

	return diff
}

func differencePaths(c output.JSONComparison) []string {
	paths := make([]string, 0, len(c.Differences))
	for _, d := range c.Differences {
		paths = append(paths, d.Path)
	}
	return paths
}

// subtract returns the elements of a missing from b, in a's order.
func subtract(a, b []string) []string {
	var out []string
	for _, s := range a {
		if !slices.Contains(b, s) {
			out = append(out, s)
		}
	}
	return out
}

func writeDiffConsole(w io.Writer, diff *DiffResult) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	fmt.Fprintf(w, "\n%s\n", bold("Report Comparison"))
	fmt.Fprintf(w, "  %s: %s\n", cyan("Before"), diff.File1)
	fmt.Fprintf(w, "  %s: %s\n\n", cyan("After"), diff.File2)

	fmt.Fprintf(w, "%s\n", bold("Summary"))
	fmt.Fprintf(w, "  Total:      %d\n", diff.Summary.Total)
	if diff.Summary.Improved > 0 {
		fmt.Fprintf(w, "  Improved:   %s\n", green(diff.Summary.Improved))
	}
	if diff.Summary.Regressed > 0 {
		fmt.Fprintf(w, "  Regressed:  %s\n", red(diff.Summary.Regressed))
	}
	if diff.Summary.Changed > 0 {
		fmt.Fprintf(w, "  Changed:    %s\n", yellow(diff.Summary.Changed))
	}
	if diff.Summary.Unchanged > 0 {
		fmt.Fprintf(w, "  Unchanged:  %d\n", diff.Summary.Unchanged)
	}
	if diff.Summary.New > 0 {
		fmt.Fprintf(w, "  New:        %s\n", cyan(diff.Summary.New))
	}
	if diff.Summary.Removed > 0 {
		fmt.Fprintf(w, "  Removed:    %s\n", yellow(diff.Summary.Removed))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "%s\n", bold("Details"))
	for _, c := range diff.Comparisons {
		var symbol string
		paint := fmt.Sprint

		switch c.StatusChange {
		case "improved":
			symbol, paint = "↑", green
		case "regressed":
			symbol, paint = "↓", red
		case "changed":
			symbol, paint = "~", yellow
		case "new":
			symbol, paint = "+", cyan
		case "removed":
			symbol, paint = "-", yellow
		default:
			symbol = "="
		}

		fmt.Fprintf(w, "  %s %s (%s)\n", paint(symbol), c.Name, c.StatusChange)
		for _, p := range c.Introduced {
			fmt.Fprintf(w, "      %s %s\n", red("+"), p)
		}
		for _, p := range c.Resolved {
			fmt.Fprintf(w, "      %s %s\n", green("-"), p)
		}
	}
	fmt.Fprintln(w)
}

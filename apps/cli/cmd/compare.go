package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/abdul-hamid-achik/structeq/packages/core/parser"
	"github.com/abdul-hamid-achik/structeq/packages/core/runner"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var compareCmd = &cobra.Command{
	Use:   "compare <actual> <expected>",
	Short: "Compare two JSON or YAML documents field by field",
	Long: `Compare an actual document against an expected one and report every
difference with its path.

Examples:
  structeq compare response.json fixtures/user.yaml
  structeq compare response.json expected.json --ignore id --ignore meta.etag
  structeq compare response.json expected.json --select data.users[0]
  structeq compare response.json expected.json --ignore-regex '.*At' --strict
  structeq compare response.json expected.json --output json --watch`,
	Args: cobra.ExactArgs(2),
	RunE: compareCommand,
}

var (
	compareSelectFlag     string
	compareOutputFlag     string
	compareOutputFileFlag string
	compareWatchFlag      bool
)

func init() {
	compareCmd.Flags().StringVarP(&compareSelectFlag, "select", "s", "", "Compare only the sub-document at this path in both documents")
	compareCmd.Flags().StringVarP(&compareOutputFlag, "output", "o", getEnvString("STRUCTEQ_OUTPUT", "console"), "Output format: console, json, junit, tap (env: STRUCTEQ_OUTPUT)")
	compareCmd.Flags().StringVar(&compareOutputFileFlag, "output-file", "", "Write output to file (default: stdout)")
	compareCmd.Flags().BoolVarP(&compareWatchFlag, "watch", "w", false, "Watch both documents and compare again on change")

	addComparisonFlags(compareCmd)
}

// loadPair parses both documents and applies the select path to each.
func loadPair(actualPath, expectedPath, selectPath string) (actual, expected any, err error) {
	if actual, err = parser.ParseFile(actualPath); err != nil {
		return nil, nil, err
	}
	if expected, err = parser.ParseFile(expectedPath); err != nil {
		return nil, nil, err
	}
	if actual, err = parser.Select(actual, selectPath); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", actualPath, err)
	}
	if expected, err = parser.Select(expected, selectPath); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", expectedPath, err)
	}
	return actual, expected, nil
}

func compareCommand(cmd *cobra.Command, args []string) error {
	actualPath, expectedPath := args[0], args[1]

	logger, err := newLogger(verboseFlag)
	if err != nil {
		return exitWith(ExitConfigError, err)
	}
	defer func() { _ = logger.Sync() }()

	profile, err := loadProfile(cmd)
	if err != nil {
		return err
	}

	format := compareOutputFlag
	if !cmd.Flags().Changed("output") && profile.Output != "" {
		format = profile.Output
	}

	outWriter, closeOutput, err := openOutput(cmd, compareOutputFileFlag)
	if err != nil {
		return exitWith(ExitConfigError, err)
	}
	defer closeOutput()

	verbose := verboseFlag || profile.GetVerbose()
	noColor := noColorFlag || profile.GetNoColor()
	r := runner.NewRunner(&runner.Config{Verbose: verbose}, runner.WithProfile(profile), runner.WithLogger(logger))

	name := filepath.Base(actualPath) + " vs " + filepath.Base(expectedPath)
	if compareSelectFlag != "" {
		name += " at " + compareSelectFlag
	}

	compareOnce := func(formatter Formatter) error {
		start := time.Now()

		actual, expected, err := loadPair(actualPath, expectedPath, compareSelectFlag)
		if err != nil {
			return exitWith(ExitParseError, err)
		}

		res := r.ComparePair(name, actual, expected)
		result := &runner.RunResult{
			File:     actualPath,
			Results:  []*runner.ComparisonResult{res},
			Duration: time.Since(start),
		}
		if res.Passed {
			result.Passed = 1
		} else {
			result.Failed = 1
		}
		logger.Debug("documents compared", zap.String("actual", actualPath), zap.String("expected", expectedPath),
			zap.Int("differences", len(res.Differences)))

		formatter.FormatResult(result)
		if err := flush(formatter, result.Duration); err != nil {
			return err
		}
		if !res.Passed {
			return exitWith(ExitTestFailure, nil)
		}
		return nil
	}

	formatter, err := newFormatter(format, outWriter, verbose, noColor)
	if err != nil {
		return exitWith(ExitUsageError, err)
	}
	formatter.FormatHeader(version)

	err = compareOnce(formatter)
	if !compareWatchFlag {
		return err
	}

	watched := map[string]bool{
		filepath.Clean(actualPath):   true,
		filepath.Clean(expectedPath): true,
	}
	return watchFiles(cmd, logger, []string{actualPath, expectedPath},
		func(path string) bool { return watched[filepath.Clean(path)] },
		func(changed string) {
			fmt.Fprintf(cmd.OutOrStdout(), "\n\nFile changed: %s\nComparing again...\n\n", changed)
			formatter, _ := newFormatter(format, outWriter, verbose, noColor)
			if err := compareOnce(formatter); err != nil && exitCode(err) != ExitTestFailure {
				formatter.FormatError(err)
			}
		})
}

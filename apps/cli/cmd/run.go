package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/structeq/packages/core/runner"
	"github.com/abdul-hamid-achik/structeq/packages/export/metrics"
	"github.com/abdul-hamid-achik/structeq/packages/output"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var runCmd = &cobra.Command{
	Use:   "run <file|directory>",
	Short: "Run comparison suites",
	Long: `Run the comparisons listed in *.structeq.yaml suite files.

Examples:
  structeq run users.structeq.yaml
  structeq run ./fixtures/ --tags smoke
  structeq run ./fixtures/ --name "user*" --ignore updatedAt
  structeq run ./fixtures/ --parallel --output junit --output-file report.xml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCommand,
}

const (
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond
)

var (
	nameFlag        string
	tagsFlag        string
	bailFlag        bool
	outputFlag      string
	outputFileFlag  string
	parallelFlag    bool
	concurrencyFlag int
	watchFlag       bool
	metricsFlag     string
	metricsFileFlag string
)

func init() {
	runCmd.Flags().StringVarP(&nameFlag, "name", "n", "", "Run only comparisons matching name pattern")
	runCmd.Flags().StringVarP(&tagsFlag, "tags", "t", getEnvString("STRUCTEQ_TAGS", ""), "Run only comparisons with specified tags (comma-separated) (env: STRUCTEQ_TAGS)")

	runCmd.Flags().StringVarP(&outputFlag, "output", "o", getEnvString("STRUCTEQ_OUTPUT", "console"), "Output format: console, json, junit, tap (env: STRUCTEQ_OUTPUT)")
	runCmd.Flags().StringVar(&outputFileFlag, "output-file", getEnvString("STRUCTEQ_OUTPUT_FILE", ""), "Write output to file (default: stdout) (env: STRUCTEQ_OUTPUT_FILE)")

	runCmd.Flags().BoolVar(&bailFlag, "bail", getEnvBool("STRUCTEQ_BAIL", false), "Stop on first failure (env: STRUCTEQ_BAIL)")
	runCmd.Flags().BoolVarP(&parallelFlag, "parallel", "p", getEnvBool("STRUCTEQ_PARALLEL", false), "Run comparisons in parallel (env: STRUCTEQ_PARALLEL)")
	runCmd.Flags().IntVar(&concurrencyFlag, "concurrency", getEnvInt("STRUCTEQ_CONCURRENCY", runner.DefaultConcurrency), "Number of concurrent comparisons when running in parallel (env: STRUCTEQ_CONCURRENCY)")
	runCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch files for changes and re-run comparisons")

	runCmd.Flags().StringVar(&metricsFlag, "metrics", getEnvString("STRUCTEQ_METRICS", ""), "Metrics export format: prometheus, json (env: STRUCTEQ_METRICS)")
	runCmd.Flags().StringVar(&metricsFileFlag, "metrics-file", getEnvString("STRUCTEQ_METRICS_FILE", ""), "Write metrics to file instead of stdout (env: STRUCTEQ_METRICS_FILE)")

	addComparisonFlags(runCmd)
}

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// Formatter interface for all output formatters
type Formatter interface {
	FormatResult(result *runner.RunResult)
	FormatError(err error)
	FormatHeader(version string)
}

// Flushable interface for formatters that need to flush output
type Flushable interface {
	Flush(totalDuration time.Duration) error
}

func newFormatter(format string, w io.Writer, verbose, noColor bool) (Formatter, error) {
	switch strings.ToLower(format) {
	case "json":
		return output.NewJSONFormatter(output.JSONWithWriter(w)), nil
	case "junit":
		return output.NewJUnitFormatter(output.JUnitWithWriter(w)), nil
	case "tap":
		return output.NewTAPFormatter(output.TAPWithWriter(w)), nil
	case "console", "":
		return output.NewConsoleFormatter(
			output.WithWriter(w),
			output.WithVerbose(verbose),
			output.WithNoColor(noColor),
		), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (use console, json, junit or tap)", format)
	}
}

// openOutput returns the command's stdout, or the named file when path is set.
func openOutput(cmd *cobra.Command, path string) (io.Writer, func(), error) {
	if path == "" {
		return cmd.OutOrStdout(), func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot create output file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

func flush(formatter Formatter, duration time.Duration) error {
	if flushable, ok := formatter.(Flushable); ok {
		if err := flushable.Flush(duration); err != nil {
			return fmt.Errorf("error writing output: %w", err)
		}
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// newMetricsCollector returns nil when no metrics format is requested.
func newMetricsCollector(cmd *cobra.Command, format, path string) (*metrics.Collector, error) {
	var exporter metrics.Exporter
	switch strings.ToLower(format) {
	case "":
		return nil, nil
	case "prometheus":
		opts := []metrics.PrometheusOption{}
		if path != "" {
			opts = append(opts, metrics.WithPrometheusFile(path))
		} else {
			opts = append(opts, metrics.WithPrometheusWriter(cmd.OutOrStdout()))
		}
		exporter = metrics.NewPrometheusExporter(opts...)
	case "json":
		opts := []metrics.JSONOption{metrics.WithJSONVersion(version)}
		if path != "" {
			opts = append(opts, metrics.WithJSONFile(path))
		} else {
			opts = append(opts, metrics.WithJSONWriter(cmd.OutOrStdout()))
		}
		exporter = metrics.NewJSONExporter(opts...)
	default:
		return nil, fmt.Errorf("unknown metrics format %q (use prometheus or json)", format)
	}
	return metrics.NewCollector(exporter), nil
}

func runCommand(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(verboseFlag)
	if err != nil {
		return exitWith(ExitConfigError, err)
	}
	defer func() { _ = logger.Sync() }()

	profile, err := loadProfile(cmd)
	if err != nil {
		return err
	}

	format := outputFlag
	if !cmd.Flags().Changed("output") && profile.Output != "" {
		format = profile.Output
	}

	outWriter, closeOutput, err := openOutput(cmd, outputFileFlag)
	if err != nil {
		return exitWith(ExitConfigError, err)
	}
	defer closeOutput()

	files, err := collectFiles(args, isSuiteFile)
	if err != nil {
		return exitWith(ExitUsageError, err)
	}
	if len(files) == 0 {
		return exitWith(ExitUsageError, fmt.Errorf("no *.structeq.yaml suite files found"))
	}

	concurrency := concurrencyFlag
	if !cmd.Flags().Changed("concurrency") && profile.Concurrency > 0 {
		concurrency = profile.Concurrency
	}

	cfg := &runner.Config{
		Verbose:     verboseFlag || profile.GetVerbose(),
		Bail:        bailFlag || profile.GetBail(),
		NameFilter:  nameFlag,
		TagsFilter:  splitList(tagsFlag),
		Parallel:    parallelFlag || profile.GetParallel(),
		Concurrency: concurrency,
	}
	collector, err := newMetricsCollector(cmd, metricsFlag, metricsFileFlag)
	if err != nil {
		return exitWith(ExitUsageError, err)
	}

	r := runner.NewRunner(cfg, runner.WithProfile(profile), runner.WithLogger(logger))
	logger.Debug("running suites", zap.Strings("files", files), zap.Bool("parallel", cfg.Parallel))

	runSuites := func(formatter Formatter) (failed, parseErrors int, duration time.Duration) {
		start := time.Now()
		for _, file := range files {
			result, err := r.RunFile(file)
			if err != nil {
				formatter.FormatError(err)
				parseErrors++
				if cfg.Bail {
					break
				}
				continue
			}

			formatter.FormatResult(result)
			failed += result.Failed
			if collector != nil {
				collector.RecordRun(result)
			}

			if cfg.Bail && result.Failed > 0 {
				break
			}
		}
		return failed, parseErrors, time.Since(start)
	}

	formatter, err := newFormatter(format, outWriter, cfg.Verbose, noColorFlag || profile.GetNoColor())
	if err != nil {
		return exitWith(ExitUsageError, err)
	}
	formatter.FormatHeader(version)

	failed, parseErrors, duration := runSuites(formatter)
	if err := flush(formatter, duration); err != nil {
		return err
	}
	if collector != nil {
		if err := collector.Flush(); err != nil {
			logger.Warn("failed to export metrics", zap.Error(err))
			fmt.Fprintf(cmd.ErrOrStderr(), "warning: failed to export metrics: %v\n", err)
		}
		_ = collector.Close()
		collector = nil
	}

	if !watchFlag {
		switch {
		case failed > 0:
			return exitWith(ExitTestFailure, nil)
		case parseErrors > 0:
			return exitWith(ExitParseError, nil)
		}
		return nil
	}

	return watchFiles(cmd, logger, args, isDocumentFile, func(changed string) {
		fmt.Fprintf(cmd.OutOrStdout(), "\n\nFile changed: %s\nRe-running comparisons...\n\n", changed)

		// Fresh formatter, JSON and JUnit accumulate state
		formatter, _ := newFormatter(format, outWriter, cfg.Verbose, noColorFlag || profile.GetNoColor())
		_, _, duration := runSuites(formatter)
		if err := flush(formatter, duration); err != nil {
			formatter.FormatError(err)
		}
	})
}

func collectFiles(args []string, match func(string) bool) ([]string, error) {
	var files []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}

		if info.IsDir() {
			err := filepath.Walk(arg, func(path string, info os.FileInfo, err error) error {
				if err != nil {
					return err
				}
				if !info.IsDir() && match(path) {
					files = append(files, path)
				}
				return nil
			})
			if err != nil {
				return nil, err
			}
		} else if match(arg) {
			files = append(files, arg)
		}
	}

	return files, nil
}

func isSuiteFile(path string) bool {
	if isProfileFile(path) {
		return false
	}
	base := strings.ToLower(filepath.Base(path))
	return strings.HasSuffix(base, ".structeq.yaml") || strings.HasSuffix(base, ".structeq.yml")
}

func isDocumentFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

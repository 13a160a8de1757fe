package runner

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/abdul-hamid-achik/structeq/packages/core/config"
	"github.com/abdul-hamid-achik/structeq/packages/core/parser"
	"github.com/abdul-hamid-achik/structeq/packages/recursive"
	"go.uber.org/zap"
)

const (
	// DefaultConcurrency is the default number of concurrent comparisons in parallel mode
	DefaultConcurrency = 5
)

type Runner struct {
	config  *Config
	profile *config.Config
	logger  *zap.Logger
}

type Config struct {
	Verbose     bool
	Bail        bool
	NameFilter  string
	TagsFilter  []string
	Parallel    bool
	Concurrency int
}

type Option func(*Runner)

// WithProfile sets the comparison profile every case starts from.
func WithProfile(profile *config.Config) Option {
	return func(r *Runner) {
		if profile != nil {
			r.profile = profile
		}
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func NewRunner(cfg *Config, opts ...Option) *Runner {
	if cfg == nil {
		cfg = &Config{}
	}

	r := &Runner{
		config:  cfg,
		profile: config.DefaultConfig(),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.logger = r.logger.Named("runner")
	return r
}

type RunResult struct {
	File     string
	Results  []*ComparisonResult
	Duration time.Duration
	Passed   int
	Failed   int
	Skipped  int
}

type ComparisonResult struct {
	Name          string
	Passed        bool
	Skipped       bool
	SkipReason    string
	Duration      time.Duration
	Actual        any
	Expected      any
	Differences   []recursive.Difference
	Configuration *recursive.Configuration
	Error         error
}

func (r *Runner) RunFile(path string) (*RunResult, error) {
	suite, err := parser.ParseSuite(path)
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}
	return r.RunSuite(suite), nil
}

// RunSuite runs every selected case of the suite. Results keep the order of
// the manifest in both sequential and parallel mode.
func (r *Runner) RunSuite(suite *parser.Suite) *RunResult {
	start := time.Now()
	result := &RunResult{
		File: suite.Path,
	}

	hasOnly := false
	for _, c := range suite.Comparisons {
		if c.Only {
			hasOnly = true
			break
		}
	}

	var selected []*parser.Case
	for _, c := range suite.Comparisons {
		if !r.shouldRun(c, hasOnly) {
			result.Results = append(result.Results, &ComparisonResult{
				Name:       c.Name,
				Skipped:    true,
				SkipReason: "filtered out",
			})
			result.Skipped++
			continue
		}

		if c.Skip != "" {
			result.Results = append(result.Results, &ComparisonResult{
				Name:       c.Name,
				Skipped:    true,
				SkipReason: c.Skip,
			})
			result.Skipped++
			continue
		}

		selected = append(selected, c)
	}

	if r.config.Parallel {
		for _, res := range r.runParallel(suite, selected) {
			result.Results = append(result.Results, res)
			if res.Passed {
				result.Passed++
			} else {
				result.Failed++
			}
		}
	} else {
		for _, c := range selected {
			res := r.runCase(suite, c)
			result.Results = append(result.Results, res)

			if res.Passed {
				result.Passed++
				continue
			}
			result.Failed++
			if r.config.Bail {
				r.logger.Debug("bailing out after failure", zap.String("comparison", c.Name))
				break
			}
		}
	}

	result.Duration = time.Since(start)
	r.logger.Debug("suite finished",
		zap.String("file", suite.Path),
		zap.Int("passed", result.Passed),
		zap.Int("failed", result.Failed),
		zap.Int("skipped", result.Skipped),
		zap.Duration("duration", result.Duration),
	)
	return result
}

func (r *Runner) runParallel(suite *parser.Suite, cases []*parser.Case) []*ComparisonResult {
	concurrency := r.config.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]*ComparisonResult, len(cases))
	var wg sync.WaitGroup
	sem := make(chan struct{}, concurrency)

	for i, c := range cases {
		wg.Add(1)
		sem <- struct{}{} // acquire semaphore

		go func(idx int, c *parser.Case) {
			defer wg.Done()
			defer func() { <-sem }() // release semaphore

			results[idx] = r.runCase(suite, c)
		}(i, c)
	}

	wg.Wait()
	return results
}

func (r *Runner) runCase(suite *parser.Suite, c *parser.Case) *ComparisonResult {
	start := time.Now()

	profile := r.profile.Merge(&config.Config{
		IgnoreFields:             c.IgnoreFields,
		IgnoreFieldsMatching:     c.IgnoreRegexes,
		IgnoreAllActualNilFields: trueOrNil(c.IgnoreNil),
		StrictTypeChecking:       trueOrNil(c.StrictTypes),
	})
	cmp, err := profile.Comparison()
	if err != nil {
		return r.failed(c.Name, start, fmt.Errorf("comparison %q: %w", c.Name, err))
	}

	actual, expected, err := suite.Load(c)
	if err != nil {
		return r.failed(c.Name, start, fmt.Errorf("comparison %q: %w", c.Name, err))
	}

	result := r.compare(c.Name, actual, expected, cmp)
	result.Duration = time.Since(start)
	return result
}

// ComparePair compares two documents under the runner's profile.
func (r *Runner) ComparePair(name string, actual, expected any) *ComparisonResult {
	start := time.Now()

	cmp, err := r.profile.Comparison()
	if err != nil {
		return r.failed(name, start, err)
	}

	result := r.compare(name, actual, expected, cmp)
	result.Duration = time.Since(start)
	return result
}

func (r *Runner) compare(name string, actual, expected any, cmp *recursive.Configuration) *ComparisonResult {
	result := &ComparisonResult{
		Name:          name,
		Actual:        actual,
		Expected:      expected,
		Configuration: cmp,
	}

	diffs, err := recursive.Compare(actual, expected, cmp)
	if err != nil {
		result.Error = err
		r.logger.Debug("comparison aborted", zap.String("comparison", name), zap.Error(err))
		return result
	}

	result.Differences = diffs
	result.Passed = len(diffs) == 0
	r.logger.Debug("comparison finished",
		zap.String("comparison", name),
		zap.Bool("passed", result.Passed),
		zap.Int("differences", len(diffs)),
	)
	return result
}

func (r *Runner) failed(name string, start time.Time, err error) *ComparisonResult {
	r.logger.Debug("comparison errored", zap.String("comparison", name), zap.Error(err))
	return &ComparisonResult{
		Name:     name,
		Duration: time.Since(start),
		Error:    err,
	}
}

func (r *Runner) shouldRun(c *parser.Case, hasOnly bool) bool {
	if hasOnly && !c.Only {
		return false
	}

	if r.config.NameFilter != "" && !matchesPattern(c.Name, r.config.NameFilter) {
		return false
	}

	if len(r.config.TagsFilter) > 0 && !c.HasTag(r.config.TagsFilter...) {
		return false
	}

	return true
}

func trueOrNil(b bool) *bool {
	if !b {
		return nil
	}
	return config.BoolPtr(true)
}

// matchesPattern supports a single leading and/or trailing * wildcard.
func matchesPattern(name, pattern string) bool {
	if pattern == "" {
		return true
	}

	prefix := strings.HasPrefix(pattern, "*")
	suffix := strings.HasSuffix(pattern, "*")
	trimmed := strings.TrimSuffix(strings.TrimPrefix(pattern, "*"), "*")

	switch {
	case prefix && suffix:
		return strings.Contains(name, trimmed)
	case prefix:
		return strings.HasSuffix(name, trimmed)
	case suffix:
		return strings.HasPrefix(name, trimmed)
	default:
		return name == pattern
	}
}

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abdul-hamid-achik/structeq/packages/recursive"
	"gopkg.in/yaml.v3"
)

// Config is a comparison profile: the ignore rules and flags applied to every
// comparison, plus output preferences.
type Config struct {
	IgnoreFields                    []string `json:"ignoreFields,omitempty" yaml:"ignoreFields,omitempty"`
	IgnoreFieldsMatching            []string `json:"ignoreFieldsMatching,omitempty" yaml:"ignoreFieldsMatching,omitempty"`
	IgnoreAllActualNilFields        *bool    `json:"ignoreAllActualNilFields,omitempty" yaml:"ignoreAllActualNilFields,omitempty"`
	IgnoreAllOverriddenEquals       *bool    `json:"ignoreAllOverriddenEquals,omitempty" yaml:"ignoreAllOverriddenEquals,omitempty"`
	IgnoreOverriddenEqualsForFields []string `json:"ignoreOverriddenEqualsForFields,omitempty" yaml:"ignoreOverriddenEqualsForFields,omitempty"`
	IgnoreOverriddenEqualsMatching  []string `json:"ignoreOverriddenEqualsMatching,omitempty" yaml:"ignoreOverriddenEqualsMatching,omitempty"`
	StrictTypeChecking              *bool    `json:"strictTypeChecking,omitempty" yaml:"strictTypeChecking,omitempty"`
	TreatNilAndEmptyAsEqual         *bool    `json:"treatNilAndEmptyAsEqual,omitempty" yaml:"treatNilAndEmptyAsEqual,omitempty"`
	IgnoreUnexportedFields          *bool    `json:"ignoreUnexportedFields,omitempty" yaml:"ignoreUnexportedFields,omitempty"`

	Output      string `json:"output,omitempty" yaml:"output,omitempty"` // console, json, junit or tap
	SnapshotDir string `json:"snapshotDir,omitempty" yaml:"snapshotDir,omitempty"`
	Parallel    *bool  `json:"parallel,omitempty" yaml:"parallel,omitempty"`
	Concurrency int    `json:"concurrency,omitempty" yaml:"concurrency,omitempty"` // Number of parallel comparisons
	Bail        *bool  `json:"bail,omitempty" yaml:"bail,omitempty"`
	Verbose     *bool  `json:"verbose,omitempty" yaml:"verbose,omitempty"`
	NoColor     *bool  `json:"noColor,omitempty" yaml:"noColor,omitempty"`
}

// boolPtr returns a pointer to a bool value
func boolPtr(b bool) *bool {
	return &b
}

// BoolPtr is exported version of boolPtr for external use
func BoolPtr(b bool) *bool {
	return &b
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

func (c *Config) GetIgnoreAllActualNilFields() bool { return getBool(c.IgnoreAllActualNilFields, false) }

func (c *Config) GetIgnoreAllOverriddenEquals() bool { return getBool(c.IgnoreAllOverriddenEquals, false) }

func (c *Config) GetStrictTypeChecking() bool { return getBool(c.StrictTypeChecking, false) }

func (c *Config) GetTreatNilAndEmptyAsEqual() bool { return getBool(c.TreatNilAndEmptyAsEqual, false) }

func (c *Config) GetIgnoreUnexportedFields() bool { return getBool(c.IgnoreUnexportedFields, false) }

// GetParallel returns the parallel setting, defaulting to false
func (c *Config) GetParallel() bool {
	return getBool(c.Parallel, false)
}

// GetBail returns the bail setting, defaulting to false
func (c *Config) GetBail() bool {
	return getBool(c.Bail, false)
}

// GetVerbose returns the verbose setting, defaulting to false
func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// Options converts the profile into comparator options.
func (c *Config) Options() []recursive.Option {
	var opts []recursive.Option
	if len(c.IgnoreFields) > 0 {
		opts = append(opts, recursive.IgnoringFields(c.IgnoreFields...))
	}
	if len(c.IgnoreFieldsMatching) > 0 {
		opts = append(opts, recursive.IgnoringFieldsMatchingRegexes(c.IgnoreFieldsMatching...))
	}
	if c.GetIgnoreAllActualNilFields() {
		opts = append(opts, recursive.IgnoringAllActualNilFields())
	}
	if c.GetIgnoreAllOverriddenEquals() {
		opts = append(opts, recursive.IgnoringAllOverriddenEquals())
	}
	if len(c.IgnoreOverriddenEqualsForFields) > 0 {
		opts = append(opts, recursive.IgnoringOverriddenEqualsForFields(c.IgnoreOverriddenEqualsForFields...))
	}
	if len(c.IgnoreOverriddenEqualsMatching) > 0 {
		opts = append(opts, recursive.IgnoringOverriddenEqualsForTypesMatchingRegexes(c.IgnoreOverriddenEqualsMatching...))
	}
	if c.GetStrictTypeChecking() {
		opts = append(opts, recursive.WithStrictTypeChecking())
	}
	if c.GetTreatNilAndEmptyAsEqual() {
		opts = append(opts, recursive.TreatingNilAndEmptyAsEqual())
	}
	if c.GetIgnoreUnexportedFields() {
		opts = append(opts, recursive.IgnoringUnexportedFields())
	}
	return opts
}

// Comparison builds the comparator configuration described by the profile.
func (c *Config) Comparison() (*recursive.Configuration, error) {
	cfg, err := recursive.NewConfiguration(c.Options()...)
	if err != nil {
		return nil, fmt.Errorf("invalid comparison settings: %w", err)
	}
	return cfg, nil
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	".structeq.yaml",
	".structeq.yml",
	".structeq.json",
	"structeq.config.json",
}

// LoadConfig loads configuration from the specified path or searches for config files
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}

	// Search for config file in current directory
	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}

	// Return defaults if no config file found
	return DefaultConfig(), nil
}

func isYAML(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// loadConfigFromFile loads configuration from a specific file
func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data, path)
}

// Parse decodes and validates a profile. name selects YAML or JSON by its
// extension and is used in error messages.
func Parse(data []byte, name string) (*Config, error) {
	var (
		raw any
		err error
	)
	if isYAML(name) {
		err = yaml.Unmarshal(data, &raw)
	} else {
		err = json.Unmarshal(data, &raw)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", name, err)
	}
	if raw == nil {
		return DefaultConfig(), nil
	}
	if err := Validate(raw, name); err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if isYAML(name) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", name, err)
	}
	return config, nil
}

// Merge merges another config into this one, with other taking precedence
func (c *Config) Merge(other *Config) *Config {
	if other == nil {
		return c
	}

	result := *c // Copy

	result.IgnoreFields = appendUnique(result.IgnoreFields, other.IgnoreFields)
	result.IgnoreFieldsMatching = appendUnique(result.IgnoreFieldsMatching, other.IgnoreFieldsMatching)
	result.IgnoreOverriddenEqualsForFields = appendUnique(result.IgnoreOverriddenEqualsForFields, other.IgnoreOverriddenEqualsForFields)
	result.IgnoreOverriddenEqualsMatching = appendUnique(result.IgnoreOverriddenEqualsMatching, other.IgnoreOverriddenEqualsMatching)

	if other.Output != "" {
		result.Output = other.Output
	}
	if other.SnapshotDir != "" {
		result.SnapshotDir = other.SnapshotDir
	}
	if other.Concurrency > 0 {
		result.Concurrency = other.Concurrency
	}

	// Boolean flags - only override if explicitly set in other config
	if other.IgnoreAllActualNilFields != nil {
		result.IgnoreAllActualNilFields = other.IgnoreAllActualNilFields
	}
	if other.IgnoreAllOverriddenEquals != nil {
		result.IgnoreAllOverriddenEquals = other.IgnoreAllOverriddenEquals
	}
	if other.StrictTypeChecking != nil {
		result.StrictTypeChecking = other.StrictTypeChecking
	}
	if other.TreatNilAndEmptyAsEqual != nil {
		result.TreatNilAndEmptyAsEqual = other.TreatNilAndEmptyAsEqual
	}
	if other.IgnoreUnexportedFields != nil {
		result.IgnoreUnexportedFields = other.IgnoreUnexportedFields
	}
	if other.Parallel != nil {
		result.Parallel = other.Parallel
	}
	if other.Bail != nil {
		result.Bail = other.Bail
	}
	if other.Verbose != nil {
		result.Verbose = other.Verbose
	}
	if other.NoColor != nil {
		result.NoColor = other.NoColor
	}

	return &result
}

// appendUnique returns a new slice so merged configs never share backing
// arrays.
func appendUnique(base, extra []string) []string {
	if len(extra) == 0 {
		return base
	}
	out := make([]string, 0, len(base)+len(extra))
	seen := make(map[string]bool, len(base)+len(extra))
	for _, list := range [][]string{base, extra} {
		for _, v := range list {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}

// SaveConfig saves the configuration to a file, as YAML when the extension
// asks for it and JSON otherwise.
func (c *Config) SaveConfig(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

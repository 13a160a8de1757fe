package cmd

import (
	"path/filepath"
	"slices"

	"github.com/abdul-hamid-achik/structeq/packages/core/config"
	"github.com/spf13/cobra"
)

var (
	ignoreFlag           []string
	ignoreRegexFlag      []string
	ignoreNilFlag        bool
	strictFlag           bool
	nilEqualsEmptyFlag   bool
	ignoreUnexportedFlag bool
)

// addComparisonFlags registers the flags that override profile comparison
// rules. The variables are shared, so only one command parses them per run.
func addComparisonFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&ignoreFlag, "ignore", nil, "Ignore fields by dotted location, e.g. user.updatedAt (repeatable)")
	cmd.Flags().StringSliceVar(&ignoreRegexFlag, "ignore-regex", nil, "Ignore fields whose location matches a regex (repeatable)")
	cmd.Flags().BoolVar(&ignoreNilFlag, "ignore-nil", false, "Ignore fields that are null in the actual document")
	cmd.Flags().BoolVar(&strictFlag, "strict", false, "Treat values of different types as different even if their fields match")
	cmd.Flags().BoolVar(&nilEqualsEmptyFlag, "nil-equals-empty", false, "Consider null and empty arrays or objects equal")
	cmd.Flags().BoolVar(&ignoreUnexportedFlag, "ignore-unexported", false, "Skip unexported struct fields")
}

// loadProfile reads the profile named by --config, or the first profile found
// in the working directory, and layers explicitly set flags over it.
func loadProfile(cmd *cobra.Command) (*config.Config, error) {
	fileConfig, err := config.LoadConfig(configFlag)
	if err != nil {
		return nil, exitWith(ExitConfigError, err)
	}

	overrides := &config.Config{
		IgnoreFields:         ignoreFlag,
		IgnoreFieldsMatching: ignoreRegexFlag,
	}
	flags := cmd.Flags()
	if flags.Changed("ignore-nil") {
		overrides.IgnoreAllActualNilFields = config.BoolPtr(ignoreNilFlag)
	}
	if flags.Changed("strict") {
		overrides.StrictTypeChecking = config.BoolPtr(strictFlag)
	}
	if flags.Changed("nil-equals-empty") {
		overrides.TreatNilAndEmptyAsEqual = config.BoolPtr(nilEqualsEmptyFlag)
	}
	if flags.Changed("ignore-unexported") {
		overrides.IgnoreUnexportedFields = config.BoolPtr(ignoreUnexportedFlag)
	}
	if flags.Changed("no-color") {
		overrides.NoColor = config.BoolPtr(noColorFlag)
	}
	if flags.Changed("verbose") {
		overrides.Verbose = config.BoolPtr(verboseFlag)
	}

	profile := fileConfig.Merge(overrides)
	if _, err := profile.Comparison(); err != nil {
		return nil, exitWith(ExitConfigError, err)
	}
	return profile, nil
}

func isProfileFile(path string) bool {
	return slices.Contains(config.ConfigFilenames, filepath.Base(path))
}

package cmd

import (
	"fmt"
	"os"

	"github.com/abdul-hamid-achik/structeq/packages/core/config"
	"github.com/abdul-hamid-achik/structeq/packages/core/parser"
	"github.com/abdul-hamid-achik/structeq/packages/recursive"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file|directory>",
	Short: "Validate suites and profiles without comparing",
	Long: `Validate *.structeq.yaml suites and structeq profiles without running
any comparison. Suites are checked for syntax, ignore regexes and missing
document files. Profiles are checked against the profile schema.

Examples:
  structeq validate users.structeq.yaml
  structeq validate ./fixtures/`,
	Args: cobra.MinimumNArgs(1),
	RunE: validateCommand,
}

func validateCommand(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args, func(path string) bool {
		return isSuiteFile(path) || isProfileFile(path)
	})
	if err != nil {
		return exitWith(ExitUsageError, err)
	}

	if len(files) == 0 {
		return exitWith(ExitUsageError, fmt.Errorf("no suite or profile files found"))
	}

	hasErrors := false
	for _, file := range files {
		var problems []string
		if isProfileFile(file) {
			problems = validateProfile(file)
		} else {
			problems = validateSuite(file)
		}

		if len(problems) > 0 {
			for _, p := range problems {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error in %s: %s\n", file, p)
			}
			hasErrors = true
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Valid: %s\n", file)
		}
	}

	if hasErrors {
		return exitWith(ExitParseError, fmt.Errorf("validation failed"))
	}

	return nil
}

func validateProfile(path string) []string {
	profile, err := config.LoadConfig(path)
	if err != nil {
		return []string{err.Error()}
	}
	if _, err := profile.Comparison(); err != nil {
		return []string{err.Error()}
	}
	return nil
}

func validateSuite(path string) []string {
	suite, err := parser.ParseSuite(path)
	if err != nil {
		return []string{err.Error()}
	}

	var problems []string
	for _, c := range suite.Comparisons {
		if _, err := recursive.NewConfiguration(recursive.IgnoringFieldsMatchingRegexes(c.IgnoreRegexes...)); err != nil {
			problems = append(problems, fmt.Sprintf("line %d: comparison %q: %v", c.Line, c.Name, err))
		}
		for _, ref := range []string{c.Actual, c.Expected} {
			if ref == "" {
				continue
			}
			if _, err := os.Stat(suite.Resolve(ref)); err != nil {
				problems = append(problems, fmt.Sprintf("line %d: comparison %q: document %s not found", c.Line, c.Name, ref))
			}
		}
	}
	return problems
}

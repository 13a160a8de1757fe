package cmd

import (
	"fmt"
	"strings"

	"github.com/abdul-hamid-achik/structeq/packages/core/parser"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list <file|directory>",
	Short: "List all comparisons in suite files",
	Long: `List all comparisons defined in *.structeq.yaml suite files.

Examples:
  structeq list users.structeq.yaml
  structeq list ./fixtures/`,
	Args: cobra.MinimumNArgs(1),
	RunE: listCommand,
}

func listCommand(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args, isSuiteFile)
	if err != nil {
		return exitWith(ExitUsageError, err)
	}

	if len(files) == 0 {
		return exitWith(ExitUsageError, fmt.Errorf("no *.structeq.yaml suite files found"))
	}

	failed := false
	for _, file := range files {
		suite, err := parser.ParseSuite(file)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error parsing %s: %v\n", file, err)
			failed = true
			continue
		}

		header := file
		if suite.Name != "" {
			header = fmt.Sprintf("%s (%s)", file, suite.Name)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s:\n", header)
		for _, c := range suite.Comparisons {
			var markers []string
			if c.Only {
				markers = append(markers, "only")
			}
			if c.Skip != "" {
				markers = append(markers, "skip: "+c.Skip)
			}

			line := "  - " + c.Name
			if len(markers) > 0 {
				line += " [" + strings.Join(markers, ", ") + "]"
			}
			fmt.Fprintln(cmd.OutOrStdout(), line)
			if len(c.Tags) > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "    tags: %v\n", c.Tags)
			}
		}
	}

	if failed {
		return exitWith(ExitParseError, nil)
	}
	return nil
}

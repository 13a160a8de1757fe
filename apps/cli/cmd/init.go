package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/abdul-hamid-achik/structeq/packages/core/config"
	"github.com/spf13/cobra"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new structeq project",
	Long: `Initialize a new structeq project in the current directory.

This creates:
  - .structeq.yaml           - Profile with default comparison settings
  - example.structeq.yaml    - Example suite with inline documents

Examples:
  structeq init
  structeq init --force`,
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite existing files")
}

const exampleSuite = `name: example
comparisons:
  - name: user matches
    description: Timestamps differ between runs, so they are ignored
    tags: [smoke]
    ignoreFields: [updatedAt]
    actualValue:
      id: 1
      name: Ada
      updatedAt: "2024-01-02T10:00:00Z"
      roles: [admin, dev]
    expectedValue:
      id: 1
      name: Ada
      updatedAt: "2023-12-31T08:30:00Z"
      roles: [admin, dev]

  - name: address optional
    description: Null fields in the actual document are not compared
    ignoreAllActualNilFields: true
    actualValue:
      name: Ada
      address: null
    expectedValue:
      name: Ada
      address:
        city: London
`

func initCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	configFile := filepath.Join(cwd, ".structeq.yaml")
	exampleFile := filepath.Join(cwd, "example.structeq.yaml")

	if !forceInit {
		for _, f := range []string{configFile, exampleFile} {
			if _, err := os.Stat(f); err == nil {
				return exitWith(ExitUsageError, fmt.Errorf("file already exists: %s (use --force to overwrite)", f))
			}
		}
	}

	if err := config.DefaultConfig().SaveConfig(configFile); err != nil {
		return exitWith(ExitConfigError, fmt.Errorf("failed to create config file: %w", err))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)

	if err := os.WriteFile(exampleFile, []byte(exampleSuite), 0644); err != nil {
		return fmt.Errorf("failed to create example file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", exampleFile)

	fmt.Fprintf(cmd.OutOrStdout(), "\nstructeq project initialized!\n")
	fmt.Fprintf(cmd.OutOrStdout(), "Run 'structeq run example.structeq.yaml' to execute the example comparisons.\n")

	return nil
}

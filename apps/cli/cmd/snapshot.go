package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/abdul-hamid-achik/structeq/packages/core/parser"
	"github.com/abdul-hamid-achik/structeq/packages/output"
	"github.com/abdul-hamid-achik/structeq/packages/snapshot"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <file>",
	Short: "Compare a document against its stored snapshot",
	Long: `Compare a JSON or YAML document against a snapshot stored next to it in
__snapshots__/<file>.snap.json. Missing snapshots are created and
mismatching ones rewritten when --update is set.

Examples:
  structeq snapshot response.json
  structeq snapshot response.json --name user --select data.user
  structeq snapshot response.json --update`,
	Args: cobra.ExactArgs(1),
	RunE: snapshotCommand,
}

var (
	snapshotNameFlag   string
	snapshotUpdateFlag bool
	snapshotSelectFlag string
)

func init() {
	snapshotCmd.Flags().StringVarP(&snapshotNameFlag, "name", "n", "", "Snapshot name (default: the file name)")
	snapshotCmd.Flags().BoolVarP(&snapshotUpdateFlag, "update", "u", getEnvBool("STRUCTEQ_UPDATE_SNAPSHOTS", false), "Create or rewrite the snapshot instead of failing (env: STRUCTEQ_UPDATE_SNAPSHOTS)")
	snapshotCmd.Flags().StringVarP(&snapshotSelectFlag, "select", "s", "", "Snapshot only the sub-document at this path")

	addComparisonFlags(snapshotCmd)
}

func snapshotCommand(cmd *cobra.Command, args []string) error {
	file := args[0]

	logger, err := newLogger(verboseFlag)
	if err != nil {
		return exitWith(ExitConfigError, err)
	}
	defer func() { _ = logger.Sync() }()

	profile, err := loadProfile(cmd)
	if err != nil {
		return err
	}
	comparison, err := profile.Comparison()
	if err != nil {
		return exitWith(ExitConfigError, err)
	}
	if noColorFlag || profile.GetNoColor() {
		color.NoColor = true
	}

	doc, err := parser.ParseFile(file)
	if err != nil {
		return exitWith(ExitParseError, err)
	}
	if doc, err = parser.Select(doc, snapshotSelectFlag); err != nil {
		return exitWith(ExitParseError, fmt.Errorf("%s: %w", file, err))
	}

	name := snapshotNameFlag
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	}

	manager := snapshot.NewManager(snapshotUpdateFlag,
		snapshot.WithDir(profile.SnapshotDir),
		snapshot.WithComparison(comparison),
	)
	result := manager.Compare(file, name, doc)
	logger.Debug("snapshot compared",
		zap.String("file", manager.FilePath(file)),
		zap.String("name", result.Name),
		zap.Bool("passed", result.Passed),
		zap.Int("differences", len(result.Differences)),
	)

	out := cmd.OutOrStdout()
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	switch {
	case result.IsNew:
		fmt.Fprintf(out, "%s snapshot %q created in %s\n", yellow("+"), result.Name, manager.FilePath(file))
	case result.WasUpdated:
		fmt.Fprintf(out, "%s snapshot %q updated (%d difference(s) replaced)\n", yellow("~"), result.Name, len(result.Differences))
	case result.Passed:
		fmt.Fprintf(out, "%s snapshot %q matches\n", green("✓"), result.Name)
	default:
		fmt.Fprintf(out, "%s snapshot %q: %s\n", red("✗"), result.Name, result.Message)
		if len(result.Differences) > 0 {
			fmt.Fprintf(out, "\n%s", output.Message(result.Differences, comparison))
		}
		return exitWith(ExitTestFailure, nil)
	}
	return nil
}

// Package cmd implements the structeq CLI commands using Cobra.
//
// Available commands:
//   - compare: Compare two JSON or YAML documents field by field
//   - run: Execute the comparisons listed in suite files
//   - snapshot: Compare a document against a stored snapshot
//   - diff: Compare two JSON run reports
//   - validate: Check suites and profiles without comparing
//   - list: Display all comparisons defined in suites
//   - init: Create a profile and an example suite
//   - version: Show structeq version information
//
// Comparison settings come from a profile (.structeq.yaml and friends) and
// can be overridden per command with --ignore, --strict and related flags.
// Commands return an *ExitError so Execute can map failures to exit codes.
package cmd

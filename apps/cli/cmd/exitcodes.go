package cmd

// Exit codes for structeq CLI
const (
	// ExitSuccess indicates all comparisons passed
	ExitSuccess = 0

	// ExitTestFailure indicates one or more comparisons found differences
	ExitTestFailure = 1

	// ExitParseError indicates a document or suite could not be parsed
	ExitParseError = 2

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)

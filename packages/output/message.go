package output

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abdul-hamid-achik/structeq/packages/recursive"
)

// Message renders the differences found by a recursive comparison, one block
// per difference, followed by a summary of the configuration used. It returns
// an empty string when there are no differences.
func Message(diffs []recursive.Difference, cfg *recursive.Configuration) string {
	if len(diffs) == 0 {
		return ""
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "expected values to be equal when compared field by field recursively, but found the following %d difference(s):\n", len(diffs))
	for _, d := range diffs {
		sb.WriteString("\n")
		fmt.Fprintf(&sb, "field/property '%s' differ:\n", d.Path)
		fmt.Fprintf(&sb, "- actual value  : %s\n", describeValue(d.Actual))
		fmt.Fprintf(&sb, "- expected value: %s\n", describeValue(d.Other))
		if d.AdditionalInformation != "" {
			sb.WriteString(d.AdditionalInformation)
			sb.WriteString("\n")
		}
	}

	if cfg != nil {
		sb.WriteString("\nThe recursive comparison was performed with this configuration:\n")
		sb.WriteString(cfg.Describe())
	}
	return sb.String()
}

// describeValue quotes strings so "1" and 1 read differently.
func describeValue(v any) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(val)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// formatValue formats a value for display, truncating or summarizing large values
func formatValue(v any, maxLen int) string {
	switch val := v.(type) {
	case []any:
		return fmt.Sprintf("[array with %d items]", len(val))
	case map[string]any:
		return fmt.Sprintf("{object with %d keys}", len(val))
	}
	str := describeValue(v)
	if len(str) > maxLen {
		return str[:maxLen] + "..."
	}
	return str
}

package commands

import (
	"strings"

	"github.com/fatih/color"
)

var (
	headerColor = color.New(color.Bold)
	activeColor = color.New(color.FgGreen, color.Bold)
	dimColor    = color.New(color.FgHiBlack)
)

// scopeTags renders which activation scopes a name holds, e.g. "global" or
// "global,local". Empty when the name is active in neither scope.
func scopeTags(global, local bool) string {
	var tags []string
	if global {
		tags = append(tags, activeColor.Sprint("global"))
	}
	if local {
		tags = append(tags, activeColor.Sprint("local"))
	}
	return strings.Join(tags, ",")
}

// orNA substitutes "N/A" for empty optional values in table output.
func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

// truncate shortens a string to maxLen characters, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

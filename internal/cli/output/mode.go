// Package output renders command results for terminals, pipes and scripts.
//
// Output adapts to the environment: styled text on a TTY, markdown when
// piped, JSON when requested.
package output

import "strings"

// OutputMode selects how a Renderer formats results.
type OutputMode string

// Output modes.
const (
	ModeAuto     OutputMode = "auto"
	ModeText     OutputMode = "text"
	ModeMarkdown OutputMode = "markdown"
	ModeJSON     OutputMode = "json"
)

// Modes lists the accepted values for --output.
var Modes = []OutputMode{ModeAuto, ModeText, ModeMarkdown, ModeJSON}

// Mode parses a configured output format. Unknown or empty values mean auto.
func Mode(s string) OutputMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "text", "table":
		return ModeText
	case "markdown", "md":
		return ModeMarkdown
	case "json":
		return ModeJSON
	default:
		return ModeAuto
	}
}

// IsValidMode reports whether s names an output mode.
func IsValidMode(s string) bool {
	if s == "" {
		return true
	}
	for _, m := range Modes {
		if OutputMode(strings.ToLower(s)) == m {
			return true
		}
	}
	return false
}

// Package output provides mode-aware rendering for CLI commands.
package output

import "fmt"

// Mode selects how command output is rendered.
type Mode string

// OutputMode is an alias for call sites that read better with the long name.
type OutputMode = Mode

// Supported output modes. ModeAuto resolves from the TTY state at render
// time: text on a terminal, markdown when piped.
const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// ModeNames lists the accepted --output values, for flag completion and
// validation messages.
var ModeNames = []string{"auto", "text", "markdown", "json"}

// ParseMode validates a mode string. The empty string means ModeAuto.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "":
		return ModeAuto, nil
	case ModeAuto, ModeText, ModeMarkdown, ModeJSON:
		return Mode(s), nil
	}
	return "", fmt.Errorf("invalid output mode %q (expected one of: auto, text, markdown, json)", s)
}

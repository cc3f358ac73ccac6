package ui

import (
	"os"
	"strings"

	"github.com/fatih/color"
)

// Theme provides styled color functions for consistent CLI output
// Respects NO_COLOR and FORCE_COLOR environment variables

var (
	// Check color support
	noColor    = os.Getenv("NO_COLOR") != ""
	forceColor = isForceColor()
)

func init() {
	if forceColor {
		color.NoColor = false
	}
}

func isForceColor() bool {
	fc := strings.TrimSpace(os.Getenv("FORCE_COLOR"))
	return fc != "" && fc != "0"
}

// IsRich returns true if the terminal supports rich output (colors)
func IsRich() bool {
	if noColor && !forceColor {
		return false
	}
	return !color.NoColor
}

var (
	styleAccent       = hexColor(CLI_PALETTE.Accent)
	styleAccentBright = hexColor(CLI_PALETTE.AccentBright, color.Bold)
	styleAccentDim    = hexColor(CLI_PALETTE.AccentDim)
	styleInfo         = hexColor(CLI_PALETTE.Info)
	styleSuccess      = hexColor(CLI_PALETTE.Success)
	styleWarn         = hexColor(CLI_PALETTE.Warn)
	styleError        = hexColor(CLI_PALETTE.Error)
	styleMuted        = hexColor(CLI_PALETTE.Muted)
	styleHeading      = hexColor(CLI_PALETTE.Accent, color.Bold)
)

// Accent returns primary brand-colored text
func Accent(format string, a ...interface{}) string {
	return styleAccent.Sprintf(format, a...)
}

// AccentBright returns highlighted accent text
func AccentBright(format string, a ...interface{}) string {
	return styleAccentBright.Sprintf(format, a...)
}

// AccentDim returns muted accent text
func AccentDim(format string, a ...interface{}) string {
	return styleAccentDim.Sprintf(format, a...)
}

// Info returns informational styled text
func Info(format string, a ...interface{}) string {
	return styleInfo.Sprintf(format, a...)
}

// Success returns success-styled text
func Success(format string, a ...interface{}) string {
	return styleSuccess.Sprintf(format, a...)
}

// Warn returns warning-styled text
func Warn(format string, a ...interface{}) string {
	return styleWarn.Sprintf(format, a...)
}

// Error returns error-styled text
func Error(format string, a ...interface{}) string {
	return styleError.Sprintf(format, a...)
}

// Muted returns secondary/hint text
func Muted(format string, a ...interface{}) string {
	return styleMuted.Sprintf(format, a...)
}

// Heading returns bold accent text for section headers
func Heading(format string, a ...interface{}) string {
	return styleHeading.Sprintf(format, a...)
}

// Subtle returns subtle white text
func Subtle(format string, a ...interface{}) string {
	return color.New(color.FgWhite).Sprintf(format, a...)
}

// Bold returns bold white text
func Bold(format string, a ...interface{}) string {
	return color.New(color.FgWhite, color.Bold).Sprintf(format, a...)
}

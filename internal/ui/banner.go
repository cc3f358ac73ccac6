package ui

import (
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
)

var bannerOnce sync.Once

// EmitBanner displays a boxed product banner once per process. Nothing is
// shown when stdout is not a terminal.
func EmitBanner(version, tagline string) {
	if !isTTY() {
		return
	}
	bannerOnce.Do(func() {
		printLine(FormatBanner(version, tagline))
	})
}

// FormatBanner returns the boxed banner text
func FormatBanner(version, tagline string) string {
	const inner = 60

	badge := " ◆ PALETTE "
	if IsRich() {
		badge = hexColor(CLI_PALETTE.Accent, color.Bold).Add(color.BgWhite).Sprint(badge)
	}

	row := func(content string) string {
		return Muted(boxVertical) + "  " + PadRight(content, inner-2) + Muted(boxVertical)
	}

	lines := []string{
		"",
		Muted("%s", boxTopLeft+strings.Repeat(boxHorizontal, inner)+boxTopRight),
		row(badge + " " + Muted("%s", version)),
		row(Subtle("%s", tagline)),
		Muted("%s", boxBottomLeft+strings.Repeat(boxHorizontal, inner)+boxBottomRight),
	}
	return strings.Join(lines, "\n")
}

// isTTY checks if stdout is a terminal
func isTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

package ui

import (
	"github.com/fatih/color"

	"accessible-palette/internal/colormath"
)

// CLI_PALETTE is the brand palette used for terminal output. Every value is
// a 6-digit hex color.
var CLI_PALETTE = struct {
	// Primary accent colors
	Accent       string // #007ACC - Primary brand color
	AccentBright string // #3395D6 - Highlighted/active state
	AccentDim    string // #00497A - Muted accent

	// Semantic colors
	Info    string // #66AFE0 - Informational messages
	Success string // #2FBF71 - Success/completion
	Warn    string // #FFB020 - Warnings
	Error   string // #E23D2D - Errors

	// Neutral
	Muted string // #8B7F77 - Secondary text, hints, metadata
}{
	Accent:       "#007ACC",
	AccentBright: "#3395D6",
	AccentDim:    "#00497A",
	Info:         "#66AFE0",
	Success:      "#2FBF71",
	Warn:         "#FFB020",
	Error:        "#E23D2D",
	Muted:        "#8B7F77",
}

// hexColor builds a 24-bit foreground style from a palette entry.
// Invalid hex falls back to the terminal default.
func hexColor(hex string, attrs ...color.Attribute) *color.Color {
	c, err := colormath.HexToRGB(hex)
	if err != nil {
		return color.New(attrs...)
	}
	rgb := c.Round()
	return color.RGB(int(rgb.R), int(rgb.G), int(rgb.B)).Add(attrs...)
}

// Swatch renders label in fg on a bg background. Plain terminals, and
// colors that do not parse, get the bare label.
func Swatch(bg, fg, label string) string {
	if !IsRich() {
		return label
	}
	b, err := colormath.HexToRGB(bg)
	if err != nil {
		return label
	}
	b = b.Round()
	return hexColor(fg).AddBgRGB(int(b.R), int(b.G), int(b.B)).Sprint(label)
}

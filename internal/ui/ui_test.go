package ui

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"accessible-palette/internal/colormath"
)

// plain disables color and captures output for the duration of a test
func plain(t *testing.T) *bytes.Buffer {
	t.Helper()
	prevNoColor := color.NoColor
	color.NoColor = true

	var buf bytes.Buffer
	prev := SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(prev)
		color.NoColor = prevNoColor
	})
	return &buf
}

func TestCLIPaletteIsValidHex(t *testing.T) {
	for _, hex := range []string{
		CLI_PALETTE.Accent, CLI_PALETTE.AccentBright, CLI_PALETTE.AccentDim,
		CLI_PALETTE.Info, CLI_PALETTE.Success, CLI_PALETTE.Warn, CLI_PALETTE.Error, CLI_PALETTE.Muted,
	} {
		_, err := colormath.HexToRGB(hex)
		assert.NoError(t, err, hex)
	}
}

func TestStripAnsi(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = prev }()

	styled := Accent("hello")
	assert.NotEqual(t, "hello", styled)
	assert.Equal(t, "hello", StripAnsi(styled))
	assert.Equal(t, 5, VisibleWidth(styled))

	link := "\x1b]8;;https://example.com\x1b\\docs\x1b]8;;\x1b\\"
	assert.Equal(t, "docs", StripAnsi(link))
}

func TestPadRight(t *testing.T) {
	assert.Equal(t, "ab   ", PadRight("ab", 5))
	assert.Equal(t, "abcdef", PadRight("abcdef", 3))
	assert.Equal(t, "", spaces(-1))
}

func TestRenderTable(t *testing.T) {
	plain(t)

	got := RenderTable(RenderTableOptions{
		Columns: []TableColumn{
			{Header: "#"},
			{Header: "Ratio", Align: AlignRight},
		},
		Rows: [][]string{{"1", "4.50"}, {"2"}},
	})

	want := strings.Join([]string{
		"┌───┬───────┐",
		"│ # │ Ratio │",
		"├───┼───────┤",
		"│ 1 │  4.50 │",
		"│ 2 │       │",
		"└───┴───────┘",
	}, "\n") + "\n"
	assert.Equal(t, want, got)
}

func TestRenderTableASCII(t *testing.T) {
	plain(t)

	got := RenderTable(RenderTableOptions{
		Columns: []TableColumn{{Header: "a", Align: AlignCenter, MinWidth: 3}},
		Rows:    [][]string{{"x"}},
		Border:  BorderASCII,
	})
	assert.Equal(t, "+-----+\n|  a  |\n+-----+\n|  x  |\n+-----+\n", got)
}

func TestRenderKeyValues(t *testing.T) {
	plain(t)

	got := RenderKeyValues([][2]string{{"ratio", "4.54"}, {"AA", "pass"}})
	assert.Equal(t, "  ratio:  4.54\n  AA:     pass\n", got)
}

func TestWrapNoteMessage(t *testing.T) {
	t.Setenv("COLUMNS", "50")

	msg := strings.Repeat("word ", 20)
	wrapped := WrapNoteMessage(msg, 80)
	for _, line := range strings.Split(wrapped, "\n") {
		assert.LessOrEqual(t, VisibleWidth(line), 40)
	}
	assert.Equal(t, strings.Fields(msg), strings.Fields(wrapped))
	assert.Equal(t, []string{""}, wrapLine("   ", 40))
}

func TestLogStatus(t *testing.T) {
	buf := plain(t)

	LogStatus("success", "generated")
	LogStatus("debug", "hidden")
	SetDebug(true)
	defer SetDebug(false)
	LogStatus("debug", "shown")

	out := buf.String()
	assert.Contains(t, out, "✔  generated")
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestLogRequest(t *testing.T) {
	buf := plain(t)

	LogRequest("0123456789abcdef", "GET", "/api/palette", 200, 1500*time.Microsecond)
	out := buf.String()
	assert.Contains(t, out, "/api/palette")
	assert.Contains(t, out, "200")
	assert.Contains(t, out, "01234567")
	assert.NotContains(t, out, "89abcdef")
}

func TestNote(t *testing.T) {
	buf := plain(t)

	WarningNote("2 pairs fall short of 7.00:1")
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "⚠ Warning")
	assert.Contains(t, lines[1], "2 pairs fall short of 7.00:1")

	// every line of the box has the same width
	w := VisibleWidth(lines[0])
	for _, l := range lines {
		assert.Equal(t, w, VisibleWidth(l))
	}
}

func TestFormatBanner(t *testing.T) {
	plain(t)

	banner := FormatBanner("v1.2.3", "Accessible palettes")
	assert.Contains(t, banner, "◆ PALETTE")
	assert.Contains(t, banner, "v1.2.3")
	assert.Contains(t, banner, "Accessible palettes")
}

func TestFormatDocsLink(t *testing.T) {
	t.Setenv("TERM_PROGRAM", "")
	t.Setenv("TERM", "dumb")
	t.Setenv("WT_SESSION", "")

	assert.Equal(t,
		"contrast (https://www.w3.org/WAI/WCAG22/Understanding/contrast-minimum)",
		FormatDocsLink("contrast-minimum", "contrast"))
	assert.Equal(t, "https://example.com (https://example.com)", FormatDocsLink("https://example.com", ""))
}

func TestSwatchPlain(t *testing.T) {
	plain(t)

	assert.Equal(t, " Aa ", Swatch("#007acc", "#ffffff", " Aa "))
	assert.Equal(t, "x", Swatch("nope", "#ffffff", "x"))
}

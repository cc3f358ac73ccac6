package ui

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Note displays a boxed message; title is styled with titleFn when the
// terminal supports color.
func Note(message, title string, titleFn func(string, ...interface{}) string) {
	lines := strings.Split(WrapNoteMessage(message, 80), "\n")

	maxWidth := VisibleWidth(title) + 4
	for _, line := range lines {
		if w := VisibleWidth(line); w > maxWidth {
			maxWidth = w
		}
	}
	boxWidth := maxWidth + 4

	printLine()

	if title != "" {
		styled := title
		if IsRich() {
			styled = titleFn("%s", title)
		}
		printLine(fmt.Sprintf("%s %s %s",
			Muted("%s%s", boxTopLeft, strings.Repeat(boxHorizontal, 2)),
			styled,
			Muted("%s%s", strings.Repeat(boxHorizontal, boxWidth-4-VisibleWidth(title)), boxTopRight)))
	} else {
		printLine(Muted("%s", boxTopLeft+strings.Repeat(boxHorizontal, boxWidth)+boxTopRight))
	}

	for _, line := range lines {
		padding := boxWidth - VisibleWidth(line) - 2
		printLine(fmt.Sprintf("%s %s%s %s", Muted(boxVertical), line, spaces(padding), Muted(boxVertical)))
	}

	printLine(Muted("%s", boxBottomLeft+strings.Repeat(boxHorizontal, boxWidth)+boxBottomRight))
}

// WrapNoteMessage wraps text to fit within the terminal width (COLUMNS),
// never wider than maxWidth and never narrower than 40.
func WrapNoteMessage(message string, maxWidth int) string {
	columns := 80
	if term, ok := os.LookupEnv("COLUMNS"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(term)); err == nil && n > 0 {
			columns = n
		}
	}

	width := columns - 10
	if width > maxWidth {
		width = maxWidth
	}
	if width < 40 {
		width = 40
	}

	var outputLines []string
	for _, line := range strings.Split(message, "\n") {
		outputLines = append(outputLines, wrapLine(line, width)...)
	}
	return strings.Join(outputLines, "\n")
}

// wrapLine wraps a single line to width on word boundaries
func wrapLine(line string, maxWidth int) []string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := ""

	for _, word := range words {
		candidate := current
		if current != "" {
			candidate += " "
		}
		candidate += word

		if VisibleWidth(candidate) <= maxWidth {
			current = candidate
			continue
		}
		if current != "" {
			lines = append(lines, current)
		}
		current = word
	}

	if current != "" {
		lines = append(lines, current)
	}

	return lines
}

// InfoNote displays an info-styled note
func InfoNote(message string) {
	Note(message, "ℹ Info", Info)
}

// WarningNote displays a warning-styled note
func WarningNote(message string) {
	Note(message, "⚠ Warning", Warn)
}

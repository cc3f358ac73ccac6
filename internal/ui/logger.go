package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Box-drawing characters for boxed output
const (
	boxTopLeft     = "╭"
	boxTopRight    = "╮"
	boxBottomLeft  = "╰"
	boxBottomRight = "╯"
	boxHorizontal  = "─"
	boxVertical    = "│"
)

var (
	outMu sync.Mutex
	out   io.Writer = color.Output
)

// SetOutput redirects all ui output and returns the previous writer.
func SetOutput(w io.Writer) io.Writer {
	outMu.Lock()
	defer outMu.Unlock()
	prev := out
	out = w
	return prev
}

// printf writes one formatted chunk; lines from concurrent requests never interleave
func printf(format string, a ...interface{}) {
	outMu.Lock()
	defer outMu.Unlock()
	fmt.Fprintf(out, format, a...)
}

func printLine(a ...interface{}) {
	outMu.Lock()
	defer outMu.Unlock()
	fmt.Fprintln(out, a...)
}

func timestamp() string {
	return Muted("%s", time.Now().Format("15:04:05"))
}

// LogStatus displays a status message with appropriate styling
func LogStatus(category, message string) {
	var icon string
	var styledMsg string

	switch category {
	case "success":
		icon = Success("✔")
		styledMsg = Success("%s", message)
	case "error":
		icon = Error("✖")
		styledMsg = Error("%s", message)
	case "warning", "warn":
		icon = Warn("⚠")
		styledMsg = Warn("%s", message)
	case "info":
		icon = Info("ℹ")
		styledMsg = Subtle("%s", message)
	case "debug":
		if !debugEnabled() {
			return
		}
		icon = Muted("·")
		styledMsg = Muted("%s", message)
	default:
		icon = Muted("●")
		styledMsg = Subtle("%s", message)
	}

	printf("%s  %s  %s\n", timestamp(), icon, styledMsg)
}

var (
	debugMu sync.RWMutex
	debug   bool
)

// SetDebug toggles "debug" status lines.
func SetDebug(on bool) {
	debugMu.Lock()
	debug = on
	debugMu.Unlock()
}

func debugEnabled() bool {
	debugMu.RLock()
	defer debugMu.RUnlock()
	return debug
}

// LogSection creates a section header
func LogSection(title string) {
	pad := 50 - VisibleWidth(title)
	if pad < 2 {
		pad = 2
	}
	printLine()
	printLine(fmt.Sprintf("%s %s %s",
		Muted("──"),
		Heading("%s", title),
		Muted("%s", strings.Repeat("─", pad))))
}

// LogGroup starts a grouped block of messages
func LogGroup(title string) {
	pad := 50 - VisibleWidth(title)
	if pad < 2 {
		pad = 2
	}
	printLine()
	printLine(fmt.Sprintf("%s %s %s",
		Muted("%s%s", boxTopLeft, strings.Repeat(boxHorizontal, 2)),
		AccentBright("%s", title),
		Muted("%s%s", strings.Repeat(boxHorizontal, pad), boxTopRight)))
}

// LogGroupItem logs an item within a group
func LogGroupItem(label, value string) {
	printLine(fmt.Sprintf("%s  %s %s",
		Muted(boxVertical),
		Muted("%s:", label),
		Accent("%s", value)))
}

// LogGroupEnd closes a grouped block
func LogGroupEnd() {
	printLine(Muted("%s", boxBottomLeft+strings.Repeat(boxHorizontal, 56)+boxBottomRight))
	printLine()
}

// LogRequest displays one served API request
func LogRequest(id, method, path string, status int, d time.Duration) {
	var code string
	switch {
	case status >= 500:
		code = Error("%d", status)
	case status >= 400:
		code = Warn("%d", status)
	default:
		code = Success("%d", status)
	}

	printf("%s  %s  %s %s  %s  %s\n",
		timestamp(),
		Accent("→"),
		Subtle("%-6s", method),
		Accent("%-24s", path),
		code,
		Muted("%s %s", d.Round(time.Microsecond), shortID(id)))
}

// LogGracefulShutdown announces that shutdown has started
func LogGracefulShutdown() {
	LogStatus("warning", "Shutdown signal received, finishing in-flight requests...")
}

// PrintFooter displays a dim footer message
func PrintFooter(message string) {
	printLine()
	printf("  %s %s\n", Muted("▸"), Muted("%s", message))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

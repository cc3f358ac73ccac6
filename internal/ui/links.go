package ui

import (
	"fmt"
	"os"
	"strings"
)

// DOCS_ROOT is the base URL for WCAG documentation links
const DOCS_ROOT = "https://www.w3.org/WAI/WCAG22/Understanding"

// SupportsHyperlinks checks if the terminal supports OSC-8 hyperlinks
func SupportsHyperlinks() bool {
	termProgram := os.Getenv("TERM_PROGRAM")
	term := os.Getenv("TERM")
	wtSession := os.Getenv("WT_SESSION") // Windows Terminal

	if strings.Contains(termProgram, "iTerm") ||
		strings.Contains(termProgram, "WezTerm") ||
		strings.Contains(termProgram, "vscode") ||
		strings.Contains(termProgram, "Hyper") ||
		wtSession != "" {
		return true
	}

	return strings.Contains(term, "xterm-256color")
}

// FormatTerminalLink creates an OSC-8 hyperlink if supported.
// Falls back to "label (url)" otherwise.
func FormatTerminalLink(label, url string) string {
	if !SupportsHyperlinks() {
		return fmt.Sprintf("%s (%s)", label, url)
	}
	// ESC ] 8 ; ; URL ST text ESC ] 8 ; ; ST, where ST = ESC \
	return fmt.Sprintf("\x1b]8;;%s\x1b\\%s\x1b]8;;\x1b\\", url, label)
}

// FormatDocsLink creates a link below DOCS_ROOT, or to path itself when it
// is already absolute.
func FormatDocsLink(path, label string) string {
	url := path
	if !strings.HasPrefix(path, "http") {
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		url = DOCS_ROOT + path
	}

	if label == "" {
		label = url
	}

	return FormatTerminalLink(label, url)
}

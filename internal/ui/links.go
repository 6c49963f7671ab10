package ui

import (
	"fmt"
	"os"
	"strings"
)

// ColorInfoRoot is the base URL for color reference links
const ColorInfoRoot = "https://www.color-hex.com/color/"

// SupportsHyperlinks checks if the terminal supports OSC-8 hyperlinks
func SupportsHyperlinks() bool {
	termProgram := os.Getenv("TERM_PROGRAM")
	if strings.Contains(termProgram, "iTerm") ||
		strings.Contains(termProgram, "WezTerm") ||
		strings.Contains(termProgram, "vscode") ||
		os.Getenv("WT_SESSION") != "" {
		return true
	}
	return strings.Contains(os.Getenv("TERM"), "xterm-256color")
}

// FormatTerminalLink creates an OSC-8 hyperlink if supported
// Falls back to "label (url)" format if not supported
func FormatTerminalLink(label, url string) string {
	if !SupportsHyperlinks() {
		return fmt.Sprintf("%s (%s)", label, url)
	}
	// ESC ] 8 ; ; URL ST text ESC ] 8 ; ; ST
	return fmt.Sprintf("\x1b]8;;%s\x1b\\%s\x1b]8;;\x1b\\", url, label)
}

// ColorInfoURL returns the reference page for a #rrggbb color.
func ColorInfoURL(hex string) string {
	return ColorInfoRoot + strings.ToLower(strings.TrimPrefix(hex, "#"))
}

// FormatColorLink links a hex code to its reference page. Without
// hyperlink support the bare hex is returned so tables stay narrow.
func FormatColorLink(hex string) string {
	if !SupportsHyperlinks() {
		return hex
	}
	return FormatTerminalLink(hex, ColorInfoURL(hex))
}

package ui

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// ANSI escape code patterns
var (
	// SGR (Select Graphic Rendition) codes: ESC[...m, including 24-bit forms
	ansiSGRPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

	// OSC-8 hyperlink codes: ESC]8;;...ESC\
	osc8Pattern = regexp.MustCompile(`\x1b\]8;;[^\x1b]*\x1b\\`)
)

// StripAnsi removes all ANSI escape codes from a string
func StripAnsi(input string) string {
	result := osc8Pattern.ReplaceAllString(input, "")
	return ansiSGRPattern.ReplaceAllString(result, "")
}

// VisibleWidth returns the display width of a string, ignoring ANSI codes.
// It counts runes, which is exact for the box and block characters used here.
func VisibleWidth(input string) int {
	return utf8.RuneCountInString(StripAnsi(input))
}

// PadRight pads input with trailing spaces to a minimum visible width
func PadRight(input string, width int) string {
	return input + spaces(width-VisibleWidth(input))
}

// PadLeft pads input with leading spaces to a minimum visible width
func PadLeft(input string, width int) string {
	return spaces(width-VisibleWidth(input)) + input
}

// PadCenter centers a string within a given width
func PadCenter(input string, width int) string {
	padding := width - VisibleWidth(input)
	if padding <= 0 {
		return input
	}
	left := padding / 2
	return spaces(left) + input + spaces(padding-left)
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}

package ui

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Note displays a boxed message with optional title
func Note(message string, title string) {
	lines := strings.Split(WrapNoteMessage(message, 80), "\n")

	maxWidth := 0
	for _, line := range lines {
		if w := VisibleWidth(line); w > maxWidth {
			maxWidth = w
		}
	}
	boxWidth := maxWidth + 4
	if title != "" && VisibleWidth(title)+6 > boxWidth {
		boxWidth = VisibleWidth(title) + 6
	}

	writeLine()
	if title != "" {
		styledTitle := title
		if IsRich() {
			styledTitle = Heading("%s", title)
		}
		writeLine(fmt.Sprintf("%s%s %s %s%s",
			Muted("%s", boxTopLeft),
			Muted("%s", strings.Repeat(boxHorizontal, 2)),
			styledTitle,
			Muted("%s", strings.Repeat(boxHorizontal, boxWidth-4-VisibleWidth(title))),
			Muted("%s", boxTopRight)))
	} else {
		writeLine(Muted("%s", boxTopLeft+strings.Repeat(boxHorizontal, boxWidth)+boxTopRight))
	}

	for _, line := range lines {
		writeLine(fmt.Sprintf("%s %s %s",
			Muted("%s", boxVertical),
			PadRight(line, boxWidth-2),
			Muted("%s", boxVertical)))
	}

	writeLine(Muted("%s", boxBottomLeft+strings.Repeat(boxHorizontal, boxWidth)+boxBottomRight))
	writeLine()
}

// WrapNoteMessage wraps text to the terminal width (COLUMNS), capped at
// maxWidth and never narrower than 40.
func WrapNoteMessage(message string, maxWidth int) string {
	columns := 80
	if n, err := strconv.Atoi(os.Getenv("COLUMNS")); err == nil && n > 0 {
		columns = n
	}

	width := columns - 10
	if width > maxWidth {
		width = maxWidth
	}
	if width < 40 {
		width = 40
	}

	var wrapped []string
	for _, line := range strings.Split(message, "\n") {
		wrapped = append(wrapped, wrapLine(line, width)...)
	}
	return strings.Join(wrapped, "\n")
}

func wrapLine(line string, maxWidth int) []string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	current := ""
	for _, word := range words {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if VisibleWidth(candidate) <= maxWidth || current == "" {
			current = candidate
			continue
		}
		lines = append(lines, current)
		current = word
	}
	return append(lines, current)
}

// ErrorNote displays an error-styled note
func ErrorNote(message string) {
	Note(message, "✗ Error")
}

// SuccessNote displays a success-styled note
func SuccessNote(message string) {
	Note(message, "✓ Success")
}

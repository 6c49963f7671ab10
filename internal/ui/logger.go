package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

var (
	clrDim    = color.New(color.FgHiBlack)
	clrSubtle = color.New(color.FgWhite)

	clrSuccess = color.New(color.FgGreen)
	clrError   = color.New(color.FgRed)
	clrWarning = color.New(color.FgYellow)
	clrInfo    = color.New(color.FgBlue)
)

// Box-drawing characters
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
	out   io.Writer = os.Stdout
	clock           = time.Now
)

// SetOutput redirects console output, returning the previous writer.
func SetOutput(w io.Writer) io.Writer {
	outMu.Lock()
	defer outMu.Unlock()
	prev := out
	out = w
	return prev
}

func writeLine(a ...interface{}) {
	outMu.Lock()
	defer outMu.Unlock()
	fmt.Fprintln(out, a...)
}

func timestamp() string {
	return clrDim.Sprint(clock().Format("15:04:05"))
}

// LogStatus displays a status message with appropriate styling
func LogStatus(category, message string) {
	var icon string
	var styledMsg string

	switch category {
	case "success":
		icon = clrSuccess.Sprint("✔")
		styledMsg = clrSuccess.Sprint(message)
	case "error":
		icon = clrError.Sprint("✖")
		styledMsg = clrError.Sprint(message)
	case "warning", "warn":
		icon = clrWarning.Sprint("⚠")
		styledMsg = clrWarning.Sprint(message)
	case "info":
		icon = clrInfo.Sprint("ℹ")
		styledMsg = clrSubtle.Sprint(message)
	default:
		icon = clrDim.Sprint("●")
		styledMsg = clrSubtle.Sprint(message)
	}

	writeLine(fmt.Sprintf("%s  %s  %s", timestamp(), icon, styledMsg))
}

// LogSection prints a section header
func LogSection(title string) {
	rule := 50 - VisibleWidth(title)
	if rule < 3 {
		rule = 3
	}
	writeLine()
	writeLine(fmt.Sprintf("%s %s %s",
		clrDim.Sprint("──"),
		Heading("%s", title),
		clrDim.Sprint(strings.Repeat("─", rule))))
}

// LogGroup starts a boxed block of label/value lines
func LogGroup(title string) {
	rule := 50 - VisibleWidth(title)
	if rule < 3 {
		rule = 3
	}
	writeLine()
	writeLine(fmt.Sprintf("%s %s %s",
		clrDim.Sprint(boxTopLeft+strings.Repeat(boxHorizontal, 2)),
		Heading("%s", title),
		clrDim.Sprint(strings.Repeat(boxHorizontal, rule)+boxTopRight)))
}

// LogGroupItem logs an item within a group
func LogGroupItem(label, value string) {
	writeLine(fmt.Sprintf("%s  %s %s",
		clrDim.Sprint(boxVertical),
		clrDim.Sprint(label+":"),
		Accent("%s", value)))
}

// LogGroupEnd closes a grouped block
func LogGroupEnd() {
	writeLine(clrDim.Sprint(boxBottomLeft + strings.Repeat(boxHorizontal, 56) + boxBottomRight))
}

// LogGracefulShutdown announces that the server is draining.
func LogGracefulShutdown() {
	LogStatus("warning", "Shutting down gracefully...")
}

// PrintFooter displays a dim footer line
func PrintFooter(message string) {
	writeLine()
	writeLine(fmt.Sprintf("  %s %s", clrDim.Sprint("▸"), clrDim.Sprint(message)))
}

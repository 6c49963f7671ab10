package ui

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"

	"palette-studio/internal/colorspace"
	"palette-studio/internal/palette"
)

var bannerArt = []string{
	"██████╗  █████╗ ██╗     ███████╗████████╗████████╗███████╗",
	"██╔══██╗██╔══██╗██║     ██╔════╝╚══██╔══╝╚══██╔══╝██╔════╝",
	"██████╔╝███████║██║     █████╗     ██║      ██║   █████╗  ",
	"██╔═══╝ ██╔══██║██║     ██╔══╝     ██║      ██║   ██╔══╝  ",
	"██║     ██║  ██║███████╗███████╗   ██║      ██║   ███████╗",
	"╚═╝     ╚═╝  ╚═╝╚══════╝╚══════╝   ╚═╝      ╚═╝   ╚══════╝",
}

var bannerOnce sync.Once

// FormatBannerArt returns the banner with a left-to-right gradient taken
// from the analogous palette of the default base color.
func FormatBannerArt() string {
	if !IsRich() {
		return strings.Join(bannerArt, "\n")
	}

	stops, err := palette.Generate(palette.DefaultBase, palette.Analogous)
	if err != nil {
		return strings.Join(bannerArt, "\n")
	}
	shades := make([]*color.Color, len(stops))
	for i, hex := range stops {
		rgb, err := colorspace.ParseHex(hex)
		if err != nil {
			return strings.Join(bannerArt, "\n")
		}
		shades[i] = color.RGB(int(rgb.R), int(rgb.G), int(rgb.B))
	}

	lines := make([]string, len(bannerArt))
	for row, line := range bannerArt {
		runes := []rune(line)
		var b strings.Builder
		for col, ch := range runes {
			if ch == ' ' {
				b.WriteRune(ch)
				continue
			}
			shade := shades[col*len(shades)/len(runes)]
			b.WriteString(shade.Sprint(string(ch)))
		}
		lines[row] = b.String()
	}
	return strings.Join(lines, "\n")
}

// FormatBannerLine returns the version/tagline line
func FormatBannerLine(version, tagline string) string {
	title := "◆ PALETTE STUDIO"
	if IsRich() {
		return fmt.Sprintf("%s %s %s %s",
			Heading("%s", title),
			Info("%s", version),
			Muted("·"),
			FormatTagline(tagline))
	}
	return fmt.Sprintf("%s %s · %s", title, version, tagline)
}

// EmitBanner displays the banner once per process when stdout is a
// terminal. Machine-readable invocations never print it.
func EmitBanner(version, tagline string) {
	if !isTTY() {
		return
	}
	for _, arg := range os.Args {
		if arg == "--json" || arg == "--version" {
			return
		}
	}
	bannerOnce.Do(func() {
		writeLine()
		writeLine(FormatBannerArt())
		writeLine()
		writeLine(FormatBannerLine(version, tagline))
		writeLine()
	})
}

// isTTY checks if stdout is a terminal
func isTTY() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fi.Mode() & os.ModeCharDevice) != 0
}

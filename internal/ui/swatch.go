package ui

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"palette-studio/internal/colorspace"
)

const swatchWidth = 9

// Swatch renders one color as a solid block with its hex code printed on
// top in black or white, whichever reads better. Without color support it
// falls back to the bracketed hex code.
func Swatch(hex string) string {
	rgb, err := colorspace.ParseHex(hex)
	if err != nil {
		return PadCenter("["+hex+"]", swatchWidth)
	}
	label := PadCenter(rgb.Hex(), swatchWidth)
	if !IsRich() {
		return PadCenter("["+rgb.Hex()+"]", swatchWidth)
	}
	fg := color.RGB(0, 0, 0)
	if IsDark(rgb) {
		fg = color.RGB(0xff, 0xff, 0xff)
	}
	return fg.AddBgRGB(int(rgb.R), int(rgb.G), int(rgb.B)).Sprint(label)
}

// RenderSwatches joins the swatches of colors into a single row.
func RenderSwatches(colors []string) string {
	parts := make([]string, len(colors))
	for i, c := range colors {
		parts[i] = Swatch(c)
	}
	return strings.Join(parts, " ")
}

// RenderMarkers renders a row aligned under RenderSwatches with a caret
// beneath the swatch at index mark.
func RenderMarkers(count, mark int) string {
	parts := make([]string, count)
	for i := range parts {
		if i == mark {
			parts[i] = PadCenter("^ base", swatchWidth)
		} else {
			parts[i] = spaces(swatchWidth)
		}
	}
	return strings.TrimRight(strings.Join(parts, " "), " ")
}

// ColorDot returns a small block in the given color followed by its hex,
// linked to the color's reference page where the terminal allows it.
func ColorDot(hex string) string {
	rgb, err := colorspace.ParseHex(hex)
	if err != nil {
		return hex
	}
	if !IsRich() {
		return rgb.Hex()
	}
	dot := color.RGB(int(rgb.R), int(rgb.G), int(rgb.B)).Sprint("██")
	return fmt.Sprintf("%s %s", dot, FormatColorLink(rgb.Hex()))
}

// IsDark reports whether c has a relative luminance below one half,
// using the Rec. 601 luma weights.
func IsDark(c colorspace.RGB) bool {
	luma := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
	return luma < 128
}

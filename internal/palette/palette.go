// Package palette derives five-color harmonious palettes from a base color.
//
// Generation is pure and deterministic: the base is decoded to HSL, each
// slot of the scheme rotates the hue and/or shifts the lightness, and the
// result is re-encoded to hex. Saturation never changes.
package palette

import (
	"math"

	"palette-studio/internal/colorspace"
)

// Size is the number of colors in every palette.
const Size = 5

// BaseIndex is the slot holding the base color itself.
const BaseIndex = 2

const (
	DefaultBase   = "#0070f3"
	DefaultScheme = Analogous
)

// Palette is an ordered set of lowercase "#rrggbb" colors.
type Palette [Size]string

// Generate derives the palette for baseHex under scheme.
//
// A malformed baseHex returns an error wrapping
// colorspace.ErrInvalidColorFormat. Passing a scheme outside Schemes() is a
// programming error and panics; use ParseScheme on untrusted input.
func Generate(baseHex string, scheme Scheme) (Palette, error) {
	info := scheme.info()

	base, err := colorspace.ParseHex(baseHex)
	if err != nil {
		return Palette{}, err
	}
	hsl := base.HSL()

	var p Palette
	for i, st := range info.steps {
		if st.base {
			p[i] = base.Hex()
			continue
		}
		p[i] = colorspace.HSLToHex(
			rotateHue(hsl.H, st.hue),
			hsl.S,
			shiftLightness(hsl.L, st.lightness),
		)
	}
	return p, nil
}

// GenerateAll returns one palette per scheme, keyed by scheme.
func GenerateAll(baseHex string) (map[Scheme]Palette, error) {
	out := make(map[Scheme]Palette, len(schemeOrder))
	for _, s := range schemeOrder {
		p, err := Generate(baseHex, s)
		if err != nil {
			return nil, err
		}
		out[s] = p
	}
	return out, nil
}

// Base returns the base color slot.
func (p Palette) Base() string {
	return p[BaseIndex]
}

// Slice returns the colors as a slice, convenient for JSON and templates.
func (p Palette) Slice() []string {
	return append([]string(nil), p[:]...)
}

// HSL decodes every color of the palette.
func (p Palette) HSL() ([Size]colorspace.HSL, error) {
	var out [Size]colorspace.HSL
	for i, c := range p {
		hsl, err := colorspace.HexToHSL(c)
		if err != nil {
			return out, err
		}
		out[i] = hsl
	}
	return out, nil
}

func rotateHue(h, delta float64) float64 {
	return math.Mod(h+delta+360, 360)
}

func shiftLightness(l, delta float64) float64 {
	return math.Max(0, math.Min(100, l+delta))
}

package colorspace

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidColorFormat is returned when a string is not a #RRGGBB color.
var ErrInvalidColorFormat = errors.New("invalid color format")

// RGB is a 24-bit color.
type RGB struct {
	R, G, B uint8
}

// HSL is a color in hue/saturation/lightness form.
// H is in degrees [0,360), S and L are percentages [0,100].
type HSL struct {
	H, S, L float64
}

// ParseHex decodes "#RRGGBB" (the leading '#' is optional, digits are
// case-insensitive). Shorthand and alpha forms are rejected.
func ParseHex(s string) (RGB, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return RGB{}, fmt.Errorf("%w: %q must have exactly 6 hex digits", ErrInvalidColorFormat, s)
	}
	for i := 0; i < len(hex); i++ {
		if !isHexDigit(hex[i]) {
			return RGB{}, fmt.Errorf("%w: %q contains non-hex character %q", ErrInvalidColorFormat, s, hex[i])
		}
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return RGB{}, fmt.Errorf("%w: %q: %v", ErrInvalidColorFormat, s, err)
	}
	return RGB{
		R: uint8(v >> 16),
		G: uint8(v >> 8 & 0xFF),
		B: uint8(v & 0xFF),
	}, nil
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// Normalize returns the canonical lowercase "#rrggbb" form of hex.
func Normalize(hex string) (string, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return "", err
	}
	return c.Hex(), nil
}

// HexToHSL converts a hex color to HSL.
func HexToHSL(hex string) (HSL, error) {
	c, err := ParseHex(hex)
	if err != nil {
		return HSL{}, err
	}
	return c.HSL(), nil
}

// HSLToHex converts HSL to a lowercase "#rrggbb" string. h may be any
// real number of degrees; s and l are clamped to [0,100].
func HSLToHex(h, s, l float64) string {
	return HSL{H: h, S: s, L: l}.Hex()
}

// Hex returns the lowercase "#rrggbb" encoding.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// HSL converts c to hue/saturation/lightness.
func (c RGB) HSL() HSL {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	hi := math.Max(r, math.Max(g, b))
	lo := math.Min(r, math.Min(g, b))
	l := (hi + lo) / 2

	if hi == lo {
		return HSL{H: 0, S: 0, L: l * 100}
	}

	d := hi - lo
	var s float64
	if l > 0.5 {
		s = d / (2 - hi - lo)
	} else {
		s = d / (hi + lo)
	}

	var h float64
	switch hi {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h /= 6

	return HSL{H: h * 360, S: s * 100, L: l * 100}
}

// RGB converts the color back to 8-bit channels, rounding to nearest.
func (c HSL) RGB() RGB {
	h := wrapHue(c.H) / 360
	s := clampPercent(c.S) / 100
	l := clampPercent(c.L) / 100

	if s == 0 {
		v := toByte(l)
		return RGB{R: v, G: v, B: v}
	}

	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q

	return RGB{
		R: toByte(hueToChannel(p, q, h+1.0/3)),
		G: toByte(hueToChannel(p, q, h)),
		B: toByte(hueToChannel(p, q, h-1.0/3)),
	}
}

// Hex encodes the color as lowercase "#rrggbb".
func (c HSL) Hex() string {
	return c.RGB().Hex()
}

func (c HSL) String() string {
	return fmt.Sprintf("hsl(%.1f, %.1f%%, %.1f%%)", c.H, c.S, c.L)
}

func hueToChannel(p, q, t float64) float64 {
	if t < 0 {
		t++
	}
	if t > 1 {
		t--
	}
	switch {
	case t < 1.0/6:
		return p + (q-p)*6*t
	case t < 1.0/2:
		return q
	case t < 2.0/3:
		return p + (q-p)*(2.0/3-t)*6
	default:
		return p
	}
}

func toByte(x float64) uint8 {
	v := math.Round(x * 255)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// wrapHue reduces degrees into [0,360).
func wrapHue(h float64) float64 {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	return h
}

func clampPercent(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

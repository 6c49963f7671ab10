package palette

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownScheme is returned by ParseScheme for names outside the scheme set.
var ErrUnknownScheme = errors.New("unknown scheme")

// Scheme names a color-wheel relationship used to derive a palette.
type Scheme string

const (
	Analogous          Scheme = "analogous"
	Monochromatic      Scheme = "monochromatic"
	Triadic            Scheme = "triadic"
	Complementary      Scheme = "complementary"
	SplitComplementary Scheme = "split-complementary"
)

// step is one palette slot: a hue rotation in degrees and a lightness
// delta in percentage points. The base slot is copied through untouched.
type step struct {
	hue       float64
	lightness float64
	base      bool
}

var baseStep = step{base: true}

type schemeInfo struct {
	label       string
	description string
	steps       [Size]step
}

// Complementary is irregular: slot 3 keeps the base hue and only lightens,
// while slots 0, 1 and 4 sit on the complement.
var schemeTable = map[Scheme]schemeInfo{
	Analogous: {
		label:       "Analogous",
		description: "Colors adjacent to each other on the color wheel",
		steps:       [Size]step{{hue: -30}, {hue: -15}, baseStep, {hue: 15}, {hue: 30}},
	},
	Monochromatic: {
		label:       "Monochromatic",
		description: "Different shades and tints of the base color",
		steps:       [Size]step{{lightness: -30}, {lightness: -15}, baseStep, {lightness: 15}, {lightness: 30}},
	},
	Triadic: {
		label:       "Triadic",
		description: "Three colors equally spaced on the color wheel",
		steps:       [Size]step{{hue: 120}, {hue: 60}, baseStep, {hue: 240}, {hue: 300}},
	},
	Complementary: {
		label:       "Complementary",
		description: "Colors opposite each other on the color wheel",
		steps:       [Size]step{{hue: 180, lightness: -15}, {hue: 180}, baseStep, {lightness: 15}, {hue: 180, lightness: 15}},
	},
	SplitComplementary: {
		label:       "Split Complementary",
		description: "Base color and two colors adjacent to its complement",
		steps:       [Size]step{{hue: 150}, {hue: 165}, baseStep, {hue: 195}, {hue: 210}},
	},
}

var schemeOrder = []Scheme{Analogous, Monochromatic, Triadic, Complementary, SplitComplementary}

// Schemes returns every supported scheme in display order.
func Schemes() []Scheme {
	return append([]Scheme(nil), schemeOrder...)
}

// ParseScheme maps user input such as "Split_Complementary" to a Scheme.
func ParseScheme(name string) (Scheme, error) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	normalized = strings.NewReplacer("_", "-", " ", "-").Replace(normalized)

	s := Scheme(normalized)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q (want one of %s)", ErrUnknownScheme, name, strings.Join(schemeNames(), ", "))
	}
	return s, nil
}

// Valid reports whether s is one of the supported schemes.
func (s Scheme) Valid() bool {
	_, ok := schemeTable[s]
	return ok
}

func (s Scheme) String() string {
	return string(s)
}

// Label is the human-readable scheme name.
func (s Scheme) Label() string {
	return s.info().label
}

// Description summarizes the color relationship behind s.
func (s Scheme) Description() string {
	return s.info().description
}

func (s Scheme) info() schemeInfo {
	info, ok := schemeTable[s]
	if !ok {
		panic(fmt.Sprintf("palette: unknown scheme %q", string(s)))
	}
	return info
}

func schemeNames() []string {
	names := make([]string, len(schemeOrder))
	for i, s := range schemeOrder {
		names[i] = string(s)
	}
	return names
}

// Package colorname resolves SVG/CSS color keywords to hex.
package colorname

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/image/colornames"

	"palette-studio/internal/colorspace"
)

// Resolve accepts either a hex color or a color keyword ("tomato",
// "Dark Orchid") and returns the canonical "#rrggbb" form.
func Resolve(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if hex, err := colorspace.Normalize(trimmed); err == nil {
		return hex, nil
	}

	key := strings.NewReplacer(" ", "", "-", "", "_", "").Replace(strings.ToLower(trimmed))
	c, ok := colornames.Map[key]
	if !ok || key == "" {
		return "", fmt.Errorf("%w: %q is neither #RRGGBB nor a known color name", colorspace.ErrInvalidColorFormat, input)
	}
	return colorspace.RGB{R: c.R, G: c.G, B: c.B}.Hex(), nil
}

// Names returns the known color keywords, sorted. A non-empty filter keeps
// only names containing it.
func Names(filter string) []string {
	filter = strings.ToLower(strings.TrimSpace(filter))

	names := make([]string, 0, len(colornames.Names))
	for _, name := range colornames.Names {
		if filter == "" || strings.Contains(name, filter) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

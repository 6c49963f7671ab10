package ui

import (
	"math/rand"
	"strings"
	"time"
)

const defaultTagline = "Five colors, one base"

var taglines = []string{
	"Five colors, one base",
	"Turning one hex into a whole mood",
	"Color theory, served over HTTP",
	"Rotate the hue, keep the vibe",
	"Every base deserves good neighbours",
	"Complementary by nature",
	"Lightness within bounds, hue in a circle",
	"Swatches for the terminal age",
}

type taglineRule struct {
	month   time.Month
	day     int
	tagline string
}

var holidayTaglines = []taglineRule{
	{month: time.December, day: 24, tagline: "🎄 Evergreen, crimson and a little gold"},
	{month: time.December, day: 25, tagline: "🎄 Red and green, complementary since forever"},
	{month: time.October, day: 31, tagline: "🎃 #ff7518 is the only color tonight"},
	{month: time.February, day: 14, tagline: "💘 Monochromatic in every shade of pink"},
	{month: time.January, day: 1, tagline: "🎉 A fresh palette for a fresh year"},
}

// PickTagline returns a holiday tagline for today, or a random one.
func PickTagline() string {
	return pickTagline(time.Now(), rand.New(rand.NewSource(time.Now().UnixNano())))
}

func pickTagline(now time.Time, r *rand.Rand) string {
	for _, rule := range holidayTaglines {
		if rule.month == now.Month() && rule.day == now.Day() {
			return rule.tagline
		}
	}
	if len(taglines) == 0 {
		return defaultTagline
	}
	return taglines[r.Intn(len(taglines))]
}

// GetAllTaglines returns all available taglines (for testing/display)
func GetAllTaglines() []string {
	return append([]string{}, taglines...)
}

// FormatTagline styles a tagline. Holiday taglines keep their emoji unstyled.
func FormatTagline(tagline string) string {
	if !IsRich() {
		return tagline
	}
	for _, prefix := range []string{"🎄", "🎃", "💘", "🎉"} {
		if strings.HasPrefix(tagline, prefix) {
			return tagline
		}
	}
	return AccentDim("%s", tagline)
}

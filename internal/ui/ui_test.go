package ui

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"palette-studio/internal/colorspace"
)

func plainOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	prevNoColor := color.NoColor
	color.NoColor = true
	var buf bytes.Buffer
	prev := SetOutput(&buf)
	t.Cleanup(func() {
		color.NoColor = prevNoColor
		SetOutput(prev)
	})
	return &buf
}

func TestStripAnsiAndWidth(t *testing.T) {
	styled := "\x1b[38;2;0;112;243mhello\x1b[0m"
	if got := StripAnsi(styled); got != "hello" {
		t.Errorf("StripAnsi = %q", got)
	}
	if got := VisibleWidth(styled); got != 5 {
		t.Errorf("VisibleWidth = %d, want 5", got)
	}
	link := "\x1b]8;;https://example.com\x1b\\#0070f3\x1b]8;;\x1b\\"
	if got := VisibleWidth(link); got != 7 {
		t.Errorf("VisibleWidth(link) = %d, want 7", got)
	}
	if got := VisibleWidth("│ ─"); got != 3 {
		t.Errorf("VisibleWidth(box) = %d, want 3", got)
	}
}

func TestPadding(t *testing.T) {
	if got := PadRight("ab", 5); got != "ab   " {
		t.Errorf("PadRight = %q", got)
	}
	if got := PadLeft("ab", 5); got != "   ab" {
		t.Errorf("PadLeft = %q", got)
	}
	if got := PadCenter("ab", 6); got != "  ab  " {
		t.Errorf("PadCenter = %q", got)
	}
	if got := PadRight("toolong", 3); got != "toolong" {
		t.Errorf("PadRight should not truncate, got %q", got)
	}
}

func TestTableRenderASCII(t *testing.T) {
	tbl := &Table{
		Columns: []TableColumn{{Header: "Name"}, {Header: "Hex"}},
		Border:  BorderASCII,
	}
	tbl.AddRow("a", "#000000")

	want := strings.Join([]string{
		"+------+---------+",
		"| Name | Hex     |",
		"+------+---------+",
		"| a    | #000000 |",
		"+------+---------+",
	}, "\n") + "\n"
	if got := tbl.Render(); got != want {
		t.Errorf("Render =\n%s\nwant\n%s", got, want)
	}
}

func TestTableAlignmentAndMissingCells(t *testing.T) {
	tbl := &Table{
		Columns: []TableColumn{
			{Header: "#", Align: AlignRight, MinWidth: 3},
			{Header: "Color"},
		},
		Border: BorderNone,
	}
	tbl.AddRow("1")

	lines := strings.Split(strings.TrimSuffix(tbl.Render(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %d lines", len(lines))
	}
	if lines[1] != "    1"+strings.Repeat(" ", 10) {
		t.Errorf("row = %q", lines[1])
	}
}

func TestTableWidthIgnoresAnsi(t *testing.T) {
	tbl := &Table{Columns: []TableColumn{{Header: "H"}}}
	tbl.AddRow("\x1b[31mred\x1b[0m")
	for _, line := range strings.Split(strings.TrimSuffix(tbl.Render(), "\n"), "\n") {
		if w := VisibleWidth(line); w != 7 {
			t.Errorf("line %q has width %d, want 7", StripAnsi(line), w)
		}
	}
}

func TestSwatchPlain(t *testing.T) {
	plainOutput(t)
	if got := Swatch("#0070F3"); got != "[#0070f3]" {
		t.Errorf("Swatch = %q", got)
	}
	row := RenderSwatches([]string{"#000000", "#ffffff"})
	if row != "[#000000] [#ffffff]" {
		t.Errorf("RenderSwatches = %q", row)
	}
	if got := ColorDot("#ABCDEF"); got != "#abcdef" {
		t.Errorf("ColorDot = %q", got)
	}
}

func TestSwatchRich(t *testing.T) {
	prev := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = prev }()

	if IsRich() {
		got := Swatch("#0070f3")
		if !strings.Contains(got, "48;2;0;112;243") {
			t.Errorf("expected truecolor background in %q", got)
		}
		if StripAnsi(got) != " #0070f3 " {
			t.Errorf("label = %q", StripAnsi(got))
		}
	}
}

func TestRenderMarkers(t *testing.T) {
	got := RenderMarkers(5, 2)
	if !strings.HasPrefix(got, strings.Repeat(" ", 20)) {
		t.Errorf("marker should sit under the third swatch, got %q", got)
	}
	if strings.TrimSpace(got) != "^ base" {
		t.Errorf("RenderMarkers = %q", got)
	}
}

func TestIsDark(t *testing.T) {
	cases := map[colorspace.RGB]bool{
		{R: 0, G: 0, B: 0}:       true,
		{R: 255, G: 255, B: 255}: false,
		{R: 0, G: 112, B: 243}:   true,
		{R: 255, G: 255, B: 0}:   false,
	}
	for c, want := range cases {
		if got := IsDark(c); got != want {
			t.Errorf("IsDark(%v) = %v, want %v", c, got, want)
		}
	}
}

func TestNoteBox(t *testing.T) {
	buf := plainOutput(t)
	Note("all five colors generated", "Done")

	lines := strings.Split(strings.Trim(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 box lines, got %d: %q", len(lines), buf.String())
	}
	width := VisibleWidth(lines[0])
	for _, line := range lines {
		if VisibleWidth(line) != width {
			t.Errorf("uneven box line %q", line)
		}
	}
	if !strings.Contains(lines[0], "Done") {
		t.Errorf("title missing from %q", lines[0])
	}
	if !strings.Contains(lines[1], "all five colors generated") {
		t.Errorf("message missing from %q", lines[1])
	}
}

func TestWrapNoteMessage(t *testing.T) {
	t.Setenv("COLUMNS", "50")
	msg := strings.Repeat("word ", 30)
	for _, line := range strings.Split(WrapNoteMessage(msg, 80), "\n") {
		if VisibleWidth(line) > 40 {
			t.Errorf("line too wide: %q", line)
		}
	}
}

func TestLogStatus(t *testing.T) {
	buf := plainOutput(t)
	clock = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	defer func() { clock = time.Now }()

	LogStatus("success", "palette ready")
	LogStatus("unknown", "plain")

	out := buf.String()
	if !strings.Contains(out, "03:04:05  ✔  palette ready") {
		t.Errorf("unexpected success line: %q", out)
	}
	if !strings.Contains(out, "●  plain") {
		t.Errorf("unexpected default line: %q", out)
	}
}

func TestLogGroup(t *testing.T) {
	buf := plainOutput(t)
	LogGroup("Server")
	LogGroupItem("Listen", ":8080")
	LogGroupEnd()

	out := buf.String()
	for _, want := range []string{"Server", "Listen: :8080", boxBottomLeft} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
}

func TestPickTaglineHoliday(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	got := pickTagline(time.Date(2024, time.October, 31, 12, 0, 0, 0, time.UTC), r)
	if !strings.HasPrefix(got, "🎃") {
		t.Errorf("expected halloween tagline, got %q", got)
	}
}

func TestPickTaglineRandom(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	got := pickTagline(time.Date(2024, time.March, 3, 12, 0, 0, 0, time.UTC), r)
	found := false
	for _, tl := range GetAllTaglines() {
		if tl == got {
			found = true
		}
	}
	if !found {
		t.Errorf("tagline %q not in pool", got)
	}
}

func TestFormatColorLink(t *testing.T) {
	t.Setenv("TERM_PROGRAM", "")
	t.Setenv("WT_SESSION", "")
	t.Setenv("TERM", "dumb")
	if got := FormatColorLink("#0070F3"); got != "#0070F3" {
		t.Errorf("FormatColorLink = %q", got)
	}
	if got := ColorInfoURL("#0070F3"); got != ColorInfoRoot+"0070f3" {
		t.Errorf("ColorInfoURL = %q", got)
	}

	t.Setenv("TERM_PROGRAM", "WezTerm")
	got := FormatColorLink("#0070f3")
	if StripAnsi(got) != "#0070f3" || !strings.Contains(got, ColorInfoRoot+"0070f3") {
		t.Errorf("FormatColorLink hyperlink = %q", got)
	}
}

func TestBannerArtPlain(t *testing.T) {
	plainOutput(t)
	art := FormatBannerArt()
	if art != strings.Join(bannerArt, "\n") {
		t.Error("plain banner should be the raw art")
	}
	line := FormatBannerLine("v1.0.0", "tag")
	if line != "◆ PALETTE STUDIO v1.0.0 · tag" {
		t.Errorf("FormatBannerLine = %q", line)
	}
}

package ui

import (
	"strings"
)

// Align type for table column alignment
type Align int

const (
	AlignLeft Align = iota
	AlignRight
	AlignCenter
)

// TableColumn defines a column in a table
type TableColumn struct {
	Header   string
	Align    Align
	MinWidth int
}

// TableBorder style for tables
type TableBorder int

const (
	BorderUnicode TableBorder = iota
	BorderASCII
	BorderNone
)

// Table is a bordered grid of pre-styled cells. Cells may contain ANSI
// codes; widths are measured on visible characters.
type Table struct {
	Columns []TableColumn
	Rows    [][]string
	Border  TableBorder
	Padding int
}

type boxChars struct {
	tl, tr, bl, br  string
	h, v            string
	t, ml, m, mr, b string
}

var (
	unicodeBox = boxChars{
		tl: "┌", tr: "┐", bl: "└", br: "┘",
		h: "─", v: "│",
		t: "┬", ml: "├", m: "┼", mr: "┤", b: "┴",
	}
	asciiBox = boxChars{
		tl: "+", tr: "+", bl: "+", br: "+",
		h: "-", v: "|",
		t: "+", ml: "+", m: "+", mr: "+", b: "+",
	}
	noBox = boxChars{v: " "}
)

// AddRow appends one row; missing trailing cells render empty.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// Render returns the table as a newline-terminated string.
func (t *Table) Render() string {
	padding := t.Padding
	if padding == 0 {
		padding = 1
	}

	box := unicodeBox
	switch t.Border {
	case BorderASCII:
		box = asciiBox
	case BorderNone:
		box = noBox
	}

	widths := t.columnWidths()
	pad := spaces(padding)

	rule := func(left, mid, right string) string {
		parts := make([]string, len(widths))
		for i, w := range widths {
			parts[i] = strings.Repeat(box.h, w+2*padding)
		}
		return left + strings.Join(parts, mid) + right
	}

	row := func(cells []string) string {
		parts := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = pad + align(cell, widths[i], col.Align) + pad
		}
		return box.v + strings.Join(parts, box.v) + box.v
	}

	headers := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		headers[i] = col.Header
	}

	var lines []string
	if t.Border != BorderNone {
		lines = append(lines, rule(box.tl, box.t, box.tr))
	}
	lines = append(lines, row(headers))
	if t.Border != BorderNone {
		lines = append(lines, rule(box.ml, box.m, box.mr))
	}
	for _, cells := range t.Rows {
		lines = append(lines, row(cells))
	}
	if t.Border != BorderNone {
		lines = append(lines, rule(box.bl, box.b, box.br))
	}

	return strings.Join(lines, "\n") + "\n"
}

func (t *Table) columnWidths() []int {
	widths := make([]int, len(t.Columns))
	for i, col := range t.Columns {
		w := VisibleWidth(col.Header)
		for _, cells := range t.Rows {
			if i < len(cells) {
				if cw := VisibleWidth(cells[i]); cw > w {
					w = cw
				}
			}
		}
		if w < col.MinWidth {
			w = col.MinWidth
		}
		widths[i] = w
	}
	return widths
}

func align(text string, width int, a Align) string {
	switch a {
	case AlignRight:
		return PadLeft(text, width)
	case AlignCenter:
		return PadCenter(text, width)
	default:
		return PadRight(text, width)
	}
}

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

// RenderTableOptions configures table rendering. Each row holds one cell
// per column; missing cells render empty.
type RenderTableOptions struct {
	Columns []TableColumn
	Rows    [][]string
	Border  TableBorder
	Padding int
}

// Box drawing characters
type boxChars struct {
	tl, tr, bl, br  string // corners
	h, v            string // horizontal, vertical
	t, ml, m, mr, b string // tees and crosses
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

// RenderTable renders a formatted table
func RenderTable(opts RenderTableOptions) string {
	if opts.Padding == 0 {
		opts.Padding = 1
	}

	box := unicodeBox
	switch opts.Border {
	case BorderASCII:
		box = asciiBox
	case BorderNone:
		box = noBox
	}

	cell := func(row []string, i int) string {
		if i < len(row) {
			return row[i]
		}
		return ""
	}

	// Content widths, padding excluded
	widths := make([]int, len(opts.Columns))
	for i, col := range opts.Columns {
		w := VisibleWidth(col.Header)
		for _, row := range opts.Rows {
			if cw := VisibleWidth(cell(row, i)); cw > w {
				w = cw
			}
		}
		if w < col.MinWidth {
			w = col.MinWidth
		}
		widths[i] = w
	}

	hLine := func(left, mid, right string) string {
		parts := make([]string, len(widths))
		for i, w := range widths {
			parts[i] = strings.Repeat(box.h, w+opts.Padding*2)
		}
		return Muted("%s", left+strings.Join(parts, mid)+right)
	}

	padCell := func(text string, width int, align Align) string {
		pad := width - VisibleWidth(text)
		if pad <= 0 {
			return text
		}
		switch align {
		case AlignRight:
			return spaces(pad) + text
		case AlignCenter:
			left := pad / 2
			return spaces(left) + text + spaces(pad-left)
		default:
			return text + spaces(pad)
		}
	}

	padStr := spaces(opts.Padding)
	sep := Muted("%s", box.v)

	renderRow := func(values []string) string {
		parts := make([]string, len(opts.Columns))
		for i, col := range opts.Columns {
			parts[i] = padStr + padCell(cell(values, i), widths[i], col.Align) + padStr
		}
		return sep + strings.Join(parts, sep) + sep
	}

	var lines []string

	if opts.Border != BorderNone {
		lines = append(lines, hLine(box.tl, box.t, box.tr))
	}

	headers := make([]string, len(opts.Columns))
	for i, col := range opts.Columns {
		headers[i] = Heading("%s", col.Header)
	}
	lines = append(lines, renderRow(headers))

	if opts.Border != BorderNone {
		lines = append(lines, hLine(box.ml, box.m, box.mr))
	}

	for _, row := range opts.Rows {
		lines = append(lines, renderRow(row))
	}

	if opts.Border != BorderNone {
		lines = append(lines, hLine(box.bl, box.b, box.br))
	}

	return strings.Join(lines, "\n") + "\n"
}

// RenderKeyValues renders aligned "key: value" lines in the given order
func RenderKeyValues(pairs [][2]string) string {
	maxKey := 0
	for _, kv := range pairs {
		if w := VisibleWidth(kv[0]); w > maxKey {
			maxKey = w
		}
	}

	lines := make([]string, len(pairs))
	for i, kv := range pairs {
		lines[i] = "  " + Muted("%s", PadRight(kv[0]+":", maxKey+1)) + "  " + kv[1]
	}
	return strings.Join(lines, "\n") + "\n"
}

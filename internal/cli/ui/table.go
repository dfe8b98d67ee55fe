package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Table renders aligned columns, used for the targets listing.
type Table struct {
	writer  io.Writer
	headers []string
	rows    [][]string
	noColor bool
}

// TableOptions configures table rendering.
type TableOptions struct {
	NoColor bool
}

// NewTable creates a table with the given column headers.
func NewTable(w io.Writer, headers []string, opts *TableOptions) *Table {
	noColor := false
	if opts != nil {
		noColor = opts.NoColor
	}
	return &Table{
		writer:  w,
		headers: headers,
		noColor: noColor,
	}
}

// AddRow appends one row. Extra cells beyond the header count are dropped.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Render writes the table: a colored header, a rule, then the rows, with
// every column padded to its widest cell.
func (t *Table) Render() {
	if len(t.headers) == 0 {
		return
	}

	widths := t.columnWidths()

	bold := color.New(color.Bold, color.FgCyan)
	gray := color.New(color.FgHiBlack)
	if t.noColor {
		bold.DisableColor()
		gray.DisableColor()
	}

	for i, header := range t.headers {
		bold.Fprint(t.writer, padRight(header, widths[i]))
		if i < len(t.headers)-1 {
			fmt.Fprint(t.writer, "  ")
		}
	}
	fmt.Fprintln(t.writer)

	for i, width := range widths {
		gray.Fprint(t.writer, strings.Repeat("─", width))
		if i < len(widths)-1 {
			gray.Fprint(t.writer, "  ")
		}
	}
	fmt.Fprintln(t.writer)

	for _, row := range t.rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			fmt.Fprint(t.writer, padRight(cell, widths[i]))
			if i < len(row)-1 {
				fmt.Fprint(t.writer, "  ")
			}
		}
		fmt.Fprintln(t.writer)
	}
}

func (t *Table) columnWidths() []int {
	widths := make([]int, len(t.headers))
	for i, header := range t.headers {
		widths[i] = len(header)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}
	return widths
}

// KeyValueTable renders label/value pairs with aligned values, used for the
// conversion report.
type KeyValueTable struct {
	writer  io.Writer
	rows    []kvRow
	noColor bool
}

type kvRow struct {
	key   string
	value string
}

// NewKeyValueTable creates an empty key-value table.
func NewKeyValueTable(w io.Writer, noColor bool) *KeyValueTable {
	return &KeyValueTable{writer: w, noColor: noColor}
}

// AddRow appends one labeled value.
func (t *KeyValueTable) AddRow(key, value string) {
	t.rows = append(t.rows, kvRow{key: key, value: value})
}

// Render writes the pairs with keys padded to the widest label.
func (t *KeyValueTable) Render() {
	if len(t.rows) == 0 {
		return
	}

	keyWidth := 0
	for _, row := range t.rows {
		if len(row.key) > keyWidth {
			keyWidth = len(row.key)
		}
	}

	cyan := color.New(color.FgCyan)
	if t.noColor {
		cyan.DisableColor()
	}
	for _, row := range t.rows {
		cyan.Fprint(t.writer, padRight(row.key+":", keyWidth+1))
		fmt.Fprintf(t.writer, " %s\n", row.value)
	}
}

// Header writes a title with a rule matching its length under it.
func Header(w io.Writer, title string, noColor bool) {
	bold := color.New(color.Bold, color.FgCyan)
	if noColor {
		bold.DisableColor()
	}
	bold.Fprintln(w, title)
	Divider(w, len(title), noColor)
}

// Divider writes a horizontal rule. A zero width means 80 columns.
func Divider(w io.Writer, width int, noColor bool) {
	if width == 0 {
		width = 80
	}
	gray := color.New(color.FgHiBlack)
	if noColor {
		gray.DisableColor()
	}
	gray.Fprintln(w, strings.Repeat("─", width))
}

// padRight pads s with spaces up to width. Longer strings pass through.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

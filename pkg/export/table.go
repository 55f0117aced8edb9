package export

import (
	"fmt"
	"unicode"
)

// Align is a gofpdf alignment string.
type Align string

const (
	AlignLeft   Align = "L"
	AlignCenter Align = "C"
	AlignRight  Align = "R"
)

// Column describes one fixed-width table column. Width is in millimetres.
type Column struct {
	Header string
	Width  float64
	Align  Align
}

// Table is a titled grid of pre-formatted cells.
type Table struct {
	Title   string
	Columns []Column
	Rows    [][]string
}

// Validate checks that every row matches the column count.
func (t Table) Validate() error {
	if len(t.Columns) == 0 {
		return fmt.Errorf("table requires at least one column")
	}
	for i, row := range t.Rows {
		if len(row) != len(t.Columns) {
			return fmt.Errorf("row %d has %d cells, want %d", i, len(row), len(t.Columns))
		}
	}
	return nil
}

// Width returns the summed column width.
func (t Table) Width() float64 {
	var w float64
	for _, c := range t.Columns {
		w += c.Width
	}
	return w
}

// IsRTL reports whether s contains right-to-left script.
func IsRTL(s string) bool {
	for _, r := range s {
		if unicode.In(r, unicode.Arabic, unicode.Hebrew) {
			return true
		}
	}
	return false
}

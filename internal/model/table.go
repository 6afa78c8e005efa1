package model

import (
	"math"
	"strings"
)

// ColumnKind is the inferred value type of a column.
type ColumnKind string

const (
	KindNumeric     ColumnKind = "numeric"
	KindCategorical ColumnKind = "categorical"
)

// NoColumn is the sentinel for "no second variable selected". Headers are
// never empty after parsing, so it cannot collide with a real column.
// NoColumnLabel is how the choice is shown.
const (
	NoColumn      = ""
	NoColumnLabel = "none"
)

// Column is one named column of a Table. Values is populated for numeric
// columns only; missing cells are NaN.
type Column struct {
	Name   string
	Kind   ColumnKind
	Cells  []string
	Values []float64
}

// IsNumeric reports whether the column was inferred as numeric.
func (c *Column) IsNumeric() bool { return c.Kind == KindNumeric }

// Table is an in-memory dataset of equally long columns.
type Table struct {
	Name    string
	Columns []Column
}

// Len returns the number of rows.
func (t *Table) Len() int {
	if len(t.Columns) == 0 {
		return 0
	}
	return len(t.Columns[0].Cells)
}

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Column looks up a column by name.
func (t *Table) Column(name string) (*Column, bool) {
	for i := range t.Columns {
		if t.Columns[i].Name == name {
			return &t.Columns[i], true
		}
	}
	return nil, false
}

// Head returns up to n rows as display strings.
func (t *Table) Head(n int) [][]string {
	if n > t.Len() {
		n = t.Len()
	}
	rows := make([][]string, n)
	for i := 0; i < n; i++ {
		row := make([]string, len(t.Columns))
		for j, c := range t.Columns {
			row[j] = c.Cells[i]
		}
		rows[i] = row
	}
	return rows
}

// Finite returns the non-NaN values of a numeric column.
func (c *Column) Finite() []float64 {
	out := make([]float64, 0, len(c.Values))
	for _, v := range c.Values {
		if !math.IsNaN(v) {
			out = append(out, v)
		}
	}
	return out
}

var missingCells = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"NaN":  true,
	"nan":  true,
	"null": true,
	"NULL": true,
	"None": true,
	"#N/A": true,
}

// IsMissing reports whether a raw cell counts as an absent value.
func IsMissing(cell string) bool {
	return missingCells[strings.TrimSpace(cell)]
}

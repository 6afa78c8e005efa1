package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"DataLens/internal/model"
)

var (
	// ErrEmpty is returned when the input has no header row.
	ErrEmpty = errors.New("dataset has no header row")
	// ErrUnsupported is returned for upload names with an unknown extension.
	ErrUnsupported = errors.New("unsupported file type")
)

func parseNumber(cell string) (float64, bool) {
	s := strings.TrimSpace(cell)
	if model.IsMissing(s) {
		return math.NaN(), true
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	// inf and Infinity parse as numbers but cannot be plotted
	if math.IsInf(v, 0) {
		return math.NaN(), true
	}
	return v, true
}

// dedupeHeader renames repeated column names to name.1, name.2, ...
func dedupeHeader(header []string) []string {
	used := make(map[string]bool, len(header))
	out := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		if h == "" {
			h = fmt.Sprintf("Unnamed: %d", i)
		}
		name := h
		for n := 1; used[name]; n++ {
			name = fmt.Sprintf("%s.%d", h, n)
		}
		used[name] = true
		out[i] = name
	}
	return out
}

// buildTable assembles columns and infers each column's kind. A column is
// numeric when every non-missing cell parses as a number.
func buildTable(name string, header []string, rows [][]string) (*model.Table, error) {
	if len(header) == 0 {
		return nil, ErrEmpty
	}
	names := dedupeHeader(header)
	cols := make([]model.Column, len(names))
	for j, n := range names {
		cols[j] = model.Column{Name: n, Cells: make([]string, 0, len(rows))}
	}
	for i, row := range rows {
		if len(row) > len(names) {
			return nil, fmt.Errorf("row %d: expected %d fields, saw %d", i+2, len(names), len(row))
		}
		for j := range cols {
			cell := ""
			if j < len(row) {
				cell = row[j]
			}
			cols[j].Cells = append(cols[j].Cells, cell)
		}
	}
	for j := range cols {
		inferKind(&cols[j])
	}
	return &model.Table{Name: name, Columns: cols}, nil
}

func inferKind(c *model.Column) {
	values := make([]float64, len(c.Cells))
	for i, cell := range c.Cells {
		v, ok := parseNumber(cell)
		if !ok {
			c.Kind = model.KindCategorical
			c.Values = nil
			return
		}
		values[i] = v
	}
	c.Kind = model.KindNumeric
	c.Values = values
}

package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"DataLens/internal/model"
)

// ParseCSV reads a comma-separated table whose first record is the header.
func ParseCSV(name string, r io.Reader) (*model.Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	var rows [][]string
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		if len(rec) == 1 && rec[0] == "" {
			continue // blank line
		}
		rows = append(rows, rec)
	}
	return buildTable(name, header, rows)
}

// Parse dispatches on the file extension: .xlsx goes to ParseXLSX, .csv,
// .txt and extensionless names are read as CSV.
func Parse(name string, data []byte) (*model.Table, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx":
		return ParseXLSX(name, data)
	case ".csv", ".txt", "":
		return ParseCSV(name, bytes.NewReader(data))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, name)
	}
}

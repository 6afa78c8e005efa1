package dataset

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"DataLens/internal/model"
)

// ParseXLSX reads the first worksheet of a workbook; its first row is the header.
func ParseXLSX(name string, data []byte) (*model.Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmpty
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, ErrEmpty
	}
	return buildTable(name, rows[0], rows[1:])
}

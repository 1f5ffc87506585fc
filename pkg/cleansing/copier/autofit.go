package copier

import (
	"github.com/xuri/excelize/v2"
)

const (
	maxAutoFitWidth = 75
	autoFitPadding  = 2
)

// ColumnLengths tracks the longest display value seen per column while rows
// are being written, so widths can be fitted in a single pass.
type ColumnLengths struct {
	max []int
}

// Observe records the display value written to a 1-based column.
func (c *ColumnLengths) Observe(col int, value string) {
	for len(c.max) < col {
		c.max = append(c.max, 0)
	}
	if n := len([]rune(value)); n > c.max[col-1] {
		c.max[col-1] = n
	}
}

// MeasureRows builds ColumnLengths from already materialized rows.
func MeasureRows(rows [][]string) *ColumnLengths {
	lengths := &ColumnLengths{}
	for _, row := range rows {
		for colIdx, value := range row {
			lengths.Observe(colIdx+1, value)
		}
	}
	return lengths
}

// AutoFit sizes each observed column of the sheet to
// min(75, longest value + 2), applied only where the computed width is
// positive.
func AutoFit(f *excelize.File, sheet string, lengths *ColumnLengths) error {
	for colIdx, maxLen := range lengths.max {
		width := maxLen + autoFitPadding
		if width > maxAutoFitWidth {
			width = maxAutoFitWidth
		}
		if width <= 0 {
			continue
		}
		colName, err := excelize.ColumnNumberToName(colIdx + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, colName, colName, float64(width)); err != nil {
			return err
		}
	}
	return nil
}

// Package copier moves cells and whole sheets between open workbooks,
// carrying values together with their presentation attributes. Styles are
// treated as opaque: they are translated across files by style ID and never
// interpreted.
package copier

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Copier copies cells from one workbook file into another. Style IDs are
// file-local in xlsx, so each source style is re-registered once in the
// target and remembered in a cache.
type Copier struct {
	src    *excelize.File
	dst    *excelize.File
	styles map[int]int
}

// New returns a Copier bound to a source and a target workbook.
func New(src, dst *excelize.File) *Copier {
	return &Copier{
		src:    src,
		dst:    dst,
		styles: make(map[int]int),
	}
}

// Cell copies a single cell, value and presentation, from the source
// workbook to the target. The same routine serves header rows, data rows
// and verbatim sheet copies.
func (c *Copier) Cell(srcSheet, srcCell, dstSheet, dstCell string) error {
	if err := c.copyValue(srcSheet, srcCell, dstSheet, dstCell); err != nil {
		return err
	}
	if err := c.copyStyle(srcSheet, srcCell, dstSheet, dstCell); err != nil {
		return err
	}
	return c.copyHyperlink(srcSheet, srcCell, dstSheet, dstCell)
}

// copyValue carries the cell value over with its type: numbers stay
// numbers, booleans stay booleans and formula text is copied verbatim,
// never evaluated.
func (c *Copier) copyValue(srcSheet, srcCell, dstSheet, dstCell string) error {
	// Formula cells with a cached numeric result report no cell type, so
	// the formula check has to come first.
	formula, err := c.src.GetCellFormula(srcSheet, srcCell)
	if err != nil {
		return err
	}
	if formula != "" {
		return c.dst.SetCellFormula(dstSheet, dstCell, formula)
	}

	cellType, err := c.src.GetCellType(srcSheet, srcCell)
	if err != nil {
		return err
	}

	switch cellType {
	case excelize.CellTypeBool:
		raw, err := c.src.GetCellValue(srcSheet, srcCell, excelize.Options{RawCellValue: true})
		if err != nil {
			return err
		}
		return c.dst.SetCellBool(dstSheet, dstCell, raw == "1" || strings.EqualFold(raw, "true"))
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString:
		value, err := c.src.GetCellValue(srcSheet, srcCell)
		if err != nil {
			return err
		}
		if value == "" {
			return nil
		}
		return c.dst.SetCellStr(dstSheet, dstCell, value)
	default:
		// Number, Date and the untyped default the format stores plain
		// numbers under. Dates keep their serial value; the number format
		// travels with the style.
		raw, err := c.src.GetCellValue(srcSheet, srcCell, excelize.Options{RawCellValue: true})
		if err != nil {
			return err
		}
		if raw == "" {
			return nil
		}
		if num, err := strconv.ParseFloat(raw, 64); err == nil {
			return c.dst.SetCellValue(dstSheet, dstCell, num)
		}
		return c.dst.SetCellStr(dstSheet, dstCell, raw)
	}
}

func (c *Copier) copyStyle(srcSheet, srcCell, dstSheet, dstCell string) error {
	styleID, err := c.src.GetCellStyle(srcSheet, srcCell)
	if err != nil {
		return err
	}
	if styleID == 0 {
		return nil
	}
	mapped, err := c.styleFor(styleID)
	if err != nil {
		return err
	}
	return c.dst.SetCellStyle(dstSheet, dstCell, dstCell, mapped)
}

// styleFor registers a source style in the target file once and reuses the
// resulting ID for every later cell that shares it.
func (c *Copier) styleFor(srcID int) (int, error) {
	if mapped, ok := c.styles[srcID]; ok {
		return mapped, nil
	}
	style, err := c.src.GetStyle(srcID)
	if err != nil {
		return 0, err
	}
	mapped, err := c.dst.NewStyle(style)
	if err != nil {
		return 0, err
	}
	c.styles[srcID] = mapped
	return mapped, nil
}

func (c *Copier) copyHyperlink(srcSheet, srcCell, dstSheet, dstCell string) error {
	has, target, err := c.src.GetCellHyperLink(srcSheet, srcCell)
	if err != nil {
		return err
	}
	if !has || target == "" {
		return nil
	}
	linkType := "External"
	if strings.HasPrefix(target, "#") {
		linkType = "Location"
		target = strings.TrimPrefix(target, "#")
	}
	return c.dst.SetCellHyperLink(dstSheet, dstCell, target, linkType)
}

// Display returns the formatted value of a target cell as it will render,
// which is what auto-fit measures.
func (c *Copier) Display(sheet, cell string) (string, error) {
	return c.dst.GetCellValue(sheet, cell)
}

// RowHeight carries one row's explicit height from source to target.
func (c *Copier) RowHeight(srcSheet string, srcRow int, dstSheet string, dstRow int) error {
	height, err := c.src.GetRowHeight(srcSheet, srcRow)
	if err != nil {
		return err
	}
	if height <= 0 {
		return nil
	}
	return c.dst.SetRowHeight(dstSheet, dstRow, height)
}

// Sheet copies a whole sheet verbatim into the target under the same name:
// every cell with full presentation, column widths, row heights and the
// visibility flag, preserving original row numbers.
func (c *Copier) Sheet(name string) error {
	if _, err := c.dst.NewSheet(name); err != nil {
		return err
	}

	rows, err := c.src.GetRows(name)
	if err != nil {
		return err
	}

	maxCols := 0
	for rowIdx, row := range rows {
		if len(row) > maxCols {
			maxCols = len(row)
		}
		rowNum := rowIdx + 1
		for colIdx := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowNum)
			if err != nil {
				return err
			}
			if err := c.Cell(name, cell, name, cell); err != nil {
				return err
			}
		}
		if err := c.RowHeight(name, rowNum, name, rowNum); err != nil {
			return err
		}
	}

	for col := 1; col <= maxCols; col++ {
		colName, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return err
		}
		width, err := c.src.GetColWidth(name, colName)
		if err != nil {
			return err
		}
		if width <= 0 {
			continue
		}
		if err := c.dst.SetColWidth(name, colName, colName, width); err != nil {
			return err
		}
	}

	visible, err := c.src.GetSheetVisible(name)
	if err != nil {
		return err
	}
	return c.dst.SetSheetVisible(name, visible)
}

package cleansing

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/fachry26/acengcleansing/pkg/cleansing/classifier"
	"github.com/fachry26/acengcleansing/pkg/cleansing/copier"
	"github.com/fachry26/acengcleansing/pkg/cleansing/models"
)

// ClassifyAndExport reads the workbook at srcPath, splits the data rows of
// the designated sheet into kept and excluded subsets and writes two new
// workbooks to keptPath and excludedPath. Each output holds the rebuilt
// sheet first (header plus its subset of rows, densely renumbered) followed
// by a verbatim copy of every other sheet. The source file is read once and
// never modified.
//
// The call is synchronous and holds no state between invocations; concurrent
// calls are safe as long as they use distinct output paths.
func ClassifyAndExport(srcPath, keptPath, excludedPath string, keywords []string, opts Options) (*models.Result, error) {
	opts = opts.withDefaults()

	if _, err := os.Stat(srcPath); os.IsNotExist(err) {
		return nil, errNotFound(srcPath)
	}

	src, err := excelize.OpenFile(srcPath)
	if err != nil {
		return nil, errMalformed(srcPath, err)
	}
	defer src.Close()

	sheets := src.GetSheetList()
	if !containsString(sheets, opts.SheetName) {
		return nil, errSheetNotFound(opts.SheetName, sheets)
	}
	for _, name := range sheets {
		if name != opts.SheetName && name == opts.OutputSheetTitle {
			return nil, errInternal("output sheet title "+opts.OutputSheetTitle+" collides with an existing sheet", nil)
		}
	}

	// Sheet visibility is a presentation flag only; excelize reads cell data
	// from hidden sheets, so an all-hidden workbook needs no unhiding.
	rows, err := src.GetRows(opts.SheetName)
	if err != nil {
		return nil, errInternal("reading sheet "+opts.SheetName, err)
	}

	var header []string
	if len(rows) > 0 {
		header = rows[0]
	}
	markerIdx, retained, err := resolveColumns(header, opts)
	if err != nil {
		return nil, err
	}

	kept := newOutputWorkbook(opts.OutputSheetTitle)
	defer kept.Close()
	excluded := newOutputWorkbook(opts.OutputSheetTitle)
	defer excluded.Close()

	keptCopier := copier.New(src, kept)
	excludedCopier := copier.New(src, excluded)
	keptLens := &copier.ColumnLengths{}
	excludedLens := &copier.ColumnLengths{}

	if err := copyRow(keptCopier, opts, retained, 1, 1, keptLens); err != nil {
		return nil, errInternal("copying header row", err)
	}
	if err := copyRow(excludedCopier, opts, retained, 1, 1, excludedLens); err != nil {
		return nil, errInternal("copying header row", err)
	}

	rule := classifier.New(keywords)
	result := &models.Result{KeptPath: keptPath, ExcludedPath: excludedPath}
	keptNext, excludedNext := 2, 2

	for srcRow := 2; srcRow <= len(rows); srcRow++ {
		result.TotalRows++
		content := strings.TrimSpace(cellAt(rows[srcRow-1], markerIdx))

		switch rule.Classify(content) {
		case classifier.ReasonKeyword:
			result.ExcludedRows++
			result.ExcludedByKeyword++
			err = copyRow(excludedCopier, opts, retained, srcRow, excludedNext, excludedLens)
			excludedNext++
		case classifier.ReasonScript:
			result.ExcludedRows++
			result.ExcludedByScript++
			err = copyRow(excludedCopier, opts, retained, srcRow, excludedNext, excludedLens)
			excludedNext++
		default:
			result.KeptRows++
			err = copyRow(keptCopier, opts, retained, srcRow, keptNext, keptLens)
			keptNext++
		}
		if err != nil {
			return nil, errInternal("copying data row", err)
		}
	}

	for _, name := range sheets {
		if name == opts.SheetName {
			continue
		}
		if err := keptCopier.Sheet(name); err != nil {
			return nil, errInternal("copying sheet "+name, err)
		}
		if err := excludedCopier.Sheet(name); err != nil {
			return nil, errInternal("copying sheet "+name, err)
		}
		if opts.AutoFitCopiedSheets {
			otherRows, err := src.GetRows(name)
			if err != nil {
				return nil, errInternal("reading sheet "+name, err)
			}
			lens := copier.MeasureRows(otherRows)
			if err := copier.AutoFit(kept, name, lens); err != nil {
				return nil, errInternal("sizing sheet "+name, err)
			}
			if err := copier.AutoFit(excluded, name, lens); err != nil {
				return nil, errInternal("sizing sheet "+name, err)
			}
		}
	}

	if err := copier.AutoFit(kept, opts.OutputSheetTitle, keptLens); err != nil {
		return nil, errInternal("sizing output sheet", err)
	}
	if err := copier.AutoFit(excluded, opts.OutputSheetTitle, excludedLens); err != nil {
		return nil, errInternal("sizing output sheet", err)
	}

	if err := persistBoth(kept, keptPath, excluded, excludedPath); err != nil {
		return nil, err
	}
	return result, nil
}

// resolveColumns locates the content-marker column and the ordered set of
// retained column indices (0-based, header order, minus DropColumns).
func resolveColumns(header []string, opts Options) (markerIdx int, retained []int, err error) {
	drop := make(map[string]bool, len(opts.DropColumns))
	for _, name := range opts.DropColumns {
		if normalized := NormalizeHeader(name); normalized != "" {
			drop[normalized] = true
		}
	}

	markerIdx = -1
	normalized := make([]string, len(header))
	for idx, cell := range header {
		normalized[idx] = NormalizeHeader(cell)
		if normalized[idx] == opts.ContentMarker && markerIdx < 0 {
			markerIdx = idx
		}
		if !drop[normalized[idx]] {
			retained = append(retained, idx)
		}
	}
	if markerIdx < 0 {
		return 0, nil, errColumnMissing(opts.ContentMarker, opts.SheetName, normalized)
	}
	return markerIdx, retained, nil
}

// copyRow appends the retained cells of one source row to the target sheet
// at dstRow, tracking display lengths for auto-fit and carrying the source
// row's explicit height.
func copyRow(c *copier.Copier, opts Options, retained []int, srcRow, dstRow int, lens *copier.ColumnLengths) error {
	for outIdx, srcIdx := range retained {
		srcCell, err := excelize.CoordinatesToCellName(srcIdx+1, srcRow)
		if err != nil {
			return err
		}
		dstCell, err := excelize.CoordinatesToCellName(outIdx+1, dstRow)
		if err != nil {
			return err
		}
		if err := c.Cell(opts.SheetName, srcCell, opts.OutputSheetTitle, dstCell); err != nil {
			return err
		}
		value, err := c.Display(opts.OutputSheetTitle, dstCell)
		if err != nil {
			return err
		}
		lens.Observe(outIdx+1, value)
	}
	return c.RowHeight(opts.SheetName, srcRow, opts.OutputSheetTitle, dstRow)
}

// newOutputWorkbook creates a fresh workbook whose only sheet carries the
// output title at the first position.
func newOutputWorkbook(title string) *excelize.File {
	f := excelize.NewFile()
	if title != "Sheet1" {
		// Renaming the default sheet keeps the rebuilt sheet at index 0.
		_ = f.SetSheetName("Sheet1", title)
	}
	return f
}

// persistBoth writes both workbooks through temporary files and renames on
// success, so a failure never publishes a half-written destination.
func persistBoth(kept *excelize.File, keptPath string, excluded *excelize.File, excludedPath string) error {
	keptTmp, err := writeTemp(kept, keptPath)
	if err != nil {
		return errWriteFailure(keptPath, err)
	}
	excludedTmp, err := writeTemp(excluded, excludedPath)
	if err != nil {
		os.Remove(keptTmp)
		return errWriteFailure(excludedPath, err)
	}
	if err := os.Rename(keptTmp, keptPath); err != nil {
		os.Remove(keptTmp)
		os.Remove(excludedTmp)
		return errWriteFailure(keptPath, err)
	}
	if err := os.Rename(excludedTmp, excludedPath); err != nil {
		os.Remove(excludedTmp)
		os.Remove(keptPath)
		return errWriteFailure(excludedPath, err)
	}
	return nil
}

func writeTemp(f *excelize.File, dest string) (string, error) {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(dir, ".acengcleansing-*.xlsx")
	if err != nil {
		return "", err
	}
	if err := f.Write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

func cellAt(row []string, idx int) string {
	if idx >= len(row) {
		return ""
	}
	return row[idx]
}

func containsString(list []string, target string) bool {
	for _, item := range list {
		if item == target {
			return true
		}
	}
	return false
}

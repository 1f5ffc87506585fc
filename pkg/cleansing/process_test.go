package cleansing

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeFixture builds a workbook in a temp dir and returns its path.
func writeFixture(t *testing.T, build func(f *excelize.File)) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	build(f)
	path := filepath.Join(t.TempDir(), "input.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

// standardFixture is the UUID/KONTEN example: one keyword row, one clean
// row, one flagged-script row.
func standardFixture(t *testing.T) string {
	return writeFixture(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "UUID")
		f.SetCellValue("Sheet1", "B1", "KONTEN")
		f.SetCellValue("Sheet1", "A2", 1)
		f.SetCellValue("Sheet1", "B2", "Gopay transaction")
		f.SetCellValue("Sheet1", "A3", 2)
		f.SetCellValue("Sheet1", "B3", "Normal entry")
		f.SetCellValue("Sheet1", "A4", 3)
		f.SetCellValue("Sheet1", "B4", "促销活动")
	})
}

func outputPaths(t *testing.T) (string, string) {
	dir := t.TempDir()
	return filepath.Join(dir, "cleaned.xlsx"), filepath.Join(dir, "excluded.xlsx")
}

func sheetRows(t *testing.T, path, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestClassifyAndExportPartition(t *testing.T) {
	src := standardFixture(t)
	keptPath, excludedPath := outputPaths(t)

	result, err := ClassifyAndExport(src, keptPath, excludedPath, []string{"gopay"}, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalRows)
	assert.Equal(t, 1, result.KeptRows)
	assert.Equal(t, 2, result.ExcludedRows)
	assert.Equal(t, 1, result.ExcludedByKeyword)
	assert.Equal(t, 1, result.ExcludedByScript)

	kept := sheetRows(t, keptPath, DefaultOutputSheetTitle)
	require.Len(t, kept, 2)
	assert.Equal(t, []string{"UUID", "KONTEN"}, kept[0])
	assert.Equal(t, []string{"2", "Normal entry"}, kept[1])

	excluded := sheetRows(t, excludedPath, DefaultOutputSheetTitle)
	require.Len(t, excluded, 3)
	assert.Equal(t, []string{"1", "Gopay transaction"}, excluded[1])
	assert.Equal(t, []string{"3", "促销活动"}, excluded[2])
}

func TestClassifyAndExportKeywordPadding(t *testing.T) {
	src := standardFixture(t)
	keptPath, excludedPath := outputPaths(t)

	result, err := ClassifyAndExport(src, keptPath, excludedPath, []string{"  GoPay  "}, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 1, result.ExcludedByKeyword)
}

func TestClassifyAndExportEmptyKeywords(t *testing.T) {
	src := standardFixture(t)
	keptPath, excludedPath := outputPaths(t)

	result, err := ClassifyAndExport(src, keptPath, excludedPath, nil, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, 2, result.KeptRows)
	assert.Equal(t, 1, result.ExcludedRows)
	assert.Equal(t, 0, result.ExcludedByKeyword)
	assert.Equal(t, 1, result.ExcludedByScript)

	excluded := sheetRows(t, excludedPath, DefaultOutputSheetTitle)
	require.Len(t, excluded, 2)
	assert.Equal(t, []string{"3", "促销活动"}, excluded[1])
}

func TestClassifyAndExportPreservesOtherSheets(t *testing.T) {
	src := writeFixture(t, func(f *excelize.File) {
		f.SetSheetName("Sheet1", "Data")
		f.SetCellValue("Data", "A1", "KONTEN")
		f.SetCellValue("Data", "A2", "Normal entry")
		f.NewSheet("Notes")
		f.SetCellValue("Notes", "A1", "remember this")
		f.NewSheet("Summary")
		f.SetCellValue("Summary", "B2", "total")
	})
	keptPath, excludedPath := outputPaths(t)

	opts := DefaultOptions()
	opts.SheetName = "Data"
	_, err := ClassifyAndExport(src, keptPath, excludedPath, nil, opts)
	require.NoError(t, err)

	for _, path := range []string{keptPath, excludedPath} {
		f, err := excelize.OpenFile(path)
		require.NoError(t, err)
		assert.Equal(t, []string{DefaultOutputSheetTitle, "Notes", "Summary"}, f.GetSheetList())

		value, err := f.GetCellValue("Notes", "A1")
		require.NoError(t, err)
		assert.Equal(t, "remember this", value)
		value, err = f.GetCellValue("Summary", "B2")
		require.NoError(t, err)
		assert.Equal(t, "total", value)
		f.Close()
	}
}

func TestClassifyAndExportDropColumns(t *testing.T) {
	src := standardFixture(t)
	keptPath, excludedPath := outputPaths(t)

	opts := DefaultOptions()
	opts.DropColumns = []string{" uuid "} // normalized match
	_, err := ClassifyAndExport(src, keptPath, excludedPath, []string{"gopay"}, opts)
	require.NoError(t, err)

	kept := sheetRows(t, keptPath, DefaultOutputSheetTitle)
	assert.Equal(t, []string{"KONTEN"}, kept[0])
	assert.Equal(t, []string{"Normal entry"}, kept[1])
}

func TestClassifyAndExportAutoFitWidths(t *testing.T) {
	src := standardFixture(t)
	keptPath, excludedPath := outputPaths(t)

	_, err := ClassifyAndExport(src, keptPath, excludedPath, []string{"gopay"}, DefaultOptions())
	require.NoError(t, err)

	f, err := excelize.OpenFile(keptPath)
	require.NoError(t, err)
	defer f.Close()

	// Column A: max("UUID", "2") = 4 -> 6. Column B: "Normal entry" = 12 -> 14.
	widthA, err := f.GetColWidth(DefaultOutputSheetTitle, "A")
	require.NoError(t, err)
	assert.InDelta(t, 6, widthA, 0.01)
	widthB, err := f.GetColWidth(DefaultOutputSheetTitle, "B")
	require.NoError(t, err)
	assert.InDelta(t, 14, widthB, 0.01)
}

func TestClassifyAndExportHiddenDesignatedSheet(t *testing.T) {
	src := writeFixture(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", "KONTEN")
		f.SetCellValue("Sheet1", "A2", "Normal entry")
		idx, err := f.NewSheet("Visible")
		if err == nil {
			f.SetActiveSheet(idx)
		}
		f.SetSheetVisible("Sheet1", false)
	})
	keptPath, excludedPath := outputPaths(t)

	result, err := ClassifyAndExport(src, keptPath, excludedPath, nil, DefaultOptions())
	require.NoError(t, err, "hidden state must not block reading cell values")
	assert.Equal(t, 1, result.KeptRows)
}

func TestClassifyAndExportSheetNotFound(t *testing.T) {
	src := standardFixture(t)
	keptPath, excludedPath := outputPaths(t)

	opts := DefaultOptions()
	opts.SheetName = "Missing"
	_, err := ClassifyAndExport(src, keptPath, excludedPath, nil, opts)
	require.Error(t, err)
	assert.Equal(t, KindSheetNotFound, KindOf(err))

	var pe *Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "Missing", pe.Requested)
	assert.Contains(t, pe.Available, "Sheet1")

	_, statErr := os.Stat(keptPath)
	assert.True(t, os.IsNotExist(statErr), "no output may be published on failure")
	_, statErr = os.Stat(excludedPath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestClassifyAndExportRequiredColumnMissing(t *testing.T) {
	src := writeFixture(t, func(f *excelize.File) {
		f.SetCellValue("Sheet1", "A1", " id ")
		f.SetCellValue("Sheet1", "B1", "Name")
	})
	keptPath, excludedPath := outputPaths(t)

	_, err := ClassifyAndExport(src, keptPath, excludedPath, nil, DefaultOptions())
	require.Error(t, err)
	assert.Equal(t, KindRequiredColumnMissing, KindOf(err))

	var pe *Error
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "KONTEN", pe.Requested)
	assert.Equal(t, []string{"ID", "NAME"}, pe.Available)
}

func TestClassifyAndExportSourceMissing(t *testing.T) {
	keptPath, excludedPath := outputPaths(t)
	_, err := ClassifyAndExport(filepath.Join(t.TempDir(), "nope.xlsx"), keptPath, excludedPath, nil, DefaultOptions())
	require.Error(t, err)
	assert.Equal(t, KindNotFound, KindOf(err))
}

func TestClassifyAndExportMalformedInput(t *testing.T) {
	src := filepath.Join(t.TempDir(), "garbage.xlsx")
	require.NoError(t, os.WriteFile(src, []byte("this is not a zip container"), 0o644))
	keptPath, excludedPath := outputPaths(t)

	_, err := ClassifyAndExport(src, keptPath, excludedPath, nil, DefaultOptions())
	require.Error(t, err)
	assert.Equal(t, KindMalformedInput, KindOf(err))
}

func TestClassifyAndExportWriteFailure(t *testing.T) {
	src := standardFixture(t)
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	// The kept destination's parent is a regular file, so it cannot be created.
	keptPath := filepath.Join(blocker, "cleaned.xlsx")
	excludedPath := filepath.Join(dir, "excluded.xlsx")

	_, err := ClassifyAndExport(src, keptPath, excludedPath, nil, DefaultOptions())
	require.Error(t, err)
	assert.Equal(t, KindWriteFailure, KindOf(err))

	_, statErr := os.Stat(excludedPath)
	assert.True(t, os.IsNotExist(statErr), "partner output must not be published either")
}

func TestClassifyAndExportIdempotent(t *testing.T) {
	src := standardFixture(t)

	first, firstExcl := outputPaths(t)
	second, secondExcl := outputPaths(t)
	_, err := ClassifyAndExport(src, first, firstExcl, []string{"gopay"}, DefaultOptions())
	require.NoError(t, err)
	_, err = ClassifyAndExport(src, second, secondExcl, []string{"gopay"}, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, sheetRows(t, first, DefaultOutputSheetTitle), sheetRows(t, second, DefaultOutputSheetTitle))
	assert.Equal(t, sheetRows(t, firstExcl, DefaultOutputSheetTitle), sheetRows(t, secondExcl, DefaultOutputSheetTitle))
}

func TestResolveColumnsMarkerNormalization(t *testing.T) {
	opts := DefaultOptions().withDefaults()
	markerIdx, retained, err := resolveColumns([]string{"Uuid", " konten "}, opts)
	require.NoError(t, err)
	assert.Equal(t, 1, markerIdx)
	assert.Equal(t, []int{0, 1}, retained)
}

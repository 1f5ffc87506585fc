// Package cleansing partitions the data rows of one workbook sheet into
// kept and excluded subsets and rebuilds two output workbooks around them.
package cleansing

import "strings"

const (
	// DefaultSheetName is the designated sheet when none is given.
	DefaultSheetName = "Sheet1"
	// DefaultOutputSheetTitle is the title of the rebuilt sheet in both outputs.
	DefaultOutputSheetTitle = "Processed Data"
	// DefaultContentMarker is the normalized header of the column whose text
	// drives classification.
	DefaultContentMarker = "KONTEN"
)

// Options configures a single classify-and-export run.
type Options struct {
	// SheetName is the designated sheet. Blank means DefaultSheetName.
	SheetName string
	// OutputSheetTitle is the title of the rebuilt sheet in both output
	// workbooks. Blank means DefaultOutputSheetTitle.
	OutputSheetTitle string
	// ContentMarker is the normalized header name of the content column.
	// Blank means DefaultContentMarker.
	ContentMarker string
	// DropColumns lists header names to omit from the rebuilt sheet.
	// Names are matched after trim+uppercase normalization. Empty keeps
	// every column.
	DropColumns []string
	// AutoFitCopiedSheets also applies auto-fit widths to the verbatim
	// copied sheets instead of preserving their original widths.
	AutoFitCopiedSheets bool
}

// DefaultOptions returns the options used when the caller passes none.
func DefaultOptions() Options {
	return Options{}
}

// withDefaults fills blank fields with their defaults.
func (o Options) withDefaults() Options {
	if strings.TrimSpace(o.SheetName) == "" {
		o.SheetName = DefaultSheetName
	}
	if strings.TrimSpace(o.OutputSheetTitle) == "" {
		o.OutputSheetTitle = DefaultOutputSheetTitle
	}
	if strings.TrimSpace(o.ContentMarker) == "" {
		o.ContentMarker = DefaultContentMarker
	}
	return o
}

// NormalizeHeader reduces a header cell value to its comparison form.
func NormalizeHeader(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

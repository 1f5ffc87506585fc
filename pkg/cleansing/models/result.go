// Package models defines the result types returned by the cleansing core.
package models

// Result summarizes one classify-and-export run.
type Result struct {
	// KeptPath is the written workbook holding the kept rows.
	KeptPath string `json:"kept_path"`
	// ExcludedPath is the written workbook holding the excluded rows.
	ExcludedPath string `json:"excluded_path"`
	// TotalRows is the number of data rows in the designated sheet.
	TotalRows int `json:"total_rows"`
	// KeptRows is the number of rows written to the kept workbook.
	KeptRows int `json:"kept_rows"`
	// ExcludedRows is the number of rows written to the excluded workbook.
	ExcludedRows int `json:"excluded_rows"`
	// ExcludedByKeyword counts exclusions caused by a keyword match.
	ExcludedByKeyword int `json:"excluded_by_keyword"`
	// ExcludedByScript counts exclusions caused by flagged-script characters.
	ExcludedByScript int `json:"excluded_by_script"`
}

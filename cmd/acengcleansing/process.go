package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/fachry26/acengcleansing/pkg/cleansing"
)

func newProcessCmd() *cobra.Command {
	var (
		keywords     []string
		sheet        string
		keptPath     string
		excludedPath string
		outputTitle  string
		dropColumns  []string
	)

	cmd := &cobra.Command{
		Use:   "process [input.xlsx]",
		Short: "Classify one workbook into cleaned and excluded files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			if _, err := os.Stat(input); os.IsNotExist(err) {
				return fmt.Errorf("file not found: %s", input)
			}

			// Default output names sit beside the input, mirroring the
			// server's cleaned_/excluded_ naming.
			base := filepath.Base(input)
			dir := filepath.Dir(input)
			if keptPath == "" {
				keptPath = filepath.Join(dir, "cleaned_"+base)
			}
			if excludedPath == "" {
				excludedPath = filepath.Join(dir, "excluded_"+base)
			}

			opts := cleansing.DefaultOptions()
			opts.SheetName = sheet
			opts.OutputSheetTitle = outputTitle
			opts.DropColumns = dropColumns

			result, err := cleansing.ClassifyAndExport(input, keptPath, excludedPath, keywords, opts)
			if err != nil {
				return fmt.Errorf("processing failed: %w", err)
			}

			fmt.Printf("kept %d of %d rows -> %s\n", result.KeptRows, result.TotalRows, result.KeptPath)
			fmt.Printf("excluded %d rows (%d by keyword, %d by script) -> %s\n",
				result.ExcludedRows, result.ExcludedByKeyword, result.ExcludedByScript, result.ExcludedPath)
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&keywords, "keyword", "k", nil, "keyword that excludes a row (repeatable)")
	cmd.Flags().StringVar(&sheet, "sheet", "", `input sheet name (default "Sheet1")`)
	cmd.Flags().StringVar(&keptPath, "kept", "", "cleaned output path (default cleaned_<input> beside the input)")
	cmd.Flags().StringVar(&excludedPath, "excluded", "", "excluded output path (default excluded_<input> beside the input)")
	cmd.Flags().StringVar(&outputTitle, "output-title", "", `title of the rebuilt sheet (default "Processed Data")`)
	cmd.Flags().StringSliceVar(&dropColumns, "drop-column", nil, "header name to omit from the outputs (repeatable)")
	return cmd
}

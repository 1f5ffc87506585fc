// Package main provides the CLI entry point for acengcleansing.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "acengcleansing",
		Short: "Split spreadsheet rows into cleaned and excluded workbooks",
		Long: `acengcleansing splits the data rows of one workbook sheet into a cleaned
file and an excluded file, using keyword and script-detection rules on the
content column, while copying every other sheet verbatim into both outputs.`,
	}

	rootCmd.AddCommand(newProcessCmd())
	rootCmd.AddCommand(newServeCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tabula-sh/tabula/internal/sheetfile"
)

var convertCmd = &cobra.Command{
	Use:     "convert <input> <output>",
	GroupID: GroupData,
	Short:   "Convert between sheet and CSV formats",
	Long: `Convert between the native sheet format and CSV.

The direction is taken from the file extensions. Exporting to CSV
writes display values, so formulas flatten to their results.
Importing from CSV produces a sheet of literal cells.

Examples:
  tb convert budget.tab budget.csv   # Export
  tb convert data.csv data.tab       # Import`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	in, out := args[0], args[1]
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	registry := newRegistry(cfg)

	inCSV := isCSV(in)
	outCSV := isCSV(out)
	switch {
	case inCSV && !outCSV:
		grid, err := sheetfile.ImportCSV(in, registry)
		if err != nil {
			return err
		}
		if err := sheetfile.Save(out, grid); err != nil {
			return err
		}
	case !inCSV && outCSV:
		grid, err := sheetfile.Load(in, registry)
		if err != nil {
			return err
		}
		if err := sheetfile.ExportCSV(out, grid); err != nil {
			return err
		}
	default:
		return fmt.Errorf("exactly one of input and output must be a .csv file")
	}

	fmt.Printf("wrote %s\n", out)
	return nil
}

func isCSV(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".csv")
}

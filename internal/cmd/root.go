// Package cmd provides CLI commands for the tb tool.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/tabula-sh/tabula/internal/version"
)

var rootCmd = &cobra.Command{
	Use:     "tb",
	Short:   "Tabula - terminal spreadsheet",
	Version: version.Version,
	Long: `Tabula (tb) is a terminal spreadsheet with a formula engine.

Cells hold literals or formulas. Formulas start with '=' and may
reference other cells (A1), ranges (A1:B3), and builtin functions
(SUM, IF, CONCAT, GET, ...). Edits recalculate dependent cells
automatically; circular references are rejected.`,
}

// Command group IDs - used by subcommands to organize help output
const (
	GroupSheet = "sheet"
	GroupData  = "data"
	GroupDiag  = "diag"
)

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupSheet, Title: "Spreadsheet:"},
		&cobra.Group{ID: GroupData, Title: "Data:"},
		&cobra.Group{ID: GroupDiag, Title: "Diagnostics:"},
	)
	rootCmd.SetHelpCommandGroupID(GroupDiag)
	rootCmd.SetCompletionCommandGroupID(GroupDiag)
}

// Execute runs the root command and returns an exit code.
// The caller (main) should call os.Exit with this code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		// Errors already printed by cobra
		return 1
	}
	return 0
}

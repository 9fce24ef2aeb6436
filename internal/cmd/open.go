package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tabula-sh/tabula/internal/sheetfile"
	"github.com/tabula-sh/tabula/internal/tui/editor"
)

var openCmd = &cobra.Command{
	Use:     "open [file]",
	GroupID: GroupSheet,
	Short:   "Open a sheet in the interactive editor",
	Long: `Open a sheet file in the interactive editor.

Without a file argument, edits a new unsaved sheet. A file that does
not exist yet is created on first save.

Examples:
  tb open                  # New sheet
  tb open budget.tab       # Edit an existing sheet`,
	Args: cobra.MaximumNArgs(1),
	RunE: runOpen,
}

func init() {
	rootCmd.AddCommand(openCmd)
}

func runOpen(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	registry := newRegistry(cfg)

	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		path = sheetfile.DefaultFileName
	}

	grid, err := openSheet(path, cfg, registry)
	if err != nil {
		return err
	}

	p := tea.NewProgram(editor.New(grid, registry, path), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running editor: %w", err)
	}
	return nil
}

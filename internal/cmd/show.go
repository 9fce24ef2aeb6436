package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/tabula-sh/tabula/internal/sheet"
	"github.com/tabula-sh/tabula/internal/sheetfile"
	"github.com/tabula-sh/tabula/internal/style"
)

var showPlain bool

var showCmd = &cobra.Command{
	Use:     "show <file>",
	GroupID: GroupSheet,
	Short:   "Print a sheet to the terminal",
	Long: `Print the data region of a sheet to the terminal.

Output is clipped to the terminal width. Use --plain to skip colors,
for piping into other tools.

Examples:
  tb show budget.tab
  tb show budget.tab --plain | less`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVar(&showPlain, "plain", false, "Disable colored output")
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	grid, err := sheetfile.Load(args[0], newRegistry(cfg))
	if err != nil {
		return err
	}

	maxRow, maxCol, ok := grid.DataBounds()
	if !ok {
		fmt.Println(style.Dim.Render("(empty sheet)"))
		return nil
	}

	width := terminalWidth()
	out := renderSheet(grid, maxRow, maxCol, width, !showPlain)
	fmt.Print(out)
	return nil
}

// terminalWidth returns the terminal width, or a generous default
// when stdout is not a terminal.
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 120
}

// renderSheet renders the rectangle [0,0]..[maxRow,maxCol], clipping
// columns that do not fit in width.
func renderSheet(grid *sheet.Grid, maxRow, maxCol, width int, color bool) string {
	labelWidth := len(fmt.Sprintf("%d", maxRow+1)) + 1

	// Determine which columns fit.
	lastCol := 0
	x := labelWidth
	for col := 0; col <= maxCol; col++ {
		x += grid.ColumnWidth(col) + 1
		if x > width {
			break
		}
		lastCol = col
	}

	var b strings.Builder

	b.WriteString(strings.Repeat(" ", labelWidth))
	for col := 0; col <= lastCol; col++ {
		label := padTo(sheet.ColumnLabel(col), grid.ColumnWidth(col))
		if color {
			label = style.Header.Render(label)
		}
		b.WriteString(label)
		b.WriteString(" ")
	}
	b.WriteString("\n")

	for row := 0; row <= maxRow; row++ {
		label := fmt.Sprintf("%*d", labelWidth-1, row+1)
		if color {
			label = style.Dim.Render(label)
		}
		b.WriteString(label)
		b.WriteString(" ")
		for col := 0; col <= lastCol; col++ {
			b.WriteString(renderShowCell(grid, sheet.Addr(row, col), color))
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}

	if lastCol < maxCol {
		note := fmt.Sprintf("(%d more columns not shown)", maxCol-lastCol)
		if color {
			note = style.Dim.Render(note)
		}
		b.WriteString(note)
		b.WriteString("\n")
	}
	return b.String()
}

func renderShowCell(grid *sheet.Grid, a sheet.Address, color bool) string {
	width := grid.ColumnWidth(a.Col)
	cell := grid.Cell(a)
	text := cell.Display()
	if len(text) > width {
		text = text[:width]
	}

	numeric := cell.Err == nil && cell.Value.Kind() == sheet.KindNumber
	if numeric {
		text = fmt.Sprintf("%*s", width, text)
	} else {
		text = padTo(text, width)
	}
	if !color {
		return text
	}
	switch {
	case cell.Err != nil:
		return style.Error.Render(text)
	case numeric:
		return style.Number.Render(text)
	}
	return style.Text.Render(text)
}

func padTo(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}

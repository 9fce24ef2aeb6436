package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tabula-sh/tabula/internal/sheet"
	"github.com/tabula-sh/tabula/internal/sheetfile"
)

var evalFile string

var evalCmd = &cobra.Command{
	Use:     "eval <formula>",
	GroupID: GroupSheet,
	Short:   "Evaluate a formula and print the result",
	Long: `Evaluate a formula and print the result.

The leading '=' is optional. With --file, cell references resolve
against the given sheet; otherwise every reference reads as empty.

Examples:
  tb eval '1 + 2 * 3'
  tb eval '=SUM(A1:A5)' --file budget.tab
  tb eval 'IF(B2 > 100, "over", "under")' --file budget.tab`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)
	evalCmd.Flags().StringVarP(&evalFile, "file", "f", "", "Sheet file to resolve references against")
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	registry := newRegistry(cfg)

	var grid *sheet.Grid
	if evalFile != "" {
		grid, err = sheetfile.Load(evalFile, registry)
		if err != nil {
			return err
		}
	} else {
		grid = newGrid(cfg, registry)
	}

	src := strings.TrimPrefix(strings.TrimSpace(args[0]), "=")
	expr, err := sheet.Parse(src)
	if err != nil {
		return fmt.Errorf("parsing formula: %w", err)
	}

	ev := sheet.NewEvaluator(registry, func(a sheet.Address) sheet.Value {
		c := grid.Cell(a)
		if c.Err != nil {
			return sheet.Text(sheet.ErrorSentinel)
		}
		return c.Value
	}, grid.Rows(), grid.Cols())
	val, err := ev.Eval(expr)
	if err != nil {
		return fmt.Errorf("evaluating formula: %w", err)
	}

	fmt.Println(val.ToText())
	return nil
}

/*
tb is the Tabula terminal spreadsheet.

Tabula stores sheets as JSON files and evaluates a spreadsheet formula
language with cell references, ranges, and builtin functions. Cells
recalculate automatically when their precedents change.

Usage:

	tb <command> [arguments]

Common commands:

	tb open budget.tab         Edit a sheet interactively
	tb show budget.tab         Print a sheet to the terminal
	tb eval '=SUM(A1:A5)'      Evaluate a formula
	tb convert in.csv out.tab  Convert between CSV and sheet files
	tb version                 Print version information

See 'tb help <command>' for more information on a specific command.
*/
package main

import (
	"os"

	"github.com/tabula-sh/tabula/internal/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tabula-sh/tabula/internal/version"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	GroupID: GroupDiag,
	Short:   "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

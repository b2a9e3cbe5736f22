package cmd

import (
	"github.com/markusressel/argonfan/internal/ui"
	"github.com/spf13/cobra"
)

// Version is overridden at build time using -ldflags
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of argonfan",
	Long:  `All software has versions. This is argonfan's`,
	Run: func(cmd *cobra.Command, args []string) {
		ui.Printfln(Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

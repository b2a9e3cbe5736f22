package history

import (
	"github.com/markusressel/argonfan/cmd/global"
	"github.com/markusressel/argonfan/internal/configuration"
	"github.com/markusressel/argonfan/internal/persistence"
	"github.com/markusressel/argonfan/internal/ui"
	"github.com/spf13/cobra"
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded fan speed changes",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := global.LoadConfig(); err != nil {
			return err
		}

		pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath, configuration.CurrentConfig.JournalSize)
		err := pers.DeleteSpeedChanges()
		if err != nil {
			return err
		}
		ui.Success("Fan speed history cleared")
		return nil
	},
}

func init() {
	Command.AddCommand(clearCmd)
}

package history

import (
	"bytes"
	"strconv"
	"time"

	"github.com/markusressel/argonfan/cmd/global"
	"github.com/markusressel/argonfan/internal/configuration"
	"github.com/markusressel/argonfan/internal/persistence"
	"github.com/markusressel/argonfan/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

var limit int

var Command = &cobra.Command{
	Use:              "history",
	Short:            "Print the most recent fan speed changes recorded by the daemon",
	Long:             ``,
	TraverseChildren: true,
	Args:             cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := global.LoadConfig(); err != nil {
			return err
		}

		pers := persistence.NewPersistence(configuration.CurrentConfig.DbPath, configuration.CurrentConfig.JournalSize)
		changes, err := pers.LoadSpeedChanges(limit)
		if err != nil {
			return err
		}
		if len(changes) <= 0 {
			ui.Info("No fan speed changes recorded yet.")
			return nil
		}

		tableString, err := renderTable(changes, !global.NoColor)
		if err != nil {
			return err
		}
		ui.Printfln(tableString)
		return nil
	},
}

func init() {
	Command.PersistentFlags().IntVarP(
		&limit,
		"limit", "l",
		20,
		"Maximum number of entries to print, 0 prints all of them",
	)
}

func renderTable(changes []persistence.SpeedChange, color bool) (string, error) {
	var rows [][]string
	for _, change := range changes {
		rows = append(rows, []string{
			change.Time.Format(time.DateTime),
			strconv.FormatFloat(change.Temperature, 'f', 1, 64),
			strconv.Itoa(change.PreviousSpeed),
			strconv.Itoa(change.Speed),
		})
	}

	tab := table.Table{
		Headers: []string{"Time", "Temperature (°C)", "Previous (%)", "Speed (%)"},
		Rows:    rows,
	}
	var buf bytes.Buffer
	err := tab.WriteTable(&buf, &table.Config{
		ShowIndex:       false,
		Color:           color,
		AlternateColors: true,
		TitleColorCode:  ansi.ColorCode("white+buf"),
		AltColorCodes: []string{
			ansi.ColorCode("white"),
			ansi.ColorCode("white:236"),
		},
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

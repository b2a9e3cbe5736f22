package fan

import (
	"fmt"
	"strconv"

	"github.com/markusressel/argonfan/cmd/global"
	"github.com/markusressel/argonfan/internal/bus"
	"github.com/markusressel/argonfan/internal/cases"
	"github.com/markusressel/argonfan/internal/configuration"
	"github.com/markusressel/argonfan/internal/ui"
	"github.com/spf13/cobra"
)

var speedCmd = &cobra.Command{
	Use:   "speed <0..100>",
	Short: "Set the fan of the case to the given speed in percent",
	Long:  `Writes a single fan speed command to the case. A running daemon will overwrite it on its next change.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		speed, err := parseSpeed(args[0])
		if err != nil {
			return err
		}

		if err := global.LoadConfig(); err != nil {
			return err
		}
		config := configuration.CurrentConfig

		fanCase, err := cases.NewCase(config.Case)
		if err != nil {
			return err
		}

		b, err := bus.NewBus(config.Bus)
		if err != nil {
			return err
		}
		defer b.Close()

		err = writeSpeed(b, fanCase, speed)
		if err != nil {
			return err
		}
		ui.Success("Fan speed set to %d%%", speed)
		return nil
	},
}

func init() {
	Command.AddCommand(speedCmd)
}

func parseSpeed(arg string) (int, error) {
	speed, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid speed: %s", arg)
	}
	if speed < 0 || speed > 100 {
		return 0, fmt.Errorf("speed must be in range [0..100]: %d", speed)
	}
	return speed, nil
}

func writeSpeed(b bus.Bus, fanCase cases.Case, speed int) error {
	register, payload := fanCase.FanCommand(speed)
	ui.Debug("Writing 0x%02x to register 0x%02x on %s", payload, register, b.GetId())
	return b.WriteByteData(register, payload)
}

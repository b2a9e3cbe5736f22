package curve

import (
	"fmt"
	"strconv"

	"github.com/markusressel/argonfan/cmd/global"
	"github.com/markusressel/argonfan/internal/configuration"
	"github.com/markusressel/argonfan/internal/curves"
	"github.com/spf13/cobra"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <temperature>",
	Short: "Print the fan speed the curve maps the given temperature (°C) to",
	Long:  ``,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		temp, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("invalid temperature: %s", args[0])
		}

		if err := global.LoadConfigSilently(); err != nil {
			return err
		}

		curve := curves.NewFanCurveFromConfig(configuration.CurrentConfig.FanCurve)
		fmt.Printf("%d", curve.Evaluate(temp))
		return nil
	},
}

func init() {
	Command.AddCommand(evaluateCmd)
}

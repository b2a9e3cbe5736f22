package sensor

import (
	"fmt"

	"github.com/markusressel/argonfan/cmd/global"
	"github.com/markusressel/argonfan/internal/configuration"
	"github.com/markusressel/argonfan/internal/sensors"
	"github.com/spf13/cobra"
)

var Command = &cobra.Command{
	Use:              "sensor",
	Short:            "Print the current value of the configured temperature sensor in °C",
	Long:             ``,
	TraverseChildren: true,
	Args:             cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := global.LoadConfigSilently(); err != nil {
			return err
		}

		sensor, err := sensors.NewSensor(configuration.CurrentConfig.Sensor)
		if err != nil {
			return err
		}

		value, err := sensor.GetValue()
		if err != nil {
			return err
		}
		fmt.Printf("%.1f", value)
		return nil
	},
}

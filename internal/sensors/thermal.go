package sensors

import (
	"github.com/markusressel/argonfan/internal/util"
)

// ThermalSensor reads a kernel thermal zone, which reports millidegrees Celsius
type ThermalSensor struct {
	Path string `json:"path"`
}

func (sensor ThermalSensor) GetId() string {
	return "thermal:" + sensor.Path
}

func (sensor ThermalSensor) GetValue() (float64, error) {
	integer, err := util.ReadIntFromFile(sensor.Path)
	if err != nil {
		return 0, err
	}
	return float64(integer) / 1000, nil
}

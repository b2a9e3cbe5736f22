package sensors

import (
	"fmt"
	"strings"

	psutil "github.com/shirou/gopsutil/v4/sensors"
)

// overridden in tests
var readTemperatures = psutil.SensorsTemperatures

// PsutilSensor reads a host temperature sensor by its key, as reported by gopsutil
type PsutilSensor struct {
	Key string `json:"key"`
}

func (sensor PsutilSensor) GetId() string {
	return "psutil:" + sensor.Key
}

func (sensor PsutilSensor) GetValue() (float64, error) {
	temperatures, err := readTemperatures()
	// gopsutil returns partial results together with warnings,
	// so only fail if there is nothing to look at
	if err != nil && len(temperatures) == 0 {
		return 0, err
	}

	var available []string
	for _, t := range temperatures {
		if t.SensorKey == sensor.Key {
			return t.Temperature, nil
		}
		available = append(available, t.SensorKey)
	}

	return 0, fmt.Errorf("no temperature sensor with key '%s' found, options: %s", sensor.Key, strings.Join(available, ", "))
}

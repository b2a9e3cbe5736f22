package sensors

import (
	"fmt"

	"github.com/markusressel/argonfan/internal/configuration"
)

type Sensor interface {
	GetId() string

	// GetValue returns the current temperature of this sensor in °C
	GetValue() (float64, error)
}

func NewSensor(config configuration.SensorConfig) (Sensor, error) {
	if config.Thermal != nil {
		path := config.Thermal.Path
		if len(path) <= 0 {
			path = configuration.DefaultThermalZonePath
		}
		return &ThermalSensor{
			Path: path,
		}, nil
	}

	if config.Psutil != nil {
		return &PsutilSensor{
			Key: config.Psutil.Key,
		}, nil
	}

	if config.File != nil {
		return &FileSensor{
			Path: config.File.Path,
		}, nil
	}

	return nil, fmt.Errorf("no matching sensor type for sensor configuration")
}

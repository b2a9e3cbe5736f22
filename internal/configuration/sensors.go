package configuration

const DefaultThermalZonePath = "/sys/class/thermal/thermal_zone0/temp"

type SensorConfig struct {
	Thermal *ThermalSensorConfig `json:"thermal,omitempty"`
	Psutil  *PsutilSensorConfig  `json:"psutil,omitempty"`
	File    *FileSensorConfig    `json:"file,omitempty"`
}

// ThermalSensorConfig reads a sysfs thermal zone, reporting millidegrees
type ThermalSensorConfig struct {
	Path string `json:"path"`
}

// PsutilSensorConfig selects a host temperature sensor by its key, e.g. "cpu_thermal"
type PsutilSensorConfig struct {
	Key string `json:"key"`
}

// FileSensorConfig reads a plain degree value from a file
type FileSensorConfig struct {
	Path string `json:"path"`
}

func (c SensorConfig) isEmpty() bool {
	return c.Thermal == nil && c.Psutil == nil && c.File == nil
}

func defaultSensorConfig() SensorConfig {
	return SensorConfig{
		Thermal: &ThermalSensorConfig{
			Path: DefaultThermalZonePath,
		},
	}
}

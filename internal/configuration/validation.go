package configuration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/markusressel/argonfan/internal/cases"
	"github.com/markusressel/argonfan/internal/ui"
	"golang.org/x/exp/slices"
)

const (
	MinSpeed = 0
	MaxSpeed = 100

	// valid range of 7-bit I2C addresses, excluding the reserved ones
	minI2CAddress = 0x03
	maxI2CAddress = 0x77
)

var ErrInvalidConfiguration = errors.New("invalid configuration")

func invalid(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, a...))
}

func Validate() error {
	return validateConfig(&CurrentConfig)
}

func validateConfig(config *Configuration) error {
	err := validateController(config)
	if err != nil {
		return err
	}
	err = validateFanCurve(config.FanCurve)
	if err != nil {
		return err
	}
	err = validateSensor(config.Sensor)
	if err != nil {
		return err
	}
	return validateBus(config.Bus)
}

func validateController(config *Configuration) error {
	supportedCases := cases.Ids()
	if !slices.Contains(supportedCases, config.Case) {
		return invalid("case: unsupported case '%s', use one of: %s", config.Case, strings.Join(supportedCases, " | "))
	}

	if config.PollInterval <= 0 {
		return invalid("pollInterval: must be greater than zero")
	}

	if config.CooldownCycles < 0 {
		return invalid("cooldownCycles: must not be negative")
	}

	if config.FilterFactor < 0.0 || config.FilterFactor > 1.0 {
		return invalid("filterFactor: must be between 0.0 and 1.0")
	}

	if config.JournalSize < 0 {
		return invalid("journalSize: must not be negative")
	}

	if config.TemperatureWindowSize <= 0 {
		return invalid("temperatureWindowSize: must be greater than zero")
	}

	return nil
}

func validateFanCurve(curve []FanCurvePointConfig) error {
	if len(curve) == 0 {
		ui.Warning("fanCurve is empty, the fan will never spin")
		return nil
	}

	for i, point := range curve {
		if point.Speed < MinSpeed || point.Speed > MaxSpeed {
			return invalid("fanCurve: speed %d of point %d must be between %d and %d", point.Speed, i, MinSpeed, MaxSpeed)
		}
		if i == 0 {
			continue
		}
		prev := curve[i-1]
		if prev.Temp >= point.Temp || prev.Speed >= point.Speed {
			return invalid("fanCurve: temperatures and speeds must both be increasing")
		}
	}

	return nil
}

func validateSensor(config SensorConfig) error {
	subConfigs := 0
	if config.Thermal != nil {
		subConfigs++
	}
	if config.Psutil != nil {
		subConfigs++
	}
	if config.File != nil {
		subConfigs++
	}
	if subConfigs > 1 {
		return invalid("sensor: only one sensor type can be used")
	}
	if subConfigs <= 0 {
		return invalid("sensor: sub-configuration for sensor is missing, use one of: thermal | psutil | file")
	}

	if config.Psutil != nil && len(config.Psutil.Key) <= 0 {
		return invalid("sensor: psutil sensor key is missing")
	}
	if config.File != nil && len(config.File.Path) <= 0 {
		return invalid("sensor: no file path provided")
	}

	return nil
}

func validateBus(config BusConfig) error {
	subConfigs := 0
	if config.I2C != nil {
		subConfigs++
	}
	if config.File != nil {
		subConfigs++
	}
	if subConfigs > 1 {
		return invalid("bus: only one bus type can be used")
	}
	if subConfigs <= 0 {
		return invalid("bus: sub-configuration for bus is missing, use one of: i2c | file")
	}

	if config.I2C != nil {
		if config.I2C.Bus < 0 {
			return invalid("bus: invalid i2c bus number %d", config.I2C.Bus)
		}
		if config.I2C.Address < minI2CAddress || config.I2C.Address > maxI2CAddress {
			return invalid("bus: i2c address 0x%02x is out of range, must be within 0x%02x..0x%02x", config.I2C.Address, minI2CAddress, maxI2CAddress)
		}
	}

	if config.File != nil && len(config.File.Path) <= 0 {
		return invalid("bus: no file path provided")
	}

	return nil
}

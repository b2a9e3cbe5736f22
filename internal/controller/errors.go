package controller

import (
	"errors"
	"fmt"
)

// ErrInvalidTemperature is wrapped by SensorReadError for NaN or infinite readings
var ErrInvalidTemperature = errors.New("invalid temperature")

// SensorReadError indicates that the temperature could not be read
type SensorReadError struct {
	Sensor string
	Err    error
}

func (e *SensorReadError) Error() string {
	return fmt.Sprintf("reading temperature of sensor %s: %v", e.Sensor, e.Err)
}

func (e *SensorReadError) Unwrap() error {
	return e.Err
}

// BusWriteError indicates that a fan speed could not be written to the device
type BusWriteError struct {
	Bus   string
	Speed int
	Err   error
}

func (e *BusWriteError) Error() string {
	return fmt.Sprintf("setting fan speed %d%% on %s: %v", e.Speed, e.Bus, e.Err)
}

func (e *BusWriteError) Unwrap() error {
	return e.Err
}

package testingutils

import "errors"

var ErrNoValues = errors.New("mock sensor has no values")

// MockSensor returns the configured values in order, repeating the last one
type MockSensor struct {
	Values []float64
	Err    error
	reads  int
}

func (sensor *MockSensor) GetId() string {
	return "mock"
}

func (sensor *MockSensor) GetValue() (float64, error) {
	if sensor.Err != nil {
		return 0, sensor.Err
	}
	if len(sensor.Values) <= 0 {
		return 0, ErrNoValues
	}
	idx := sensor.reads
	if idx >= len(sensor.Values) {
		idx = len(sensor.Values) - 1
	}
	sensor.reads++
	return sensor.Values[idx], nil
}

// Reads returns the number of successful reads
func (sensor *MockSensor) Reads() int {
	return sensor.reads
}

type Write struct {
	Register byte
	Payload  byte
}

// MockBus records every successful write
type MockBus struct {
	Writes []Write
	Err    error
}

func (b *MockBus) GetId() string {
	return "mock"
}

func (b *MockBus) WriteByteData(register byte, value byte) error {
	if b.Err != nil {
		return b.Err
	}
	b.Writes = append(b.Writes, Write{Register: register, Payload: value})
	return nil
}

func (b *MockBus) Close() error {
	return nil
}

// LastWrite returns the most recent write, or false if nothing was written
func (b *MockBus) LastWrite() (Write, bool) {
	if len(b.Writes) <= 0 {
		return Write{}, false
	}
	return b.Writes[len(b.Writes)-1], true
}

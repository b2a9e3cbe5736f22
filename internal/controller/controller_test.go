package controller

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/markusressel/argonfan/internal/cases"
	"github.com/markusressel/argonfan/internal/curves"
	"github.com/markusressel/argonfan/internal/persistence"
	"github.com/markusressel/argonfan/internal/testingutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MockRecorder struct {
	Changes []persistence.SpeedChange
	Err     error
}

func (r *MockRecorder) SaveSpeedChange(change persistence.SpeedChange) error {
	r.Changes = append(r.Changes, change)
	return r.Err
}

func lastWrite(t *testing.T, b *testingutils.MockBus) testingutils.Write {
	w, ok := b.LastWrite()
	require.True(t, ok)
	return w
}

func createConfig(cooldownCycles int, filterFactor float64) Config {
	return Config{
		PollInterval:   time.Millisecond,
		CooldownCycles: cooldownCycles,
		FilterFactor:   filterFactor,
		Curve: curves.NewFanCurve([]curves.FanCurvePoint{
			{Temp: 40, Speed: 20},
			{Temp: 60, Speed: 50},
			{Temp: 80, Speed: 100},
		}),
		TemperatureWindowSize: 5,
	}
}

func createController(t *testing.T, config Config, sensor *testingutils.MockSensor, b *testingutils.MockBus) *FanController {
	f, err := NewFanController(config, sensor, b, cases.ArgonV3Case{})
	require.NoError(t, err)
	return f
}

// ticks the controller n times and returns the current speed after each tick
func tickN(t *testing.T, f *FanController, n int) []int {
	var result []int
	for i := 0; i < n; i++ {
		err := f.Tick()
		require.NoError(t, err)
		result = append(result, f.CurrentSpeed())
	}
	return result
}

func TestNewFanController_CommandsZero(t *testing.T) {
	// GIVEN
	sensor := &testingutils.MockSensor{Values: []float64{65}}
	b := &testingutils.MockBus{}

	// WHEN
	f := createController(t, createConfig(0, 1), sensor, b)

	// THEN
	assert.Equal(t, 0, f.CurrentSpeed())
	assert.Equal(t, StateRegular, f.State())
	assert.Equal(t, []testingutils.Write{{Register: 0x80, Payload: 0}}, b.Writes)
	assert.Equal(t, 1, sensor.Reads())
}

func TestNewFanController_FirstSampleIsSmoothedValue(t *testing.T) {
	// GIVEN
	sensor := &testingutils.MockSensor{Values: []float64{45, 90}}
	b := &testingutils.MockBus{}

	// WHEN
	f := createController(t, createConfig(0, 0), sensor, b)

	// THEN
	assert.Equal(t, 45.0, f.SmoothedTemperature())

	// WHEN
	speeds := tickN(t, f, 3)

	// THEN
	assert.Equal(t, 45.0, f.SmoothedTemperature())
	assert.Equal(t, []int{20, 20, 20}, speeds)
}

func TestNewFanController_SensorError(t *testing.T) {
	// GIVEN
	sensorErr := errors.New("no such file")
	sensor := &testingutils.MockSensor{Err: sensorErr}
	b := &testingutils.MockBus{}

	// WHEN
	f, err := NewFanController(createConfig(0, 1), sensor, b, cases.ArgonV3Case{})

	// THEN
	assert.Nil(t, f)
	var readErr *SensorReadError
	assert.True(t, errors.As(err, &readErr))
	assert.ErrorIs(t, err, sensorErr)
	assert.Empty(t, b.Writes)
}

func TestNewFanController_BusError(t *testing.T) {
	// GIVEN
	sensor := &testingutils.MockSensor{Values: []float64{50}}
	b := &testingutils.MockBus{Err: errors.New("remote I/O error")}

	// WHEN
	f, err := NewFanController(createConfig(0, 1), sensor, b, cases.ArgonV3Case{})

	// THEN
	assert.Nil(t, f)
	var writeErr *BusWriteError
	assert.True(t, errors.As(err, &writeErr))
	assert.Equal(t, 0, writeErr.Speed)
}

func TestFanController_Tick_RampUp(t *testing.T) {
	// GIVEN
	sensor := &testingutils.MockSensor{Values: []float64{30, 65, 85}}
	b := &testingutils.MockBus{}
	f := createController(t, createConfig(3, 1), sensor, b)

	// WHEN
	speeds := tickN(t, f, 2)

	// THEN
	assert.Equal(t, 3, sensor.Reads())
	assert.Equal(t, []int{50, 100}, speeds)
	assert.Equal(t, []testingutils.Write{
		{Register: 0x80, Payload: 0},
		{Register: 0x80, Payload: 50},
		{Register: 0x80, Payload: 100},
	}, b.Writes)
}

func TestFanController_Tick_SameSpeedIsNotWritten(t *testing.T) {
	// GIVEN
	sensor := &testingutils.MockSensor{Values: []float64{30, 65, 66, 67}}
	b := &testingutils.MockBus{}
	f := createController(t, createConfig(3, 1), sensor, b)

	// WHEN
	speeds := tickN(t, f, 3)

	// THEN
	assert.Equal(t, []int{50, 50, 50}, speeds)
	assert.Len(t, b.Writes, 2)
}

func TestFanController_Tick_Cooldown(t *testing.T) {
	// GIVEN
	sensor := &testingutils.MockSensor{Values: []float64{30, 65, 45}}
	b := &testingutils.MockBus{}
	f := createController(t, createConfig(3, 1), sensor, b)
	tickN(t, f, 1)
	require.Equal(t, 50, f.CurrentSpeed())

	// WHEN
	speeds := tickN(t, f, 4)

	// THEN
	assert.Equal(t, []int{50, 50, 50, 20}, speeds)
	assert.Equal(t, StateRegular, f.State())
	assert.Equal(t, testingutils.Write{Register: 0x80, Payload: 20}, lastWrite(t, b))
	assert.Len(t, b.Writes, 3)
}

func TestFanController_Tick_CooldownDisabled(t *testing.T) {
	// GIVEN
	sensor := &testingutils.MockSensor{Values: []float64{30, 65, 45, 10}}
	b := &testingutils.MockBus{}
	f := createController(t, createConfig(0, 1), sensor, b)

	// WHEN
	speeds := tickN(t, f, 3)

	// THEN
	assert.Equal(t, []int{50, 20, 0}, speeds)
}

func TestFanController_Tick_RampUpDuringCooldown(t *testing.T) {
	// GIVEN
	sensor := &testingutils.MockSensor{Values: []float64{30, 65, 45, 45, 85}}
	b := &testingutils.MockBus{}
	f := createController(t, createConfig(5, 1), sensor, b)

	// WHEN
	speeds := tickN(t, f, 4)

	// THEN
	assert.Equal(t, []int{50, 50, 50, 100}, speeds)
	assert.Equal(t, StateRegular, f.State())
}

func TestFanController_Tick_Filtered(t *testing.T) {
	// GIVEN
	sensor := &testingutils.MockSensor{Values: []float64{40, 80}}
	b := &testingutils.MockBus{}
	f := createController(t, createConfig(0, 0.5), sensor, b)

	// WHEN
	speeds := tickN(t, f, 2)

	// THEN
	// 40 -> 60 -> 70
	assert.Equal(t, 70.0, f.SmoothedTemperature())
	assert.Equal(t, []int{50, 50}, speeds)
}

func TestFanController_Tick_SensorError(t *testing.T) {
	// GIVEN
	sensor := &testingutils.MockSensor{Values: []float64{65}}
	b := &testingutils.MockBus{}
	f := createController(t, createConfig(0, 1), sensor, b)
	tickN(t, f, 1)
	sensor.Err = errors.New("read failed")

	// WHEN
	err := f.Tick()

	// THEN
	var readErr *SensorReadError
	assert.True(t, errors.As(err, &readErr))
	assert.Equal(t, 50, f.CurrentSpeed())
}

func TestFanController_Tick_BusError(t *testing.T) {
	// GIVEN
	sensor := &testingutils.MockSensor{Values: []float64{30, 65}}
	b := &testingutils.MockBus{}
	f := createController(t, createConfig(0, 1), sensor, b)
	b.Err = errors.New("remote I/O error")

	// WHEN
	err := f.Tick()

	// THEN
	var writeErr *BusWriteError
	assert.True(t, errors.As(err, &writeErr))
	assert.Equal(t, 50, writeErr.Speed)
	assert.Equal(t, 0, f.CurrentSpeed())
}

func TestFanController_Shutdown(t *testing.T) {
	// GIVEN
	sensor := &testingutils.MockSensor{Values: []float64{30, 90}}
	b := &testingutils.MockBus{}
	f := createController(t, createConfig(0, 1), sensor, b)
	tickN(t, f, 1)
	require.Equal(t, 100, f.CurrentSpeed())

	// WHEN
	f.Shutdown()

	// THEN
	assert.Equal(t, 0, f.CurrentSpeed())
	assert.Equal(t, testingutils.Write{Register: 0x80, Payload: 0}, lastWrite(t, b))
	assert.Equal(t, 0, f.GetStatus().CurrentSpeed)
}

func TestFanController_ShutdownSwallowsBusError(t *testing.T) {
	// GIVEN
	sensor := &testingutils.MockSensor{Values: []float64{30, 90}}
	b := &testingutils.MockBus{}
	f := createController(t, createConfig(3, 1), sensor, b)
	tickN(t, f, 1)
	b.Err = errors.New("remote I/O error")

	// WHEN
	f.Shutdown()

	// THEN
	assert.Equal(t, 0, f.CurrentSpeed())
	assert.Equal(t, StateRegular, f.State())
}

func TestFanController_Run_StopsOnCancel(t *testing.T) {
	// GIVEN
	sensor := &testingutils.MockSensor{Values: []float64{30, 90}}
	b := &testingutils.MockBus{}
	f := createController(t, createConfig(0, 1), sensor, b)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// WHEN
	err := f.Run(ctx)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 0, f.CurrentSpeed())
	assert.Equal(t, testingutils.Write{Register: 0x80, Payload: 0}, lastWrite(t, b))
}

func TestFanController_Run_TicksUntilCancel(t *testing.T) {
	// GIVEN
	sensor := &testingutils.MockSensor{Values: []float64{30, 90}}
	b := &testingutils.MockBus{}
	f := createController(t, createConfig(0, 1), sensor, b)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	// WHEN
	err := f.Run(ctx)

	// THEN
	assert.NoError(t, err)
	assert.Contains(t, b.Writes, testingutils.Write{Register: 0x80, Payload: 100})
	assert.Equal(t, testingutils.Write{Register: 0x80, Payload: 0}, lastWrite(t, b))
	assert.Equal(t, 0, f.CurrentSpeed())
	assert.Greater(t, f.GetStatus().Ticks, uint64(0))
}

func TestFanController_Run_StopsOnTickError(t *testing.T) {
	// GIVEN
	sensor := &testingutils.MockSensor{Values: []float64{30}}
	b := &testingutils.MockBus{}
	f := createController(t, createConfig(0, 1), sensor, b)
	sensor.Err = errors.New("read failed")

	// WHEN
	err := f.Run(context.Background())

	// THEN
	var readErr *SensorReadError
	assert.True(t, errors.As(err, &readErr))
	assert.Equal(t, 0, f.CurrentSpeed())
}

func TestFanController_Recorder(t *testing.T) {
	// GIVEN
	sensor := &testingutils.MockSensor{Values: []float64{30, 65, 45}}
	b := &testingutils.MockBus{}
	f := createController(t, createConfig(0, 1), sensor, b)
	recorder := &MockRecorder{}
	f.SetRecorder(recorder)

	// WHEN
	tickN(t, f, 2)

	// THEN
	require.Len(t, recorder.Changes, 2)
	assert.Equal(t, 0, recorder.Changes[0].PreviousSpeed)
	assert.Equal(t, 50, recorder.Changes[0].Speed)
	assert.Equal(t, 65.0, recorder.Changes[0].Temperature)
	assert.Equal(t, 50, recorder.Changes[1].PreviousSpeed)
	assert.Equal(t, 20, recorder.Changes[1].Speed)
}

func TestFanController_RecorderErrorIsIgnored(t *testing.T) {
	// GIVEN
	sensor := &testingutils.MockSensor{Values: []float64{30, 65}}
	b := &testingutils.MockBus{}
	f := createController(t, createConfig(0, 1), sensor, b)
	f.SetRecorder(&MockRecorder{Err: errors.New("database locked")})

	// WHEN
	err := f.Tick()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 50, f.CurrentSpeed())
}

func TestFanController_GetStatus(t *testing.T) {
	// GIVEN
	sensor := &testingutils.MockSensor{Values: []float64{30, 65, 45}}
	b := &testingutils.MockBus{}
	f := createController(t, createConfig(3, 1), sensor, b)

	// WHEN
	tickN(t, f, 2)
	status := f.GetStatus()

	// THEN
	assert.Equal(t, "mock", status.Sensor)
	assert.Equal(t, "v3", status.Case)
	assert.Equal(t, 45.0, status.RawTemperature)
	assert.Equal(t, 45.0, status.SmoothedTemperature)
	assert.Equal(t, 65.0, status.MaxTemperature)
	assert.Equal(t, 20, status.TargetSpeed)
	assert.Equal(t, 50, status.CurrentSpeed)
	assert.Equal(t, StateCooldown, status.State)
	assert.Equal(t, 2, status.CooldownRemaining)
	assert.Equal(t, uint64(2), status.Ticks)
	assert.Equal(t, uint64(2), status.SpeedChanges)
}

func TestFanController_ArgonV2Case(t *testing.T) {
	// GIVEN
	sensor := &testingutils.MockSensor{Values: []float64{30, 65}}
	b := &testingutils.MockBus{}
	f, err := NewFanController(createConfig(0, 1), sensor, b, cases.ArgonV2Case{})
	require.NoError(t, err)

	// WHEN
	tickN(t, f, 1)

	// THEN
	assert.Equal(t, []testingutils.Write{
		{Register: 0, Payload: 0},
		{Register: 50, Payload: 0},
	}, b.Writes)
}

func TestNewFanController_NaNTemperature(t *testing.T) {
	// GIVEN
	sensor := &testingutils.MockSensor{Values: []float64{math.NaN()}}
	b := &testingutils.MockBus{}

	// WHEN
	f, err := NewFanController(createConfig(0, 1), sensor, b, cases.ArgonV3Case{})

	// THEN
	assert.Nil(t, f)
	var readErr *SensorReadError
	assert.True(t, errors.As(err, &readErr))
	assert.ErrorIs(t, err, ErrInvalidTemperature)
	assert.Empty(t, b.Writes)
}

func TestFanController_Tick_NonFiniteTemperature(t *testing.T) {
	for _, value := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		// GIVEN
		sensor := &testingutils.MockSensor{Values: []float64{30, 65, value}}
		b := &testingutils.MockBus{}
		f := createController(t, createConfig(0, 0.5), sensor, b)
		tickN(t, f, 1)
		smoothed := f.SmoothedTemperature()
		speed := f.CurrentSpeed()

		// WHEN
		err := f.Tick()

		// THEN
		var readErr *SensorReadError
		assert.True(t, errors.As(err, &readErr))
		assert.ErrorIs(t, err, ErrInvalidTemperature)
		assert.Equal(t, smoothed, f.SmoothedTemperature())
		assert.Equal(t, speed, f.CurrentSpeed())
	}
}

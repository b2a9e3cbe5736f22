package controller

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/asecurityteam/rolling"
	"github.com/markusressel/argonfan/internal/bus"
	"github.com/markusressel/argonfan/internal/cases"
	"github.com/markusressel/argonfan/internal/curves"
	"github.com/markusressel/argonfan/internal/persistence"
	"github.com/markusressel/argonfan/internal/sensors"
	"github.com/markusressel/argonfan/internal/ui"
	"github.com/markusressel/argonfan/internal/util"
)

type Config struct {
	PollInterval   time.Duration
	CooldownCycles int
	FilterFactor   float64
	Curve          curves.FanCurve
	// TemperatureWindowSize is the number of raw samples used for the status avg/max values
	TemperatureWindowSize int
}

// SpeedChangeRecorder receives every speed that was successfully written to the fan
type SpeedChangeRecorder interface {
	SaveSpeedChange(change persistence.SpeedChange) error
}

// FanController drives a single fan. It is not safe for concurrent use,
// except for GetStatus, which may be called from any goroutine.
type FanController struct {
	config  Config
	sensor  sensors.Sensor
	bus     bus.Bus
	fanCase cases.Case

	recorder SpeedChangeRecorder

	hysteresis        *Hysteresis
	smoothedTemp      float64
	currentSpeed      int
	temperatureWindow *rolling.PointPolicy

	statusMu sync.RWMutex
	status   Status
}

// initialSmoothedTemperature is the starting point of the temperature filter:
// the first sample is treated as already filtered.
func initialSmoothedTemperature(firstSample float64) float64 {
	return firstSample
}

// NewFanController reads an initial temperature sample and turns the fan off.
func NewFanController(
	config Config,
	sensor sensors.Sensor,
	b bus.Bus,
	fanCase cases.Case,
) (*FanController, error) {
	ui.Info("Creating fan controller...")

	windowSize := config.TemperatureWindowSize
	if windowSize <= 0 {
		windowSize = 1
	}

	f := &FanController{
		config:            config,
		sensor:            sensor,
		bus:               b,
		fanCase:           fanCase,
		hysteresis:        NewHysteresis(config.CooldownCycles),
		temperatureWindow: util.CreateRollingWindow(windowSize),
		status: Status{
			Sensor: sensor.GetId(),
			Bus:    b.GetId(),
			Case:   fanCase.GetId(),
		},
	}

	ui.Debug("Reading initial CPU temperature...")
	initial, err := f.readRawTemp()
	if err != nil {
		return nil, err
	}
	ui.Info("Initial CPU temperature: %.1f°C", initial)

	f.smoothedTemp = initialSmoothedTemperature(initial)
	util.FillWindow(f.temperatureWindow, windowSize, initial)

	// start with the fan turned off
	err = f.setSpeed(0)
	if err != nil {
		return nil, err
	}
	f.updateStatus(initial, 0, false)

	return f, nil
}

// SetRecorder attaches a journal for speed changes, nil disables it
func (f *FanController) SetRecorder(recorder SpeedChangeRecorder) {
	f.recorder = recorder
}

// Run ticks the controller once per poll interval until ctx is cancelled
// or a tick fails. The fan is always turned off before Run returns.
func (f *FanController) Run(ctx context.Context) error {
	defer f.Shutdown()

	ui.Info("Starting controller loop (case: %s, sensor: %s, bus: %s)", f.fanCase.GetId(), f.sensor.GetId(), f.bus.GetId())

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		err := f.Tick()
		if err != nil {
			ui.Error("Error in fan controller: %v", err)
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(f.config.PollInterval):
		}
	}
}

// Tick runs the control logic exactly once
func (f *FanController) Tick() error {
	raw, err := f.readRawTemp()
	if err != nil {
		return err
	}
	f.temperatureWindow.Append(raw)

	prev := f.smoothedTemp
	f.smoothedTemp = util.ApplyExponentialFilter(raw, prev, f.config.FilterFactor)
	ui.Debug("CPU temperature: prev=%.2f; new=%.2f; filtered=%.2f", prev, raw, f.smoothedTemp)

	target := f.config.Curve.Evaluate(f.smoothedTemp)
	speed, apply := f.hysteresis.Next(target, f.currentSpeed)
	if apply {
		err = f.setSpeed(speed)
		if err != nil {
			return err
		}
	} else if f.hysteresis.State() == StateCooldown {
		ui.Debug("Cooling down, keeping fan speed at %d%% for %d more cycles (target: %d%%)", f.currentSpeed, f.hysteresis.Remaining(), target)
	}

	f.updateStatus(raw, target, true)
	return nil
}

// Shutdown turns the fan off. Errors are only logged, since this
// is called on the way out and must not prevent the process from exiting.
func (f *FanController) Shutdown() {
	ui.Info("Fan controller shutting down...")

	err := f.setSpeed(0)
	if err != nil {
		ui.Warning("Error turning off fan: %v", err)
	}
	f.currentSpeed = 0
	f.hysteresis.Reset()

	f.statusMu.Lock()
	defer f.statusMu.Unlock()
	f.status.CurrentSpeed = 0
	f.status.State = f.hysteresis.State()
	f.status.CooldownRemaining = 0
}

// CurrentSpeed returns the speed that was last written to the fan
func (f *FanController) CurrentSpeed() int {
	return f.currentSpeed
}

func (f *FanController) SmoothedTemperature() float64 {
	return f.smoothedTemp
}

func (f *FanController) State() ControllerState {
	return f.hysteresis.State()
}

func (f *FanController) GetStatus() Status {
	f.statusMu.RLock()
	defer f.statusMu.RUnlock()
	return f.status
}

func (f *FanController) readRawTemp() (float64, error) {
	value, err := f.sensor.GetValue()
	if err != nil {
		return 0, &SensorReadError{Sensor: f.sensor.GetId(), Err: err}
	}
	// a NaN would never leave the filter again
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, &SensorReadError{Sensor: f.sensor.GetId(), Err: fmt.Errorf("%w: %v", ErrInvalidTemperature, value)}
	}
	return value, nil
}

// setSpeed writes the given speed in percent to the fan
func (f *FanController) setSpeed(speed int) error {
	ui.Info("Setting fan speed: %d%%", speed)

	register, payload := f.fanCase.FanCommand(speed)
	err := f.bus.WriteByteData(register, payload)
	if err != nil {
		return &BusWriteError{Bus: f.bus.GetId(), Speed: speed, Err: err}
	}

	previous := f.currentSpeed
	f.currentSpeed = speed

	f.statusMu.Lock()
	f.status.SpeedChanges++
	f.statusMu.Unlock()

	if f.recorder != nil {
		err = f.recorder.SaveSpeedChange(persistence.SpeedChange{
			Time:          time.Now(),
			PreviousSpeed: previous,
			Speed:         speed,
			Temperature:   f.smoothedTemp,
		})
		if err != nil {
			ui.Warning("Unable to record fan speed change: %v", err)
		}
	}

	return nil
}

func (f *FanController) updateStatus(raw float64, target int, ticked bool) {
	f.statusMu.Lock()
	defer f.statusMu.Unlock()

	f.status.RawTemperature = raw
	f.status.SmoothedTemperature = f.smoothedTemp
	f.status.AvgTemperature = util.GetWindowAvg(f.temperatureWindow)
	f.status.MaxTemperature = util.GetWindowMax(f.temperatureWindow)
	f.status.TargetSpeed = target
	f.status.CurrentSpeed = f.currentSpeed
	f.status.State = f.hysteresis.State()
	f.status.CooldownRemaining = f.hysteresis.Remaining()
	if ticked {
		f.status.Ticks++
		f.status.LastTick = time.Now()
	}
}

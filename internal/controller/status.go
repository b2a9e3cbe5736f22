package controller

import "time"

// Status is a snapshot of the controller after its last tick
type Status struct {
	Sensor string `json:"sensor"`
	Bus    string `json:"bus"`
	Case   string `json:"case"`

	RawTemperature      float64 `json:"rawTemperature"`
	SmoothedTemperature float64 `json:"smoothedTemperature"`
	// AvgTemperature and MaxTemperature are calculated over the recent raw samples
	AvgTemperature float64 `json:"avgTemperature"`
	MaxTemperature float64 `json:"maxTemperature"`

	TargetSpeed       int             `json:"targetSpeed"`
	CurrentSpeed      int             `json:"currentSpeed"`
	State             ControllerState `json:"state"`
	CooldownRemaining int             `json:"cooldownRemaining"`

	Ticks        uint64    `json:"ticks"`
	SpeedChanges uint64    `json:"speedChanges"`
	LastTick     time.Time `json:"lastTick"`
}

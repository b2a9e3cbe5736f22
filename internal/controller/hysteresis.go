package controller

// ControllerState is the hysteresis state of a FanController
type ControllerState int

const (
	// StateRegular means the fan follows the curve
	StateRegular ControllerState = iota
	// StateCooldown means the target speed has dropped, but the fan
	// keeps its current speed until the cooldown is over
	StateCooldown
)

func (s ControllerState) String() string {
	switch s {
	case StateRegular:
		return "regular"
	case StateCooldown:
		return "cooldown"
	}
	return "unknown"
}

func (s ControllerState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Hysteresis debounces speed reductions for a fixed number of ticks,
// while speed increases are always applied immediately.
type Hysteresis struct {
	cooldownCycles int

	state     ControllerState
	remaining int
}

func NewHysteresis(cooldownCycles int) *Hysteresis {
	return &Hysteresis{
		cooldownCycles: cooldownCycles,
		state:          StateRegular,
	}
}

func (h *Hysteresis) State() ControllerState {
	return h.state
}

// Remaining returns the number of cooldown ticks left, 0 outside of cooldown
func (h *Hysteresis) Remaining() int {
	return h.remaining
}

func (h *Hysteresis) Reset() {
	h.state = StateRegular
	h.remaining = 0
}

// Next advances the state machine by one tick.
// It returns the speed to command and whether it has to be written at all.
func (h *Hysteresis) Next(target int, current int) (speed int, apply bool) {
	switch {
	case target > current:
		// ramping up always wins, even during cooldown
		h.Reset()
		return target, true
	case h.state == StateCooldown && h.remaining == 0:
		h.Reset()
		return target, true
	case h.state == StateCooldown:
		h.remaining--
		return current, false
	case target == current:
		return current, false
	case h.cooldownCycles == 0:
		return target, true
	default:
		// this tick already counts as the first cooldown tick
		h.state = StateCooldown
		h.remaining = h.cooldownCycles - 1
		return current, false
	}
}

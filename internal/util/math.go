package util

import (
	"golang.org/x/exp/constraints"
)

// ApplyExponentialFilter is a single-pole exponential moving average.
// A factor of 1 passes the raw value through unchanged,
// a factor of 0 keeps the previous value forever.
// factor is expected to be within [0..1], it is not clamped here.
func ApplyExponentialFilter(raw float64, prevSmoothed float64, factor float64) float64 {
	return raw*factor + prevSmoothed*(1-factor)
}

// Coerce returns a value that is at least min and at most max
func Coerce[T constraints.Ordered](value T, min T, max T) T {
	if value > max {
		return max
	}
	if value < min {
		return min
	}
	return value
}

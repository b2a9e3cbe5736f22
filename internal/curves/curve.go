package curves

import (
	"sort"

	"github.com/markusressel/argonfan/internal/configuration"
)

type FanCurvePoint struct {
	// Temp is the threshold at which Speed takes effect
	Temp  float64 `json:"temp"`
	Speed int     `json:"speed"`
}

// FanCurve is a step function from temperature to fan speed.
// Points are expected to be strictly increasing in both Temp and Speed,
// which is verified once when the configuration is loaded.
type FanCurve struct {
	points []FanCurvePoint
}

func NewFanCurve(points []FanCurvePoint) FanCurve {
	p := make([]FanCurvePoint, len(points))
	copy(p, points)
	return FanCurve{points: p}
}

func NewFanCurveFromConfig(config []configuration.FanCurvePointConfig) FanCurve {
	points := make([]FanCurvePoint, 0, len(config))
	for _, c := range config {
		points = append(points, FanCurvePoint{Temp: c.Temp, Speed: c.Speed})
	}
	return FanCurve{points: points}
}

// Evaluate returns the speed of the highest threshold not exceeding temp,
// or 0 if temp is below the lowest threshold.
func (c FanCurve) Evaluate(temp float64) int {
	// index of the first point that is strictly above temp
	idx := sort.Search(len(c.points), func(i int) bool {
		return c.points[i].Temp > temp
	})
	if idx == 0 {
		return 0
	}
	return c.points[idx-1].Speed
}

func (c FanCurve) Points() []FanCurvePoint {
	result := make([]FanCurvePoint, len(c.points))
	copy(result, c.points)
	return result
}

func (c FanCurve) IsEmpty() bool {
	return len(c.points) == 0
}

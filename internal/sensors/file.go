package sensors

import (
	"github.com/markusressel/argonfan/internal/util"
)

// FileSensor reads a temperature in °C from an arbitrary file
type FileSensor struct {
	Path string `json:"path"`
}

func (sensor FileSensor) GetId() string {
	return "file:" + sensor.Path
}

func (sensor FileSensor) GetValue() (float64, error) {
	filePath, err := util.ExpandPath(sensor.Path)
	if err != nil {
		return 0, err
	}
	return util.ReadFloatFromFile(filePath)
}

package bus

import (
	"fmt"

	"github.com/markusressel/argonfan/internal/configuration"
)

// Bus writes commands to the fan controller of the case
type Bus interface {
	GetId() string

	// WriteByteData writes a single data byte to the given command register
	WriteByteData(register byte, value byte) error

	Close() error
}

func NewBus(config configuration.BusConfig) (Bus, error) {
	if config.I2C != nil {
		b, err := OpenI2CBus(config.I2C.Bus, config.I2C.Address)
		if err != nil {
			return nil, err
		}
		return b, nil
	}

	if config.File != nil {
		return &FileBus{
			Path: config.File.Path,
		}, nil
	}

	return nil, fmt.Errorf("no matching bus type for bus configuration")
}

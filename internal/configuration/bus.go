package configuration

const (
	DefaultI2CBus     = 1
	DefaultI2CAddress = 0x1a
)

type BusConfig struct {
	I2C  *I2CBusConfig  `json:"i2c,omitempty"`
	File *FileBusConfig `json:"file,omitempty"`
}

type I2CBusConfig struct {
	// Bus is the number N of the /dev/i2c-N device
	Bus int `json:"bus"`
	// Address is the 7-bit address of the fan controller
	Address int `json:"address"`
}

// FileBusConfig writes fan commands to a file instead of a device
type FileBusConfig struct {
	Path string `json:"path"`
}

func (c BusConfig) isEmpty() bool {
	return c.I2C == nil && c.File == nil
}

func defaultBusConfig() BusConfig {
	return BusConfig{
		I2C: &I2CBusConfig{
			Bus:     DefaultI2CBus,
			Address: DefaultI2CAddress,
		},
	}
}

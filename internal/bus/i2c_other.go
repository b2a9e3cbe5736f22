//go:build !linux

package bus

import "errors"

var ErrI2CNotSupported = errors.New("i2c is only supported on linux")

type I2CBus struct{}

func OpenI2CBus(bus int, address int) (*I2CBus, error) {
	return nil, ErrI2CNotSupported
}

func (b *I2CBus) GetId() string {
	return "i2c"
}

func (b *I2CBus) WriteByteData(register byte, value byte) error {
	return ErrI2CNotSupported
}

func (b *I2CBus) Close() error {
	return nil
}

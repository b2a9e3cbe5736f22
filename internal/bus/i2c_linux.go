//go:build linux

package bus

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"
)

const (
	// ioctl request to select the slave address, see linux/i2c-dev.h
	i2cSlave = 0x0703

	// time the controller needs after the slave address has been set
	addressSettleDelay = 100 * time.Millisecond
)

type I2CBus struct {
	bus     int
	address int
	fd      int
}

// OpenI2CBus opens /dev/i2c-<bus> and binds it to the device at the given address
func OpenI2CBus(bus int, address int) (*I2CBus, error) {
	path := fmt.Sprintf("/dev/i2c-%d", bus)
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	if err := unix.IoctlSetInt(fd, i2cSlave, address); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("setting i2c address 0x%02x on %s: %w", address, path, err)
	}
	time.Sleep(addressSettleDelay)

	return &I2CBus{
		bus:     bus,
		address: address,
		fd:      fd,
	}, nil
}

func (b *I2CBus) GetId() string {
	return fmt.Sprintf("i2c-%d@0x%02x", b.bus, b.address)
}

func (b *I2CBus) WriteByteData(register byte, value byte) error {
	n, err := unix.Write(b.fd, []byte{register, value})
	if err != nil {
		return err
	}
	if n != 2 {
		return fmt.Errorf("short i2c write: %d of 2 bytes", n)
	}
	return nil
}

func (b *I2CBus) Close() error {
	return unix.Close(b.fd)
}

package cases

import "github.com/markusressel/argonfan/internal/util"

// FanRegister is the dedicated fan command register of the Argon ONE V3
const FanRegister byte = 0x80

// ArgonV2Case addresses the speed itself: the speed value is written
// as the command byte, followed by an empty data byte.
type ArgonV2Case struct{}

func (c ArgonV2Case) GetId() string {
	return CaseV2
}

func (c ArgonV2Case) FanCommand(speed int) (register byte, payload byte) {
	return speedByte(speed), 0
}

// ArgonV3Case has a fixed fan register which receives the speed as data.
type ArgonV3Case struct{}

func (c ArgonV3Case) GetId() string {
	return CaseV3
}

func (c ArgonV3Case) FanCommand(speed int) (register byte, payload byte) {
	return FanRegister, speedByte(speed)
}

// speeds outside [0..100] are clamped instead of wrapping around
func speedByte(speed int) byte {
	return byte(util.Coerce(speed, 0, 100))
}

package cases

import (
	"fmt"

	"github.com/markusressel/argonfan/internal/util"
)

const (
	CaseV2 = "v2"
	CaseV3 = "v3"
)

// Case translates a fan speed into the I2C command understood by
// the fan controller of a specific case revision.
type Case interface {
	GetId() string

	// FanCommand returns the (command register, data byte) pair that
	// sets the fan to the given speed in percent [0..100]
	FanCommand(speed int) (register byte, payload byte)
}

var caseMap = map[string]Case{
	CaseV2: &ArgonV2Case{},
	CaseV3: &ArgonV3Case{},
}

func NewCase(id string) (Case, error) {
	c, ok := caseMap[id]
	if !ok {
		return nil, fmt.Errorf("unknown case: %s", id)
	}
	return c, nil
}

// Ids returns the ids of all supported cases in alphabetical order
func Ids() []string {
	return util.SortedKeys(caseMap)
}

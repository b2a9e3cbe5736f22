package bus

import (
	"fmt"

	"github.com/markusressel/argonfan/internal/util"
)

// FileBus writes every command as "<register> <value>" to a file,
// which allows running the controller on a machine without the case.
type FileBus struct {
	Path string
}

func (b *FileBus) GetId() string {
	return "file:" + b.Path
}

func (b *FileBus) WriteByteData(register byte, value byte) error {
	filePath, err := util.ExpandPath(b.Path)
	if err != nil {
		return err
	}
	return util.WriteStringToFileAtomic(fmt.Sprintf("%d %d\n", register, value), filePath)
}

func (b *FileBus) Close() error {
	return nil
}

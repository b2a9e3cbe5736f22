package ui

import (
	"io"
	"os"

	"github.com/pterm/pterm"
	"gopkg.in/natefinch/lumberjack.v2"
)

type LogFileOptions struct {
	Path string
	// MaxSize in megabytes before the file is rotated
	MaxSize    int
	MaxBackups int
	// MaxAge in days
	MaxAge int
}

// EnableLogFile mirrors all terminal output into a size-rotated log file.
// The returned closer must be called on exit to flush the current file.
func EnableLogFile(options LogFileOptions) io.Closer {
	logger := &lumberjack.Logger{
		Filename:   options.Path,
		MaxSize:    options.MaxSize,
		MaxBackups: options.MaxBackups,
		MaxAge:     options.MaxAge,
	}

	// escape sequences are unreadable in a log file
	pterm.DisableColor()
	pterm.SetDefaultOutput(io.MultiWriter(os.Stdout, logger))

	return logger
}

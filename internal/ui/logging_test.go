package ui

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
)

func ExamplePrintfln() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "This is a test %d"
	a := 5
	Printfln(msg, a)
	// Output:
	// This is a test 5
}

func ExampleDebug() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()
	SetDebugEnabled(true)

	msg := "This is a test: %d"
	a := 5
	Debug(msg, a)
	// Output:
	// DEBUG: This is a test: 5
}

func ExampleInfo() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "Setting fan speed: %d%%"
	a := 37
	Info(msg, a)
	// Output:
	// INFO: Setting fan speed: 37%
}

func ExampleWarning() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "This is a test: %d"
	a := 5
	Warning(msg, a)
	// Output:
	// WARNING: This is a test: 5
}

func ExampleError() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()

	msg := "This is a test: %v"
	a := os.ErrClosed
	Error(msg, a)
	// Output:
	// ERROR: This is a test: file already closed
}

func TestEnableLogFile(t *testing.T) {
	// GIVEN
	path := filepath.Join(t.TempDir(), "argonfan.log")
	pterm.DisableStyling()
	defer pterm.SetDefaultOutput(os.Stdout)

	// WHEN
	closer := EnableLogFile(LogFileOptions{Path: path, MaxSize: 1})
	Info("Fan controller shutting down...")
	err := closer.Close()

	// THEN
	assert.NoError(t, err)
	data, err := os.ReadFile(path)
	assert.NoError(t, err)
	assert.Contains(t, string(data), "Fan controller shutting down...")
}

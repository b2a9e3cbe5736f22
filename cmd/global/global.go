package global

import (
	"github.com/markusressel/argonfan/internal/configuration"
	"github.com/markusressel/argonfan/internal/ui"
	"github.com/pterm/pterm"
)

var (
	CfgFile string
	NoColor bool
	NoStyle bool
	Verbose bool
)

// LoadConfig reads, decodes and validates the configuration file
func LoadConfig() error {
	configPath, err := configuration.ReadConfigFile()
	if err != nil {
		return err
	}
	ui.Info("Using configuration file at: %s", configPath)

	err = configuration.DecodeConfig()
	if err != nil {
		return err
	}
	return configuration.Validate()
}

// MustLoadConfig is LoadConfig, exiting the process on error
func MustLoadConfig() {
	if err := LoadConfig(); err != nil {
		ui.FatalWithoutStacktrace("Config Validation Error: %v", err)
	}
}

// LoadConfigSilently is LoadConfig for commands printing a raw value.
// Terminal output stays disabled only if the configuration is valid,
// so errors are still visible.
func LoadConfigSilently() error {
	pterm.DisableOutput()
	err := LoadConfig()
	if err != nil {
		pterm.EnableOutput()
		return err
	}
	return nil
}

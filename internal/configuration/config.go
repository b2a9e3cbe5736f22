package configuration

import (
	"fmt"
	"os"
	"time"

	"github.com/markusressel/argonfan/internal/persistence"
	"github.com/markusressel/argonfan/internal/ui"
	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type Configuration struct {
	// Case selects the fan command layout of the case revision, one of: v2 | v3
	Case string `json:"case"`

	// PollInterval is the time between two control loop ticks
	PollInterval time.Duration `json:"pollInterval"`
	// CooldownCycles is the number of ticks a lower target speed has to persist
	// before the fan is actually slowed down
	CooldownCycles int `json:"cooldownCycles"`
	// FilterFactor weights new temperature readings against the smoothed value [0..1]
	FilterFactor float64 `json:"filterFactor"`
	// FanCurve points in strictly ascending order
	FanCurve []FanCurvePointConfig `json:"fanCurve"`

	Sensor SensorConfig `json:"sensor"`
	Bus    BusConfig    `json:"bus"`

	DbPath string `json:"dbPath"`
	// JournalSize is the number of speed changes kept in the database, 0 keeps all of them
	JournalSize int `json:"journalSize"`

	// TemperatureWindowSize is the number of raw samples kept for the status avg/max values
	TemperatureWindowSize int `json:"temperatureWindowSize"`

	Statistics StatisticsConfig `json:"statistics"`
	Api        ApiConfig        `json:"api"`
	LogFile    LogFileConfig    `json:"logFile"`
}

type FanCurvePointConfig struct {
	// Temp where the speed setting triggers
	Temp float64 `json:"temp"`
	// Speed in percent the fan is set to once Temp is reached
	Speed int `json:"speed"`
}

type StatisticsConfig struct {
	Enabled bool `json:"enabled"`
	Port    int  `json:"port"`
}

type ApiConfig struct {
	Enabled bool   `json:"enabled"`
	Host    string `json:"host"`
	Port    int    `json:"port"`
}

type LogFileConfig struct {
	Path       string `json:"path"`
	MaxSize    int    `json:"maxSize"`
	MaxBackups int    `json:"maxBackups"`
	MaxAge     int    `json:"maxAge"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("argonfan")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/argonfan/")
	}

	viper.SetEnvPrefix("argonfan")
	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("case", "v3")
	viper.SetDefault("pollInterval", 5*time.Second)
	viper.SetDefault("cooldownCycles", 0)
	viper.SetDefault("filterFactor", 1.0)
	viper.SetDefault("fanCurve", []FanCurvePointConfig{})

	viper.SetDefault("dbPath", "/etc/argonfan/argonfan.db")
	viper.SetDefault("journalSize", persistence.DefaultJournalSize)
	viper.SetDefault("temperatureWindowSize", 10)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)

	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 9001)

	viper.SetDefault("logFile.maxSize", 10)
	viper.SetDefault("logFile.maxBackups", 3)
	viper.SetDefault("logFile.maxAge", 28)
}

// DetectAndReadConfigFile reads the config file and returns its path
func DetectAndReadConfigFile() string {
	configPath, err := ReadConfigFile()
	if err != nil {
		// config file is required, so we fail here
		ui.FatalWithoutStacktrace("%v", err)
	}
	return configPath
}

// ReadConfigFile reads the config file and returns its path
func ReadConfigFile() (string, error) {
	if err := viper.ReadInConfig(); err != nil {
		return "", fmt.Errorf("error reading config file, %w", err)
	}
	// this is only populated _after_ ReadInConfig()
	return viper.ConfigFileUsed(), nil
}

func LoadConfig() {
	err := DecodeConfig()
	if err != nil {
		ui.FatalWithoutStacktrace("%v", err)
	}
}

// DecodeConfig decodes the config file into CurrentConfig
func DecodeConfig() error {
	err := viper.Unmarshal(&CurrentConfig, viper.DecodeHook(decodeHook()))
	if err != nil {
		return fmt.Errorf("unable to decode into struct, %w", err)
	}
	if CurrentConfig.Sensor.isEmpty() {
		CurrentConfig.Sensor = defaultSensorConfig()
	}
	if CurrentConfig.Bus.isEmpty() {
		CurrentConfig.Bus = defaultBusConfig()
	}
	return nil
}

func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		hexStringToIntHookFunc(),
	)
}

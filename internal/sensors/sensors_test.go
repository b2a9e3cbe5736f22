package sensors

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/markusressel/argonfan/internal/configuration"
	psutil "github.com/shirou/gopsutil/v4/sensors"
	"github.com/stretchr/testify/assert"
)

func writeFile(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "temp")
	err := os.WriteFile(path, []byte(content), 0644)
	assert.NoError(t, err)
	return path
}

func TestThermalSensor_GetValue(t *testing.T) {
	// GIVEN
	path := writeFile(t, "48312\n")
	sensor, err := NewSensor(configuration.SensorConfig{
		Thermal: &configuration.ThermalSensorConfig{Path: path},
	})
	assert.NoError(t, err)

	// WHEN
	result, err := sensor.GetValue()

	// THEN
	assert.NoError(t, err)
	assert.InDelta(t, 48.312, result, 0.0001)
}

func TestThermalSensor_DefaultPath(t *testing.T) {
	// WHEN
	sensor, err := NewSensor(configuration.SensorConfig{
		Thermal: &configuration.ThermalSensorConfig{},
	})

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, "thermal:/sys/class/thermal/thermal_zone0/temp", sensor.GetId())
}

func TestThermalSensor_MissingFile(t *testing.T) {
	// GIVEN
	sensor := ThermalSensor{Path: filepath.Join(t.TempDir(), "missing")}

	// WHEN
	_, err := sensor.GetValue()

	// THEN
	assert.Error(t, err)
}

func TestFileSensor_GetValue(t *testing.T) {
	// GIVEN
	path := writeFile(t, "61.5")
	sensor, err := NewSensor(configuration.SensorConfig{
		File: &configuration.FileSensorConfig{Path: path},
	})
	assert.NoError(t, err)

	// WHEN
	result, err := sensor.GetValue()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 61.5, result)
}

func TestFileSensor_InvalidContent(t *testing.T) {
	// GIVEN
	sensor := FileSensor{Path: writeFile(t, "hot")}

	// WHEN
	_, err := sensor.GetValue()

	// THEN
	assert.Error(t, err)
}

func mockTemperatures(t *testing.T, temperatures []psutil.TemperatureStat, err error) {
	original := readTemperatures
	readTemperatures = func() ([]psutil.TemperatureStat, error) {
		return temperatures, err
	}
	t.Cleanup(func() {
		readTemperatures = original
	})
}

func TestPsutilSensor_GetValue(t *testing.T) {
	// GIVEN
	mockTemperatures(t, []psutil.TemperatureStat{
		{SensorKey: "rp1_adc", Temperature: 38.1},
		{SensorKey: "cpu_thermal", Temperature: 52.3},
	}, nil)
	sensor, err := NewSensor(configuration.SensorConfig{
		Psutil: &configuration.PsutilSensorConfig{Key: "cpu_thermal"},
	})
	assert.NoError(t, err)

	// WHEN
	result, err := sensor.GetValue()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 52.3, result)
}

func TestPsutilSensor_PartialResultWithWarnings(t *testing.T) {
	// GIVEN
	mockTemperatures(t, []psutil.TemperatureStat{
		{SensorKey: "cpu_thermal", Temperature: 47},
	}, errors.New("unable to read some sensors"))
	sensor := PsutilSensor{Key: "cpu_thermal"}

	// WHEN
	result, err := sensor.GetValue()

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 47.0, result)
}

func TestPsutilSensor_KeyNotFound(t *testing.T) {
	// GIVEN
	mockTemperatures(t, []psutil.TemperatureStat{
		{SensorKey: "rp1_adc", Temperature: 38.1},
	}, nil)
	sensor := PsutilSensor{Key: "cpu_thermal"}

	// WHEN
	_, err := sensor.GetValue()

	// THEN
	assert.EqualError(t, err, "no temperature sensor with key 'cpu_thermal' found, options: rp1_adc")
}

func TestPsutilSensor_Error(t *testing.T) {
	// GIVEN
	mockTemperatures(t, nil, errors.New("not supported"))
	sensor := PsutilSensor{Key: "cpu_thermal"}

	// WHEN
	_, err := sensor.GetValue()

	// THEN
	assert.EqualError(t, err, "not supported")
}

func TestNewSensor_MissingSubConfig(t *testing.T) {
	// WHEN
	sensor, err := NewSensor(configuration.SensorConfig{})

	// THEN
	assert.Nil(t, sensor)
	assert.Error(t, err)
}

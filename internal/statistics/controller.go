package statistics

import (
	"github.com/markusressel/argonfan/internal/controller"
	"github.com/prometheus/client_golang/prometheus"
)

const controllerSubsystem = "controller"

// StatusProvider is implemented by *controller.FanController
type StatusProvider interface {
	GetStatus() controller.Status
}

type ControllerCollector struct {
	provider StatusProvider

	rawTemperature      *prometheus.Desc
	smoothedTemperature *prometheus.Desc
	avgTemperature      *prometheus.Desc
	maxTemperature      *prometheus.Desc
	targetSpeed         *prometheus.Desc
	currentSpeed        *prometheus.Desc
	cooldown            *prometheus.Desc
	cooldownRemaining   *prometheus.Desc
	ticks               *prometheus.Desc
	speedChanges        *prometheus.Desc
}

func NewControllerCollector(provider StatusProvider) *ControllerCollector {
	labels := []string{"case", "sensor"}
	return &ControllerCollector{
		provider: provider,
		rawTemperature: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "temperature_raw"),
			"Last temperature read from the sensor in °C",
			labels, nil,
		),
		smoothedTemperature: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "temperature_smoothed"),
			"Filtered temperature used to evaluate the fan curve in °C",
			labels, nil,
		),
		avgTemperature: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "temperature_avg"),
			"Average of the recent raw temperature samples in °C",
			labels, nil,
		),
		maxTemperature: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "temperature_max"),
			"Maximum of the recent raw temperature samples in °C",
			labels, nil,
		),
		targetSpeed: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "target_speed"),
			"Fan speed in percent requested by the fan curve",
			labels, nil,
		),
		currentSpeed: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "speed"),
			"Fan speed in percent that was last written to the fan",
			labels, nil,
		),
		cooldown: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "cooldown"),
			"1 if the controller is delaying a speed decrease, 0 otherwise",
			labels, nil,
		),
		cooldownRemaining: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "cooldown_remaining"),
			"Number of ticks left until a pending speed decrease is applied",
			labels, nil,
		),
		ticks: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "ticks_total"),
			"Number of completed controller ticks",
			labels, nil,
		),
		speedChanges: prometheus.NewDesc(prometheus.BuildFQName(namespace, controllerSubsystem, "speed_changes_total"),
			"Number of fan speed writes",
			labels, nil,
		),
	}
}

func (collector *ControllerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- collector.rawTemperature
	ch <- collector.smoothedTemperature
	ch <- collector.avgTemperature
	ch <- collector.maxTemperature
	ch <- collector.targetSpeed
	ch <- collector.currentSpeed
	ch <- collector.cooldown
	ch <- collector.cooldownRemaining
	ch <- collector.ticks
	ch <- collector.speedChanges
}

// Collect implements required collect function for all prometheus collectors
func (collector *ControllerCollector) Collect(ch chan<- prometheus.Metric) {
	status := collector.provider.GetStatus()
	caseId := status.Case
	sensorId := status.Sensor

	cooldown := 0.0
	if status.State == controller.StateCooldown {
		cooldown = 1
	}

	ch <- prometheus.MustNewConstMetric(collector.rawTemperature, prometheus.GaugeValue, status.RawTemperature, caseId, sensorId)
	ch <- prometheus.MustNewConstMetric(collector.smoothedTemperature, prometheus.GaugeValue, status.SmoothedTemperature, caseId, sensorId)
	ch <- prometheus.MustNewConstMetric(collector.avgTemperature, prometheus.GaugeValue, status.AvgTemperature, caseId, sensorId)
	ch <- prometheus.MustNewConstMetric(collector.maxTemperature, prometheus.GaugeValue, status.MaxTemperature, caseId, sensorId)
	ch <- prometheus.MustNewConstMetric(collector.targetSpeed, prometheus.GaugeValue, float64(status.TargetSpeed), caseId, sensorId)
	ch <- prometheus.MustNewConstMetric(collector.currentSpeed, prometheus.GaugeValue, float64(status.CurrentSpeed), caseId, sensorId)
	ch <- prometheus.MustNewConstMetric(collector.cooldown, prometheus.GaugeValue, cooldown, caseId, sensorId)
	ch <- prometheus.MustNewConstMetric(collector.cooldownRemaining, prometheus.GaugeValue, float64(status.CooldownRemaining), caseId, sensorId)
	ch <- prometheus.MustNewConstMetric(collector.ticks, prometheus.CounterValue, float64(status.Ticks), caseId, sensorId)
	ch <- prometheus.MustNewConstMetric(collector.speedChanges, prometheus.CounterValue, float64(status.SpeedChanges), caseId, sensorId)
}

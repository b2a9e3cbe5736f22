package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/markusressel/argonfan/internal/api"
	"github.com/markusressel/argonfan/internal/bus"
	"github.com/markusressel/argonfan/internal/cases"
	"github.com/markusressel/argonfan/internal/configuration"
	"github.com/markusressel/argonfan/internal/controller"
	"github.com/markusressel/argonfan/internal/curves"
	"github.com/markusressel/argonfan/internal/persistence"
	"github.com/markusressel/argonfan/internal/sensors"
	"github.com/markusressel/argonfan/internal/statistics"
	"github.com/markusressel/argonfan/internal/ui"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

func RunDaemon() {
	config := configuration.CurrentConfig

	var logFile io.Closer
	if len(config.LogFile.Path) > 0 {
		logFile = ui.EnableLogFile(ui.LogFileOptions{
			Path:       config.LogFile.Path,
			MaxSize:    config.LogFile.MaxSize,
			MaxBackups: config.LogFile.MaxBackups,
			MaxAge:     config.LogFile.MaxAge,
		})
	}

	err := runDaemon(config)
	if err != nil {
		ui.Error("%v", err)
	} else {
		ui.Info("Done.")
	}

	if logFile != nil {
		_ = logFile.Close()
	}
	if err != nil {
		os.Exit(1)
	}
}

func runDaemon(config configuration.Configuration) error {
	sensor, err := sensors.NewSensor(config.Sensor)
	if err != nil {
		return fmt.Errorf("unable to process sensor configuration: %w", err)
	}

	fanCase, err := cases.NewCase(config.Case)
	if err != nil {
		return err
	}

	b, err := bus.NewBus(config.Bus)
	if err != nil {
		return fmt.Errorf("unable to open bus: %w", err)
	}
	defer func() {
		if err := b.Close(); err != nil {
			ui.Warning("Error closing bus %s: %v", b.GetId(), err)
		}
	}()

	curve := curves.NewFanCurveFromConfig(config.FanCurve)
	fanController, err := controller.NewFanController(NewControllerConfig(config, curve), sensor, b, fanCase)
	if err != nil {
		return err
	}

	if len(config.DbPath) > 0 {
		pers := persistence.NewPersistence(config.DbPath, config.JournalSize)
		if err := pers.Init(); err != nil {
			ui.Warning("Unable to open database, speed changes will not be recorded: %v", err)
		} else {
			fanController.SetRecorder(pers)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var g run.Group
	{
		// === fan controller
		g.Add(func() error {
			err := fanController.Run(ctx)
			ui.Info("Fan controller stopped.")
			return err
		}, func(err error) {
			cancel()
		})
	}
	if config.Statistics.Enabled {
		// === Prometheus Exporter
		statistics.Register(statistics.NewControllerCollector(fanController))

		port := config.Statistics.Port
		if port <= 0 || port >= 65535 {
			port = 9000
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		server := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}

		g.Add(func() error {
			ui.Info("Starting statistics server on port %d...", port)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("cannot start prometheus metrics endpoint: %w", err)
			}
			return nil
		}, func(err error) {
			ui.Info("Stopping statistics server...")
			timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer timeoutCancel()
			if err := server.Shutdown(timeoutCtx); err != nil {
				ui.Warning("Error stopping statistics server: %v", err)
			}
		})
	}
	if config.Api.Enabled {
		// === REST api
		rest := api.CreateRestService(api.Backend{
			Status: fanController,
			Curve:  curve,
			Config: config,
		}, nil)
		addr := fmt.Sprintf("%s:%d", config.Api.Host, config.Api.Port)

		g.Add(func() error {
			ui.Info("Starting REST api on %s...", addr)
			if err := rest.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("cannot start REST api: %w", err)
			}
			return nil
		}, func(err error) {
			stopRestService(rest)
		})
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

		g.Add(func() error {
			select {
			case s := <-sig:
				ui.Info("Received %s signal, exiting...", s)
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	return g.Run()
}

// NewControllerConfig extracts the controller settings from the configuration
func NewControllerConfig(config configuration.Configuration, curve curves.FanCurve) controller.Config {
	return controller.Config{
		PollInterval:          config.PollInterval,
		CooldownCycles:        config.CooldownCycles,
		FilterFactor:          config.FilterFactor,
		Curve:                 curve,
		TemperatureWindowSize: config.TemperatureWindowSize,
	}
}

func stopRestService(rest *echo.Echo) {
	ui.Info("Stopping REST api...")
	timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer timeoutCancel()
	if err := rest.Shutdown(timeoutCtx); err != nil {
		ui.Warning("Error stopping REST api: %v", err)
	}
}

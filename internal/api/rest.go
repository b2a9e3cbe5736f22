package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/markusressel/argonfan/internal/configuration"
	"github.com/markusressel/argonfan/internal/controller"
	"github.com/markusressel/argonfan/internal/curves"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	indentationChar = "  "
)

type (
	Result struct {
		Name    string `json:"name"`
		Message string `json:"message"`
	}
)

// StatusProvider is implemented by *controller.FanController
type StatusProvider interface {
	GetStatus() controller.Status
}

// Backend holds everything the REST endpoints expose
type Backend struct {
	Status StatusProvider
	Curve  curves.FanCurve
	Config configuration.Configuration
}

// CreateRestService creates the REST webserver. Request metrics are
// registered with the given registerer, nil uses the default registry.
func CreateRestService(backend Backend, registerer prometheus.Registerer) *echo.Echo {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	echoRest := echo.New()
	echoRest.HideBanner = true
	echoRest.HidePort = true

	// Root level middleware
	echoRest.Pre(middleware.AddTrailingSlash())

	echoRest.Use(middleware.Secure())
	echoRest.Use(middleware.Recover())
	echoRest.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "argonfan",
		Subsystem:  "api",
		Registerer: registerer,
	}))

	echoRest.GET("/alive/", isAlive)

	registerStatusEndpoints(echoRest, backend)
	registerCurveEndpoints(echoRest, backend)
	registerConfigEndpoints(echoRest, backend)

	return echoRest
}

// returns an empty "ok" answer
func isAlive(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

// return the error message of an error
func returnError(c echo.Context, e error) (err error) {
	return c.JSONPretty(http.StatusInternalServerError, &Result{
		Name:    "Unknown Error",
		Message: e.Error(),
	}, indentationChar)
}

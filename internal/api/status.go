package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

func registerStatusEndpoints(rest *echo.Echo, backend Backend) {
	group := rest.Group("/status")

	group.GET("/", func(c echo.Context) error {
		return getStatus(c, backend)
	})
}

// returns the state of the fan controller after its last tick
func getStatus(c echo.Context, backend Backend) error {
	if backend.Status == nil {
		return returnError(c, errors.New("fan controller not running"))
	}
	data := backend.Status.GetStatus()
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

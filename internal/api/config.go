package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func registerConfigEndpoints(rest *echo.Echo, backend Backend) {
	rest.GET("/config/", func(c echo.Context) error {
		return c.JSONPretty(http.StatusOK, backend.Config, indentationChar)
	})
}

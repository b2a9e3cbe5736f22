package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

const queryParamTemp = "temp"

type curveEvaluation struct {
	Temp  float64 `json:"temp"`
	Speed int     `json:"speed"`
}

func registerCurveEndpoints(rest *echo.Echo, backend Backend) {
	group := rest.Group("/curve")

	group.GET("/", func(c echo.Context) error {
		return getCurve(c, backend)
	})
	group.GET("/evaluate/", func(c echo.Context) error {
		return evaluateCurve(c, backend)
	})
}

func getCurve(c echo.Context, backend Backend) error {
	data := backend.Curve.Points()
	return c.JSONPretty(http.StatusOK, data, indentationChar)
}

// returns the fan speed the curve maps the "temp" query parameter to
func evaluateCurve(c echo.Context, backend Backend) error {
	value := c.QueryParam(queryParamTemp)
	temp, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return c.JSONPretty(http.StatusBadRequest, &Result{
			Name:    "Bad Request",
			Message: "Invalid temperature '" + value + "'",
		}, indentationChar)
	}

	return c.JSONPretty(http.StatusOK, curveEvaluation{
		Temp:  temp,
		Speed: backend.Curve.Evaluate(temp),
	}, indentationChar)
}

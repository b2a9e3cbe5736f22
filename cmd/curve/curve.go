package curve

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/guptarohit/asciigraph"
	"github.com/markusressel/argonfan/cmd/global"
	"github.com/markusressel/argonfan/internal/configuration"
	"github.com/markusressel/argonfan/internal/curves"
	"github.com/markusressel/argonfan/internal/ui"
	"github.com/mgutz/ansi"
	"github.com/spf13/cobra"
	"github.com/tomlazar/table"
)

// temperature range shown around the curve thresholds in the graph
const graphMargin = 10

var Command = &cobra.Command{
	Use:              "curve",
	Short:            "Print the configured fan curve to console",
	Long:             ``,
	TraverseChildren: true,
	Args:             cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := global.LoadConfig(); err != nil {
			return err
		}

		curve := curves.NewFanCurveFromConfig(configuration.CurrentConfig.FanCurve)
		if curve.IsEmpty() {
			ui.Warning("The fan curve is empty, the fan will always be turned off.")
			return nil
		}

		tableString, err := renderTable(curve, !global.NoColor)
		if err != nil {
			return err
		}
		ui.Printfln(tableString)
		ui.Printfln(renderGraph(curve))
		return nil
	},
}

func renderTable(curve curves.FanCurve, color bool) (string, error) {
	var rows [][]string
	for _, point := range curve.Points() {
		rows = append(rows, []string{
			fmt.Sprintf("%.1f", point.Temp),
			strconv.Itoa(point.Speed),
		})
	}

	tab := table.Table{
		Headers: []string{"Temperature (°C)", "Speed (%)"},
		Rows:    rows,
	}
	var buf bytes.Buffer
	err := tab.WriteTable(&buf, &table.Config{
		ShowIndex:       false,
		Color:           color,
		AlternateColors: true,
		TitleColorCode:  ansi.ColorCode("white+buf"),
		AltColorCodes: []string{
			ansi.ColorCode("white"),
			ansi.ColorCode("white:236"),
		},
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

// graphValues samples the curve in steps of 1°C around its thresholds
func graphValues(curve curves.FanCurve) (start int, values []float64) {
	points := curve.Points()
	start = int(math.Floor(points[0].Temp)) - graphMargin
	end := int(math.Ceil(points[len(points)-1].Temp)) + graphMargin

	for temp := start; temp <= end; temp++ {
		values = append(values, float64(curve.Evaluate(float64(temp))))
	}
	return start, values
}

func renderGraph(curve curves.FanCurve) string {
	start, values := graphValues(curve)
	caption := fmt.Sprintf("Speed (%%) / Temperature (°C), starting at %d°C", start)
	return asciigraph.Plot(values,
		asciigraph.Height(15),
		asciigraph.LowerBound(0),
		asciigraph.UpperBound(100),
		asciigraph.Caption(caption),
	)
}

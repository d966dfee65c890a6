package render

import (
	"fmt"
	"io"
	"time"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/tui/viewmodel"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// MinChartPoints is the fewest savings entries a chart can be drawn from.
const MinChartPoints = 2

// SavingsChartPNG draws the savings history as a PNG line chart: one line for
// each deposit and one for the running total.
func SavingsChartPNG(w io.Writer, series, cumulative []viewmodel.SeriesPoint) error {
	if len(series) < MinChartPoints {
		return common.Render("Not enough savings to chart",
			fmt.Errorf("need at least %d data points, got %d", MinChartPoints, len(series)))
	}

	graph := chart.Chart{
		Title:  "Savings progress",
		Width:  900,
		Height: 400,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			TickPosition: chart.TickPositionBetweenTicks,
			ValueFormatter: func(v interface{}) string {
				if t, ok := v.(float64); ok {
					return chart.TimeFromFloat64(t).Format("Jan 02")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			timeSeries("Deposits", series, chart.Style{
				StrokeColor: drawing.ColorFromHex("7c3aed"),
				StrokeWidth: 2,
			}),
		},
	}
	if len(cumulative) >= MinChartPoints {
		graph.Series = append(graph.Series, timeSeries("Total", cumulative, chart.Style{
			StrokeColor:     drawing.ColorFromHex("9ca3af"),
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5.0, 3.0},
		}))
	}
	graph.Elements = []chart.Renderable{
		chart.LegendLeft(&graph),
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return common.Render("Error drawing chart", fmt.Errorf("chart render failed: %w", err))
	}
	return nil
}

func timeSeries(name string, points []viewmodel.SeriesPoint, style chart.Style) chart.TimeSeries {
	xs := make([]time.Time, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.Date
		ys[i] = p.Value
	}
	return chart.TimeSeries{Name: name, Style: style, XValues: xs, YValues: ys}
}

// ChartFilename returns the default file name for a chart drawn on now's date.
func ChartFilename(now time.Time) string {
	return "savings_" + now.UTC().Format("2006-01-02") + ".png"
}

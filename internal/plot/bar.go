// Package plot renders corpus aggregates as charts.
package plot

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Bar is one labelled bar.
type Bar struct {
	Label string
	Value float64
}

// Chart sizes.
const (
	width    = 8 * vg.Inch
	height   = 5 * vg.Inch
	barWidth = 24
)

// ErrNoBars is returned when there is nothing to draw.
var ErrNoBars = errors.New("no bars to plot")

// YLabel is the y-axis label used for per-organization mention charts.
func YLabel(org string) string {
	return "Number of quotes about " + org
}

// SaveBarChart draws bars left to right and writes the chart to path. The
// image format follows the file extension (.png, .svg, .pdf, ...).
func SaveBarChart(path, title, xLabel, yLabel string, bars []Bar) error {
	if len(bars) == 0 {
		return ErrNoBars
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	values := make(plotter.Values, len(bars))
	labels := make([]string, len(bars))
	for i, b := range bars {
		values[i] = b.Value
		labels[i] = b.Label
	}

	chart, err := plotter.NewBarChart(values, vg.Points(barWidth))
	if err != nil {
		return fmt.Errorf("failed to build bar chart: %w", err)
	}
	chart.LineStyle.Width = vg.Length(0)

	p.Add(chart)
	p.NominalX(labels...)
	p.Y.Min = 0

	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("failed to save chart to %s: %w", path, err)
	}
	return nil
}

package reporting

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"dumpwatch/internal/analysis"
)

var (
	sourceBarColor      = color.RGBA{R: 0x27, G: 0xae, B: 0x60, A: 0xff}
	destinationBarColor = color.RGBA{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff}
)

// RenderCharts draws one bar chart of occurrences per endpoint for each
// table and returns the written paths, source chart first.
func RenderCharts(dir string, src, dst *analysis.FrequencyTable) ([]string, error) {
	srcPath := filepath.Join(dir, SourceChartName)
	if err := renderBarChart(srcPath, "Source endpoint occurrences", "Source endpoint", src, sourceBarColor); err != nil {
		return nil, fmt.Errorf("error rendering source chart: %w", err)
	}

	dstPath := filepath.Join(dir, DestinationChartName)
	if err := renderBarChart(dstPath, "Destination endpoint occurrences", "Destination endpoint", dst, destinationBarColor); err != nil {
		return nil, fmt.Errorf("error rendering destination chart: %w", err)
	}

	return []string{srcPath, dstPath}, nil
}

// renderBarChart saves a 12x8 inch PNG. An empty table still produces
// a chart with its title and axes.
func renderBarChart(path, title, xLabel string, table *analysis.FrequencyTable, c color.Color) error {
	p := plot.New()

	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Occurrences"

	if table != nil && table.Len() > 0 {
		entries := table.Entries()
		values := make(plotter.Values, len(entries))
		labels := make([]string, len(entries))
		for i, e := range entries {
			values[i] = float64(e.Count)
			labels[i] = e.Endpoint
		}

		bars, err := plotter.NewBarChart(values, vg.Points(20))
		if err != nil {
			return err
		}
		bars.Color = c
		bars.LineStyle.Width = vg.Length(0)

		p.Add(bars)
		p.NominalX(labels...)
		p.Y.Min = 0

		// Vertical labels, as endpoints are long
		p.X.Tick.Label.Rotation = math.Pi / 2
		p.X.Tick.Label.XAlign = draw.XRight
		p.X.Tick.Label.YAlign = draw.YCenter
	}

	return p.Save(12*vg.Inch, 8*vg.Inch, path)
}

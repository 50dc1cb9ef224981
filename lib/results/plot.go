package results

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/phil-mansfield/lpadiag/lib/beam"
)

// Palette is the sequence of series colors. Series i uses
// Palette[i % len(Palette)].
var Palette = []drawing.Color{
	drawing.ColorFromHex("0000ff"), // blue
	drawing.ColorFromHex("ff0000"), // red
	drawing.ColorFromHex("000000"), // black
	drawing.ColorFromHex("008000"), // green
	drawing.ColorFromHex("ff00ff"), // magenta
}

// PlotConfig describes how a spectrum figure is drawn.
type PlotConfig struct {
	Width, Height int
	Title string
	XLabel, YLabel string
	LineWidth float64
	// Legend holds one label per series, including the aggregate. A nil
	// Legend draws no legend.
	Legend []string
}

// DefaultPlotConfig returns the configuration used by the analysis modes.
func DefaultPlotConfig() PlotConfig {
	return PlotConfig{
		Width: 1024, Height: 640,
		XLabel: "Energy [MeV]", YLabel: "dQ/dE [C/MeV]",
		LineWidth: 1.5,
	}
}

// PlotSpectrum renders every series of s as a PNG.
func PlotSpectrum(w io.Writer, s *beam.Spectrum, cfg PlotConfig) error {
	if s.Len() == 0 {
		return fmt.Errorf("Cannot plot an empty spectrum.")
	} else if cfg.Legend != nil && len(cfg.Legend) != s.Len() {
		return fmt.Errorf("The spectrum has %d series, but %d legend " +
			"labels were given.", s.Len(), len(cfg.Legend))
	}

	series := make([]chart.Series, s.Len())
	for i := range series {
		col := Palette[i % len(Palette)]
		cs := chart.ContinuousSeries{
			XValues: s.Energy[i],
			YValues: s.DQdE[i],
			Style: chart.Style{ StrokeColor: col, StrokeWidth: cfg.LineWidth },
		}
		if cfg.Legend != nil { cs.Name = cfg.Legend[i] }
		series[i] = cs
	}

	ch := chart.Chart{
		Title: cfg.Title,
		Width: cfg.Width,
		Height: cfg.Height,
		XAxis: chart.XAxis{ Name: cfg.XLabel },
		YAxis: chart.YAxis{ Name: cfg.YLabel },
		Series: series,
	}
	if cfg.Legend != nil {
		ch.Elements = []chart.Renderable{ chart.Legend(&ch) }
	}

	if err := ch.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("Could not render the spectrum figure: %w", err)
	}
	return nil
}

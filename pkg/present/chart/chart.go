// Package chart renders the presentation contracts to SVG with go-chart.
package chart

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/goliatone/go-riskboard/pkg/present"
)

// ErrNoData is returned when a chart has nothing to plot.
var ErrNoData = errors.New("chart: no data to plot")

// ContentType is the media type of rendered charts.
const ContentType = "image/svg+xml"

// Options control chart geometry and colours.
type Options struct {
	Width   int
	Height  int
	Palette present.Palette
}

// Option customises rendering.
type Option func(*Options)

// WithSize overrides the canvas size in pixels.
func WithSize(width, height int) Option {
	return func(o *Options) {
		if width > 0 {
			o.Width = width
		}
		if height > 0 {
			o.Height = height
		}
	}
}

// WithPalette overrides the colours.
func WithPalette(palette present.Palette) Option {
	return func(o *Options) {
		if len(palette.Tokens) > 0 {
			o.Palette = palette
		}
	}
}

func resolve(width, height int, opts []Option) Options {
	o := Options{Width: width, Height: height, Palette: present.DefaultPalette()}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

func hexColor(hex string) drawing.Color {
	return drawing.ColorFromHex(strings.TrimPrefix(strings.TrimSpace(hex), "#"))
}

// Gauge draws the prediction as a two-slice pie: the risk share in the bucket
// colour and the remainder in the surface colour.
func Gauge(w io.Writer, gauge present.Gauge, opts ...Option) error {
	o := resolve(240, 240, opts)
	fill := gauge.Fill()

	values := make([]gochart.Value, 0, 2)
	if fill > 0 {
		values = append(values, gochart.Value{
			Value: fill,
			Label: strconv.Itoa(gauge.Percent) + "%",
			Style: gochart.Style{
				FillColor:   hexColor(gauge.Color),
				StrokeColor: hexColor(gauge.Color),
			},
		})
	}
	if fill < 1 {
		values = append(values, gochart.Value{
			Value: 1 - fill,
			Label: " ",
			Style: gochart.Style{
				FillColor:   hexColor(o.Palette.Color(present.TokenMean)).WithAlpha(64),
				StrokeColor: hexColor(o.Palette.Color(present.TokenMean)),
			},
		})
	}

	pie := gochart.PieChart{
		Title:  gauge.Bucket.Label(),
		Width:  o.Width,
		Height: o.Height,
		Values: values,
	}
	if err := pie.Render(gochart.SVG, w); err != nil {
		return fmt.Errorf("chart: render gauge: %w", err)
	}
	return nil
}

// Inputs draws applicant values next to population means, one pair of bars
// per field. Fields without a mean get a single bar.
func Inputs(w io.Writer, bars []present.Bar, opts ...Option) error {
	if len(bars) == 0 {
		return ErrNoData
	}
	o := resolve(960, 360, opts)
	applicant := hexColor(o.Palette.Color(present.TokenApplicant))
	mean := hexColor(o.Palette.Color(present.TokenMean))

	values := make([]gochart.Value, 0, len(bars)*2)
	top := 0.0
	for _, bar := range bars {
		values = append(values, gochart.Value{
			Value: bar.Applicant,
			Label: bar.Field,
			Style: gochart.Style{FillColor: applicant, StrokeColor: applicant},
		})
		top = maxFloat(top, bar.Applicant)
		if bar.Mean != nil {
			values = append(values, gochart.Value{
				Value: *bar.Mean,
				Label: "avg",
				Style: gochart.Style{FillColor: mean, StrokeColor: mean},
			})
			top = maxFloat(top, *bar.Mean)
		}
	}
	if top <= 0 {
		top = 1
	}

	bc := gochart.BarChart{
		Title:      "Applicant vs population mean",
		Width:      o.Width,
		Height:     o.Height,
		BarWidth:   barWidth(o.Width, len(values)),
		BarSpacing: 4,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: 0, Max: top * 1.1},
		},
		Bars: values,
	}
	if err := bc.Render(gochart.SVG, w); err != nil {
		return fmt.Errorf("chart: render inputs: %w", err)
	}
	return nil
}

// History draws the session's predictions in percent on a fixed 0-100 axis.
func History(w io.Writer, points []present.Point, opts ...Option) error {
	if len(points) == 0 {
		return ErrNoData
	}
	o := resolve(640, 280, opts)
	line := hexColor(o.Palette.Color(present.TokenLine))

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	xTicks := make([]gochart.Tick, len(points))
	for i, p := range points {
		xs[i] = float64(p.Index)
		ys[i] = float64(p.Percent)
		xTicks[i] = gochart.Tick{Value: xs[i], Label: strconv.Itoa(p.Index)}
	}
	// go-chart needs two x values; a single prediction is drawn as a flat
	// segment to the next slot.
	if len(xs) == 1 {
		xs = append(xs, xs[0]+1)
		ys = append(ys, ys[0])
	}
	xMax := xs[len(xs)-1]

	ch := gochart.Chart{
		Title:  "Prediction history",
		Width:  o.Width,
		Height: o.Height,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 16, Right: 12, Bottom: 16},
		},
		XAxis: gochart.XAxis{
			Name:  "Submission",
			Range: &gochart.ContinuousRange{Min: 1, Max: xMax},
			Ticks: xTicks,
		},
		YAxis: gochart.YAxis{
			Name:  "%",
			Range: &gochart.ContinuousRange{Min: 0, Max: 100},
			Ticks: []gochart.Tick{
				{Value: 0, Label: "0"},
				{Value: 25, Label: "25"},
				{Value: 50, Label: "50"},
				{Value: 75, Label: "75"},
				{Value: 100, Label: "100"},
			},
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    "Default probability",
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeColor: line,
					StrokeWidth: 2,
					DotColor:    line,
					DotWidth:    4,
				},
			},
		},
	}
	if err := ch.Render(gochart.SVG, w); err != nil {
		return fmt.Errorf("chart: render history: %w", err)
	}
	return nil
}

func barWidth(width, count int) int {
	if count == 0 {
		return 0
	}
	w := (width - 64) / (count * 2)
	if w < 4 {
		return 4
	}
	if w > 48 {
		return 48
	}
	return w
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

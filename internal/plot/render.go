package plot

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"time"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var (
	// ErrNoChart is returned when rendering a warning figure.
	ErrNoChart = errors.New("figure has no chart")

	skyBlue   = drawing.Color{R: 135, G: 206, B: 235, A: 255}
	gridColor = drawing.Color{R: 220, G: 220, B: 220, A: 255}
)

const (
	lineWidth, lineHeight = 1000, 400
	barHeight             = 500
	barWidth, barSpacing  = 40, 12
	minBarChartWidth      = 800
)

func gridStyle() chart.Style {
	return chart.Style{StrokeColor: gridColor, StrokeWidth: 1}
}

// RenderPNG draws the figure and returns the encoded PNG.
func RenderPNG(fig *Figure) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch fig.Kind {
	case KindLine:
		err = renderLine(fig, &buf)
	case KindScatter:
		err = renderScatter(fig, &buf)
	case KindHistogram, KindCounts, KindGroupedMean:
		err = renderBars(fig, &buf)
	default:
		return nil, ErrNoChart
	}
	if err != nil {
		return nil, fmt.Errorf("render %s chart: %w", fig.Kind, err)
	}
	return buf.Bytes(), nil
}

func renderLine(fig *Figure, buf *bytes.Buffer) error {
	if len(fig.Times) == 0 {
		return errors.New("no data points")
	}
	xs, ys := fig.Times, fig.Values
	// Pad to at least two X values for go-chart
	if len(xs) == 1 {
		xs = []time.Time{xs[0], xs[0].Add(24 * time.Hour)}
		ys = []float64{ys[0], ys[0]}
	}
	ch := chart.Chart{
		Title:      fig.Title,
		Width:      lineWidth,
		Height:     lineHeight,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:           fig.XLabel,
			ValueFormatter: chart.TimeDateValueFormatter,
			GridMajorStyle: gridStyle(),
		},
		YAxis: chart.YAxis{
			Name:           fig.YLabel,
			Range:          flatRange(ys),
			GridMajorStyle: gridStyle(),
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    fig.YLabel,
				XValues: xs,
				YValues: ys,
				Style:   chart.Style{StrokeColor: drawing.ColorRed, StrokeWidth: 2},
			},
		},
	}
	return ch.Render(chart.PNG, buf)
}

func renderScatter(fig *Figure, buf *bytes.Buffer) error {
	if len(fig.Points) == 0 {
		return errors.New("no data points")
	}
	xs := make([]float64, len(fig.Points))
	ys := make([]float64, len(fig.Points))
	for i, p := range fig.Points {
		xs[i], ys[i] = p.X, p.Y
	}
	ch := chart.Chart{
		Title:      fig.Title,
		Width:      800,
		Height:     500,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: fig.XLabel, Range: flatRange(xs), GridMajorStyle: gridStyle()},
		YAxis:      chart.YAxis{Name: fig.YLabel, Range: flatRange(ys), GridMajorStyle: gridStyle()},
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: xs,
				YValues: ys,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    4,
					DotColor:    drawing.ColorRed,
				},
			},
		},
	}
	return ch.Render(chart.PNG, buf)
}

func renderBars(fig *Figure, buf *bytes.Buffer) error {
	if len(fig.Bars) == 0 {
		return errors.New("no bars")
	}
	bc := barChart(fig)
	return bc.Render(chart.PNG, buf)
}

// barChart lays out a bar figure. Bars grow from zero in both directions,
// so the Y range always includes zero.
func barChart(fig *Figure) chart.BarChart {
	minV, maxV := 0.0, 0.0
	bars := make([]chart.Value, len(fig.Bars))
	for i, b := range fig.Bars {
		minV = math.Min(minV, b.Value)
		maxV = math.Max(maxV, b.Value)
		bars[i] = chart.Value{
			Label: b.Label,
			Value: b.Value,
			Style: chart.Style{FillColor: skyBlue, StrokeColor: drawing.ColorBlack, StrokeWidth: 1},
		}
	}
	if maxV == minV {
		maxV = minV + 1
	}
	pad := (maxV - minV) * 0.05
	yMin, yMax := minV, maxV
	if minV < 0 {
		yMin = minV - pad
	}
	if maxV > 0 {
		yMax = maxV + pad
	}
	width := len(bars)*(barWidth+barSpacing) + 200
	if width < minBarChartWidth {
		width = minBarChartWidth
	}
	bc := chart.BarChart{
		Title:        fig.Title,
		Width:        width,
		Height:       barHeight,
		BarWidth:     barWidth,
		BarSpacing:   barSpacing,
		UseBaseValue: true,
		BaseValue:    0,
		Background:   chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 45}},
		YAxis: chart.YAxis{
			Name:           fig.YLabel,
			Range:          &chart.ContinuousRange{Min: yMin, Max: yMax},
			GridMajorStyle: gridStyle(),
		},
		Bars: bars,
	}
	bc.Elements = []chart.Renderable{xAxisName(fig.XLabel, barHeight)}
	return bc
}

// xAxisName draws the X axis title centered under a bar chart, which
// go-chart's BarChart has no field for.
func xAxisName(name string, height int) chart.Renderable {
	return func(r chart.Renderer, canvasBox chart.Box, defaults chart.Style) {
		if name == "" {
			return
		}
		r.SetFont(defaults.Font)
		r.SetFontColor(drawing.ColorBlack)
		r.SetFontSize(chart.DefaultFontSize)
		tb := r.MeasureText(name)
		x := canvasBox.Left + (canvasBox.Width()-tb.Width())/2
		r.Text(name, x, height-15)
	}
}

// flatRange widens a constant series so the axis range is never empty.
func flatRange(vals []float64) chart.Range {
	if len(vals) == 0 {
		return nil
	}
	lo, hi := vals[0], vals[0]
	for _, v := range vals[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if lo != hi {
		return nil
	}
	return &chart.ContinuousRange{Min: lo - 0.5, Max: hi + 0.5}
}

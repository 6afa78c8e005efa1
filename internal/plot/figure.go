package plot

import (
	"fmt"
	"math"
	"strings"
	"time"

	"DataLens/internal/calculator"
	"DataLens/internal/model"
)

// Bar is one labelled bar.
type Bar struct {
	Label string
	Value float64
}

// Point is one scatter sample.
type Point struct {
	X, Y float64
}

// Figure is a fully computed chart, independent of how it is drawn.
type Figure struct {
	Kind    Kind
	Title   string
	XLabel  string
	YLabel  string
	Warning string

	Bars   []Bar
	Bins   []calculator.Bin
	Points []Point
	Times  []time.Time
	Values []float64
}

// WarningText is shown when the selected pair cannot be charted.
func WarningText(x, y string) string {
	return fmt.Sprintf("Cannot build a chart for the selected columns: %s, %s", x, y)
}

func warning(msg string) *Figure {
	return &Figure{Kind: KindWarning, Warning: msg}
}

// BuildQuote builds the closing-price line chart of a quote series.
func BuildQuote(series *model.QuoteSeries) *Figure {
	fig := &Figure{
		Kind:   KindLine,
		Title:  fmt.Sprintf("%s close price", strings.ToUpper(series.Symbol)),
		XLabel: "Date",
		YLabel: "Close price",
		Times:  make([]time.Time, len(series.Bars)),
		Values: make([]float64, len(series.Bars)),
	}
	for i, b := range series.Bars {
		fig.Times[i] = b.Time
		fig.Values[i] = b.Close
	}
	return fig
}

// BuildTable dispatches on the selected columns and computes the chart data.
// y is model.NoColumn for "no second variable".
func BuildTable(t *model.Table, x, y string) (*Figure, error) {
	xc, ok := t.Column(x)
	if !ok {
		return nil, fmt.Errorf("unknown column %q", x)
	}
	var yc *model.Column
	if y != model.NoColumn {
		if yc, ok = t.Column(y); !ok {
			return nil, fmt.Errorf("unknown column %q", y)
		}
	}

	kind := Dispatch(xc.IsNumeric(), yc != nil, yc != nil && yc.IsNumeric())
	switch kind {
	case KindHistogram:
		return histogram(xc)
	case KindCounts:
		return counts(xc), nil
	case KindScatter:
		return scatter(xc, yc), nil
	case KindGroupedMean:
		return groupedMean(xc, yc)
	default:
		return warning(WarningText(x, y)), nil
	}
}

func histogram(xc *model.Column) (*Figure, error) {
	bins, err := calculator.Histogram(xc.Values, HistogramBins)
	if err != nil {
		return nil, fmt.Errorf("histogram of %s: %w", xc.Name, err)
	}
	fig := &Figure{
		Kind:   KindHistogram,
		Title:  "Histogram of " + xc.Name,
		XLabel: xc.Name,
		YLabel: "Count",
		Bins:   bins,
		Bars:   make([]Bar, len(bins)),
	}
	for i, b := range bins {
		fig.Bars[i] = Bar{Label: fmt.Sprintf("%.4g", (b.Low+b.High)/2), Value: float64(b.Count)}
	}
	return fig, nil
}

func counts(xc *model.Column) *Figure {
	groups := calculator.ValueCounts(xc.Cells)
	if len(groups) == 0 {
		return warning(fmt.Sprintf("Column %s has no values to plot", xc.Name))
	}
	return &Figure{
		Kind:   KindCounts,
		Title:  "Bar chart of " + xc.Name,
		XLabel: xc.Name,
		YLabel: "Count",
		Bars:   toBars(groups),
	}
}

func scatter(xc, yc *model.Column) *Figure {
	fig := &Figure{
		Kind:   KindScatter,
		Title:  fmt.Sprintf("Scatter plot of %s vs %s", xc.Name, yc.Name),
		XLabel: xc.Name,
		YLabel: yc.Name,
	}
	for i := range xc.Values {
		if math.IsNaN(xc.Values[i]) || math.IsNaN(yc.Values[i]) {
			continue
		}
		fig.Points = append(fig.Points, Point{X: xc.Values[i], Y: yc.Values[i]})
	}
	if len(fig.Points) == 0 {
		return warning(fmt.Sprintf("Columns %s and %s have no complete pairs to plot", xc.Name, yc.Name))
	}
	return fig
}

func groupedMean(xc, yc *model.Column) (*Figure, error) {
	groups, err := calculator.GroupedMean(xc.Cells, yc.Values)
	if err != nil {
		return nil, fmt.Errorf("mean %s by %s: %w", yc.Name, xc.Name, err)
	}
	if len(groups) == 0 {
		return warning(fmt.Sprintf("No %s values to average by %s", yc.Name, xc.Name)), nil
	}
	return &Figure{
		Kind:   KindGroupedMean,
		Title:  fmt.Sprintf("Mean %s by %s", yc.Name, xc.Name),
		XLabel: xc.Name,
		YLabel: "Mean " + yc.Name,
		Bars:   toBars(groups),
	}, nil
}

func toBars(groups []calculator.Group) []Bar {
	bars := make([]Bar, len(groups))
	for i, g := range groups {
		bars[i] = Bar{Label: g.Key, Value: g.Value}
	}
	return bars
}

package plot

// Kind identifies which chart a render pass draws.
type Kind string

const (
	KindLine        Kind = "line"
	KindHistogram   Kind = "histogram"
	KindCounts      Kind = "counts"
	KindScatter     Kind = "scatter"
	KindGroupedMean Kind = "grouped_mean"
	KindWarning     Kind = "warning"
)

// HistogramBins is the fixed bin count for single numeric columns.
const HistogramBins = 10

// Dispatch picks the table chart from the selected columns' types alone.
//
//	X numeric,     no Y       -> histogram
//	X categorical, no Y       -> bar of value counts
//	X numeric,     Y numeric  -> scatter
//	X categorical, Y numeric  -> bar of mean(Y) by X
//	any X,   Y categorical    -> warning
func Dispatch(xNumeric, yPresent, yNumeric bool) Kind {
	switch {
	case !yPresent && xNumeric:
		return KindHistogram
	case !yPresent:
		return KindCounts
	case xNumeric && yNumeric:
		return KindScatter
	case yNumeric:
		return KindGroupedMean
	default:
		return KindWarning
	}
}

// HasChart reports whether the kind produces an image.
func (k Kind) HasChart() bool {
	return k != KindWarning && k != ""
}

package calculator

import "errors"

// Bin is one histogram bucket covering [Low, High). The last bin is closed.
type Bin struct {
	Low   float64
	High  float64
	Count int
}

// Histogram splits the finite values into equal-width bins spanning
// [min, max]. A constant column is widened to [v-0.5, v+0.5]; an empty one
// yields zero-count bins over [0, 1].
func Histogram(values []float64, bins int) ([]Bin, error) {
	if bins <= 0 {
		return nil, errors.New("bins must be positive")
	}
	high, low, err := Range(values)
	if err != nil {
		low, high = 0, 1
	} else if high == low {
		low, high = low-0.5, high+0.5
	}
	width := (high - low) / float64(bins)
	out := make([]Bin, bins)
	for i := range out {
		out[i].Low = low + float64(i)*width
		out[i].High = low + float64(i+1)*width
	}
	out[bins-1].High = high

	for _, v := range values {
		if !finite(v) {
			continue
		}
		i := int((v - low) / width)
		if i >= bins {
			i = bins - 1
		}
		if i < 0 {
			i = 0
		}
		out[i].Count++
	}
	return out, nil
}

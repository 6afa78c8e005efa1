package calculator

import "errors"

// ErrShortSeries is returned when a series is too short for the indicator.
var ErrShortSeries = errors.New("not enough data")

// RSI is the relative strength index of closes with Wilder smoothing. The
// first period changes seed plain averages; later changes are smoothed in.
func RSI(closes []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(closes) < period+1 {
		return 0, ErrShortSeries
	}

	n := float64(period)
	var up, down float64
	for i := 1; i < len(closes); i++ {
		g, l := move(closes[i-1], closes[i])
		if i <= period {
			up += g / n
			down += l / n
			continue
		}
		up = wilder(up, g, n)
		down = wilder(down, l, n)
	}
	if down == 0 {
		return 100, nil
	}
	return 100 * up / (up + down), nil
}

// move splits the step from prev to next into a gain and a loss, one of
// which is zero.
func move(prev, next float64) (gain, loss float64) {
	d := next - prev
	if d > 0 {
		return d, 0
	}
	return 0, -d
}

func wilder(avg, v, n float64) float64 {
	return avg + (v-avg)/n
}

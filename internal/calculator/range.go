package calculator

import (
	"errors"
	"math"
)

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Range scans values and returns the high and low, skipping NaN and ±Inf.
func Range(values []float64) (high, low float64, err error) {
	high = math.Inf(-1)
	low = math.Inf(1)
	n := 0
	for _, v := range values {
		if !finite(v) {
			continue
		}
		if v > high {
			high = v
		}
		if v < low {
			low = v
		}
		n++
	}
	if n == 0 {
		return 0, 0, errors.New("no values provided")
	}
	return high, low, nil
}

// Position returns where current sits within [low, high] (0.0~1.0).
func Position(current, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	pos := (current - low) / (high - low)
	if pos < 0 {
		pos = 0
	}
	if pos > 1 {
		pos = 1
	}
	return pos, nil
}

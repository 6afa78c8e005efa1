package calculator

import (
	"errors"
	"math"
)

// SMA computes the simple moving average of the trailing window values.
func SMA(values []float64, window int) (float64, error) {
	if window <= 0 {
		return 0, errors.New("window must be positive")
	}
	if len(values) < window {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for _, v := range values[len(values)-window:] {
		if math.IsNaN(v) {
			return 0, errors.New("SMA window contains missing values")
		}
		sum += v
	}
	return sum / float64(window), nil
}

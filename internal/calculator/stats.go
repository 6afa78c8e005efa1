package calculator

import (
	"errors"
	"math"
	"sort"

	"DataLens/internal/model"
)

// Mean returns the arithmetic mean of the non-NaN values.
func Mean(values []float64) (float64, error) {
	sum := 0.0
	n := 0
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		sum += v
		n++
	}
	if n == 0 {
		return 0, errors.New("not enough data for mean calculation")
	}
	return sum / float64(n), nil
}

// Group is one key of a grouped aggregation.
type Group struct {
	Key   string
	Value float64
	Count int
}

// GroupedMean averages values per key. Rows with a missing key or a NaN
// value are skipped, so groups without any usable row never appear.
// Groups are sorted ascending by key.
func GroupedMean(keys []string, values []float64) ([]Group, error) {
	if len(keys) != len(values) {
		return nil, errors.New("keys and values differ in length")
	}
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for i, k := range keys {
		if model.IsMissing(k) || math.IsNaN(values[i]) {
			continue
		}
		sums[k] += values[i]
		counts[k]++
	}
	groups := make([]Group, 0, len(counts))
	for k, n := range counts {
		groups = append(groups, Group{Key: k, Value: sums[k] / float64(n), Count: n})
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
	return groups, nil
}

// ValueCounts counts occurrences of each non-missing cell, most frequent
// first; ties keep first-appearance order.
func ValueCounts(cells []string) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, c := range cells {
		if model.IsMissing(c) {
			continue
		}
		i, ok := index[c]
		if !ok {
			i = len(groups)
			index[c] = i
			groups = append(groups, Group{Key: c})
		}
		groups[i].Count++
	}
	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Count > groups[j].Count })
	for i := range groups {
		groups[i].Value = float64(groups[i].Count)
	}
	return groups
}

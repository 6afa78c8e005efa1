package model

import (
	"errors"
	"time"
)

// OHLCV represents a single daily bar.
type OHLCV struct {
	Time     time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	AdjClose float64
	Volume   float64
}

// Period is a lookback window understood by the quote providers.
type Period string

const (
	Period1Month  Period = "1mo"
	Period3Months Period = "3mo"
	Period6Months Period = "6mo"
	Period1Year   Period = "1y"
)

// Periods lists the selectable lookback windows in menu order.
var Periods = []Period{Period1Month, Period3Months, Period6Months, Period1Year}

// ErrUnknownPeriod is returned by ParsePeriod for values outside Periods.
var ErrUnknownPeriod = errors.New("unknown period")

// ParsePeriod validates s against the selectable periods.
func ParsePeriod(s string) (Period, error) {
	for _, p := range Periods {
		if string(p) == s {
			return p, nil
		}
	}
	return "", ErrUnknownPeriod
}

// Days returns the calendar-day span of the period.
func (p Period) Days() int {
	switch p {
	case Period3Months:
		return 91
	case Period6Months:
		return 182
	case Period1Year:
		return 365
	default:
		return 30
	}
}

// QuoteSeries holds the bars fetched for one symbol over one period.
type QuoteSeries struct {
	Symbol    string
	Period    Period
	Bars      []OHLCV
	FetchedAt time.Time
}

// Head returns up to n bars from the start of the series.
func (q *QuoteSeries) Head(n int) []OHLCV {
	if n > len(q.Bars) {
		n = len(q.Bars)
	}
	return q.Bars[:n]
}

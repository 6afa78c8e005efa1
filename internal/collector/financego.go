package collector

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/shopspring/decimal"

	"DataLens/internal/model"
)

// FinanceGoFetcher implements Fetcher on top of the piquette/finance-go chart client.
type FinanceGoFetcher struct {
	// Now is the end of the lookback window; time.Now when nil.
	Now func() time.Time
}

// NewFinanceGoFetcher creates a finance-go backed fetcher.
func NewFinanceGoFetcher() *FinanceGoFetcher {
	return &FinanceGoFetcher{Now: time.Now}
}

func (f *FinanceGoFetcher) Name() string { return "finance-go" }

func toDatetime(t time.Time) *datetime.Datetime {
	return &datetime.Datetime{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// periodWindow converts a period into the [start, end] dates finance-go expects.
func periodWindow(now time.Time, period model.Period) (start, end *datetime.Datetime) {
	var from time.Time
	switch period {
	case model.Period3Months:
		from = now.AddDate(0, -3, 0)
	case model.Period6Months:
		from = now.AddDate(0, -6, 0)
	case model.Period1Year:
		from = now.AddDate(-1, 0, 0)
	default:
		from = now.AddDate(0, -1, 0)
	}
	return toDatetime(from), toDatetime(now)
}

func decimalFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}

// FetchHistory runs the finance-go chart iterator over the period window.
// The client has no context support; ctx is only checked between bars.
func (f *FinanceGoFetcher) FetchHistory(ctx context.Context, symbol string, period model.Period) ([]model.OHLCV, error) {
	now := time.Now()
	if f.Now != nil {
		now = f.Now()
	}
	start, end := periodWindow(now, period)
	iter := chart.Get(&chart.Params{
		Symbol:   symbol,
		Start:    start,
		End:      end,
		Interval: datetime.OneDay,
	})

	var bars []model.OHLCV
	for iter.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b := iter.Bar()
		bars = append(bars, model.OHLCV{
			Time:     time.Unix(int64(b.Timestamp), 0).UTC(),
			Open:     decimalFloat(b.Open),
			High:     decimalFloat(b.High),
			Low:      decimalFloat(b.Low),
			Close:    decimalFloat(b.Close),
			AdjClose: decimalFloat(b.AdjClose),
			Volume:   float64(b.Volume),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("finance-go chart: %w", err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("finance-go: no data returned")
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

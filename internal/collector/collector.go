package collector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"DataLens/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
// Every call is recorded so tests can assert on the requested symbol and period.
type MockFetcher struct {
	Price float64
	Bars  []model.OHLCV
	Err   error

	mu    sync.Mutex
	Calls []MockCall
}

// MockCall is one recorded FetchHistory invocation.
type MockCall struct {
	Symbol string
	Period model.Period
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchHistory(_ context.Context, symbol string, period model.Period) ([]model.OHLCV, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, MockCall{Symbol: symbol, Period: period})
	m.mu.Unlock()
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Bars != nil {
		return m.Bars, nil
	}
	return generateMockBars(m.Price, period.Days()*5/7), nil
}

func generateMockBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:     time.Now().AddDate(0, 0, -(count - i)),
			Open:     p * 0.999,
			High:     p * 1.005,
			Low:      p * 0.995,
			Close:    p,
			AdjClose: p,
			Volume:   1000000,
		}
	}
	return bars
}

// Collector binds a Fetcher to the one symbol the dashboard shows.
type Collector struct {
	Fetcher Fetcher
	Symbol  string
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, symbol string) *Collector {
	return &Collector{Fetcher: fetcher, Symbol: symbol}
}

// Collect fetches the symbol's daily history for the period.
func (c *Collector) Collect(ctx context.Context, period model.Period) (*model.QuoteSeries, error) {
	bars, err := c.Fetcher.FetchHistory(ctx, c.Symbol, period)
	if err != nil {
		return nil, fmt.Errorf("fetch %s history (%s): %w", c.Symbol, period, err)
	}
	return &model.QuoteSeries{
		Symbol:    c.Symbol,
		Period:    period,
		Bars:      bars,
		FetchedAt: time.Now(),
	}, nil
}

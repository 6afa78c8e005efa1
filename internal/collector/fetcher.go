package collector

import (
	"context"

	"DataLens/internal/model"
)

// Fetcher defines the interface for fetching daily quote history.
type Fetcher interface {
	FetchHistory(ctx context.Context, symbol string, period model.Period) ([]model.OHLCV, error)
	Name() string
}

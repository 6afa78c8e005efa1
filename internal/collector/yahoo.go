package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"time"

	"github.com/go-resty/resty/v2"

	"DataLens/internal/model"
)

// DefaultYahooBaseURL is the public Yahoo Finance host.
const DefaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooFetcher implements Fetcher using Yahoo Finance public chart API.
type YahooFetcher struct {
	Client    *resty.Client
	SymbolMap map[string]string // maps internal symbol to Yahoo ticker
}

// NewYahooFetcher creates a new Yahoo Finance fetcher with optional proxy support.
func NewYahooFetcher(baseURL, proxyURL string, timeout time.Duration) *YahooFetcher {
	if baseURL == "" {
		baseURL = DefaultYahooBaseURL
	}
	client := resty.New()
	client.SetBaseURL(baseURL)
	client.SetTimeout(timeout)
	client.SetHeader("User-Agent", "Mozilla/5.0")
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &YahooFetcher{
		Client: client,
		SymbolMap: map[string]string{
			"SPX500": "^GSPC",
			"SPX":    "^GSPC",
			"SP500":  "^GSPC",
		},
	}
}

func (f *YahooFetcher) Name() string { return "yahoo" }

func (f *YahooFetcher) yahooSymbol(symbol string) string {
	if mapped, ok := f.SymbolMap[symbol]; ok {
		return mapped
	}
	return symbol
}

// yahooChart is the response structure from Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open   []interface{} `json:"open"`
					High   []interface{} `json:"high"`
					Low    []interface{} `json:"low"`
					Close  []interface{} `json:"close"`
					Volume []interface{} `json:"volume"`
				} `json:"quote"`
				AdjClose []struct {
					AdjClose []interface{} `json:"adjclose"`
				} `json:"adjclose"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func at(vals []interface{}, i int) float64 {
	if i >= len(vals) {
		return 0
	}
	return toFloat(vals[i])
}

func (f *YahooFetcher) fetchChart(ctx context.Context, symbol, interval, rng string) ([]model.OHLCV, error) {
	resp, err := f.Client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"interval": interval,
			"range":    rng,
		}).
		Get("/v8/finance/chart/" + url.PathEscape(f.yahooSymbol(symbol)))
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	body := resp.Body()
	if resp.IsError() {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode(), string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Timestamp) == 0 ||
		len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo: no data returned")
	}

	result := chart.Chart.Result[0]
	quote := result.Indicators.Quote[0]
	var adj []interface{}
	if len(result.Indicators.AdjClose) > 0 {
		adj = result.Indicators.AdjClose[0].AdjClose
	}
	bars := make([]model.OHLCV, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		// unfinished or holiday bars come back with a null close
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}
		o := at(quote.Open, i)
		h := at(quote.High, i)
		l := at(quote.Low, i)
		c := at(quote.Close, i)
		ac := at(adj, i)
		if ac == 0 {
			ac = c
		}
		bars = append(bars, model.OHLCV{
			Time:     time.Unix(ts, 0).UTC(),
			Open:     o,
			High:     h,
			Low:      l,
			Close:    c,
			AdjClose: ac,
			Volume:   at(quote.Volume, i),
		})
	}

	if len(bars) == 0 {
		return nil, fmt.Errorf("yahoo: no bars with a close price")
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

// FetchHistory returns daily bars for the period, passed to Yahoo as the range.
func (f *YahooFetcher) FetchHistory(ctx context.Context, symbol string, period model.Period) ([]model.OHLCV, error) {
	return f.fetchChart(ctx, symbol, "1d", string(period))
}

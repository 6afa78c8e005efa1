package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"DataLens/internal/model"
)

const yahooBody = `{"chart":{"result":[{"timestamp":[1700179200,1700006400,1700092800,1700265600],
"indicators":{"quote":[{"open":[3,1,2,4],"high":[3.5,1.5,2.5,4.5],"low":[2.5,0.5,1.5,3.5],"close":[3.2,1.2,null,4.2],"volume":[300,100,200,400]}],
"adjclose":[{"adjclose":[3.1,1.1,null,null]}]}}],"error":null}}`

func TestYahooFetcher_FetchHistory(t *testing.T) {
	var gotPath, gotRange, gotInterval string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotRange = r.URL.Query().Get("range")
		gotInterval = r.URL.Query().Get("interval")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(yahooBody))
	}))
	defer srv.Close()

	f := NewYahooFetcher(srv.URL, "", 5*time.Second)
	bars, err := f.FetchHistory(context.Background(), "AAPL", model.Period6Months)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if gotPath != "/v8/finance/chart/AAPL" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotRange != "6mo" || gotInterval != "1d" {
		t.Errorf("expected range=6mo interval=1d, got range=%q interval=%q", gotRange, gotInterval)
	}
	// the null-close bar of 2023-11-16 is dropped
	if len(bars) != 3 {
		t.Fatalf("expected 3 bars, got %d", len(bars))
	}
	for i, b := range bars {
		if b.Close == 0 {
			t.Errorf("bar %d has a zero close: %+v", i, b)
		}
		if b.Time.Equal(time.Unix(1700092800, 0)) {
			t.Errorf("null-close bar was kept: %+v", b)
		}
		if i > 0 && !bars[i-1].Time.Before(b.Time) {
			t.Errorf("bars not in ascending order at %d", i)
		}
	}
	if bars[0].Close != 1.2 || bars[0].AdjClose != 1.1 {
		t.Errorf("unexpected first bar %+v", bars[0])
	}
	// null adjclose falls back to close
	if last := bars[2]; last.Close != 4.2 || last.AdjClose != 4.2 {
		t.Errorf("expected adj close fallback, got %+v", last)
	}
}

func TestYahooFetcher_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	f := NewYahooFetcher(srv.URL, "", 5*time.Second)
	if _, err := f.FetchHistory(context.Background(), "AAPL", model.Period1Month); err == nil {
		t.Fatal("expected error for 429 response")
	}
}

func TestYahooFetcher_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
	}))
	defer srv.Close()

	f := NewYahooFetcher(srv.URL, "", 5*time.Second)
	if _, err := f.FetchHistory(context.Background(), "NOPE", model.Period1Month); err == nil {
		t.Fatal("expected api error")
	}
}

func TestYahooSymbolMapping(t *testing.T) {
	f := NewYahooFetcher("", "", time.Second)
	if got := f.yahooSymbol("SPX500"); got != "^GSPC" {
		t.Errorf("expected ^GSPC, got %q", got)
	}
	if got := f.yahooSymbol("AAPL"); got != "AAPL" {
		t.Errorf("expected passthrough, got %q", got)
	}
}

func TestYahooFetcher_AllCloseNull(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":[{"timestamp":[1700179200],
"indicators":{"quote":[{"open":[3],"high":[3.5],"low":[2.5],"close":[null],"volume":[300]}]}}],"error":null}}`))
	}))
	defer srv.Close()

	f := NewYahooFetcher(srv.URL, "", 5*time.Second)
	if _, err := f.FetchHistory(context.Background(), "AAPL", model.Period1Month); err == nil {
		t.Fatal("expected error when no bar has a close")
	}
}

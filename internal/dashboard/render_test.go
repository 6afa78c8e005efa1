package dashboard

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"DataLens/internal/collector"
	"DataLens/internal/dataset"
	"DataLens/internal/model"
	"DataLens/internal/plot"
	"DataLens/internal/store"
)

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

type fixture struct {
	renderer *Renderer
	fetcher  *collector.MockFetcher
	uploads  *store.MemoryStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "testdata/tips.csv")
	}))
	t.Cleanup(srv.Close)

	fetcher := &collector.MockFetcher{Price: 190}
	uploads := store.NewMemoryStore()
	return &fixture{
		renderer: &Renderer{
			Quotes:    collector.NewCollector(fetcher, "AAPL"),
			Tables:    dataset.NewLoader(srv.URL+"/tips.csv", "", 5*time.Second),
			Uploads:   uploads,
			QuoteFile: "apple.png",
		},
		fetcher: fetcher,
		uploads: uploads,
	}
}

func TestRender_QuotesEachPeriod(t *testing.T) {
	for _, period := range model.Periods {
		f := newFixture(t)
		page, err := f.renderer.Render(context.Background(), Inputs{Section: model.SectionQuotes, Period: period})
		if err != nil {
			t.Fatalf("%s: render: %v", period, err)
		}
		if len(f.fetcher.Calls) != 1 {
			t.Fatalf("%s: expected exactly one fetch, got %d", period, len(f.fetcher.Calls))
		}
		if c := f.fetcher.Calls[0]; c.Symbol != "AAPL" || c.Period != period {
			t.Errorf("%s: unexpected fetch %+v", period, c)
		}
		if len(page.Preview.Rows) != QuotePreviewRows {
			t.Errorf("%s: expected %d preview rows, got %d", period, QuotePreviewRows, len(page.Preview.Rows))
		}
		if page.Figure.Kind != plot.KindLine || page.Figure.YLabel != "Close price" {
			t.Errorf("%s: unexpected figure %+v", period, page.Figure)
		}
		if !bytes.HasPrefix(page.Chart, pngMagic) || page.Download != "apple.png" {
			t.Errorf("%s: expected apple.png download with PNG bytes", period)
		}
		if page.Summary == nil || page.Summary.High < page.Summary.Low {
			t.Fatalf("%s: bad summary %+v", period, page.Summary)
		}
		if !page.Summary.HasSMA || !page.Summary.HasRSI {
			t.Errorf("%s: expected SMA and RSI in summary", period)
		}
	}
}

func TestRender_QuotesPreviewOrder(t *testing.T) {
	f := newFixture(t)
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		f.fetcher.Bars = append(f.fetcher.Bars, model.OHLCV{
			Time: start.AddDate(0, 0, i), Open: 1, High: 2, Low: 0.5, Close: float64(10 + i), AdjClose: float64(10 + i), Volume: 100,
		})
	}
	page, err := f.renderer.Render(context.Background(), Inputs{Section: model.SectionQuotes})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if f.fetcher.Calls[0].Period != model.Period1Month {
		t.Errorf("expected default period 1mo, got %s", f.fetcher.Calls[0].Period)
	}
	if len(page.Preview.Rows) != 3 {
		t.Fatalf("short series should preview every bar, got %d", len(page.Preview.Rows))
	}
	if page.Preview.Rows[0][0] != "2024-01-02" || page.Preview.Rows[2][4] != "12.00" {
		t.Errorf("unexpected preview rows %v", page.Preview.Rows)
	}
	if page.Summary.Last != 12 || page.Summary.Position != 1 {
		t.Errorf("unexpected summary %+v", page.Summary)
	}
	if page.Summary.HasSMA || page.Summary.HasRSI {
		t.Error("three bars are too few for SMA 20 and RSI 14")
	}
}

func TestRender_QuotesFetchError(t *testing.T) {
	f := newFixture(t)
	f.fetcher.Err = errors.New("connection refused")
	_, err := f.renderer.Render(context.Background(), Inputs{Section: model.SectionQuotes, Period: model.Period1Year})
	if !errors.Is(err, ErrSource) {
		t.Fatalf("expected ErrSource, got %v", err)
	}
}

func TestRender_SampleDefaults(t *testing.T) {
	f := newFixture(t)
	page, err := f.renderer.Render(context.Background(), Inputs{Section: model.SectionSample})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(page.Preview.Rows) != TablePreviewRows || len(page.Preview.Columns) != 7 {
		t.Errorf("unexpected preview %dx%d", len(page.Preview.Rows), len(page.Preview.Columns))
	}
	if page.YChoices[0] != model.NoColumn || len(page.YChoices) != 8 {
		t.Errorf("unexpected Y choices %v", page.YChoices)
	}
	// default X is the first column, which is numeric
	if page.Inputs.X != "total_bill" || page.Inputs.Y != model.NoColumn {
		t.Errorf("unexpected selection %s / %s", page.Inputs.X, page.Inputs.Y)
	}
	if page.Figure.Kind != plot.KindHistogram || page.Download != TableDownloadName {
		t.Errorf("expected downloadable histogram, got %s %q", page.Figure.Kind, page.Download)
	}
	if len(f.fetcher.Calls) != 0 {
		t.Error("table mode must not fetch quotes")
	}
}

func TestRender_SampleDispatch(t *testing.T) {
	tests := []struct {
		x, y string
		kind plot.Kind
	}{
		{"day", "", plot.KindCounts},
		{"total_bill", "tip", plot.KindScatter},
		{"day", "total_bill", plot.KindGroupedMean},
		{"sex", "smoker", plot.KindWarning},
		{"tip", "day", plot.KindWarning},
	}
	for _, tt := range tests {
		f := newFixture(t)
		page, err := f.renderer.Render(context.Background(), Inputs{Section: model.SectionSample, X: tt.x, Y: tt.y})
		if err != nil {
			t.Fatalf("%s/%s: render: %v", tt.x, tt.y, err)
		}
		if page.Figure.Kind != tt.kind {
			t.Errorf("%s/%s: expected %s, got %s", tt.x, tt.y, tt.kind, page.Figure.Kind)
		}
		if tt.kind == plot.KindWarning {
			want := plot.WarningText(tt.x, tt.y)
			if page.Warning != want {
				t.Errorf("%s/%s: expected warning %q, got %q", tt.x, tt.y, want, page.Warning)
			}
			if page.HasChart() || page.Download != "" {
				t.Errorf("%s/%s: warning must not offer a download", tt.x, tt.y)
			}
			continue
		}
		if !page.HasChart() || page.Warning != "" {
			t.Errorf("%s/%s: expected a chart without warning", tt.x, tt.y)
		}
	}
}

func TestRender_InvalidSelectionFallsBack(t *testing.T) {
	f := newFixture(t)
	page, err := f.renderer.Render(context.Background(), Inputs{Section: model.SectionSample, X: "missing", Y: "also_missing"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if page.Inputs.X != "total_bill" || page.Inputs.Y != model.NoColumn {
		t.Errorf("expected fallback selection, got %s / %s", page.Inputs.X, page.Inputs.Y)
	}
}

func TestRender_SampleUnavailable(t *testing.T) {
	f := newFixture(t)
	f.renderer.Tables = dataset.NewLoader("http://127.0.0.1:1/tips.csv", "", time.Second)
	_, err := f.renderer.Render(context.Background(), Inputs{Section: model.SectionSample})
	if !errors.Is(err, ErrSource) {
		t.Fatalf("expected ErrSource, got %v", err)
	}
}

func TestRender_UploadHaltsWithoutFile(t *testing.T) {
	f := newFixture(t)
	for _, id := range []string{"", "unknown"} {
		page, err := f.renderer.Render(context.Background(), Inputs{Section: model.SectionUpload, UploadID: id, X: "a"})
		if err != nil {
			t.Fatalf("%q: render: %v", id, err)
		}
		if !page.Halted || page.Info != UploadPrompt {
			t.Errorf("%q: expected halted page with prompt, got %+v", id, page)
		}
		if page.Figure != nil || page.HasChart() || len(page.Preview.Rows) != 0 {
			t.Errorf("%q: halted page must not show data", id)
		}
	}
}

func TestRender_UploadedFile(t *testing.T) {
	f := newFixture(t)
	data, err := os.ReadFile("testdata/tips.csv")
	if err != nil {
		t.Fatal(err)
	}
	u, err := f.uploads.Put(context.Background(), "tips.csv", data)
	if err != nil {
		t.Fatal(err)
	}
	page, err := f.renderer.Render(context.Background(), Inputs{Section: model.SectionUpload, UploadID: u.ID, X: "sex"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if page.UploadName != "tips.csv" || page.Halted {
		t.Errorf("unexpected page %+v", page)
	}
	if page.Figure.Kind != plot.KindCounts || len(page.Figure.Bars) != 2 {
		t.Fatalf("expected two count bars, got %+v", page.Figure)
	}
	if b := page.Figure.Bars[0]; b.Label != "Male" || b.Value != 8 {
		t.Errorf("expected Male=8 first, got %+v", b)
	}
}

func TestRender_UploadParseError(t *testing.T) {
	f := newFixture(t)
	u, _ := f.uploads.Put(context.Background(), "notes.pdf", []byte("%PDF-1.4"))
	_, err := f.renderer.Render(context.Background(), Inputs{Section: model.SectionUpload, UploadID: u.ID})
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestRender_UploadedColumnNamedNone(t *testing.T) {
	f := newFixture(t)
	u, err := f.uploads.Put(context.Background(), "none.csv", []byte("g,none\na,1\na,3\nb,2\n"))
	if err != nil {
		t.Fatal(err)
	}
	in := Inputs{Section: model.SectionUpload, UploadID: u.ID, X: "g", Y: "none"}
	page, err := f.renderer.Render(context.Background(), in)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if page.Inputs.Y != "none" || page.Figure.Kind != plot.KindGroupedMean {
		t.Errorf("expected grouped mean of column none, got y=%q %s", page.Inputs.Y, page.Figure.Kind)
	}
	want := []string{model.NoColumn, "g", "none"}
	if len(page.YChoices) != len(want) {
		t.Fatalf("unexpected Y choices %q", page.YChoices)
	}
	for i := range want {
		if page.YChoices[i] != want[i] {
			t.Errorf("Y choice %d: expected %q, got %q", i, want[i], page.YChoices[i])
		}
	}

	in.Y = model.NoColumn
	page, err = f.renderer.Render(context.Background(), in)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if page.Figure.Kind != plot.KindCounts {
		t.Errorf("empty y should count g, got %s", page.Figure.Kind)
	}
}

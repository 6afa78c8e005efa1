package dashboard

import (
	"context"
	"errors"
	"fmt"

	"DataLens/internal/calculator"
	"DataLens/internal/collector"
	"DataLens/internal/model"
	"DataLens/internal/plot"
	"DataLens/internal/store"
)

const (
	QuotePreviewRows = 10
	TablePreviewRows = 5

	SMAWindow = 20
	RSIPeriod = 14

	TableDownloadName = "graph.png"
	UploadPrompt      = "Please upload a CSV file."
)

var (
	// ErrSource wraps failures of the quote provider or the sample dataset host.
	ErrSource = errors.New("data source failed")
	// ErrParse wraps uploaded or downloaded content that is not a readable table.
	ErrParse = errors.New("dataset could not be parsed")
)

// TableLoader provides the tabular datasets.
type TableLoader interface {
	Sample(ctx context.Context) (*model.Table, error)
	FromBytes(name string, data []byte) (*model.Table, error)
}

// Inputs are every control value read in one render pass.
type Inputs struct {
	Section  model.Section
	Period   model.Period
	UploadID string
	X        string
	Y        string
}

// Preview is the table shown above the chart.
type Preview struct {
	Columns []string
	Rows    [][]string
}

// QuoteSummary describes the fetched window.
type QuoteSummary struct {
	Last     float64
	High     float64
	Low      float64
	Position float64

	// SMA and RSI are set only when the window holds enough bars.
	SMA    float64
	HasSMA bool
	RSI    float64
	HasRSI bool
}

// Page is the full outcome of a render pass.
type Page struct {
	Section model.Section
	Header  string
	Inputs  Inputs

	// Info is set, and Halted true, when upload mode has no file.
	Info    string
	Halted  bool
	Warning string

	Preview  Preview
	XChoices []string
	YChoices []string

	UploadName string
	Summary    *QuoteSummary

	Figure   *plot.Figure
	Chart    []byte
	Download string
}

// HasChart reports whether the pass produced a downloadable image.
func (p *Page) HasChart() bool { return len(p.Chart) > 0 }

// Renderer runs render passes against the configured sources.
type Renderer struct {
	Quotes    *collector.Collector
	Tables    TableLoader
	Uploads   store.Store
	QuoteFile string
}

// Render executes one pass. It never keeps state between calls; the upload
// cache is only read.
func (r *Renderer) Render(ctx context.Context, in Inputs) (*Page, error) {
	if in.Period == "" {
		in.Period = model.Period1Month
	}
	page := &Page{Section: in.Section, Inputs: in}
	if in.Section.IsTable() {
		return r.renderTable(ctx, page)
	}
	page.Section = model.SectionQuotes
	page.Inputs.Section = model.SectionQuotes
	return r.renderQuotes(ctx, page)
}

func (r *Renderer) renderQuotes(ctx context.Context, page *Page) (*Page, error) {
	series, err := r.Quotes.Collect(ctx, page.Inputs.Period)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSource, err)
	}
	if len(series.Bars) == 0 {
		return nil, fmt.Errorf("%w: no %s bars for %s", ErrSource, series.Symbol, series.Period)
	}
	page.Header = fmt.Sprintf("%s quotes", series.Symbol)
	page.Preview = quotePreview(series.Head(QuotePreviewRows))

	closes := make([]float64, len(series.Bars))
	for i, b := range series.Bars {
		closes[i] = b.Close
	}
	if high, low, err := calculator.Range(closes); err == nil {
		last := closes[len(closes)-1]
		pos, _ := calculator.Position(last, high, low)
		sum := &QuoteSummary{Last: last, High: high, Low: low, Position: pos}
		if v, err := calculator.SMA(closes, SMAWindow); err == nil {
			sum.SMA, sum.HasSMA = v, true
		}
		if v, err := calculator.RSI(closes, RSIPeriod); err == nil {
			sum.RSI, sum.HasRSI = v, true
		}
		page.Summary = sum
	}

	fig := plot.BuildQuote(series)
	png, err := plot.RenderPNG(fig)
	if err != nil {
		return nil, err
	}
	page.Figure = fig
	page.Chart = png
	page.Download = r.QuoteFile
	return page, nil
}

func (r *Renderer) renderTable(ctx context.Context, page *Page) (*Page, error) {
	page.Header = "Dataset analysis"
	in := page.Inputs

	var tbl *model.Table
	if in.Section == model.SectionSample {
		t, err := r.Tables.Sample(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSource, err)
		}
		tbl = t
	} else {
		upload, err := r.lookupUpload(ctx, in.UploadID)
		if err != nil {
			return nil, err
		}
		if upload == nil {
			page.Info = UploadPrompt
			page.Halted = true
			return page, nil
		}
		t, err := r.Tables.FromBytes(upload.Name, upload.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrParse, err)
		}
		tbl = t
		page.UploadName = upload.Name
	}

	page.Preview = Preview{Columns: tbl.Names(), Rows: tbl.Head(TablePreviewRows)}
	page.XChoices = tbl.Names()
	page.YChoices = append([]string{model.NoColumn}, tbl.Names()...)
	page.Inputs.X, page.Inputs.Y = selectColumns(tbl, in.X, in.Y)

	fig, err := plot.BuildTable(tbl, page.Inputs.X, page.Inputs.Y)
	if err != nil {
		return nil, err
	}
	page.Figure = fig
	if !fig.Kind.HasChart() {
		page.Warning = fig.Warning
		return page, nil
	}
	png, err := plot.RenderPNG(fig)
	if err != nil {
		return nil, err
	}
	page.Chart = png
	page.Download = TableDownloadName
	return page, nil
}

// lookupUpload returns nil without error when no usable file was supplied.
func (r *Renderer) lookupUpload(ctx context.Context, id string) (*store.Upload, error) {
	if id == "" || r.Uploads == nil {
		return nil, nil
	}
	u, err := r.Uploads.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load upload %s: %w", id, err)
	}
	return u, nil
}

// selectColumns keeps the choices valid members of the table: an unknown X
// becomes the first column and an unknown Y becomes model.NoColumn.
func selectColumns(tbl *model.Table, x, y string) (string, string) {
	if _, ok := tbl.Column(x); !ok {
		x = tbl.Columns[0].Name
	}
	if _, ok := tbl.Column(y); !ok {
		y = model.NoColumn
	}
	return x, y
}

func quotePreview(bars []model.OHLCV) Preview {
	p := Preview{Columns: []string{"Date", "Open", "High", "Low", "Close", "Adj Close", "Volume"}}
	for _, b := range bars {
		p.Rows = append(p.Rows, []string{
			b.Time.Format("2006-01-02"),
			fmt.Sprintf("%.2f", b.Open),
			fmt.Sprintf("%.2f", b.High),
			fmt.Sprintf("%.2f", b.Low),
			fmt.Sprintf("%.2f", b.Close),
			fmt.Sprintf("%.2f", b.AdjClose),
			fmt.Sprintf("%.0f", b.Volume),
		})
	}
	return p
}

package dataset

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/go-resty/resty/v2"

	"DataLens/internal/model"
)

// Loader fetches the sample dataset and parses uploaded bytes.
type Loader struct {
	SampleURL string
	Client    *resty.Client
}

// NewLoader creates a Loader with optional proxy support.
func NewLoader(sampleURL, proxyURL string, timeout time.Duration) *Loader {
	client := resty.New()
	client.SetTimeout(timeout)
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &Loader{SampleURL: sampleURL, Client: client}
}

// Sample downloads and parses the remote sample CSV.
func (l *Loader) Sample(ctx context.Context) (*model.Table, error) {
	resp, err := l.Client.R().SetContext(ctx).Get(l.SampleURL)
	if err != nil {
		return nil, fmt.Errorf("fetch sample dataset: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("fetch sample dataset: status %d", resp.StatusCode())
	}
	return ParseCSV(path.Base(l.SampleURL), bytes.NewReader(resp.Body()))
}

// FromBytes parses an uploaded file.
func (l *Loader) FromBytes(name string, data []byte) (*model.Table, error) {
	t, err := Parse(name, data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return t, nil
}

// Package http provides an HTTP implementation of apptdash.Fetcher for
// reading spreadsheets published to the web as CSV.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/apptdash"
)

const (
	// DefaultFetchTimeout bounds one request, including reading the body.
	DefaultFetchTimeout = 10 * time.Second

	// DefaultMaxBodySize caps how much of a published sheet is read.
	DefaultMaxBodySize int64 = 10 << 20
)

// acceptHeader prefers CSV but accepts whatever the publisher sends.
const acceptHeader = "text/csv, text/plain, */*"

// Ensure SheetFetcher implements apptdash.Fetcher at compile time.
var _ apptdash.Fetcher = (*SheetFetcher)(nil)

// SheetFetcher downloads published sheets with plain GET requests.
type SheetFetcher struct {
	client  *http.Client
	maxBody int64
}

// Option configures a SheetFetcher.
type Option func(*SheetFetcher)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *SheetFetcher) {
		f.client.Timeout = d
	}
}

// WithMaxBodySize sets how many bytes of a response body are accepted.
func WithMaxBodySize(n int64) Option {
	return func(f *SheetFetcher) {
		f.maxBody = n
	}
}

// NewFetcher returns a SheetFetcher with DefaultFetchTimeout and
// DefaultMaxBodySize unless overridden.
func NewFetcher(opts ...Option) *SheetFetcher {
	f := &SheetFetcher{
		client:  &http.Client{Timeout: DefaultFetchTimeout},
		maxBody: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads the sheet at url. Any 2xx status is a success; every other
// status is an error naming the code.
func (f *SheetFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", acceptHeader)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return "", err
	}
	if int64(len(body)) > f.maxBody {
		return "", fmt.Errorf("sheet at %s exceeds %d bytes", url, f.maxBody)
	}
	return string(body), nil
}

// Close is a no-op; idle connections belong to the client's transport.
func (f *SheetFetcher) Close() error {
	return nil
}

func isSuccess(code int) bool {
	return code >= 200 && code <= 299
}

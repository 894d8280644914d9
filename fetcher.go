package apptdash

import "context"

// Fetcher retrieves the raw text published at a URL.
type Fetcher interface {
	// Fetch issues a request for the URL and returns the response body.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (body string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

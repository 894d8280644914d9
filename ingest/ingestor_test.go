package ingest_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/apptdash"
	apptdashhttp "github.com/fwojciec/apptdash/http"
	"github.com/fwojciec/apptdash/ingest"
	"github.com/fwojciec/apptdash/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)

func newIngestor(fetcher apptdash.Fetcher) *ingest.Ingestor {
	in := ingest.NewIngestor(fetcher)
	in.Now = func() time.Time { return fixedNow }
	return in
}

func TestIngestor_Ingest(t *testing.T) {
	t.Parallel()

	t.Run("parses fetched payload into snapshot", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				return "Timestamp,Name,Date,Time,Service,Contact\n1,John,2024-01-01,10:00,Haircut,0800000000", nil
			},
		}

		snap, err := newIngestor(fetcher).Ingest(context.Background(), "https://example.com/pub?output=csv")

		require.NoError(t, err)
		assert.NotEmpty(t, snap.ID)
		assert.Equal(t, "https://example.com/pub?output=csv", snap.SourceURL)
		assert.Equal(t, fixedNow, snap.FetchedAt)
		assert.Len(t, snap.ContentHash, 16)
		require.Equal(t, 1, snap.Len())
		assert.Equal(t, "John", snap.Appointments[0].CustomerName)
		assert.Equal(t, apptdash.StatusConfirmed, snap.Appointments[0].Status)
	})

	t.Run("fetches with cache buster appended", func(t *testing.T) {
		t.Parallel()

		var fetched string
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (string, error) {
				fetched = url
				return "", nil
			},
		}

		_, err := newIngestor(fetcher).Ingest(context.Background(), "https://example.com/pub?output=csv")

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/pub?output=csv&t=1704103200000", fetched)
	})

	t.Run("header only yields empty snapshot", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return "Timestamp,Name,Date,Time,Service,Contact\r\n", nil
			},
		}

		snap, err := newIngestor(fetcher).Ingest(context.Background(), "https://example.com/sheet.csv")

		require.NoError(t, err)
		assert.Equal(t, 0, snap.Len())
		assert.NotNil(t, snap.Appointments)
	})

	t.Run("returns EINVALID for empty location", func(t *testing.T) {
		t.Parallel()

		in := newIngestor(nil)

		_, err := in.Ingest(context.Background(), "   ")

		require.Error(t, err)
		assert.Equal(t, apptdash.EINVALID, apptdash.ErrorCode(err))
	})

	t.Run("reports fetch failure as unavailable", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return "", errors.New("dial tcp: lookup example.invalid: no such host")
			},
		}

		_, err := newIngestor(fetcher).Ingest(context.Background(), "https://example.invalid/sheet.csv")

		require.Error(t, err)
		assert.Equal(t, apptdash.EUNAVAILABLE, apptdash.ErrorCode(err))
		assert.Contains(t, apptdash.ErrorMessage(err), "could not reach the data source")
		assert.Contains(t, apptdash.ErrorMessage(err), "no such host")
	})

	t.Run("reports bad status as unavailable", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		_, err := newIngestor(apptdashhttp.NewFetcher()).Ingest(context.Background(), server.URL)

		require.Error(t, err)
		assert.Equal(t, apptdash.EUNAVAILABLE, apptdash.ErrorCode(err))
		assert.Contains(t, apptdash.ErrorMessage(err), "403")
	})

	t.Run("passes context cancellation through", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, _ string) (string, error) {
				return "", ctx.Err()
			},
		}

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newIngestor(fetcher).Ingest(ctx, "https://example.com/sheet.csv")

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("same content yields same hash", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) {
				return "h\n1,John", nil
			},
		}
		in := newIngestor(fetcher)

		first, err := in.Ingest(context.Background(), "https://example.com/a.csv")
		require.NoError(t, err)
		second, err := in.Ingest(context.Background(), "https://example.com/a.csv")
		require.NoError(t, err)

		assert.Equal(t, first.ContentHash, second.ContentHash)
		assert.NotEqual(t, first.ID, second.ID)
		assert.Equal(t, first.Appointments, second.Appointments)
	})
}

func TestCacheBust(t *testing.T) {
	t.Parallel()

	now := time.UnixMilli(1700000000123)

	assert.Equal(t, "https://x.test/a.csv?t=1700000000123", ingest.CacheBust("https://x.test/a.csv", now))
	assert.Equal(t, "https://x.test/pub?output=csv&t=1700000000123", ingest.CacheBust("https://x.test/pub?output=csv", now))
}

func TestComputeHash(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ingest.ComputeHash("abc"), ingest.ComputeHash("abc"))
	assert.NotEqual(t, ingest.ComputeHash("abc"), ingest.ComputeHash("abd"))
	assert.Len(t, ingest.ComputeHash(""), 16)
}

package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/partscout"
	scouthttp "github.com/fwojciec/partscout/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Compile-time verification that Fetcher implements partscout.Fetcher
var _ partscout.Fetcher = (*scouthttp.Fetcher)(nil)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML body from server", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>Hello World</body></html>"))
		}))
		defer server.Close()

		resp, err := scouthttp.NewFetcher().Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.Status)
		assert.Equal(t, "<html><body>Hello World</body></html>", resp.Body)
		assert.Equal(t, server.URL, resp.FinalURL)
	})

	t.Run("sends configured user agent and headers", func(t *testing.T) {
		t.Parallel()

		headers := make(chan http.Header, 1)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			headers <- r.Header.Clone()
		}))
		defer server.Close()

		fetcher := scouthttp.NewFetcher(
			scouthttp.WithUserAgent("partscout-test/1.0"),
			scouthttp.WithHeader("X-Test", "yes"),
		)
		_, err := fetcher.Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		got := <-headers
		assert.Equal(t, "partscout-test/1.0", got.Get("User-Agent"))
		assert.Equal(t, "en-US,en;q=0.9", got.Get("Accept-Language"))
		assert.Equal(t, "yes", got.Get("X-Test"))
	})

	t.Run("follows redirects and reports final URL", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/search/lm358", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/search/LM358", http.StatusFound)
		})
		mux.HandleFunc("/search/LM358", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		})
		server := httptest.NewServer(mux)
		defer server.Close()

		resp, err := scouthttp.NewFetcher().Fetch(context.Background(), server.URL+"/search/lm358")

		require.NoError(t, err)
		assert.Equal(t, server.URL+"/search/LM358", resp.FinalURL)
	})

	t.Run("stops after too many redirects", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, r.URL.Path+"x", http.StatusFound)
		}))
		defer server.Close()

		_, err := scouthttp.NewFetcher().Fetch(context.Background(), server.URL+"/a")

		require.Error(t, err)
		assert.Equal(t, partscout.ECONNECT, partscout.ErrorCode(err))
	})

	t.Run("truncates body at max size", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(strings.Repeat("a", 100)))
		}))
		defer server.Close()

		resp, err := scouthttp.NewFetcher(scouthttp.WithMaxBodySize(10)).Fetch(context.Background(), server.URL)

		require.NoError(t, err)
		assert.Len(t, resp.Body, 10)
	})

	t.Run("classifies status codes", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			status int
			code   string
		}{
			{http.StatusForbidden, partscout.EBLOCKED},
			{http.StatusTooManyRequests, partscout.ERATELIMITED},
			{http.StatusNotFound, partscout.ENOTFOUND},
			{http.StatusBadGateway, partscout.EUNAVAILABLE},
			{http.StatusServiceUnavailable, partscout.EUNAVAILABLE},
			{http.StatusInternalServerError, partscout.EUNAVAILABLE},
			{http.StatusTeapot, partscout.EINTERNAL},
		}

		for _, tt := range tests {
			t.Run(http.StatusText(tt.status), func(t *testing.T) {
				t.Parallel()

				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(tt.status)
				}))
				defer server.Close()

				_, err := scouthttp.NewFetcher().Fetch(context.Background(), server.URL)

				require.Error(t, err)
				assert.Equal(t, tt.code, partscout.ErrorCode(err))
			})
		}
	})

	t.Run("reports timeout", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-time.After(500 * time.Millisecond):
			case <-r.Context().Done():
			}
		}))
		defer server.Close()

		fetcher := scouthttp.NewFetcher(scouthttp.WithTimeout(20 * time.Millisecond))
		_, err := fetcher.Fetch(context.Background(), server.URL)

		require.Error(t, err)
		assert.Equal(t, partscout.ETIMEOUT, partscout.ErrorCode(err))
		assert.True(t, partscout.IsTransient(err))
	})

	t.Run("returns context error when canceled", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := scouthttp.NewFetcher().Fetch(ctx, server.URL)

		require.ErrorIs(t, err, context.Canceled)
	})

	t.Run("reports connection failure", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		_, err := scouthttp.NewFetcher(scouthttp.WithTimeout(time.Second)).Fetch(context.Background(), url)

		require.Error(t, err)
		assert.Equal(t, partscout.ECONNECT, partscout.ErrorCode(err))
	})

	t.Run("rejects malformed URL", func(t *testing.T) {
		t.Parallel()

		_, err := scouthttp.NewFetcher().Fetch(context.Background(), "://bad")

		require.Error(t, err)
		assert.Equal(t, partscout.EINVALID, partscout.ErrorCode(err))
	})
}

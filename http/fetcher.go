// Package http provides the HTTP transport for partscout: a Fetcher for the
// upstream search site and a JSON API Server for the application layer.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/partscout"
)

// Fetcher defaults.
const (
	DefaultFetchTimeout = 15 * time.Second
	DefaultUserAgent    = "partscout/1.0 (+https://github.com/fwojciec/partscout)"
	DefaultMaxBodySize  = 5 << 20
	MaxRedirects        = 5
)

// Ensure Fetcher implements partscout.Fetcher at compile time.
var _ partscout.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages with plain HTTP GET requests and classifies
// failures into partscout error codes.
type Fetcher struct {
	client      *http.Client
	timeout     time.Duration
	userAgent   string
	header      http.Header
	maxBodySize int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (15s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithHeader adds a header sent with every request.
func WithHeader(key, value string) Option {
	return func(f *Fetcher) {
		f.header.Set(key, value)
	}
}

// WithMaxBodySize caps how many bytes of a response body are read.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodySize = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:     DefaultFetchTimeout,
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
		header: http.Header{
			"Accept":          {"text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"},
			"Accept-Language": {"en-US,en;q=0.9"},
		},
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= MaxRedirects {
				return fmt.Errorf("stopped after %d redirects", MaxRedirects)
			}
			return nil
		},
	}

	return f
}

// Fetch retrieves the page at url. Non-2xx responses are returned as errors
// carrying the status-specific code.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*partscout.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, partscout.Wrap(partscout.EINVALID, err, "invalid request URL")
	}
	for k, v := range f.header {
		req.Header[k] = v
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, transportError(ctx, err)
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode); err != nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, f.maxBodySize))
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, transportError(ctx, err)
	}

	return &partscout.Response{
		Status:   resp.StatusCode,
		Body:     string(body),
		FinalURL: resp.Request.URL.String(),
	}, nil
}

// statusError maps an upstream status to an application error.
func statusError(status int) error {
	switch {
	case status < 400:
		return nil
	case status == http.StatusForbidden:
		return partscout.Errorf(partscout.EBLOCKED, "upstream refused the request (HTTP %d); try again in a few minutes", status)
	case status == http.StatusTooManyRequests:
		return partscout.Errorf(partscout.ERATELIMITED, "upstream rate limit hit (HTTP %d); wait 1-2 minutes", status)
	case status == http.StatusNotFound:
		return partscout.Errorf(partscout.ENOTFOUND, "upstream has no such page (HTTP %d)", status)
	case status >= 500:
		return partscout.Errorf(partscout.EUNAVAILABLE, "upstream temporarily unavailable (HTTP %d)", status)
	}
	return partscout.Errorf(partscout.EINTERNAL, "unexpected upstream response (HTTP %d)", status)
}

// transportError classifies a failed round trip. Cancellation by the caller
// is returned unchanged.
func transportError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return partscout.Wrap(partscout.ETIMEOUT, err, "request to upstream timed out")
	}
	return partscout.Wrap(partscout.ECONNECT, err, "could not reach upstream")
}

// Package lookup orchestrates part lookups against the upstream search site.
// It ties together validation, rate limiting, fetching, page classification
// and record extraction.
package lookup

import (
	"context"
	"math/rand/v2"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/partscout"
)

// Lookup defaults.
const (
	DefaultBaseURL     = "https://www.findchips.com"
	DefaultPauseMin    = 500 * time.Millisecond
	DefaultPauseJitter = time.Second

	// ProbePartNumber is the part fetched by Probe.
	ProbePartNumber = "LM358"
)

// Ensure Service implements partscout.ComponentLookup at compile time.
var _ partscout.ComponentLookup = (*Service)(nil)

// Service looks up part numbers on the upstream search site.
type Service struct {
	fetcher    partscout.Fetcher
	limiter    partscout.Limiter
	classifier partscout.DocumentClassifier
	extractor  partscout.RecordExtractor
	snapshots  partscout.SnapshotStore

	baseURL     string
	pauseMin    time.Duration
	pauseJitter time.Duration
	sleep       func(ctx context.Context, d time.Duration) error
}

// Option configures a Service.
type Option func(*Service)

// WithBaseURL sets the search site root. Defaults to DefaultBaseURL.
func WithBaseURL(u string) Option {
	return func(s *Service) {
		s.baseURL = strings.TrimRight(u, "/")
	}
}

// WithPause sets the politeness pause taken before each fetch: min plus a
// random duration below jitter. Zero values disable the pause.
func WithPause(minPause, jitter time.Duration) Option {
	return func(s *Service) {
		s.pauseMin = minPause
		s.pauseJitter = jitter
	}
}

// WithSnapshots stores every fetched page in store.
func WithSnapshots(store partscout.SnapshotStore) Option {
	return func(s *Service) {
		s.snapshots = store
	}
}

// WithSleep replaces the function used to pause. Useful for testing.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(s *Service) {
		s.sleep = fn
	}
}

// NewService creates a new Service.
func NewService(
	fetcher partscout.Fetcher,
	limiter partscout.Limiter,
	classifier partscout.DocumentClassifier,
	extractor partscout.RecordExtractor,
	opts ...Option,
) *Service {
	s := &Service{
		fetcher:     fetcher,
		limiter:     limiter,
		classifier:  classifier,
		extractor:   extractor,
		baseURL:     DefaultBaseURL,
		pauseMin:    DefaultPauseMin,
		pauseJitter: DefaultPauseJitter,
		sleep:       sleep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SearchURL returns the results page URL for pn.
func (s *Service) SearchURL(pn partscout.PartNumber) string {
	return s.baseURL + "/search/" + url.PathEscape(string(pn))
}

// LookupComponent validates raw, fetches its results page and extracts a
// record. No step is retried.
func (s *Service) LookupComponent(ctx context.Context, raw string) (*partscout.ComponentRecord, error) {
	pn, err := partscout.ParsePartNumber(raw)
	if err != nil {
		return nil, err
	}

	if !s.limiter.TryAcquire() {
		return nil, partscout.Errorf(partscout.ERATELIMITED, "too many lookups; wait a minute before searching again")
	}

	if err := s.sleep(ctx, s.pause()); err != nil {
		return nil, err
	}

	searchURL := s.SearchURL(pn)
	resp, err := s.fetcher.Fetch(ctx, searchURL)
	if err != nil {
		return nil, err
	}

	if s.snapshots != nil {
		// Snapshots are a debugging aid; a failed write never fails the lookup.
		_, _ = s.snapshots.Save(ctx, pn, resp.Body)
	}

	switch s.classifier.Classify(resp.Body) {
	case partscout.VerdictBlocked:
		return nil, partscout.Errorf(partscout.EBLOCKED, "search site returned a block page for %s; try again in a few minutes", pn)
	case partscout.VerdictNotFound:
		return nil, partscout.Errorf(partscout.ENOTFOUND, "part %s not found", pn)
	}

	rec, err := s.extractor.ExtractRecord(resp.Body, pn, searchURL)
	if err != nil {
		return nil, partscout.Wrap(partscout.ENODATA, err, "could not read results page for %s", pn)
	}
	if !rec.HasData() {
		return nil, partscout.Errorf(partscout.ENODATA, "no component data found for %s", pn)
	}
	return rec, nil
}

// pause returns the politeness delay for the next fetch.
func (s *Service) pause() time.Duration {
	d := s.pauseMin
	if s.pauseJitter > 0 {
		d += rand.N(s.pauseJitter)
	}
	return d
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

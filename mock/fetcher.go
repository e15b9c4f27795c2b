package mock

import (
	"context"

	"github.com/fwojciec/partscout"
)

var _ partscout.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of partscout.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*partscout.Response, error)
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*partscout.Response, error) {
	return f.FetchFn(ctx, url)
}

var _ partscout.Limiter = (*Limiter)(nil)

// Limiter is a mock implementation of partscout.Limiter.
type Limiter struct {
	TryAcquireFn func() bool
}

func (l *Limiter) TryAcquire() bool {
	return l.TryAcquireFn()
}

var _ partscout.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore is a mock implementation of partscout.SnapshotStore.
type SnapshotStore struct {
	SaveFn func(ctx context.Context, pn partscout.PartNumber, html string) (string, error)
}

func (s *SnapshotStore) Save(ctx context.Context, pn partscout.PartNumber, html string) (string, error) {
	return s.SaveFn(ctx, pn, html)
}

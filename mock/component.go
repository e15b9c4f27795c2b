package mock

import (
	"context"

	"github.com/fwojciec/partscout"
)

var _ partscout.ComponentService = (*ComponentService)(nil)

// ComponentService is a mock implementation of partscout.ComponentService.
type ComponentService struct {
	UpsertComponentFn           func(ctx context.Context, rec *partscout.ComponentRecord) (*partscout.ComponentRecord, bool, error)
	FindComponentByPartNumberFn func(ctx context.Context, pn partscout.PartNumber) (*partscout.ComponentRecord, error)
	FindComponentsFn            func(ctx context.Context, filter partscout.ComponentFilter) ([]*partscout.ComponentRecord, error)
	DeleteComponentFn           func(ctx context.Context, pn partscout.PartNumber) error
	DeleteAllComponentsFn       func(ctx context.Context) (int, error)
}

func (s *ComponentService) UpsertComponent(ctx context.Context, rec *partscout.ComponentRecord) (*partscout.ComponentRecord, bool, error) {
	return s.UpsertComponentFn(ctx, rec)
}

func (s *ComponentService) FindComponentByPartNumber(ctx context.Context, pn partscout.PartNumber) (*partscout.ComponentRecord, error) {
	return s.FindComponentByPartNumberFn(ctx, pn)
}

func (s *ComponentService) FindComponents(ctx context.Context, filter partscout.ComponentFilter) ([]*partscout.ComponentRecord, error) {
	return s.FindComponentsFn(ctx, filter)
}

func (s *ComponentService) DeleteComponent(ctx context.Context, pn partscout.PartNumber) error {
	return s.DeleteComponentFn(ctx, pn)
}

func (s *ComponentService) DeleteAllComponents(ctx context.Context) (int, error) {
	return s.DeleteAllComponentsFn(ctx)
}

var _ partscout.ComponentLookup = (*ComponentLookup)(nil)

// ComponentLookup is a mock implementation of partscout.ComponentLookup.
type ComponentLookup struct {
	LookupComponentFn func(ctx context.Context, pn string) (*partscout.ComponentRecord, error)
}

func (l *ComponentLookup) LookupComponent(ctx context.Context, pn string) (*partscout.ComponentRecord, error) {
	return l.LookupComponentFn(ctx, pn)
}

var _ partscout.Prober = (*Prober)(nil)

// Prober is a mock implementation of partscout.Prober.
type Prober struct {
	ProbeFn func(ctx context.Context) (*partscout.ProbeResult, error)
}

func (p *Prober) Probe(ctx context.Context) (*partscout.ProbeResult, error) {
	return p.ProbeFn(ctx)
}

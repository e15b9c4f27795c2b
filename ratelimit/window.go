// Package ratelimit throttles outbound lookups with a sliding one-minute
// window and a minimum spacing between permitted requests.
package ratelimit

import (
	"sync"
	"time"

	"github.com/fwojciec/partscout"
	"golang.org/x/time/rate"
)

var _ partscout.Limiter = (*Window)(nil)

// Default limits.
const (
	DefaultPerMinute = 30
	DefaultSpacing   = 2 * time.Second
)

const windowSize = time.Minute

// Window is a process-wide limiter combining a burst cap per trailing minute
// with a minimum spacing between permits. Both gates must pass; a denied
// attempt leaves the state unchanged.
type Window struct {
	mu        sync.Mutex
	now       func() time.Time
	perMinute int
	spacing   *rate.Limiter
	stamps    []time.Time
}

// Option configures a Window.
type Option func(*Window)

// WithClock sets the time source. Tests use it to drive a fake clock.
func WithClock(now func() time.Time) Option {
	return func(w *Window) {
		w.now = now
	}
}

// WithLimits sets the per-minute cap and the minimum spacing between permits.
// A zero spacing disables the spacing gate.
func WithLimits(perMinute int, spacing time.Duration) Option {
	return func(w *Window) {
		w.perMinute = perMinute
		w.spacing = newSpacing(spacing)
	}
}

// New creates a Window with DefaultPerMinute and DefaultSpacing unless
// overridden by options.
func New(opts ...Option) *Window {
	w := &Window{
		now:       time.Now,
		perMinute: DefaultPerMinute,
		spacing:   newSpacing(DefaultSpacing),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func newSpacing(d time.Duration) *rate.Limiter {
	if d <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(d), 1)
}

// TryAcquire reports whether a request may proceed now and, if so, records it.
func (w *Window) TryAcquire() bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	w.evict(now)
	if len(w.stamps) >= w.perMinute {
		return false
	}
	// AllowN consumes a token only when it returns true.
	if !w.spacing.AllowN(now, 1) {
		return false
	}
	w.stamps = append(w.stamps, now)
	return true
}

// Remaining returns how many permits the minute window would still grant,
// ignoring the spacing gate.
func (w *Window) Remaining() int {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.evict(w.now())
	return max(w.perMinute-len(w.stamps), 0)
}

// evict drops timestamps that have left the trailing window.
func (w *Window) evict(now time.Time) {
	i := 0
	for i < len(w.stamps) && now.Sub(w.stamps[i]) >= windowSize {
		i++
	}
	if i > 0 {
		w.stamps = append(w.stamps[:0], w.stamps[i:]...)
	}
}

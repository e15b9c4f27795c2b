package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/partscout"
)

// Ensure LoggingLookup implements partscout.ComponentLookup.
var _ partscout.ComponentLookup = (*LoggingLookup)(nil)

// LoggingLookup wraps a ComponentLookup with logging. Failures are logged at
// warn level with their error code.
type LoggingLookup struct {
	next   partscout.ComponentLookup
	logger *slog.Logger
}

// NewLoggingLookup creates a new LoggingLookup.
func NewLoggingLookup(next partscout.ComponentLookup, logger *slog.Logger) *LoggingLookup {
	return &LoggingLookup{next: next, logger: logger}
}

// LookupComponent delegates to the wrapped lookup and logs the outcome.
func (l *LoggingLookup) LookupComponent(ctx context.Context, pn string) (rec *partscout.ComponentRecord, err error) {
	defer func(begin time.Time) {
		if err != nil {
			l.logger.Warn("lookup",
				"part", pn,
				"code", partscout.ErrorCode(err),
				"duration", time.Since(begin),
				"err", err,
			)
			return
		}
		l.logger.Info("lookup",
			"part", pn,
			"manufacturer", rec.Manufacturer,
			"distributor", rec.Distributor,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return l.next.LookupComponent(ctx, pn)
}

package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/partscout"
)

// Ensure LoggingOCREngine implements partscout.OCREngine.
var _ partscout.OCREngine = (*LoggingOCREngine)(nil)

// LoggingOCREngine wraps an OCREngine with logging.
type LoggingOCREngine struct {
	next   partscout.OCREngine
	logger *slog.Logger
}

// NewLoggingOCREngine creates a new LoggingOCREngine.
func NewLoggingOCREngine(next partscout.OCREngine, logger *slog.Logger) *LoggingOCREngine {
	return &LoggingOCREngine{next: next, logger: logger}
}

// Recognize delegates to the wrapped engine and logs the outcome.
func (e *LoggingOCREngine) Recognize(ctx context.Context, imagePath string) (text string, err error) {
	defer func(begin time.Time) {
		e.logger.Info("ocr",
			"path", imagePath,
			"chars", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Recognize(ctx, imagePath)
}

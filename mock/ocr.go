package mock

import (
	"context"

	"github.com/fwojciec/partscout"
)

var _ partscout.OCREngine = (*OCREngine)(nil)

// OCREngine is a mock implementation of partscout.OCREngine.
type OCREngine struct {
	RecognizeFn func(ctx context.Context, imagePath string) (string, error)
}

func (e *OCREngine) Recognize(ctx context.Context, imagePath string) (string, error) {
	return e.RecognizeFn(ctx, imagePath)
}

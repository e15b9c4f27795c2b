package partscout

import "context"

// OCREngine turns an image into raw text.
type OCREngine interface {
	// Recognize runs OCR on the image at path.
	// Returns ENOOCR when no engine is available and EOCR when recognition fails.
	Recognize(ctx context.Context, imagePath string) (string, error)
}

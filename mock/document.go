package mock

import "github.com/fwojciec/partscout"

var _ partscout.DocumentClassifier = (*DocumentClassifier)(nil)

// DocumentClassifier is a mock implementation of partscout.DocumentClassifier.
type DocumentClassifier struct {
	ClassifyFn func(html string) partscout.Verdict
	TitleFn    func(html string) string
}

func (c *DocumentClassifier) Classify(html string) partscout.Verdict {
	return c.ClassifyFn(html)
}

func (c *DocumentClassifier) Title(html string) string {
	return c.TitleFn(html)
}

var _ partscout.RecordExtractor = (*RecordExtractor)(nil)

// RecordExtractor is a mock implementation of partscout.RecordExtractor.
type RecordExtractor struct {
	ExtractRecordFn func(html string, pn partscout.PartNumber, sourceURL string) (*partscout.ComponentRecord, error)
}

func (e *RecordExtractor) ExtractRecord(html string, pn partscout.PartNumber, sourceURL string) (*partscout.ComponentRecord, error) {
	return e.ExtractRecordFn(html, pn, sourceURL)
}

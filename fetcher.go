package partscout

import "context"

// Response is a fetched page.
type Response struct {
	Status   int
	Body     string
	FinalURL string // URL after redirects
}

// Fetcher retrieves pages from the upstream search site.
type Fetcher interface {
	// Fetch performs a GET request and returns the page.
	// The context controls timeout and cancellation. Failures carry
	// ETIMEOUT, ECONNECT, EBLOCKED, ERATELIMITED, ENOTFOUND or EUNAVAILABLE.
	Fetch(ctx context.Context, url string) (*Response, error)
}

// Limiter throttles outbound lookups.
type Limiter interface {
	// TryAcquire reports whether a request may be sent now and, if so,
	// records it. It never blocks.
	TryAcquire() bool
}

// SnapshotStore keeps copies of fetched pages for debugging extraction.
type SnapshotStore interface {
	// Save stores html for pn and returns where it was written.
	Save(ctx context.Context, pn PartNumber, html string) (string, error)
}

// ProbeResult describes whether the search site serves real results pages.
type ProbeResult struct {
	URL        string `json:"url"`
	Status     int    `json:"status"`
	BodyLength int    `json:"responseLength"`
	Title      string `json:"pageTitle"`
	Verdict    string `json:"verdict"`
	CanConnect bool   `json:"canConnect"`
	Message    string `json:"message"`
}

// Prober checks connectivity to the search site.
type Prober interface {
	// Probe fetches a well-known results page. On fetch failure the result
	// is still returned, with CanConnect false, alongside the error.
	Probe(ctx context.Context) (*ProbeResult, error)
}

package lookup

import (
	"context"

	"github.com/fwojciec/partscout"
)

// Ensure Service implements partscout.Prober at compile time.
var _ partscout.Prober = (*Service)(nil)

// Probe fetches the results page of ProbePartNumber and reports what came
// back. It bypasses the limiter and the politeness pause.
func (s *Service) Probe(ctx context.Context) (*partscout.ProbeResult, error) {
	res := &partscout.ProbeResult{URL: s.SearchURL(ProbePartNumber)}

	resp, err := s.fetcher.Fetch(ctx, res.URL)
	if err != nil {
		res.Message = "cannot reach the search site; the network or this host may be blocked"
		return res, err
	}

	verdict := s.classifier.Classify(resp.Body)
	res.Status = resp.Status
	res.BodyLength = len(resp.Body)
	res.Title = s.classifier.Title(resp.Body)
	res.Verdict = verdict.String()
	res.CanConnect = verdict != partscout.VerdictBlocked
	if res.CanConnect {
		res.Message = "search site is reachable; failures are specific to a part or to rate limiting"
	} else {
		res.Message = "search site is blocking requests from this host"
	}
	return res, nil
}

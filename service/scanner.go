package service

import (
	"context"
	"reflect"

	"mylocator/domain"
	"mylocator/helpers"
	"mylocator/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Scanner implements interfaces.Scanner. It walks a port range in ascending
// order, probing each port's health endpoint through the injected Prober,
// and returns the first candidate matching the expected service id and
// context subset. Ascending order plus first-match-wins makes discovery
// deterministic for a fixed port layout.
type Scanner struct {
	prober interfaces.Prober
	logger log.Logger
}

// NewScanner creates a Scanner. Panics on nil prober or logger.
//
// Parameters: prober, health endpoint client (e.g. adapters.ProberHTTP with
// a short client timeout so a full-range walk stays bounded); logger.
//
// Called from cmd/main attach mode and when wiring a Monitor.
func NewScanner(prober interfaces.Prober, logger log.Logger) *Scanner {
	return &Scanner{
		prober: helpers.NilPanic(prober, "service.scanner.go: prober is required"),
		logger: log.With(helpers.NilPanic(logger, "service.scanner.go: logger is required"), "component", "scanner"),
	}
}

// Discover walks query.Range ascending, one probe per port. A candidate is
// accepted iff the payload is well-formed, its status is healthy, its
// service id equals query.ServiceID and every key present in
// query.ContextSubset has an equal value in the candidate's context (keys
// absent from the subset are ignored). Unreachable ports, timeouts and
// malformed bodies are skipped silently: absence of a candidate at a port is
// expected, not exceptional.
//
// Returns: (record, true) for the first accepted candidate, scanning stops
// there; (nil, false) when the range is exhausted, invalid, or ctx is done.
//
// Called from cmd attach mode (initial discovery) and Monitor (recovery).
func (s *Scanner) Discover(ctx context.Context, query domain.DiscoveryQuery) (*domain.ServiceRecord, bool) {
	if !query.Range.Valid() {
		return nil, false
	}

	for port := query.Range.Min; port <= query.Range.Max; port++ {
		if ctx.Err() != nil {
			return nil, false
		}

		candidate, err := s.prober.FetchHealth(ctx, port)
		if err != nil {
			continue
		}
		if candidate.Status != domain.StatusHealthy {
			continue
		}
		if candidate.ServiceID != query.ServiceID {
			continue
		}
		if !contextSubsetMatches(query.ContextSubset, candidate.Context) {
			continue
		}

		level.Debug(s.logger).Log(
			"msg", "service discovered",
			"service_id", candidate.ServiceID,
			"port", port,
			"instance_id", candidate.InstanceID,
		)
		return &candidate, true
	}

	return nil, false
}

// contextSubsetMatches reports whether every key in subset has an equal value
// in candidate. Subset match, not full equality: keys the caller did not ask
// about are ignored. Values are compared with reflect.DeepEqual; both sides
// normally originate from JSON, so use JSON-shaped values (string, float64,
// bool, nested maps) when building a subset.
func contextSubsetMatches(subset, candidate map[string]any) bool {
	for key, want := range subset {
		got, ok := candidate[key]
		if !ok || !reflect.DeepEqual(want, got) {
			return false
		}
	}
	return true
}

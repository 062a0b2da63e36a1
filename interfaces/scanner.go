package interfaces

import (
	"context"

	"mylocator/domain"
)

// Scanner finds a live instance matching an expected identity and context by
// walking a port range in ascending order.
//
// Absence of a match is data, not an error: Discover returns (nil, false)
// after exhausting the range and the caller decides whether to retry, widen
// the range or surface a "not connected" state.
//
// Implemented by service.Scanner. Called from cmd (attach mode, initial
// discovery) and from service.Monitor (narrowed-range recovery scan).
//
//go:generate moq -stub -out mock/scanner.go -pkg mock . Scanner
type Scanner interface {
	// Discover walks query.Range in ascending port order and returns the first
	// candidate whose health payload is well-formed, healthy, matches
	// query.ServiceID and whose context contains every query.ContextSubset entry.
	// Parameters: ctx aborts the walk early; query describes range, service id and context subset.
	// Returns: (record, true) on the first accepted candidate; (nil, false) when the range is exhausted or ctx is done.
	// Called from cmd attach mode and service.Monitor recovery.
	Discover(ctx context.Context, query domain.DiscoveryQuery) (*domain.ServiceRecord, bool)
}

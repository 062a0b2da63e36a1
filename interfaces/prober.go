package interfaces

import (
	"context"

	"mylocator/domain"
)

// Prober fetches the health payload of a candidate service on one local port
// and reconstructs a domain.ServiceRecord from it.
//
// FetchHealth issues a single bounded-timeout request to the health endpoint
// on 127.0.0.1:port. Any failure (connection refused, timeout, non-2xx,
// malformed body, missing required field) is returned as an error and means
// "no usable candidate at this port"; callers treat all failure shapes
// identically and never surface them to their own callers.
//
// Implemented by adapters.ProberHTTP. Called from service.Scanner.Discover
// (one call per port in the range) and from service.Monitor on every polling
// cycle.
//
//go:generate moq -stub -out mock/prober.go -pkg mock . Prober
type Prober interface {
	// FetchHealth probes the health endpoint on 127.0.0.1:port.
	// Parameters: ctx bounds the request (cancel/timeout abort the probe); port is the TCP port to probe.
	// Returns: (record, nil) on a well-formed health response; (zero, error) on any probe failure.
	// Called from service.Scanner.Discover and service.Monitor polling cycles.
	FetchHealth(ctx context.Context, port int) (domain.ServiceRecord, error)
}

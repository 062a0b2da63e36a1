package interfaces

import "time"

// TimeProvider supplies the current time for start-time capture and uptime
// computation. Injected so tests can use a fixed clock instead of time.Now().
//
// Used by service.Registrar (StartTime) and handlers.HTTPServer
// (uptime_seconds). Constructed in cmd/main as
// service.NewTimeProvider(func() time.Time { return time.Now().UTC() }).
//
//go:generate moq -stub -out mock/time_provider.go -pkg mock . TimeProvider
type TimeProvider interface {
	// Now returns current time (UTC in prod; in tests a fixed time for deterministic uptime values).
	// Called from service.Registrar.Start and handlers.HTTPServer.GetHealth.
	Now() time.Time
}

package interfaces

import "mylocator/domain"

// HealthSource supplies the current service record for the health endpoint.
// Implemented by service.Registrar; injected into handlers.HTTPServer so the
// HTTP edge can be tested without a real registrar.
//
//go:generate moq -stub -out mock/health_source.go -pkg mock . HealthSource
type HealthSource interface {
	// Record returns the record built by Start and true, or (zero, false)
	// before Start succeeded.
	// Called from handlers.HTTPServer.GetHealth on every request.
	Record() (domain.ServiceRecord, bool)
}

package service

import (
	"time"

	"mylocator/helpers"
	"mylocator/interfaces"
)

// timeProvider implements interfaces.TimeProvider. It returns the current
// time via the injected now func. Used by Registrar for StartTime capture and
// by handlers for uptime computation; tests inject a fixed clock.
type timeProvider struct {
	now func() time.Time
}

// NewTimeProvider creates a TimeProvider that returns time via the given now
// func. Panics on nil now.
//
// Parameter now: no-arg function returning current time (prod uses
// time.Now().UTC, tests a fixed time).
//
// Called from cmd/main and from QuickStart.
func NewTimeProvider(now func() time.Time) interfaces.TimeProvider {
	return &timeProvider{now: helpers.NilPanic(now, "service.time_provider.go: now is required")}
}

// Now returns current time from the injected function.
func (t *timeProvider) Now() time.Time {
	return t.now()
}

package interfaces

import "mylocator/domain"

// Announcer advertises a registered service instance through an optional
// local announcement mechanism (e.g. multicast DNS). Announcement is advisory
// only: registration and discovery stay correct when it is absent or failing,
// so callers log Announce/Unannounce errors and never propagate them.
//
// Implemented by the variants behind adapters.NewAnnouncer (none, mdns).
// Called from service.Registrar.Start and service.Registrar.Stop.
//
//go:generate moq -stub -out mock/announcer.go -pkg mock . Announcer
type Announcer interface {
	// Announce advertises the record (port plus identity properties).
	// Returns: nil on success or when announcement is disabled; error on mechanism failure (logged by the caller, never fatal).
	// Called from service.Registrar.Start after the record is built.
	Announce(record domain.ServiceRecord) error

	// Unannounce withdraws a previous announcement; no-op when nothing was announced. Idempotent.
	// Returns: nil on success; error on mechanism failure (logged by the caller).
	// Called from service.Registrar.Stop.
	Unannounce() error
}

package domain

import "time"

// StatusHealthy is the status a service reports while it is serving normally.
// Discovery and monitoring treat any other status value as "not healthy".
const StatusHealthy = "healthy"

// ServiceRecord identifies one running service instance. It is created once
// per process lifetime by service.Registrar, or reconstructed from a remote
// health response by the prober. A record is an immutable value: it is never
// mutated after creation, only replaced by a newly observed record.
//
// Two records denote the same running instance iff ServiceID, InstanceID,
// PID and VerificationToken are all equal (service.SameInstance). Port and
// Context equality is neither sufficient nor required.
type ServiceRecord struct {
	ServiceID         string         // logical name shared by all instances of this service kind, stable across restarts
	Port              int            // TCP port currently bound by this instance
	InstanceID        string         // unique value minted fresh on every process start
	PID               int            // OS process identifier at start time
	Context           map[string]any // caller-supplied descriptive metadata (version, product name, ...)
	VerificationToken string         // second unique value minted at start, independent collision check
	StartTime         time.Time      // instance start time, used to compute uptime
	Status            string         // StatusHealthy at creation
}

// PortRange is an inclusive TCP port range [Min, Max].
type PortRange struct {
	Min int
	Max int
}

// Valid reports whether the range lies within 1-65535 and Min <= Max.
func (r PortRange) Valid() bool {
	return r.Min >= 1 && r.Max <= 65535 && r.Min <= r.Max
}

// DiscoveryQuery describes what service.Scanner should look for: the port
// range to walk, the expected service id and a subset of context keys that
// must match the candidate's context (keys absent from ContextSubset are
// ignored).
type DiscoveryQuery struct {
	Range         PortRange
	ServiceID     string
	ContextSubset map[string]any
}

// EventType classifies a liveness transition observed by service.Monitor.
// The set is closed: every consumer can switch over the three values
// exhaustively.
type EventType string

const (
	// EventRestarted: the health endpoint still answers on the tracked port
	// but with a different instance_id or pid, so the process was replaced.
	EventRestarted EventType = "restarted"
	// EventRecovered: the tracked port stopped answering and a matching
	// instance was found on a nearby port.
	EventRecovered EventType = "recovered"
	// EventDisconnected: the tracked port stopped answering and no matching
	// instance exists in the recovery range.
	EventDisconnected EventType = "disconnected"
)

// ChangeEvent is delivered to the monitor's callback on a liveness
// transition. New is nil only for EventDisconnected.
type ChangeEvent struct {
	Type EventType
	Old  ServiceRecord
	New  *ServiceRecord
}

// AnnouncerKind selects the optional service-announcement mechanism. The set
// is closed; adapters.NewAnnouncer has one implementation per kind.
type AnnouncerKind string

const (
	// AnnouncerNone disables announcement (the default).
	AnnouncerNone AnnouncerKind = "none"
	// AnnouncerMDNS advertises the chosen port over multicast DNS.
	AnnouncerMDNS AnnouncerKind = "mdns"
)

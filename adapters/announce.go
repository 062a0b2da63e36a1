package adapters

import (
	"fmt"
	"strconv"
	"sync"

	"mylocator/domain"
	"mylocator/helpers"
	"mylocator/interfaces"
	"mylocator/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/grandcat/zeroconf"
)

// mdnsServiceType is the multicast DNS service type the mdns variant
// registers under.
const mdnsServiceType = "_http._tcp"

// NewAnnouncer is the single factory over the closed domain.AnnouncerKind
// set, one implementation per kind:
//
//	AnnouncerNone: no-op, announcement disabled;
//	AnnouncerMDNS: advertises the record over multicast DNS (zeroconf).
//
// Parameters: kind, the variant to build; mdnsName, instance name for the
// mdns variant (required for mdns, ignored by none); logger.
//
// Returns: (announcer, nil) for a known kind; (nil, bad_parameter) for an
// unknown kind. Panics on nil logger.
//
// Called from cmd/main serve mode and from library consumers wiring a
// Registrar.
func NewAnnouncer(kind domain.AnnouncerKind, mdnsName string, logger log.Logger) (interfaces.Announcer, error) {
	logger = helpers.NilPanic(logger, "adapters.announce.go: logger is required")
	switch kind {
	case domain.AnnouncerNone:
		return &nopAnnouncer{}, nil
	case domain.AnnouncerMDNS:
		return &mdnsAnnouncer{
			instanceName: helpers.StrPanic(mdnsName, "adapters.announce.go: mdnsName is required for the mdns announcer"),
			logger:       log.With(logger, "component", "mdns_announcer"),
		}, nil
	default:
		return nil, service.NewBadParameterError(fmt.Sprintf("unknown announcer kind %q", kind), nil)
	}
}

// nopAnnouncer implements interfaces.Announcer with no effect. Used when
// announcement is disabled; keeps the Registrar free of nil checks.
type nopAnnouncer struct{}

func (a *nopAnnouncer) Announce(domain.ServiceRecord) error { return nil }
func (a *nopAnnouncer) Unannounce() error                   { return nil }

// mdnsAnnouncer implements interfaces.Announcer over multicast DNS. The
// identity fields travel as TXT properties so mDNS browsers can see which
// instance owns the advertised port. Announcement is advisory only: callers
// log errors from Announce/Unannounce and never treat them as fatal.
//
// Fields under mu: server (nil while nothing is announced).
type mdnsAnnouncer struct {
	instanceName string
	logger       log.Logger

	mu     sync.Mutex
	server *zeroconf.Server
}

// Announce registers the mDNS service for record. Re-announcing replaces the
// previous registration.
//
// Returns: nil on success; error when the multicast socket cannot be opened
// (e.g. no multicast-capable interface), which the caller logs and ignores.
func (a *mdnsAnnouncer) Announce(record domain.ServiceRecord) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server != nil {
		a.server.Shutdown()
		a.server = nil
	}

	server, err := zeroconf.Register(
		a.instanceName,
		mdnsServiceType,
		"local.",
		record.Port,
		announceText(record),
		nil,
	)
	if err != nil {
		return fmt.Errorf("mdns register failed: %w", err)
	}

	a.server = server
	level.Info(a.logger).Log(
		"msg", "mdns service announced",
		"name", a.instanceName,
		"port", record.Port,
	)
	return nil
}

// Unannounce withdraws the current registration; a no-op when nothing is
// announced. Idempotent.
func (a *mdnsAnnouncer) Unannounce() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.server == nil {
		return nil
	}
	a.server.Shutdown()
	a.server = nil
	level.Info(a.logger).Log("msg", "mdns service unannounced", "name", a.instanceName)
	return nil
}

// announceText renders the record's identity and context as mDNS TXT
// properties.
func announceText(record domain.ServiceRecord) []string {
	text := []string{
		"service_id=" + record.ServiceID,
		"instance_id=" + record.InstanceID,
		"pid=" + strconv.Itoa(record.PID),
		"verification_token=" + record.VerificationToken,
	}
	for key, value := range record.Context {
		text = append(text, fmt.Sprintf("%s=%v", key, value))
	}
	return text
}

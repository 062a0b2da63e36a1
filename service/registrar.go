package service

import (
	"os"
	"sync"
	"time"

	"mylocator/domain"
	"mylocator/helpers"
	"mylocator/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
)

// Registrar owns port allocation and identity generation for one service
// process. Start builds the process-lifetime domain.ServiceRecord (allocated
// port, fresh InstanceID and VerificationToken, pid, start time) and
// announces it through the optional Announcer. The registrar does not listen
// on the network itself: cmd/main hosts the health endpoint and serves the
// record through handlers.HTTPServer.
//
// Implements interfaces.HealthSource. Fields under mu: record (nil until
// Start succeeded).
type Registrar struct {
	serviceID      string
	portRange      domain.PortRange
	projectContext map[string]any
	allocator      *PortAllocator
	announcer      interfaces.Announcer
	timeProvider   interfaces.TimeProvider
	logger         log.Logger

	mu     sync.Mutex
	record *domain.ServiceRecord
}

// NewRegistrar creates a Registrar. Panics on empty serviceID or nil
// announcer/timeProvider/logger.
//
// Parameters: serviceID, logical service name shared across restarts;
// portRange, inclusive range to allocate from; projectContext, caller
// metadata embedded in the record (may be nil); announcer, optional
// announcement variant from adapters.NewAnnouncer; timeProvider, source of
// start time; logger.
//
// Called from cmd/main (serve mode) and from QuickStart.
func NewRegistrar(
	serviceID string,
	portRange domain.PortRange,
	projectContext map[string]any,
	announcer interfaces.Announcer,
	timeProvider interfaces.TimeProvider,
	logger log.Logger,
) *Registrar {
	logger = log.With(helpers.NilPanic(logger, "service.registrar.go: logger is required"), "component", "registrar")
	return &Registrar{
		serviceID:      helpers.StrPanic(serviceID, "service.registrar.go: serviceID is required"),
		portRange:      portRange,
		projectContext: projectContext,
		allocator:      NewPortAllocator(logger),
		announcer:      helpers.NilPanic(announcer, "service.registrar.go: announcer is required"),
		timeProvider:   helpers.NilPanic(timeProvider, "service.registrar.go: timeProvider is required"),
		logger:         logger,
	}
}

// Start allocates a port, mints the instance identity and returns the
// completed record. The record is built exactly once per process: a second
// Start call returns the first record unchanged with a warning log, it never
// re-allocates or re-mints.
//
// Parameter preferredPort: when > 0 the allocator tries it before scanning
// the range.
//
// Returns: (record, nil) on success; (zero, bad_parameter) on an invalid
// range; (zero, no_available_port) when the range is exhausted. Announcement
// failure is logged and never returned.
//
// Called from cmd/main serve mode and from QuickStart.
func (r *Registrar) Start(preferredPort int) (domain.ServiceRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.record != nil {
		level.Warn(r.logger).Log("msg", "registrar already started, keeping original record", "port", r.record.Port)
		return *r.record, nil
	}

	port, err := r.allocator.FindPort(r.portRange, preferredPort)
	if err != nil {
		return domain.ServiceRecord{}, err
	}

	record := domain.ServiceRecord{
		ServiceID:         r.serviceID,
		Port:              port,
		InstanceID:        uuid.NewString(),
		PID:               os.Getpid(),
		Context:           r.projectContext,
		VerificationToken: uuid.NewString(),
		StartTime:         r.timeProvider.Now(),
		Status:            domain.StatusHealthy,
	}

	if err := r.announcer.Announce(record); err != nil {
		// Announcement is advisory: its absence must not fail registration.
		level.Warn(r.logger).Log("msg", "service announcement failed", "err", err)
	}

	r.record = &record
	level.Info(r.logger).Log(
		"msg", "service registered",
		"service_id", record.ServiceID,
		"port", record.Port,
		"instance_id", record.InstanceID,
		"pid", record.PID,
	)

	return record, nil
}

// Record returns the record built by Start and true, or (zero, false) before
// Start succeeded. Implements interfaces.HealthSource.
//
// Called from handlers.HTTPServer.GetHealth on every request.
func (r *Registrar) Record() (domain.ServiceRecord, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.record == nil {
		return domain.ServiceRecord{}, false
	}
	return *r.record, true
}

// Stop performs best-effort teardown of the optional announcement.
// Unannounce failure is logged, never returned. Idempotent; a no-op before
// Start.
//
// Called from cmd/main serve mode on shutdown (deferred).
func (r *Registrar) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.record == nil {
		return
	}
	if err := r.announcer.Unannounce(); err != nil {
		level.Warn(r.logger).Log("msg", "service unannounce failed", "err", err)
	}
}

// QuickStart is a convenience helper for simple consumers: it builds a
// Registrar with a real clock and immediately starts it.
//
// Returns: (registrar, record, nil) on success; (nil, zero, err) when Start
// fails (the error is the Start error, see Start).
//
// Called from library consumers that do not need custom wiring.
func QuickStart(
	serviceID string,
	portRange domain.PortRange,
	projectContext map[string]any,
	announcer interfaces.Announcer,
	logger log.Logger,
) (*Registrar, domain.ServiceRecord, error) {
	registrar := NewRegistrar(
		serviceID,
		portRange,
		projectContext,
		announcer,
		NewTimeProvider(func() time.Time { return time.Now().UTC() }),
		logger,
	)
	record, err := registrar.Start(0)
	if err != nil {
		return nil, domain.ServiceRecord{}, err
	}
	return registrar, record, nil
}

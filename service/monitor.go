package service

import (
	"context"
	"sync"
	"time"

	"mylocator/domain"
	"mylocator/helpers"
	"mylocator/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// recoveryRadius is the number of ports probed on each side of the tracked
// port when the health check fails. A restarted backend lands near its old
// port in practice, so the recovery scan stays narrow instead of re-walking
// the full discovery range.
const recoveryRadius = 10

// DefaultPollInterval is the monitor polling interval used when the caller
// passes a non-positive interval.
const DefaultPollInterval = 5 * time.Second

// Monitor tracks one previously discovered domain.ServiceRecord from a
// dedicated background goroutine and classifies liveness transitions:
//
//   - probe succeeds, InstanceID and PID match: still the same instance,
//     no event, keep polling;
//   - probe succeeds, InstanceID or PID differ: EventRestarted with the
//     newly observed record;
//   - probe fails: recovery scan over [port-10, port+10]; a match yields
//     EventRecovered, otherwise EventDisconnected.
//
// Every terminal event stops the monitor; it never re-arms itself. A restart
// is a one-shot notification: the caller owns the decision to build a new
// Monitor around the new record. At most one event is ever delivered per
// Monitor, strictly from the monitor's own goroutine, so delivery order is
// trivially preserved.
//
// Monitors are explicitly owned handles: construct, Start, and Stop them
// where the connection is owned. There is no package-level registry of
// active monitors.
//
// Fields under mu: started, stopping, terminal. stopCh is closed by the
// first Stop; done is closed when the loop goroutine exits.
type Monitor struct {
	record       domain.ServiceRecord
	prober       interfaces.Prober
	scanner      interfaces.Scanner
	onChange     func(domain.ChangeEvent)
	pollInterval time.Duration
	logger       log.Logger

	mu       sync.Mutex
	started  bool
	stopping bool
	terminal bool
	cancel   context.CancelFunc
	stopCh   chan struct{}
	done     chan struct{}
}

// NewMonitor creates a Monitor for the given record. Panics on nil prober,
// scanner, onChange or logger.
//
// Parameters: record, the instance to track (an immutable value, copied in);
// prober, health endpoint client; scanner, used for the narrowed recovery
// scan; onChange, callback receiving the single terminal event; pollInterval,
// time between health checks (non-positive means DefaultPollInterval);
// logger.
//
// Returns a stopped monitor; call Start to begin polling.
//
// Called from cmd/main attach mode.
func NewMonitor(
	record domain.ServiceRecord,
	prober interfaces.Prober,
	scanner interfaces.Scanner,
	onChange func(domain.ChangeEvent),
	pollInterval time.Duration,
	logger log.Logger,
) *Monitor {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	return &Monitor{
		record:       record,
		prober:       helpers.NilPanic(prober, "service.monitor.go: prober is required"),
		scanner:      helpers.NilPanic(scanner, "service.monitor.go: scanner is required"),
		onChange:     helpers.NilPanic(onChange, "service.monitor.go: onChange is required"),
		pollInterval: pollInterval,
		logger:       log.With(helpers.NilPanic(logger, "service.monitor.go: logger is required"), "component", "monitor"),
		stopCh:       make(chan struct{}),
		done:         make(chan struct{}),
	}
}

// Start launches the background polling goroutine. Idempotent; a no-op when
// already started, already stopped, or after a terminal event.
//
// Called from cmd/main attach mode after discovery.
func (m *Monitor) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started || m.stopping || m.terminal {
		return
	}
	m.started = true
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	go m.loop(ctx)
}

// Stop signals the polling loop to exit and waits for it, bounded by one
// polling interval. Idempotent; stopping a monitor that already fired its
// terminal event, or was never started, is a no-op. A stopped monitor fires
// no event.
//
// Called from cmd/main attach mode on shutdown and from any thread that owns
// the monitor.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.stopping {
		m.stopping = true
		close(m.stopCh)
		if m.cancel != nil {
			m.cancel()
		}
	}
	started := m.started
	m.mu.Unlock()

	if !started {
		return
	}
	select {
	case <-m.done:
	case <-time.After(m.pollInterval):
	}
}

// loop is the monitor's background goroutine: check immediately, then once
// per pollInterval until a terminal event or Stop. Runs cycles strictly
// sequentially, no overlapping probes for the same monitor.
func (m *Monitor) loop(ctx context.Context) {
	defer close(m.done)
	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()

	for {
		event := m.cycle(ctx)
		if event != nil {
			// Suppress delivery when Stop won the race during the cycle:
			// a cancelled probe or scan must not surface as disconnected.
			m.mu.Lock()
			if m.stopping {
				m.mu.Unlock()
				return
			}
			m.terminal = true
			m.mu.Unlock()

			level.Info(m.logger).Log(
				"msg", "service change detected",
				"event", event.Type,
				"service_id", event.Old.ServiceID,
				"old_port", event.Old.Port,
			)
			m.onChange(*event)
			return
		}

		select {
		case <-m.stopCh:
			return
		case <-ticker.C:
		}
	}
}

// cycle performs one health check against the tracked record and classifies
// the outcome. Exactly one of {nil, restarted, recovered, disconnected} is
// produced per cycle.
func (m *Monitor) cycle(ctx context.Context) *domain.ChangeEvent {
	observed, err := m.prober.FetchHealth(ctx, m.record.Port)
	if err == nil {
		if observed.InstanceID == m.record.InstanceID && observed.PID == m.record.PID {
			return nil
		}
		// The endpoint answers but with a different identity: the process
		// behind the port was replaced. instance_id and pid changes are
		// folded into the same classification.
		return &domain.ChangeEvent{Type: domain.EventRestarted, Old: m.record, New: &observed}
	}

	// Health check failed: look for the same service nearby before giving up.
	query := domain.DiscoveryQuery{
		Range:         recoveryRange(m.record.Port),
		ServiceID:     m.record.ServiceID,
		ContextSubset: m.record.Context,
	}
	if found, ok := m.scanner.Discover(ctx, query); ok {
		return &domain.ChangeEvent{Type: domain.EventRecovered, Old: m.record, New: found}
	}
	return &domain.ChangeEvent{Type: domain.EventDisconnected, Old: m.record, New: nil}
}

// recoveryRange is [port-recoveryRadius, port+recoveryRadius] clamped to the
// valid TCP port space.
func recoveryRange(port int) domain.PortRange {
	r := domain.PortRange{Min: port - recoveryRadius, Max: port + recoveryRadius}
	if r.Min < 1 {
		r.Min = 1
	}
	if r.Max > 65535 {
		r.Max = 65535
	}
	return r
}

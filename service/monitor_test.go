package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"mylocator/domain"
	"mylocator/interfaces/mock"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPollInterval = 10 * time.Millisecond

// eventCollector gathers monitor events thread-safely.
type eventCollector struct {
	mu     sync.Mutex
	events []domain.ChangeEvent
}

func (c *eventCollector) callback() func(domain.ChangeEvent) {
	return func(event domain.ChangeEvent) {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.events = append(c.events, event)
	}
}

func (c *eventCollector) snapshot() []domain.ChangeEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.ChangeEvent, len(c.events))
	copy(out, c.events)
	return out
}

func trackedRecord() domain.ServiceRecord {
	return healthyCandidate(7772, "instance-a")
}

func neverFindScanner() *mock.ScannerMock {
	return &mock.ScannerMock{
		DiscoverFunc: func(ctx context.Context, query domain.DiscoveryQuery) (*domain.ServiceRecord, bool) {
			return nil, false
		},
	}
}

func TestMonitor_SameInstance_NeverFiresEvent(t *testing.T) {
	tracked := trackedRecord()
	prober := &mock.ProberMock{
		FetchHealthFunc: func(ctx context.Context, port int) (domain.ServiceRecord, error) {
			return tracked, nil
		},
	}
	collector := &eventCollector{}
	monitor := NewMonitor(tracked, prober, neverFindScanner(), collector.callback(), testPollInterval, log.NewNopLogger())

	monitor.Start()
	defer monitor.Stop()

	// Let several polling cycles run.
	require.Eventually(t, func() bool {
		return len(prober.FetchHealthCalls()) >= 3
	}, time.Second, time.Millisecond)

	assert.Empty(t, collector.snapshot())
}

func TestMonitor_ChangedInstanceID_FiresRestartedOnceAndStops(t *testing.T) {
	tracked := trackedRecord()
	replacement := healthyCandidate(7772, "instance-b")
	replacement.PID = tracked.PID

	prober := &mock.ProberMock{
		FetchHealthFunc: func(ctx context.Context, port int) (domain.ServiceRecord, error) {
			return replacement, nil
		},
	}
	collector := &eventCollector{}
	monitor := NewMonitor(tracked, prober, neverFindScanner(), collector.callback(), testPollInterval, log.NewNopLogger())
	monitor.Start()

	require.Eventually(t, func() bool {
		return len(collector.snapshot()) == 1
	}, time.Second, time.Millisecond)

	events := collector.snapshot()
	assert.Equal(t, domain.EventRestarted, events[0].Type)
	assert.Equal(t, tracked, events[0].Old)
	require.NotNil(t, events[0].New)
	assert.Equal(t, "instance-b", events[0].New.InstanceID)

	// The monitor does not re-arm: no further probes, no further events.
	probes := len(prober.FetchHealthCalls())
	time.Sleep(5 * testPollInterval)
	assert.Equal(t, probes, len(prober.FetchHealthCalls()))
	assert.Len(t, collector.snapshot(), 1)
}

func TestMonitor_ChangedPID_FiresRestarted(t *testing.T) {
	tracked := trackedRecord()
	replacement := trackedRecord()
	replacement.PID = tracked.PID + 1

	prober := &mock.ProberMock{
		FetchHealthFunc: func(ctx context.Context, port int) (domain.ServiceRecord, error) {
			return replacement, nil
		},
	}
	collector := &eventCollector{}
	monitor := NewMonitor(tracked, prober, neverFindScanner(), collector.callback(), testPollInterval, log.NewNopLogger())
	monitor.Start()

	require.Eventually(t, func() bool {
		return len(collector.snapshot()) == 1
	}, time.Second, time.Millisecond)
	assert.Equal(t, domain.EventRestarted, collector.snapshot()[0].Type)
}

func TestMonitor_ProbeFailure_RecoversViaNarrowedScan(t *testing.T) {
	tracked := trackedRecord()
	relocated := healthyCandidate(7775, "instance-b")

	prober := &mock.ProberMock{
		FetchHealthFunc: func(ctx context.Context, port int) (domain.ServiceRecord, error) {
			return domain.ServiceRecord{}, errPortUnreachable
		},
	}
	scanner := &mock.ScannerMock{
		DiscoverFunc: func(ctx context.Context, query domain.DiscoveryQuery) (*domain.ServiceRecord, bool) {
			return &relocated, true
		},
	}
	collector := &eventCollector{}
	monitor := NewMonitor(tracked, prober, scanner, collector.callback(), testPollInterval, log.NewNopLogger())
	monitor.Start()

	require.Eventually(t, func() bool {
		return len(collector.snapshot()) == 1
	}, time.Second, time.Millisecond)

	events := collector.snapshot()
	assert.Equal(t, domain.EventRecovered, events[0].Type)
	assert.Equal(t, tracked, events[0].Old)
	require.NotNil(t, events[0].New)
	assert.Equal(t, 7775, events[0].New.Port)

	// The recovery scan is narrowed around the tracked port and carries its
	// identity and context.
	scans := scanner.DiscoverCalls()
	require.NotEmpty(t, scans)
	assert.Equal(t, domain.PortRange{Min: 7762, Max: 7782}, scans[0].Query.Range)
	assert.Equal(t, "backend-api", scans[0].Query.ServiceID)
	assert.Equal(t, tracked.Context, scans[0].Query.ContextSubset)

	// Terminal: exactly one event, no re-arm.
	time.Sleep(5 * testPollInterval)
	assert.Len(t, collector.snapshot(), 1)
}

func TestMonitor_ProbeFailure_NoCandidate_FiresDisconnected(t *testing.T) {
	tracked := trackedRecord()
	prober := &mock.ProberMock{
		FetchHealthFunc: func(ctx context.Context, port int) (domain.ServiceRecord, error) {
			return domain.ServiceRecord{}, errPortUnreachable
		},
	}
	collector := &eventCollector{}
	monitor := NewMonitor(tracked, prober, neverFindScanner(), collector.callback(), testPollInterval, log.NewNopLogger())
	monitor.Start()

	require.Eventually(t, func() bool {
		return len(collector.snapshot()) == 1
	}, time.Second, time.Millisecond)

	events := collector.snapshot()
	assert.Equal(t, domain.EventDisconnected, events[0].Type)
	assert.Equal(t, tracked, events[0].Old)
	assert.Nil(t, events[0].New)

	time.Sleep(5 * testPollInterval)
	assert.Len(t, collector.snapshot(), 1)
}

func TestMonitor_RecoveryRangeClampedAtPortSpaceEdges(t *testing.T) {
	tracked := trackedRecord()
	tracked.Port = 4

	prober := &mock.ProberMock{
		FetchHealthFunc: func(ctx context.Context, port int) (domain.ServiceRecord, error) {
			return domain.ServiceRecord{}, errPortUnreachable
		},
	}
	scanner := neverFindScanner()
	collector := &eventCollector{}
	monitor := NewMonitor(tracked, prober, scanner, collector.callback(), testPollInterval, log.NewNopLogger())
	monitor.Start()

	require.Eventually(t, func() bool {
		return len(scanner.DiscoverCalls()) >= 1
	}, time.Second, time.Millisecond)
	monitor.Stop()

	assert.Equal(t, domain.PortRange{Min: 1, Max: 14}, scanner.DiscoverCalls()[0].Query.Range)
}

func TestMonitor_Stop_FiresNoEvent(t *testing.T) {
	tracked := trackedRecord()
	prober := &mock.ProberMock{
		FetchHealthFunc: func(ctx context.Context, port int) (domain.ServiceRecord, error) {
			return tracked, nil
		},
	}
	collector := &eventCollector{}
	monitor := NewMonitor(tracked, prober, neverFindScanner(), collector.callback(), testPollInterval, log.NewNopLogger())
	monitor.Start()

	require.Eventually(t, func() bool {
		return len(prober.FetchHealthCalls()) >= 1
	}, time.Second, time.Millisecond)

	monitor.Stop()
	probes := len(prober.FetchHealthCalls())
	time.Sleep(5 * testPollInterval)

	// The loop exited within an interval and delivered nothing.
	assert.LessOrEqual(t, len(prober.FetchHealthCalls()), probes+1)
	assert.Empty(t, collector.snapshot())
}

func TestMonitor_Stop_Idempotent(t *testing.T) {
	tracked := trackedRecord()
	prober := &mock.ProberMock{
		FetchHealthFunc: func(ctx context.Context, port int) (domain.ServiceRecord, error) {
			return tracked, nil
		},
	}
	monitor := NewMonitor(tracked, prober, neverFindScanner(), func(domain.ChangeEvent) {}, testPollInterval, log.NewNopLogger())
	monitor.Start()

	assert.NotPanics(t, func() {
		monitor.Stop()
		monitor.Stop()
		monitor.Stop()
	})
}

func TestMonitor_Stop_AfterTerminalEventIsNoOp(t *testing.T) {
	tracked := trackedRecord()
	prober := &mock.ProberMock{
		FetchHealthFunc: func(ctx context.Context, port int) (domain.ServiceRecord, error) {
			return domain.ServiceRecord{}, errPortUnreachable
		},
	}
	collector := &eventCollector{}
	monitor := NewMonitor(tracked, prober, neverFindScanner(), collector.callback(), testPollInterval, log.NewNopLogger())
	monitor.Start()

	require.Eventually(t, func() bool {
		return len(collector.snapshot()) == 1
	}, time.Second, time.Millisecond)

	assert.NotPanics(t, func() { monitor.Stop() })
	assert.Len(t, collector.snapshot(), 1)
}

func TestMonitor_StopBeforeStart_IsNoOp(t *testing.T) {
	prober := &mock.ProberMock{}
	monitor := NewMonitor(trackedRecord(), prober, neverFindScanner(), func(domain.ChangeEvent) {}, testPollInterval, log.NewNopLogger())

	assert.NotPanics(t, func() { monitor.Stop() })

	// Start after Stop does not resurrect the monitor.
	monitor.Start()
	time.Sleep(3 * testPollInterval)
	assert.Empty(t, prober.FetchHealthCalls())
}

func TestMonitor_StartIdempotent(t *testing.T) {
	tracked := trackedRecord()
	prober := &mock.ProberMock{
		FetchHealthFunc: func(ctx context.Context, port int) (domain.ServiceRecord, error) {
			return tracked, nil
		},
	}
	monitor := NewMonitor(tracked, prober, neverFindScanner(), func(domain.ChangeEvent) {}, testPollInterval, log.NewNopLogger())
	monitor.Start()
	monitor.Start()
	defer monitor.Stop()

	// A second Start must not spawn a second loop; cycles stay sequential,
	// roughly one per interval.
	time.Sleep(10 * testPollInterval)
	calls := len(prober.FetchHealthCalls())
	assert.LessOrEqual(t, calls, 25)
}

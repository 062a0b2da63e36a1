package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"mylocator/domain"
	"mylocator/interfaces/mock"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errPortUnreachable = errors.New("connection refused")

func healthyCandidate(port int, instanceID string) domain.ServiceRecord {
	return domain.ServiceRecord{
		ServiceID:         "backend-api",
		Port:              port,
		InstanceID:        instanceID,
		PID:               4242,
		Context:           map[string]any{"project": "demo", "version": "0.12.2"},
		VerificationToken: "token-" + instanceID,
		StartTime:         time.Date(2026, 2, 19, 12, 0, 0, 0, time.UTC),
		Status:            domain.StatusHealthy,
	}
}

// proberForPorts answers with the given record per port and
// errPortUnreachable everywhere else.
func proberForPorts(records map[int]domain.ServiceRecord) *mock.ProberMock {
	return &mock.ProberMock{
		FetchHealthFunc: func(ctx context.Context, port int) (domain.ServiceRecord, error) {
			record, ok := records[port]
			if !ok {
				return domain.ServiceRecord{}, errPortUnreachable
			}
			return record, nil
		},
	}
}

func TestScanner_Discover_FindsMatchingService(t *testing.T) {
	prober := proberForPorts(map[int]domain.ServiceRecord{
		7775: healthyCandidate(7775, "instance-a"),
	})
	scanner := NewScanner(prober, log.NewNopLogger())

	record, ok := scanner.Discover(context.Background(), domain.DiscoveryQuery{
		Range:     domain.PortRange{Min: 7770, Max: 7779},
		ServiceID: "backend-api",
	})
	require.True(t, ok)
	assert.Equal(t, 7775, record.Port)
	assert.Equal(t, "instance-a", record.InstanceID)

	// The walk stops at the match: ports above 7775 are never probed.
	for _, call := range prober.FetchHealthCalls() {
		assert.LessOrEqual(t, call.Port, 7775)
	}
}

func TestScanner_Discover_LowestPortWinsOnDuplicateServiceID(t *testing.T) {
	prober := proberForPorts(map[int]domain.ServiceRecord{
		7772: healthyCandidate(7772, "instance-a"),
		7775: healthyCandidate(7775, "instance-b"),
	})
	scanner := NewScanner(prober, log.NewNopLogger())

	record, ok := scanner.Discover(context.Background(), domain.DiscoveryQuery{
		Range:     domain.PortRange{Min: 7770, Max: 7779},
		ServiceID: "backend-api",
	})
	require.True(t, ok)
	assert.Equal(t, 7772, record.Port)
	assert.Equal(t, "instance-a", record.InstanceID)
}

func TestScanner_Discover_ServiceIDMismatchRejected(t *testing.T) {
	other := healthyCandidate(7772, "instance-a")
	other.ServiceID = "other-api"
	prober := proberForPorts(map[int]domain.ServiceRecord{7772: other})
	scanner := NewScanner(prober, log.NewNopLogger())

	record, ok := scanner.Discover(context.Background(), domain.DiscoveryQuery{
		Range:     domain.PortRange{Min: 7770, Max: 7779},
		ServiceID: "backend-api",
	})
	assert.False(t, ok)
	assert.Nil(t, record)
}

func TestScanner_Discover_UnhealthyCandidateRejected(t *testing.T) {
	degraded := healthyCandidate(7772, "instance-a")
	degraded.Status = "degraded"
	prober := proberForPorts(map[int]domain.ServiceRecord{7772: degraded})
	scanner := NewScanner(prober, log.NewNopLogger())

	_, ok := scanner.Discover(context.Background(), domain.DiscoveryQuery{
		Range:     domain.PortRange{Min: 7770, Max: 7779},
		ServiceID: "backend-api",
	})
	assert.False(t, ok)
}

func TestScanner_Discover_ContextSubsetMatch(t *testing.T) {
	tests := []struct {
		name   string
		subset map[string]any
		wantOK bool
	}{
		{name: "empty subset matches anything", subset: map[string]any{}, wantOK: true},
		{name: "nil subset matches anything", subset: nil, wantOK: true},
		{name: "matching single key", subset: map[string]any{"project": "demo"}, wantOK: true},
		{name: "matching full context", subset: map[string]any{"project": "demo", "version": "0.12.2"}, wantOK: true},
		{name: "value mismatch", subset: map[string]any{"project": "other"}, wantOK: false},
		{name: "key absent from candidate", subset: map[string]any{"tier": "prod"}, wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prober := proberForPorts(map[int]domain.ServiceRecord{
				7772: healthyCandidate(7772, "instance-a"),
			})
			scanner := NewScanner(prober, log.NewNopLogger())

			record, ok := scanner.Discover(context.Background(), domain.DiscoveryQuery{
				Range:         domain.PortRange{Min: 7770, Max: 7779},
				ServiceID:     "backend-api",
				ContextSubset: tt.subset,
			})
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				require.NotNil(t, record)
				assert.Equal(t, "backend-api", record.ServiceID)
			}
		})
	}
}

func TestScanner_Discover_EmptyRangeReturnsNotFound(t *testing.T) {
	prober := proberForPorts(nil)
	scanner := NewScanner(prober, log.NewNopLogger())

	record, ok := scanner.Discover(context.Background(), domain.DiscoveryQuery{
		Range:     domain.PortRange{Min: 7770, Max: 7779},
		ServiceID: "backend-api",
	})
	assert.False(t, ok)
	assert.Nil(t, record)

	// Every port in the range was tried exactly once, in ascending order.
	calls := prober.FetchHealthCalls()
	require.Len(t, calls, 10)
	for i, call := range calls {
		assert.Equal(t, 7770+i, call.Port)
	}
}

func TestScanner_Discover_InvalidRangeReturnsNotFound(t *testing.T) {
	prober := proberForPorts(nil)
	scanner := NewScanner(prober, log.NewNopLogger())

	_, ok := scanner.Discover(context.Background(), domain.DiscoveryQuery{
		Range:     domain.PortRange{Min: 7779, Max: 7770},
		ServiceID: "backend-api",
	})
	assert.False(t, ok)
	assert.Empty(t, prober.FetchHealthCalls())
}

func TestScanner_Discover_CancelledContextAbortsWalk(t *testing.T) {
	prober := proberForPorts(map[int]domain.ServiceRecord{
		7775: healthyCandidate(7775, "instance-a"),
	})
	scanner := NewScanner(prober, log.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	record, ok := scanner.Discover(ctx, domain.DiscoveryQuery{
		Range:     domain.PortRange{Min: 7770, Max: 7779},
		ServiceID: "backend-api",
	})
	assert.False(t, ok)
	assert.Nil(t, record)
	assert.Empty(t, prober.FetchHealthCalls())
}

package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"mylocator/domain"
	"mylocator/helpers"
	"mylocator/interfaces"
)

// healthPath is the health endpoint path of the wire contract, the same path
// handlers.RegisterHandlers serves.
const healthPath = "/api/health"

// probeUserAgent identifies discovery/monitor probes in backend access logs.
const probeUserAgent = "mylocator-probe"

// ProberHTTP creates an interfaces.Prober that issues GET
// http://127.0.0.1:{port}/api/health and reconstructs a domain.ServiceRecord
// from the JSON body. Panics on nil client.
//
// Parameter client: HTTP client; give it a short timeout (a couple of
// seconds) so a full-range scan completes in bounded time. cmd/main uses the
// configured probe timeout.
//
// Returns: interfaces.Prober (*proberHTTP).
//
// Called from cmd/main attach mode when building the Scanner and Monitor.
func ProberHTTP(client *http.Client) interfaces.Prober {
	return &proberHTTP{
		client: helpers.NilPanic(client, "adapters.probe.go: http client is required"),
	}
}

// proberHTTP implements interfaces.Prober. Holds only the http.Client; the
// target host is always loopback, discovery is machine-local.
type proberHTTP struct {
	client *http.Client
}

// healthPayload is the JSON shape of the health endpoint response. Pointer
// fields distinguish a missing required field from a zero value: a response
// missing any required field is treated the same as an unreachable port.
type healthPayload struct {
	Service           *string        `json:"service"`
	Status            *string        `json:"status"`
	Port              *int           `json:"port"`
	InstanceID        *string        `json:"instance_id"`
	PID               *int           `json:"pid"`
	VerificationToken *string        `json:"verification_token"`
	ProjectContext    map[string]any `json:"project_context"`
	UptimeSeconds     *float64       `json:"uptime_seconds"`
	StartTime         *string        `json:"start_time"`
}

// FetchHealth performs one bounded probe of 127.0.0.1:port. Non-2xx status,
// network errors, malformed JSON, missing required fields and an unparsable
// start_time all come back as plain errors; callers fold every shape into
// "no usable candidate at this port".
//
// Returns: (record, nil) on a well-formed payload; (zero, error) otherwise.
//
// Called from service.Scanner.Discover and service.Monitor polling cycles.
func (p *proberHTTP) FetchHealth(ctx context.Context, port int) (domain.ServiceRecord, error) {
	reqURL := fmt.Sprintf("http://127.0.0.1:%d%s", port, healthPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.ServiceRecord{}, err
	}
	req.Header.Set("User-Agent", probeUserAgent)

	resp, err := p.client.Do(req)
	if err != nil {
		return domain.ServiceRecord{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, resp.Body)
		return domain.ServiceRecord{}, fmt.Errorf("health endpoint on port %d returned %d", port, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.ServiceRecord{}, err
	}

	var payload healthPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.ServiceRecord{}, fmt.Errorf("health endpoint on port %d: malformed body: %w", port, err)
	}

	return toServiceRecord(payload, port)
}

// toServiceRecord validates the payload's required fields and converts it to
// a domain.ServiceRecord. project_context and uptime_seconds are optional:
// context may legitimately be empty and uptime is derived data.
func toServiceRecord(payload healthPayload, port int) (domain.ServiceRecord, error) {
	switch {
	case payload.Service == nil:
		return domain.ServiceRecord{}, fmt.Errorf("health payload on port %d: missing service", port)
	case payload.Status == nil:
		return domain.ServiceRecord{}, fmt.Errorf("health payload on port %d: missing status", port)
	case payload.Port == nil:
		return domain.ServiceRecord{}, fmt.Errorf("health payload on port %d: missing port", port)
	case payload.InstanceID == nil:
		return domain.ServiceRecord{}, fmt.Errorf("health payload on port %d: missing instance_id", port)
	case payload.PID == nil:
		return domain.ServiceRecord{}, fmt.Errorf("health payload on port %d: missing pid", port)
	case payload.VerificationToken == nil:
		return domain.ServiceRecord{}, fmt.Errorf("health payload on port %d: missing verification_token", port)
	case payload.StartTime == nil:
		return domain.ServiceRecord{}, fmt.Errorf("health payload on port %d: missing start_time", port)
	}

	startTime, err := time.Parse(time.RFC3339Nano, *payload.StartTime)
	if err != nil {
		return domain.ServiceRecord{}, fmt.Errorf("health payload on port %d: bad start_time: %w", port, err)
	}

	return domain.ServiceRecord{
		ServiceID:         *payload.Service,
		Port:              *payload.Port,
		InstanceID:        *payload.InstanceID,
		PID:               *payload.PID,
		Context:           payload.ProjectContext,
		VerificationToken: *payload.VerificationToken,
		StartTime:         startTime,
		Status:            *payload.Status,
	}, nil
}

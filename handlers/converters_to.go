package handlers

import (
	"time"

	"mylocator/domain"
)

// toHealthResponse converts a domain.ServiceRecord to the API response.
// uptime_seconds is computed fresh from now on every call; project_context
// is never null on the wire, an absent context renders as {}.
func toHealthResponse(record domain.ServiceRecord, now time.Time) HealthResponse {
	context := record.Context
	if context == nil {
		context = map[string]any{}
	}
	return HealthResponse{
		Service:           record.ServiceID,
		Status:            record.Status,
		Port:              record.Port,
		InstanceId:        record.InstanceID,
		Pid:               record.PID,
		VerificationToken: record.VerificationToken,
		ProjectContext:    context,
		UptimeSeconds:     now.Sub(record.StartTime).Seconds(),
		StartTime:         record.StartTime.Format(time.RFC3339Nano),
	}
}

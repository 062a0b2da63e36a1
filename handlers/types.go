package handlers

// HealthResponse is the JSON body of GET /api/health, the wire contract
// probed by discovery and monitoring (see api/openapi.yaml).
type HealthResponse struct {
	Service           string         `json:"service"`
	Status            string         `json:"status"`
	Port              int            `json:"port"`
	InstanceId        string         `json:"instance_id"`
	Pid               int            `json:"pid"`
	VerificationToken string         `json:"verification_token"`
	ProjectContext    map[string]any `json:"project_context"`
	UptimeSeconds     float64        `json:"uptime_seconds"`
	StartTime         string         `json:"start_time"`
}

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"mylocator/domain"
)

// Run modes: serve registers this process and hosts its health endpoint;
// attach discovers a running service and monitors it.
const (
	ModeServe  = "serve"
	ModeAttach = "attach"
)

const (
	defaultPollIntervalMs = 5000
	defaultProbeTimeoutMs = 2000
)

type MyLocatorConfig struct {
	Mode           string
	ServiceID      string
	PortRange      domain.PortRange
	PreferredPort  int
	ProjectContext map[string]any
	Announcer      domain.AnnouncerKind
	MDNSName       string
	PollInterval   time.Duration
	ProbeTimeout   time.Duration
}

// LoadConfig loads configuration from environment variables.
// SERVICE_ID, PORT_MIN and PORT_MAX are required. Optional: MODE
// (serve|attach, default serve), PREFERRED_PORT, PROJECT_CONTEXT (JSON
// object), ANNOUNCER (none|mdns, default none), MDNS_NAME (required for
// mdns), POLL_INTERVAL_MS (default 5000), PROBE_TIMEOUT_MS (default 2000).
func LoadConfig() (*MyLocatorConfig, error) {
	serviceID := os.Getenv("SERVICE_ID")
	if serviceID == "" {
		return nil, fmt.Errorf("SERVICE_ID is required")
	}

	portMin, err := requiredIntEnv("PORT_MIN")
	if err != nil {
		return nil, err
	}
	portMax, err := requiredIntEnv("PORT_MAX")
	if err != nil {
		return nil, err
	}
	portRange := domain.PortRange{Min: portMin, Max: portMax}
	if !portRange.Valid() {
		return nil, fmt.Errorf("invalid port range %d-%d", portMin, portMax)
	}

	mode := os.Getenv("MODE")
	if mode == "" {
		mode = ModeServe
	}
	if mode != ModeServe && mode != ModeAttach {
		return nil, fmt.Errorf("invalid MODE %q (want %s or %s)", mode, ModeServe, ModeAttach)
	}

	preferredPort, err := optionalIntEnv("PREFERRED_PORT", 0)
	if err != nil {
		return nil, err
	}

	var projectContext map[string]any
	if raw := os.Getenv("PROJECT_CONTEXT"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &projectContext); err != nil {
			return nil, fmt.Errorf("invalid PROJECT_CONTEXT: %w", err)
		}
	}

	announcer := domain.AnnouncerKind(os.Getenv("ANNOUNCER"))
	if announcer == "" {
		announcer = domain.AnnouncerNone
	}
	if announcer != domain.AnnouncerNone && announcer != domain.AnnouncerMDNS {
		return nil, fmt.Errorf("invalid ANNOUNCER %q (want %s or %s)", announcer, domain.AnnouncerNone, domain.AnnouncerMDNS)
	}
	mdnsName := os.Getenv("MDNS_NAME")
	if announcer == domain.AnnouncerMDNS && mdnsName == "" {
		return nil, fmt.Errorf("MDNS_NAME is required when ANNOUNCER=mdns")
	}

	pollIntervalMs, err := optionalIntEnv("POLL_INTERVAL_MS", defaultPollIntervalMs)
	if err != nil {
		return nil, err
	}
	if pollIntervalMs <= 0 {
		return nil, fmt.Errorf("POLL_INTERVAL_MS must be positive")
	}

	probeTimeoutMs, err := optionalIntEnv("PROBE_TIMEOUT_MS", defaultProbeTimeoutMs)
	if err != nil {
		return nil, err
	}
	if probeTimeoutMs <= 0 {
		return nil, fmt.Errorf("PROBE_TIMEOUT_MS must be positive")
	}

	return &MyLocatorConfig{
		Mode:           mode,
		ServiceID:      serviceID,
		PortRange:      portRange,
		PreferredPort:  preferredPort,
		ProjectContext: projectContext,
		Announcer:      announcer,
		MDNSName:       mdnsName,
		PollInterval:   time.Duration(pollIntervalMs) * time.Millisecond,
		ProbeTimeout:   time.Duration(probeTimeoutMs) * time.Millisecond,
	}, nil
}

func requiredIntEnv(name string) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return value, nil
}

func optionalIntEnv(name string, fallback int) (int, error) {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", name, err)
	}
	return value, nil
}

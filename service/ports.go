package service

import (
	"fmt"
	"net"

	"mylocator/domain"
	"mylocator/helpers"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// PortAllocator finds a free TCP port on the loopback interface inside a
// bounded range. The availability probe is listen-bind-close: nothing
// persists after the probe, so a race exists between the probe and the
// moment the caller actually binds the port. A concurrent process may steal
// the port in that window. This is an accepted low-probability risk of
// registry-less discovery; the allocator deliberately does not hold the
// port or take any cross-process lock.
type PortAllocator struct {
	logger log.Logger
}

// NewPortAllocator creates a PortAllocator. Panics on nil logger.
//
// Called from NewRegistrar and from cmd/main.
func NewPortAllocator(logger log.Logger) *PortAllocator {
	return &PortAllocator{
		logger: log.With(helpers.NilPanic(logger, "service.ports.go: logger is required"), "component", "port_allocator"),
	}
}

// FindPort returns a free TCP port inside r. When preferred is > 0 and
// currently bindable it is returned without scanning; otherwise the range is
// scanned min..max inclusive in ascending order and the first bindable port
// wins. The allocator never retries or waits: on an exhausted range the
// caller decides whether to widen the range or abort.
//
// Parameters: r, inclusive port range, must be valid; preferred, optional
// port to try first, 0 means none.
//
// Returns: (port, nil) on success; (0, bad_parameter) on an invalid range;
// (0, no_available_port) when every port in r is taken.
//
// Called from Registrar.Start.
func (a *PortAllocator) FindPort(r domain.PortRange, preferred int) (int, error) {
	if !r.Valid() {
		return 0, NewBadParameterError(fmt.Sprintf("invalid port range %d-%d", r.Min, r.Max), nil)
	}

	if preferred > 0 && a.isPortAvailable(preferred) {
		return preferred, nil
	}

	for port := r.Min; port <= r.Max; port++ {
		if a.isPortAvailable(port) {
			level.Debug(a.logger).Log("msg", "allocated port", "port", port)
			return port, nil
		}
	}

	return 0, NewNoAvailablePortError(fmt.Sprintf("no available ports in range %d-%d", r.Min, r.Max), nil)
}

// isPortAvailable probes a single port with a loopback listen-bind-close.
// Binding 127.0.0.1 matches where the health endpoint will listen; the
// listener is closed immediately, the probe only tests bindability.
func (a *PortAllocator) isPortAvailable(port int) bool {
	listener, err := net.Listen("tcp", fmt.Sprintf("127.0.0.1:%d", port))
	if err != nil {
		return false
	}
	_ = listener.Close()
	return true
}

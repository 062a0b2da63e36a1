package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mylocator/adapters"
	"mylocator/api"
	"mylocator/domain"
	"mylocator/handlers"
	"mylocator/interfaces"
	"mylocator/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/labstack/echo/v4"
)

func main() {
	// Initialize logger
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.WithPrefix(logger, "ts", log.DefaultTimestampUTC)
	logger = log.WithPrefix(logger, "caller", log.DefaultCaller)

	level.Info(logger).Log("msg", "Starting MyLocator")

	// Load configuration
	config, err := LoadConfig()
	if err != nil {
		level.Error(logger).Log("msg", "Failed to load configuration", "err", err)
		os.Exit(1)
	}
	level.Info(logger).Log(
		"msg", "Configuration loaded",
		"mode", config.Mode,
		"service_id", config.ServiceID,
		"port_min", config.PortRange.Min,
		"port_max", config.PortRange.Max,
	)

	// Fail fast on a broken embedded API description
	if _, err := api.Load(); err != nil {
		level.Error(logger).Log("msg", "Embedded OpenAPI document is invalid", "err", err)
		os.Exit(1)
	}

	timeProvider := service.NewTimeProvider(func() time.Time { return time.Now().UTC() })

	switch config.Mode {
	case ModeServe:
		runServe(config, timeProvider, logger)
	case ModeAttach:
		runAttach(config, logger)
	}
}

// runServe registers this process and hosts its health endpoint until
// SIGINT/SIGTERM.
func runServe(config *MyLocatorConfig, timeProvider interfaces.TimeProvider, logger log.Logger) {
	// Create announcer and registrar
	var registrar *service.Registrar
	var record domain.ServiceRecord
	{
		announcer, err := adapters.NewAnnouncer(config.Announcer, config.MDNSName, logger)
		if err != nil {
			level.Error(logger).Log("msg", "Failed to create announcer", "err", err)
			os.Exit(1)
		}

		registrar = service.NewRegistrar(
			config.ServiceID,
			config.PortRange,
			config.ProjectContext,
			announcer,
			timeProvider,
			logger,
		)
		record, err = registrar.Start(config.PreferredPort)
		if err != nil {
			level.Error(logger).Log("msg", "Failed to register service", "err", err)
			os.Exit(1)
		}
	}
	defer registrar.Stop()

	// Create HTTP server (Echo)
	var e *echo.Echo
	{
		e = echo.New()
		e.HideBanner = true
		service.RegisterErrorHandler(e, logger)
		handlers.RegisterHandlers(e, handlers.NewHTTPServer(registrar, timeProvider, logger))
	}

	// Setup graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	// Start server in a goroutine
	go func() {
		addr := fmt.Sprintf("127.0.0.1:%d", record.Port)
		level.Info(logger).Log("msg", "Starting HTTP server", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			level.Error(logger).Log("msg", "HTTP server error", "err", err)
		}
	}()

	// Wait for interrupt signal
	<-quit
	level.Info(logger).Log("msg", "Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		level.Error(logger).Log("msg", "Error during server shutdown", "err", err)
	}

	level.Info(logger).Log("msg", "Server stopped")
}

// runAttach discovers a running service in the configured range and monitors
// it until a terminal event or SIGINT/SIGTERM. Discovery failure and the
// disconnected event are reported as log lines and exit codes, never as
// panics: a wrapping UI always gets a renderable "not connected" state.
func runAttach(config *MyLocatorConfig, logger log.Logger) {
	prober := adapters.ProberHTTP(&http.Client{Timeout: config.ProbeTimeout})
	scanner := service.NewScanner(prober, logger)

	record, ok := scanner.Discover(context.Background(), domain.DiscoveryQuery{
		Range:         config.PortRange,
		ServiceID:     config.ServiceID,
		ContextSubset: config.ProjectContext,
	})
	if !ok {
		level.Error(logger).Log(
			"msg", "Service not found",
			"service_id", config.ServiceID,
			"port_min", config.PortRange.Min,
			"port_max", config.PortRange.Max,
		)
		os.Exit(1)
	}
	level.Info(logger).Log(
		"msg", "Service discovered",
		"service_id", record.ServiceID,
		"port", record.Port,
		"instance_id", record.InstanceID,
		"pid", record.PID,
	)

	// Monitor until the one terminal event
	terminal := make(chan domain.ChangeEvent, 1)
	monitor := service.NewMonitor(
		*record,
		prober,
		scanner,
		func(event domain.ChangeEvent) { terminal <- event },
		config.PollInterval,
		logger,
	)
	monitor.Start()
	defer monitor.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case <-quit:
		level.Info(logger).Log("msg", "Stopping monitor...")
	case event := <-terminal:
		switch event.Type {
		case domain.EventRestarted, domain.EventRecovered:
			level.Info(logger).Log(
				"msg", "Service moved",
				"event", event.Type,
				"new_port", event.New.Port,
				"new_instance_id", event.New.InstanceID,
				"same_instance", service.SameInstance(event.Old, *event.New),
			)
		case domain.EventDisconnected:
			level.Error(logger).Log("msg", "Service disconnected", "service_id", event.Old.ServiceID)
			os.Exit(1)
		}
	}
}

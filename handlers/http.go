// Package handlers contains http handlers for mylocator.
package handlers

import (
	"net/http"

	"mylocator/api"
	"mylocator/helpers"
	"mylocator/interfaces"
	"mylocator/service"

	"github.com/go-kit/log"
	"github.com/labstack/echo/v4"
)

// ServerInterface is the set of handlers behind RegisterHandlers.
// Implemented by HTTPServer; tests may substitute their own implementation.
type ServerInterface interface {
	// GetHealth (GET /api/health) renders the current service record.
	GetHealth(ectx echo.Context) error
	// GetOpenAPISpec (GET /api/openapi.yaml) serves the embedded API description.
	GetOpenAPISpec(ectx echo.Context) error
}

// RegisterHandlers wires the health API routes onto e.
func RegisterHandlers(e *echo.Echo, server ServerInterface) {
	e.GET("/api/health", server.GetHealth)
	e.GET("/api/openapi.yaml", server.GetOpenAPISpec)
}

// HTTPServer implements ServerInterface on top of an interfaces.HealthSource
// (the Registrar in prod). It owns no state of its own: the record comes from
// the source on every request and uptime is recomputed per call.
type HTTPServer struct {
	source       interfaces.HealthSource
	timeProvider interfaces.TimeProvider
	logger       log.Logger
}

// NewHTTPServer creates a new HTTPServer. Panics on nil source, timeProvider
// or logger.
//
// Called from cmd/main serve mode.
func NewHTTPServer(source interfaces.HealthSource, timeProvider interfaces.TimeProvider, logger log.Logger) *HTTPServer {
	return &HTTPServer{
		source:       helpers.NilPanic(source, "handlers.http.go: health source is required"),
		timeProvider: helpers.NilPanic(timeProvider, "handlers.http.go: time provider is required"),
		logger:       log.WithPrefix(helpers.NilPanic(logger, "handlers.http.go: logger is required"), "component", "HTTPServer"),
	}
}

// GetHealth (GET /api/health) renders the wire payload for the current
// record. Returns 200 with the payload once the registrar started, 404
// (entity_not_found) before that; probing callers treat the 404 exactly like
// an unreachable port.
func (h *HTTPServer) GetHealth(ectx echo.Context) error {
	record, ok := h.source.Record()
	if !ok {
		return service.NewEntityNotFoundError("service not started", nil)
	}

	return ectx.JSON(http.StatusOK, toHealthResponse(record, h.timeProvider.Now()))
}

// GetOpenAPISpec (GET /api/openapi.yaml) serves the embedded OpenAPI
// document describing this API.
func (h *HTTPServer) GetOpenAPISpec(ectx echo.Context) error {
	return ectx.Blob(http.StatusOK, "application/yaml", api.Spec())
}

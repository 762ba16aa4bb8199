package handler

import (
	"context"
	"net/http"
	"time"

	"sampleroom-api/pkg/response"
)

// Pinger is anything that can report connectivity for readiness checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler contains shared HTTP handlers and their dependencies.
type Handler struct {
	version string
	store   Pinger
	audit   Pinger
}

// New creates a new handler.
func New(version string, store, audit Pinger) *Handler {
	return &Handler{version: version, store: store, audit: audit}
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}

// Health handles GET /api/v1/health
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   h.version,
	}
	response.OK(w, resp)
}

// ReadyResponse represents the readiness check response.
type ReadyResponse struct {
	Ready     bool      `json:"ready"`
	Timestamp time.Time `json:"timestamp"`
	Checks    []Check   `json:"checks"`
}

// Check represents an individual readiness check.
type Check struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Ready handles GET /api/v1/ready
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	checks := []Check{
		h.check(r.Context(), "store", h.store),
		h.check(r.Context(), "audit", h.audit),
	}

	allReady := true
	for _, check := range checks {
		if check.Status != "ok" {
			allReady = false
		}
	}

	resp := ReadyResponse{
		Ready:     allReady,
		Timestamp: time.Now().UTC(),
		Checks:    checks,
	}

	status := http.StatusOK
	if !allReady {
		status = http.StatusServiceUnavailable
	}
	response.JSON(w, status, resp)
}

func (h *Handler) check(ctx context.Context, name string, p Pinger) Check {
	if p == nil {
		return Check{Name: name, Status: "disabled"}
	}
	if err := p.Ping(ctx); err != nil {
		return Check{Name: name, Status: "error"}
	}
	return Check{Name: name, Status: "ok"}
}

// Status handles GET /api/status
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]interface{}{
		"service": "sampleroom-api",
		"version": h.version,
		"status":  "running",
	})
}

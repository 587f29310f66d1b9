package handler

import (
	"net/http"

	"github.com/chatcart/crm-platform/internal/events"
)

// HealthHandler handles health check endpoints.
type HealthHandler struct {
	natsClient *events.Client
}

// NewHealthHandler creates a new health handler. The NATS client may be
// nil when event publishing is disabled.
func NewHealthHandler(natsClient *events.Client) *HealthHandler {
	return &HealthHandler{
		natsClient: natsClient,
	}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

// Ready handles GET /ready. Event publishing is best-effort, so a missing
// NATS connection degrades readiness but does not fail it.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	events := "disabled"
	if h.natsClient != nil {
		if h.natsClient.IsConnected() {
			events = "connected"
		} else {
			events = "disconnected"
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ready",
		"events": events,
	})
}

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chatcart/crm-platform/internal/model"
	"github.com/chatcart/crm-platform/internal/service"
	"github.com/chatcart/crm-platform/pkg/logger"
)

// ContactHandler handles contact endpoints.
type ContactHandler struct {
	service *service.ContactService
	logger  *logger.Logger
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(svc *service.ContactService, log *logger.Logger) *ContactHandler {
	return &ContactHandler{
		service: svc,
		logger:  log,
	}
}

// List handles GET /api/v1/contacts. An optional channel+handle pair looks
// up a single contact.
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if handle := q.Get("handle"); handle != "" {
		contact, ok := h.service.Store().ByHandle(model.Channel(q.Get("channel")), handle)
		if !ok {
			writeError(w, http.StatusNotFound, "contact not found")
			return
		}
		writeJSON(w, http.StatusOK, contact)
		return
	}
	writeJSON(w, http.StatusOK, h.service.Store().GetActive())
}

// Get handles GET /api/v1/contacts/:id
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	contact, ok := h.service.Store().Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "contact not found")
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

// Refresh handles POST /api/v1/contacts/refresh
func (h *ContactHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Refresh(r.Context()); err != nil {
		h.logger.Error("contact refresh failed")
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

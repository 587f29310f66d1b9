package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chatcart/crm-platform/internal/middleware"
	"github.com/chatcart/crm-platform/internal/model"
	"github.com/chatcart/crm-platform/internal/service"
	"github.com/chatcart/crm-platform/internal/status"
	"github.com/chatcart/crm-platform/internal/view"
	"github.com/chatcart/crm-platform/pkg/logger"
)

// LeadHandler handles lead endpoints.
type LeadHandler struct {
	service *service.LeadService
	logger  *logger.Logger
}

// NewLeadHandler creates a new lead handler.
func NewLeadHandler(svc *service.LeadService, log *logger.Logger) *LeadHandler {
	return &LeadHandler{
		service: svc,
		logger:  log,
	}
}

// List handles GET /api/v1/leads
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	if !validQuery(w, r) {
		return
	}
	applyIncludeArchived(r, h.service.Store().SetIncludeArchived)
	page := view.Leads(h.service.Store().GetActive(), viewParams(r))
	writeJSON(w, http.StatusOK, page)
}

// Statuses handles GET /api/v1/leads/statuses. Only the active pipeline
// statuses are offered; legacy ones never appear in filter controls.
func (h *LeadHandler) Statuses(w http.ResponseWriter, r *http.Request) {
	opts := make([]statusOption, 0, len(status.LeadStatuses))
	for _, s := range status.LeadStatuses {
		opts = append(opts, statusOption{Value: string(s), Label: string(s)})
	}
	writeJSON(w, http.StatusOK, opts)
}

// Get handles GET /api/v1/leads/:id
func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	lead, ok := h.service.Store().Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "lead not found")
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

// Refresh handles POST /api/v1/leads/refresh
func (h *LeadHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Refresh(r.Context()); err != nil {
		h.logger.Error("lead refresh failed")
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type createLeadRequest struct {
	ConversationID string            `json:"conversationId"`
	Channel        model.Channel     `json:"channel"`
	CustomerHandle string            `json:"customerHandle"`
	CustomerName   string            `json:"customerName"`
	Intent         model.IntentLabel `json:"intent"`
	Notes          string            `json:"notes"`
	Value          float64           `json:"value"`
}

// Create handles POST /api/v1/leads
func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lead, err := h.service.Create(r.Context(), service.CreateLeadInput{
		ConversationID: req.ConversationID,
		Channel:        req.Channel,
		CustomerHandle: req.CustomerHandle,
		CustomerName:   req.CustomerName,
		Intent:         req.Intent,
		Notes:          req.Notes,
		Value:          req.Value,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, lead)
}

// Transition handles PATCH /api/v1/leads/:id/status
func (h *LeadHandler) Transition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Status model.LeadStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lead, err := h.service.Transition(r.Context(), id, req.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

// Assign handles PATCH /api/v1/leads/:id/assign
func (h *LeadHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		UserID   string `json:"assignedToUserId"`
		UserName string `json:"assignedTo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	lead, err := h.service.Assign(r.Context(), id, req.UserID, req.UserName)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

// UpdateNotes handles PATCH /api/v1/leads/:id/notes
func (h *LeadHandler) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Notes string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := middleware.ValidateNotes(req.Notes); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	lead, err := h.service.UpdateNotes(r.Context(), id, req.Notes)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, lead)
}

// Package handler provides HTTP handlers for the API.
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chatcart/crm-platform/internal/model"
	"github.com/chatcart/crm-platform/internal/service"
	"github.com/chatcart/crm-platform/internal/view"
	"github.com/chatcart/crm-platform/pkg/logger"
)

// ConversationHandler handles conversation endpoints.
type ConversationHandler struct {
	service *service.ConversationService
	logger  *logger.Logger
}

// NewConversationHandler creates a new conversation handler.
func NewConversationHandler(svc *service.ConversationService, log *logger.Logger) *ConversationHandler {
	return &ConversationHandler{
		service: svc,
		logger:  log,
	}
}

// List handles GET /api/v1/conversations. A channel parameter narrows the
// source list to one messaging channel before the pipeline runs.
func (h *ConversationHandler) List(w http.ResponseWriter, r *http.Request) {
	if !validQuery(w, r) {
		return
	}
	applyIncludeArchived(r, h.service.Store().SetIncludeArchived)
	source := h.service.Store().GetActive()
	if ch := r.URL.Query().Get("channel"); ch != "" {
		source = h.service.Store().ByChannel(model.Channel(ch))
	}
	page := view.Conversations(source, viewParams(r))
	writeJSON(w, http.StatusOK, page)
}

// Get handles GET /api/v1/conversations/:id
func (h *ConversationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	conv, ok := h.service.Store().Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "conversation not found")
		return
	}
	writeJSON(w, http.StatusOK, conv)
}

// Refresh handles POST /api/v1/conversations/refresh
func (h *ConversationHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Refresh(r.Context()); err != nil {
		h.logger.Error("conversation refresh failed")
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetStatus handles PATCH /api/v1/conversations/:id/status
func (h *ConversationHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Status model.ConversationStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	conv, err := h.service.SetStatus(r.Context(), id, req.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, conv)
}

// Assign handles PATCH /api/v1/conversations/:id/assign
func (h *ConversationHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		UserID   string `json:"assignedToUserId"`
		UserName string `json:"assignedTo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	conv, err := h.service.Assign(r.Context(), id, req.UserID, req.UserName)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, conv)
}

// AssignToMe handles PATCH /api/v1/conversations/:id/assign-to-me
func (h *ConversationHandler) AssignToMe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	conv, err := h.service.AssignToMe(r.Context(), id, actorFromRequest(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, conv)
}

// SetVIP handles PATCH /api/v1/conversations/:id/vip
func (h *ConversationHandler) SetVIP(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		VIP bool `json:"isVip"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	conv, err := h.service.SetVIP(r.Context(), id, req.VIP)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, conv)
}

// Classify handles POST /api/v1/conversations/:id/classify
func (h *ConversationHandler) Classify(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	result, err := h.service.Classify(r.Context(), id, req.Text)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

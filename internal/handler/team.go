package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chatcart/crm-platform/internal/middleware"
	"github.com/chatcart/crm-platform/internal/model"
	"github.com/chatcart/crm-platform/internal/service"
	"github.com/chatcart/crm-platform/pkg/logger"
)

// TeamHandler handles workspace membership endpoints. Role changes and
// removals sit behind the admin middleware; the upstream enforces the same
// rules again and its rejections pass through with their codes intact.
type TeamHandler struct {
	service *service.TeamService
	logger  *logger.Logger
}

// NewTeamHandler creates a new team handler.
func NewTeamHandler(svc *service.TeamService, log *logger.Logger) *TeamHandler {
	return &TeamHandler{
		service: svc,
		logger:  log,
	}
}

// Workspace handles GET /api/v1/team/workspace
func (h *TeamHandler) Workspace(w http.ResponseWriter, r *http.Request) {
	ws := h.service.Workspace()
	if ws == nil {
		writeError(w, http.StatusNotFound, "workspace not loaded")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"workspace": ws,
		"atSeatCap": h.service.AtSeatCap(),
	})
}

// Members handles GET /api/v1/team/members
func (h *TeamHandler) Members(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Members())
}

// Refresh handles POST /api/v1/team/refresh
func (h *TeamHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	workspaceID := middleware.GetWorkspaceID(r.Context())
	if err := h.service.Refresh(r.Context(), workspaceID); err != nil {
		h.logger.Error("team refresh failed")
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Invite handles POST /api/v1/team/members
func (h *TeamHandler) Invite(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string     `json:"email"`
		Role  model.Role `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	workspaceID := middleware.GetWorkspaceID(r.Context())
	member, err := h.service.Invite(r.Context(), workspaceID, req.Email, req.Role)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, member)
}

// UpdateRole handles PATCH /api/v1/team/members/:id/role
func (h *TeamHandler) UpdateRole(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "id")

	var req struct {
		Role model.Role `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	workspaceID := middleware.GetWorkspaceID(r.Context())
	member, err := h.service.UpdateRole(r.Context(), workspaceID, memberID, req.Role)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, member)
}

// Remove handles DELETE /api/v1/team/members/:id
func (h *TeamHandler) Remove(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "id")
	workspaceID := middleware.GetWorkspaceID(r.Context())

	if err := h.service.Remove(r.Context(), workspaceID, memberID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

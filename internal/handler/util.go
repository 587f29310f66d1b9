package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/chatcart/crm-platform/internal/middleware"
	"github.com/chatcart/crm-platform/internal/service"
	"github.com/chatcart/crm-platform/internal/view"
	"github.com/chatcart/crm-platform/internal/workspace"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{
		"error": message,
	})
}

// writeServiceError maps a service-layer error onto an HTTP response.
// Workspace API errors keep their code and upgrade hint; validation errors
// report per-field problems; everything else is a bare 502 since the
// upstream call is what failed.
func writeServiceError(w http.ResponseWriter, err error) {
	var apiErr *workspace.APIError
	if errors.As(err, &apiErr) {
		p := workspace.Describe(err)
		writeJSON(w, apiErr.HTTPStatus, map[string]any{
			"error":       p.Description,
			"code":        apiErr.Code,
			"title":       p.Title,
			"showUpgrade": p.ShowUpgrade,
		})
		return
	}

	var verr *service.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
		return
	}

	writeError(w, http.StatusBadGateway, err.Error())
}

// viewParams builds pipeline parameters from the request's query string.
// The acting user comes from the JWT so "assigned=me" cannot be spoofed.
func viewParams(r *http.Request) view.Params {
	q := r.URL.Query()
	p := view.Params{
		Status:         q.Get("status"),
		Assignment:     view.AssignmentFilter(q.Get("assigned")),
		ActorID:        middleware.GetUserID(r.Context()),
		Query:          q.Get("q"),
		ConversationID: q.Get("conversationId"),
		Sort:           view.SortKey(q.Get("sort")),
	}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		p.Page = page
	}
	if size, err := strconv.Atoi(q.Get("pageSize")); err == nil && size > 0 && size <= 100 {
		p.PageSize = size
	}
	return p
}

// applyIncludeArchived flips the store's archived-visibility toggle when
// the request carries the parameter. The toggle is store-wide and sticky,
// matching a list view's "show archived" switch.
func applyIncludeArchived(r *http.Request, set func(bool)) {
	if v := r.URL.Query().Get("includeArchived"); v != "" {
		include, err := strconv.ParseBool(v)
		if err == nil {
			set(include)
		}
	}
}

// statusOption is one entry in a status filter control.
type statusOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// validQuery rejects oversized or malformed search input before it reaches
// the pipeline. Returns false after writing the error response.
func validQuery(w http.ResponseWriter, r *http.Request) bool {
	if err := middleware.ValidateSearchQuery(r.URL.Query().Get("q")); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// actorFromRequest identifies the acting user from the JWT claims.
func actorFromRequest(r *http.Request) service.Actor {
	ctx := r.Context()
	return service.Actor{
		ID:   middleware.GetUserID(ctx),
		Name: middleware.GetUserName(ctx),
	}
}

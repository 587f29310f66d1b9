package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/chatcart/crm-platform/internal/model"
	"github.com/chatcart/crm-platform/internal/service"
	"github.com/chatcart/crm-platform/internal/status"
	"github.com/chatcart/crm-platform/internal/view"
	"github.com/chatcart/crm-platform/pkg/logger"
)

// OrderHandler handles order endpoints.
type OrderHandler struct {
	service *service.OrderService
	logger  *logger.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(svc *service.OrderService, log *logger.Logger) *OrderHandler {
	return &OrderHandler{
		service: svc,
		logger:  log,
	}
}

// List handles GET /api/v1/orders. The list is served from the local cache
// and shaped by the filter/sort/paginate pipeline.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	if !validQuery(w, r) {
		return
	}
	applyIncludeArchived(r, h.service.Store().SetIncludeArchived)
	page := view.Orders(h.service.Store().GetActive(), viewParams(r))
	writeJSON(w, http.StatusOK, page)
}

// Statuses handles GET /api/v1/orders/statuses. It serves the fixed list
// a status filter control renders.
func (h *OrderHandler) Statuses(w http.ResponseWriter, r *http.Request) {
	opts := make([]statusOption, 0, len(status.OrderStatuses))
	for _, s := range status.OrderStatuses {
		opts = append(opts, statusOption{Value: string(s), Label: status.OrderLabel(s)})
	}
	writeJSON(w, http.StatusOK, opts)
}

// Get handles GET /api/v1/orders/:id
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	order, ok := h.service.Store().Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// Refresh handles POST /api/v1/orders/refresh
func (h *OrderHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Refresh(r.Context()); err != nil {
		h.logger.Error("order refresh failed")
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type createOrderRequest struct {
	ConversationID string              `json:"conversationId"`
	LeadID         string              `json:"leadId"`
	CustomerName   string              `json:"customerName"`
	CustomerHandle string              `json:"customerHandle"`
	CustomerEmail  string              `json:"customerEmail"`
	CustomerPhone  string              `json:"customerPhone"`
	Channel        model.Channel       `json:"channel"`
	Items          []model.OrderItem   `json:"items"`
	Currency       string              `json:"currency"`
	Notes          string              `json:"notes"`
	PaymentMethod  model.PaymentMethod `json:"paymentMethod"`
	Address        model.Address       `json:"address"`
}

// Create handles POST /api/v1/orders
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.service.Create(r.Context(), service.CreateOrderInput{
		ConversationID: req.ConversationID,
		LeadID:         req.LeadID,
		CustomerName:   req.CustomerName,
		CustomerHandle: req.CustomerHandle,
		CustomerEmail:  req.CustomerEmail,
		CustomerPhone:  req.CustomerPhone,
		Channel:        req.Channel,
		Items:          req.Items,
		Currency:       req.Currency,
		Notes:          req.Notes,
		PaymentMethod:  req.PaymentMethod,
		Address:        req.Address,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

// Transition handles PATCH /api/v1/orders/:id/status
func (h *OrderHandler) Transition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Status model.OrderStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.service.Transition(r.Context(), id, req.Status, actorFromRequest(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// SetPayment handles PATCH /api/v1/orders/:id/payment
func (h *OrderHandler) SetPayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		PaymentStatus model.PaymentStatus `json:"paymentStatus"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.service.SetPaymentStatus(r.Context(), id, req.PaymentStatus, actorFromRequest(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Refund handles POST /api/v1/orders/:id/refund
func (h *OrderHandler) Refund(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	order, err := h.service.Refund(r.Context(), id, actorFromRequest(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Assign handles PATCH /api/v1/orders/:id/assign
func (h *OrderHandler) Assign(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		UserID   string `json:"assignedToUserId"`
		UserName string `json:"assignedTo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.service.Assign(r.Context(), id, req.UserID, req.UserName, actorFromRequest(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Archive handles PATCH /api/v1/orders/:id/archive
func (h *OrderHandler) Archive(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req struct {
		Archived bool `json:"archived"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := h.service.SetArchived(r.Context(), id, req.Archived)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Delete handles DELETE /api/v1/orders/:id
func (h *OrderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Metrics handles GET /api/v1/orders/metrics
func (h *OrderHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Store().Metrics())
}

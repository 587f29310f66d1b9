package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/chatcart/crm-platform/internal/model"
)

// OrderAction is a fulfillment or payment action endpoint on an order.
type OrderAction string

const (
	ActionPending OrderAction = "pending"
	ActionConfirm OrderAction = "confirm"
	ActionShip    OrderAction = "ship"
	ActionDeliver OrderAction = "deliver"
	ActionCancel  OrderAction = "cancel"
	ActionRefund  OrderAction = "refund"
)

// NewOrderItem is one line item on a create request. Line totals are
// derived server-side.
type NewOrderItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// CreateOrderRequest is the body for POST /api/v1/orders.
type CreateOrderRequest struct {
	ConversationID string              `json:"conversationId"`
	LeadID         string              `json:"leadId,omitempty"`
	CustomerName   string              `json:"customerName"`
	CustomerHandle string              `json:"customerHandle,omitempty"`
	CustomerEmail  string              `json:"customerEmail,omitempty"`
	CustomerPhone  string              `json:"customerPhone,omitempty"`
	Channel        model.Channel       `json:"channel,omitempty"`
	Items          []NewOrderItem      `json:"items"`
	TotalAmount    float64             `json:"totalAmount"`
	Currency       string              `json:"currency"`
	Notes          string              `json:"notes,omitempty"`
	PaymentMethod  model.PaymentMethod `json:"paymentMethod,omitempty"`
	Address        model.Address       `json:"address,omitempty"`
	IdempotencyKey string              `json:"idempotencyKey"`
}

// ListOrders fetches a page of orders.
func (c *Client) ListOrders(ctx context.Context, p ListParams) (*ListResult[*model.Order], error) {
	return getList[*model.Order](ctx, c, "/api/v1/orders", p)
}

// CreateOrder creates an order. The caller supplies a fresh idempotency key
// per logical attempt.
func (c *Client) CreateOrder(ctx context.Context, req CreateOrderRequest) (*model.Order, error) {
	var out model.Order
	if err := c.do(ctx, http.MethodPost, "/api/v1/orders", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DoOrderAction invokes one of the PATCH action endpoints and returns the
// full updated record for cache reconciliation.
func (c *Client) DoOrderAction(ctx context.Context, orderID string, action OrderAction) (*model.Order, error) {
	var out model.Order
	path := fmt.Sprintf("/api/v1/orders/%s/%s", orderID, action)
	if err := c.do(ctx, http.MethodPatch, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetOrderPaymentStatus updates the payment state of an order.
func (c *Client) SetOrderPaymentStatus(ctx context.Context, orderID string, ps model.PaymentStatus) (*model.Order, error) {
	var out model.Order
	path := fmt.Sprintf("/api/v1/orders/%s/payment-status", orderID)
	body := map[string]model.PaymentStatus{"paymentStatus": ps}
	if err := c.do(ctx, http.MethodPatch, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ArchiveOrder sets or clears the order's archived flag.
func (c *Client) ArchiveOrder(ctx context.Context, orderID string, archived bool) (*model.Order, error) {
	var out model.Order
	path := fmt.Sprintf("/api/v1/orders/%s/archive", orderID)
	body := map[string]bool{"archived": archived}
	if err := c.do(ctx, http.MethodPatch, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteOrder soft-deletes the order. There is no restore endpoint.
func (c *Client) DeleteOrder(ctx context.Context, orderID string) error {
	path := fmt.Sprintf("/api/v1/orders/%s", orderID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// AssignOrder sets or clears the order's assignee. An empty user id
// unassigns.
func (c *Client) AssignOrder(ctx context.Context, orderID, userID string) (*model.Order, error) {
	var out model.Order
	path := fmt.Sprintf("/api/v1/orders/%s/assign", orderID)
	body := map[string]string{"assignedToUserId": userID}
	if err := c.do(ctx, http.MethodPatch, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

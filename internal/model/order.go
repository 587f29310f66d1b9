package model

import (
	"time"
)

// OrderStatus is the fulfillment state of an order.
type OrderStatus string

const (
	OrderNew       OrderStatus = "NEW"
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderShipped   OrderStatus = "SHIPPED"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

// PaymentStatus tracks payment independently of fulfillment.
type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "UNPAID"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

// PaymentMethod is how the customer pays.
type PaymentMethod string

const (
	PaymentOnline       PaymentMethod = "ONLINE"
	PaymentCOD          PaymentMethod = "COD"
	PaymentManual       PaymentMethod = "MANUAL"
	PaymentBankTransfer PaymentMethod = "BANK_TRANSFER"
)

// OrderItem is a single line item on an order.
type OrderItem struct {
	ID        string  `json:"id,omitempty"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	LineTotal float64 `json:"lineTotal"`
	SKU       string  `json:"sku,omitempty"`
}

// OrderTotals holds the computed pricing breakdown. Shipping and discount
// are always zero today; the fields exist for future use.
type OrderTotals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Discount float64 `json:"discount"`
	Total    float64 `json:"total"`
}

// Address is the shipping address on an order.
type Address struct {
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

// TimelineEvent is one entry in an order's append-only audit log.
// Events record status, payment and assignment changes with the actor and
// time; they are never edited or removed.
type TimelineEvent struct {
	ID            string        `json:"id"`
	Status        OrderStatus   `json:"status,omitempty"`
	PaymentStatus PaymentStatus `json:"paymentStatus,omitempty"`
	Label         string        `json:"label"`
	Description   string        `json:"description,omitempty"`
	ActorID       string        `json:"performedByUserId,omitempty"`
	ActorName     string        `json:"performedByName,omitempty"`
	Timestamp     time.Time     `json:"timestamp"`
}

// Order represents a customer order placed through a conversation.
type Order struct {
	ID          string `json:"id"`
	OrderNumber string `json:"orderNumber"`
	WorkspaceID string `json:"workspaceId,omitempty"`

	ConversationID string `json:"conversationId,omitempty"`
	LeadID         string `json:"leadId,omitempty"`
	ContactID      string `json:"contactId,omitempty"`

	Channel        Channel `json:"channel"`
	CustomerName   string  `json:"customerName"`
	CustomerHandle string  `json:"customerHandle"`
	CustomerEmail  string  `json:"customerEmail,omitempty"`
	CustomerPhone  string  `json:"customerPhone,omitempty"`

	Items    []OrderItem `json:"items"`
	Totals   OrderTotals `json:"totals"`
	Currency string      `json:"currency,omitempty"`
	Notes    string      `json:"notes,omitempty"`

	Status OrderStatus `json:"status"`

	PaymentStatus PaymentStatus `json:"paymentStatus"`
	PaymentMethod PaymentMethod `json:"paymentMethod,omitempty"`
	PaidAt        *time.Time    `json:"paidAt,omitempty"`

	TrackingNumber string `json:"trackingNumber,omitempty"`

	AssignedToUserID string `json:"assignedToUserId,omitempty"`
	AssignedToName   string `json:"assignedTo,omitempty"`

	Timeline []TimelineEvent `json:"timeline"`
	Address  Address         `json:"address"`

	Lifecycle
}

// EntityID returns the order's identity.
func (o *Order) EntityID() string {
	return o.ID
}

// Clone returns a deep copy. Line items, timeline and timestamp pointers
// get their own backing storage so mutating one copy never aliases another.
func (o *Order) Clone() *Order {
	dup := *o
	dup.Items = append([]OrderItem(nil), o.Items...)
	dup.Timeline = append([]TimelineEvent(nil), o.Timeline...)
	if o.PaidAt != nil {
		t := *o.PaidAt
		dup.PaidAt = &t
	}
	dup.Lifecycle = o.Lifecycle.cloned()
	return &dup
}

// ComputeTotals derives line totals and the order totals from the items.
// Shipping and discount stay zero.
func ComputeTotals(items []OrderItem) ([]OrderItem, OrderTotals) {
	out := make([]OrderItem, len(items))
	var subtotal float64
	for i, item := range items {
		item.LineTotal = float64(item.Quantity) * item.UnitPrice
		subtotal += item.LineTotal
		out[i] = item
	}
	return out, OrderTotals{Subtotal: subtotal, Total: subtotal}
}

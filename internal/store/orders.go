package store

import (
	"github.com/google/uuid"

	"github.com/chatcart/crm-platform/internal/model"
)

// OrderStore caches orders and maintains each order's append-only timeline.
type OrderStore struct {
	*Store[*model.Order]
}

// NewOrders creates an empty order store.
func NewOrders() *OrderStore {
	return &OrderStore{Store: New[*model.Order]()}
}

// TransitionStatus sets the order's fulfillment status and appends a
// timeline event. It does not consult the transition table; callers
// validate the transition first.
func (s *OrderStore) TransitionStatus(id string, next model.OrderStatus, label, actorName string) {
	s.Update(id, func(o *model.Order) {
		o.Status = next
		o.Timeline = append(o.Timeline, model.TimelineEvent{
			ID:          uuid.Must(uuid.NewV7()).String(),
			Status:      next,
			Label:       label,
			Description: "Updated by " + actorName,
			ActorName:   actorName,
			Timestamp:   s.Now(),
		})
	})
}

// SetPaymentStatus sets the payment state and appends a timeline event.
// Payment and fulfillment are orthogonal machines sharing one audit log.
func (s *OrderStore) SetPaymentStatus(id string, ps model.PaymentStatus, actorName string) {
	s.Update(id, func(o *model.Order) {
		o.PaymentStatus = ps
		if ps == model.PaymentPaid {
			now := s.Now()
			o.PaidAt = &now
		}
		o.Timeline = append(o.Timeline, model.TimelineEvent{
			ID:            uuid.Must(uuid.NewV7()).String(),
			Status:        o.Status,
			PaymentStatus: ps,
			Label:         "Payment marked " + string(ps),
			Description:   "Updated by " + actorName,
			ActorName:     actorName,
			Timestamp:     s.Now(),
		})
	})
}

// Assign sets the order's assignee and appends a timeline event. Empty ids
// unassign.
func (s *OrderStore) Assign(id, userID, userName, actorName string) {
	s.Update(id, func(o *model.Order) {
		o.AssignedToUserID = userID
		o.AssignedToName = userName
		label := "Assigned to " + userName
		if userID == "" {
			label = "Unassigned"
		}
		o.Timeline = append(o.Timeline, model.TimelineEvent{
			ID:          uuid.Must(uuid.NewV7()).String(),
			Status:      o.Status,
			Label:       label,
			Description: "Updated by " + actorName,
			ActorName:   actorName,
			Timestamp:   s.Now(),
		})
	})
}

// ByConversation returns the visible orders linked to a conversation.
func (s *OrderStore) ByConversation(conversationID string) []*model.Order {
	return s.FilterActive(func(o *model.Order) bool {
		return o.ConversationID == conversationID
	})
}

// ByNumber finds an order by its human-facing number, archived or not.
// Like Get, it hands out a copy.
func (s *OrderStore) ByNumber(orderNumber string) (*model.Order, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, o := range s.items {
		if o.OrderNumber == orderNumber {
			return o.Clone(), true
		}
	}
	return nil, false
}

// Metrics summarizes the visible orders for the dashboard header. Cancelled
// orders are excluded from revenue.
type OrderMetrics struct {
	Total        int     `json:"total"`
	Pending      int     `json:"pending"`
	Shipped      int     `json:"shipped"`
	Delivered    int     `json:"delivered"`
	TotalRevenue float64 `json:"totalRevenue"`
}

// Metrics computes the order summary over the current visible snapshot.
func (s *OrderStore) Metrics() OrderMetrics {
	var m OrderMetrics
	for _, o := range s.GetActive() {
		m.Total++
		switch o.Status {
		case model.OrderNew, model.OrderPending:
			m.Pending++
		case model.OrderShipped:
			m.Shipped++
		case model.OrderDelivered:
			m.Delivered++
		}
		if o.Status != model.OrderCancelled {
			m.TotalRevenue += o.Totals.Total
		}
	}
	return m
}

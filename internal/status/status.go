// Package status defines the lifecycle state machines for orders and leads.
//
// The tables here are the single source of truth for which transitions are
// legal. Stores deliberately do not consult them: the store is the
// mechanism, this package is the policy, and callers check here before
// mutating.
package status

import (
	"github.com/chatcart/crm-platform/internal/model"
)

// Kind selects which entity's state machine a query targets.
type Kind string

const (
	KindOrder Kind = "order"
	KindLead  Kind = "lead"
)

// Order fulfillment graph. Cancellation is permitted from any pre-shipment
// state but not after shipping: once a carrier has the package the only
// forward path is delivery.
var orderTransitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderNew:       {model.OrderPending, model.OrderCancelled},
	model.OrderPending:   {model.OrderConfirmed, model.OrderCancelled},
	model.OrderConfirmed: {model.OrderShipped, model.OrderCancelled},
	model.OrderShipped:   {model.OrderDelivered},
	model.OrderDelivered: {},
	model.OrderCancelled: {},
}

// Lead graph. New goes straight to one of three terminal states; the richer
// legacy graph (Contacted/Qualified/Negotiating) is deprecated and excluded.
var leadTransitions = map[model.LeadStatus][]model.LeadStatus{
	model.LeadNew:       {model.LeadConverted, model.LeadClosed, model.LeadLost},
	model.LeadConverted: {},
	model.LeadClosed:    {},
	model.LeadLost:      {},
}

// AllowedNext returns the statuses reachable in one step from current.
// Unknown statuses (including legacy lead statuses) have no successors.
func AllowedNext(kind Kind, current string) []string {
	switch kind {
	case KindOrder:
		return toStrings(orderTransitions[model.OrderStatus(current)])
	case KindLead:
		return toStrings(leadTransitions[model.LeadStatus(current)])
	}
	return nil
}

// IsValidTransition reports whether moving from one status to another is
// legal for the given entity kind.
func IsValidTransition(kind Kind, from, to string) bool {
	for _, next := range AllowedNext(kind, from) {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether a status has no successors.
func Terminal(kind Kind, s string) bool {
	return len(AllowedNext(kind, s)) == 0
}

// AllowedNextOrder is the typed convenience form for order statuses.
func AllowedNextOrder(current model.OrderStatus) []model.OrderStatus {
	return append([]model.OrderStatus(nil), orderTransitions[current]...)
}

// AllowedNextLead is the typed convenience form for lead statuses.
func AllowedNextLead(current model.LeadStatus) []model.LeadStatus {
	return append([]model.LeadStatus(nil), leadTransitions[current]...)
}

// CanRefund reports refund eligibility. Refunds depend only on payment
// state, never on fulfillment state.
func CanRefund(ps model.PaymentStatus) bool {
	return ps == model.PaymentPaid
}

func toStrings[S ~string](in []S) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = string(s)
	}
	return out
}

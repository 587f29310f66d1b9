package status

import (
	"github.com/chatcart/crm-platform/internal/model"
)

// OrderStatuses lists all order statuses in display order, for building
// filter controls.
var OrderStatuses = []model.OrderStatus{
	model.OrderNew,
	model.OrderPending,
	model.OrderConfirmed,
	model.OrderShipped,
	model.OrderDelivered,
	model.OrderCancelled,
}

var orderLabels = map[model.OrderStatus]string{
	model.OrderNew:       "New",
	model.OrderPending:   "Pending",
	model.OrderConfirmed: "Confirmed",
	model.OrderShipped:   "Shipped",
	model.OrderDelivered: "Delivered",
	model.OrderCancelled: "Cancelled",
}

// OrderLabel returns the human-facing label for an order status.
func OrderLabel(s model.OrderStatus) string {
	if label, ok := orderLabels[s]; ok {
		return label
	}
	return string(s)
}

// LeadStatuses lists the active (non-legacy) lead statuses in display order.
var LeadStatuses = []model.LeadStatus{
	model.LeadNew,
	model.LeadConverted,
	model.LeadClosed,
	model.LeadLost,
}

package status

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/chatcart/crm-platform/internal/model"
)

func TestOrderTransitions(t *testing.T) {
	tests := []struct {
		name  string
		from  model.OrderStatus
		to    model.OrderStatus
		valid bool
	}{
		{"new to pending", model.OrderNew, model.OrderPending, true},
		{"new to cancelled", model.OrderNew, model.OrderCancelled, true},
		{"new to confirmed skips pending", model.OrderNew, model.OrderConfirmed, false},
		{"pending to confirmed", model.OrderPending, model.OrderConfirmed, true},
		{"pending to cancelled", model.OrderPending, model.OrderCancelled, true},
		{"pending to shipped skips confirmed", model.OrderPending, model.OrderShipped, false},
		{"confirmed to shipped", model.OrderConfirmed, model.OrderShipped, true},
		{"confirmed to cancelled", model.OrderConfirmed, model.OrderCancelled, true},
		{"shipped to delivered", model.OrderShipped, model.OrderDelivered, true},
		{"shipped cannot cancel", model.OrderShipped, model.OrderCancelled, false},
		{"shipped cannot revert", model.OrderShipped, model.OrderPending, false},
		{"delivered is terminal", model.OrderDelivered, model.OrderCancelled, false},
		{"cancelled is terminal", model.OrderCancelled, model.OrderPending, false},
		{"no backwards move", model.OrderConfirmed, model.OrderPending, false},
		{"no self transition", model.OrderPending, model.OrderPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsValidTransition(KindOrder, string(tt.from), string(tt.to))
			assert.Equal(t, tt.valid, got)
		})
	}
}

func TestLeadTransitions(t *testing.T) {
	for _, to := range []model.LeadStatus{model.LeadConverted, model.LeadClosed, model.LeadLost} {
		assert.True(t, IsValidTransition(KindLead, string(model.LeadNew), string(to)))
	}

	// every move out of New is terminal
	for _, from := range []model.LeadStatus{model.LeadConverted, model.LeadClosed, model.LeadLost} {
		assert.Empty(t, AllowedNextLead(from))
		assert.True(t, from.Terminal())
	}
	assert.False(t, model.LeadNew.Terminal())
}

func TestLegacyLeadStatusesHaveNoSuccessors(t *testing.T) {
	for _, s := range []model.LeadStatus{model.LeadContacted, model.LeadQualified, model.LeadNegotiating, model.LeadSpam} {
		assert.Empty(t, AllowedNext(KindLead, string(s)))
	}
}

func TestTerminal(t *testing.T) {
	assert.True(t, Terminal(KindOrder, string(model.OrderDelivered)))
	assert.True(t, Terminal(KindOrder, string(model.OrderCancelled)))
	assert.False(t, Terminal(KindOrder, string(model.OrderNew)))
	assert.False(t, Terminal(KindOrder, string(model.OrderShipped)))

	// unknown statuses have no successors
	assert.True(t, Terminal(KindOrder, "BOGUS"))
}

func TestAllowedNextOrderIsACopy(t *testing.T) {
	next := AllowedNextOrder(model.OrderNew)
	assert.Equal(t, []model.OrderStatus{model.OrderPending, model.OrderCancelled}, next)

	next[0] = model.OrderDelivered
	assert.Equal(t, []model.OrderStatus{model.OrderPending, model.OrderCancelled}, AllowedNextOrder(model.OrderNew))
}

func TestCanRefund(t *testing.T) {
	assert.True(t, CanRefund(model.PaymentPaid))
	assert.False(t, CanRefund(model.PaymentUnpaid))
	assert.False(t, CanRefund(model.PaymentRefunded))
}

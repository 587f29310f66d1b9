package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatcart/crm-platform/internal/model"
)

func TestTransitionStatusAppendsTimeline(t *testing.T) {
	s := NewOrders()
	s.Replace([]*model.Order{testOrder("a")})

	s.TransitionStatus("a", model.OrderPending, "Status changed to Pending", "Asha")
	s.TransitionStatus("a", model.OrderConfirmed, "Status changed to Confirmed", "Asha")

	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, model.OrderConfirmed, got.Status)
	require.Len(t, got.Timeline, 2)

	first := got.Timeline[0]
	assert.Equal(t, model.OrderPending, first.Status)
	assert.Equal(t, "Status changed to Pending", first.Label)
	assert.Equal(t, "Updated by Asha", first.Description)
	assert.Equal(t, "Asha", first.ActorName)
	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, got.Timeline[1].ID)
}

func TestSetPaymentStatusRecordsPaidAt(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := NewOrders()
	s.WithClock(func() time.Time { return now })
	s.Replace([]*model.Order{testOrder("a")})

	s.SetPaymentStatus("a", model.PaymentPaid, "Asha")

	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, model.PaymentPaid, got.PaymentStatus)
	require.NotNil(t, got.PaidAt)
	assert.Equal(t, now, *got.PaidAt)

	// fulfillment status is untouched by the payment machine
	assert.Equal(t, model.OrderNew, got.Status)
	require.Len(t, got.Timeline, 1)
	assert.Equal(t, model.PaymentPaid, got.Timeline[0].PaymentStatus)

	// refund does not clear PaidAt
	s.SetPaymentStatus("a", model.PaymentRefunded, "Asha")
	got, _ = s.Get("a")
	assert.Equal(t, model.PaymentRefunded, got.PaymentStatus)
	assert.NotNil(t, got.PaidAt)
}

func TestAssignTimelineLabels(t *testing.T) {
	s := NewOrders()
	s.Replace([]*model.Order{testOrder("a")})

	s.Assign("a", "u1", "Ravi", "Asha")
	got, _ := s.Get("a")
	assert.Equal(t, "u1", got.AssignedToUserID)
	assert.Equal(t, "Assigned to Ravi", got.Timeline[0].Label)

	s.Assign("a", "", "", "Asha")
	got, _ = s.Get("a")
	assert.Empty(t, got.AssignedToUserID)
	assert.Equal(t, "Unassigned", got.Timeline[1].Label)
}

func TestByNumberIncludesArchived(t *testing.T) {
	s := NewOrders()
	s.Replace([]*model.Order{testOrder("a")})
	s.Archive("a")

	got, ok := s.ByNumber("ORD-a")
	require.True(t, ok)
	assert.Equal(t, "a", got.ID)

	_, ok = s.ByNumber("ORD-missing")
	assert.False(t, ok)
}

func TestMetricsExcludesCancelledRevenue(t *testing.T) {
	s := NewOrders()
	a, b, c, d := testOrder("a"), testOrder("b"), testOrder("c"), testOrder("d")
	a.Status = model.OrderPending
	a.Totals.Total = 100
	b.Status = model.OrderShipped
	b.Totals.Total = 200
	c.Status = model.OrderDelivered
	c.Totals.Total = 300
	d.Status = model.OrderCancelled
	d.Totals.Total = 999
	s.Replace([]*model.Order{a, b, c, d})

	m := s.Metrics()
	assert.Equal(t, 4, m.Total)
	assert.Equal(t, 1, m.Pending)
	assert.Equal(t, 1, m.Shipped)
	assert.Equal(t, 1, m.Delivered)
	assert.Equal(t, 600.0, m.TotalRevenue)
}

package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chatcart/crm-platform/internal/events"
	"github.com/chatcart/crm-platform/internal/model"
	"github.com/chatcart/crm-platform/internal/status"
	"github.com/chatcart/crm-platform/internal/store"
	"github.com/chatcart/crm-platform/internal/upstream"
	"github.com/chatcart/crm-platform/pkg/logger"
	"github.com/chatcart/crm-platform/pkg/metrics"
)

// DefaultCurrency is applied when a create request does not set one.
const DefaultCurrency = "INR"

// OrderService mediates every order mutation.
type OrderService struct {
	store  *store.OrderStore
	api    *upstream.Client
	events *events.Publisher
	logger *logger.Logger
	now    func() time.Time
}

// NewOrderService creates an order service. The events publisher may be
// nil.
func NewOrderService(st *store.OrderStore, api *upstream.Client, pub *events.Publisher, log *logger.Logger) *OrderService {
	return &OrderService{
		store:  st,
		api:    api,
		events: pub,
		logger: log,
		now:    time.Now,
	}
}

// Store exposes the underlying cache for read paths.
func (s *OrderService) Store() *store.OrderStore {
	return s.store
}

// Refresh replaces the cache with the authoritative upstream list. A
// failure leaves the previous snapshot intact and is the caller's to
// surface.
func (s *OrderService) Refresh(ctx context.Context) error {
	s.store.BeginFetch()
	res, err := s.api.ListOrders(ctx, upstream.ListParams{})
	if err != nil {
		s.store.EndFetch()
		return fmt.Errorf("refresh orders: %w", err)
	}
	s.store.Replace(res.Items)
	metrics.StoreSize.WithLabelValues("order").Set(float64(s.store.Len()))
	return nil
}

// CreateOrderInput is the validated input for a new order.
type CreateOrderInput struct {
	ConversationID string
	LeadID         string
	CustomerName   string
	CustomerHandle string
	CustomerEmail  string
	CustomerPhone  string
	Channel        model.Channel
	Items          []model.OrderItem
	Currency       string
	Notes          string
	PaymentMethod  model.PaymentMethod
	Address        model.Address
}

func (in *CreateOrderInput) validate() error {
	var verr ValidationError
	if in.CustomerName == "" {
		verr.add("customerName", "customer name is required")
	}
	if len(in.Items) == 0 {
		verr.add("items", "at least one item is required")
	}
	for i, item := range in.Items {
		if item.Name == "" {
			verr.add(fmt.Sprintf("items[%d].name", i), "item name is required")
		}
		if item.Quantity <= 0 {
			verr.add(fmt.Sprintf("items[%d].quantity", i), "quantity must be positive")
		}
		if item.UnitPrice < 0 {
			verr.add(fmt.Sprintf("items[%d].unitPrice", i), "unit price cannot be negative")
		}
	}
	return verr.orNil()
}

// Create validates the input, awaits the server-side create, then inserts
// the returned record. Creates are not optimistic: the record enters the
// cache only after the server confirms it. Each logical attempt gets a
// fresh idempotency key so a transport-level retry cannot double-create.
func (s *OrderService) Create(ctx context.Context, in CreateOrderInput) (*model.Order, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	items, totals := model.ComputeTotals(in.Items)
	currency := in.Currency
	if currency == "" {
		currency = DefaultCurrency
	}

	req := upstream.CreateOrderRequest{
		ConversationID: in.ConversationID,
		LeadID:         in.LeadID,
		CustomerName:   in.CustomerName,
		CustomerHandle: in.CustomerHandle,
		CustomerEmail:  in.CustomerEmail,
		CustomerPhone:  in.CustomerPhone,
		Channel:        in.Channel,
		TotalAmount:    totals.Total,
		Currency:       currency,
		Notes:          in.Notes,
		PaymentMethod:  in.PaymentMethod,
		Address:        in.Address,
		IdempotencyKey: upstream.NewIdempotencyKey(in.ConversationID, s.now()),
	}
	for _, item := range items {
		req.Items = append(req.Items, upstream.NewOrderItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		})
	}

	created, err := s.api.CreateOrder(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.store.Add(created)
	metrics.RecordMutation("order", "create")
	s.publish(ctx, created, events.EventCreated, "Order created", Actor{Name: created.AssignedToName})
	return created, nil
}

var actionForStatus = map[model.OrderStatus]upstream.OrderAction{
	model.OrderPending:   upstream.ActionPending,
	model.OrderConfirmed: upstream.ActionConfirm,
	model.OrderShipped:   upstream.ActionShip,
	model.OrderDelivered: upstream.ActionDeliver,
	model.OrderCancelled: upstream.ActionCancel,
}

// Transition moves the order's fulfillment status. The transition table is
// consulted here, not in the store; the local update happens optimistically
// and is rolled back to the pre-mutation snapshot if the upstream call
// fails.
func (s *OrderService) Transition(ctx context.Context, id string, next model.OrderStatus, actor Actor) (*model.Order, error) {
	current, ok := s.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("order %s not cached", id)
	}
	if !status.IsValidTransition(status.KindOrder, string(current.Status), string(next)) {
		return nil, fmt.Errorf("illegal order transition %s -> %s", current.Status, next)
	}
	action, ok := actionForStatus[next]
	if !ok {
		return nil, fmt.Errorf("no action for status %s", next)
	}

	snapshot := current.Clone()
	s.store.TransitionStatus(id, next, "Status changed to "+status.OrderLabel(next), actor.Name)
	metrics.RecordMutation("order", "transition")

	updated, err := s.api.DoOrderAction(ctx, id, action)
	if err != nil {
		s.rollback(id, snapshot)
		return nil, fmt.Errorf("%s order: %w", action, err)
	}

	s.store.Reconcile(updated)
	s.publish(ctx, updated, events.EventStatusChanged, "Status changed to "+status.OrderLabel(next), actor)
	return updated, nil
}

// SetPaymentStatus updates the payment machine, which never gates the
// fulfillment machine.
func (s *OrderService) SetPaymentStatus(ctx context.Context, id string, ps model.PaymentStatus, actor Actor) (*model.Order, error) {
	current, ok := s.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("order %s not cached", id)
	}

	snapshot := current.Clone()
	s.store.SetPaymentStatus(id, ps, actor.Name)
	metrics.RecordMutation("order", "payment")

	updated, err := s.api.SetOrderPaymentStatus(ctx, id, ps)
	if err != nil {
		s.rollback(id, snapshot)
		return nil, fmt.Errorf("set payment status: %w", err)
	}

	s.store.Reconcile(updated)
	s.publish(ctx, updated, events.EventPaymentChanged, "Payment marked "+string(ps), actor)
	return updated, nil
}

// Refund refunds a paid order. Eligibility depends only on payment state,
// regardless of fulfillment status.
func (s *OrderService) Refund(ctx context.Context, id string, actor Actor) (*model.Order, error) {
	current, ok := s.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("order %s not cached", id)
	}
	if !status.CanRefund(current.PaymentStatus) {
		return nil, fmt.Errorf("order %s is not refundable: payment status is %s", id, current.PaymentStatus)
	}

	snapshot := current.Clone()
	s.store.SetPaymentStatus(id, model.PaymentRefunded, actor.Name)
	metrics.RecordMutation("order", "refund")

	updated, err := s.api.DoOrderAction(ctx, id, upstream.ActionRefund)
	if err != nil {
		s.rollback(id, snapshot)
		return nil, fmt.Errorf("refund order: %w", err)
	}

	s.store.Reconcile(updated)
	s.publish(ctx, updated, events.EventPaymentChanged, "Refund issued", actor)
	return updated, nil
}

// Assign sets or clears the order's assignee.
func (s *OrderService) Assign(ctx context.Context, id, userID, userName string, actor Actor) (*model.Order, error) {
	current, ok := s.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("order %s not cached", id)
	}

	snapshot := current.Clone()
	s.store.Assign(id, userID, userName, actor.Name)
	metrics.RecordMutation("order", "assign")

	updated, err := s.api.AssignOrder(ctx, id, userID)
	if err != nil {
		s.rollback(id, snapshot)
		return nil, fmt.Errorf("assign order: %w", err)
	}

	s.store.Reconcile(updated)
	s.publish(ctx, updated, events.EventAssignmentChanged, "Assignment changed", actor)
	return updated, nil
}

// SetArchived archives or unarchives the order, hiding it from default
// listings without losing it.
func (s *OrderService) SetArchived(ctx context.Context, id string, archived bool) (*model.Order, error) {
	current, ok := s.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("order %s not cached", id)
	}

	snapshot := current.Clone()
	if archived {
		s.store.Archive(id)
	} else {
		s.store.Unarchive(id)
	}
	metrics.RecordMutation("order", "archive")

	updated, err := s.api.ArchiveOrder(ctx, id, archived)
	if err != nil {
		s.rollback(id, snapshot)
		return nil, fmt.Errorf("archive order: %w", err)
	}

	s.store.Reconcile(updated)
	return updated, nil
}

// Delete soft-deletes the order. Deletion is terminal: the record stays
// cached but never appears in any listing again.
func (s *OrderService) Delete(ctx context.Context, id string) error {
	current, ok := s.store.Get(id)
	if !ok {
		return fmt.Errorf("order %s not cached", id)
	}

	snapshot := current.Clone()
	s.store.SoftDelete(id)
	metrics.RecordMutation("order", "delete")

	if err := s.api.DeleteOrder(ctx, id); err != nil {
		s.rollback(id, snapshot)
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

func (s *OrderService) rollback(id string, snapshot *model.Order) {
	s.store.Reconcile(snapshot)
	metrics.RecordRollback("order")
	s.logger.Warn("optimistic order update rolled back", zap.String("order_id", id))
}

func (s *OrderService) publish(ctx context.Context, o *model.Order, t events.EventType, label string, actor Actor) {
	if s.events == nil {
		return
	}
	ev := events.OrderEvent{
		OrderID:       o.ID,
		OrderNumber:   o.OrderNumber,
		WorkspaceID:   o.WorkspaceID,
		Type:          t,
		Status:        o.Status,
		PaymentStatus: o.PaymentStatus,
		Label:         label,
		ActorName:     actor.Name,
		Timestamp:     s.now(),
	}
	if err := s.events.PublishOrderEvent(ctx, ev); err != nil {
		s.logger.Warn("audit event publish failed", zap.String("order_id", o.ID), zap.Error(err))
	}
}

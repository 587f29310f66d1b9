package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"go.uber.org/zap"

	"github.com/chatcart/crm-platform/internal/model"
	"github.com/chatcart/crm-platform/pkg/metrics"
)

const (
	// StreamName is the name of the audit event stream.
	StreamName = "CRM_EVENTS"

	// SubjectPrefix is the prefix for all CRM subjects.
	SubjectPrefix = "crm"
)

// EventType classifies an audit event.
type EventType string

const (
	EventStatusChanged     EventType = "status"
	EventPaymentChanged    EventType = "payment"
	EventAssignmentChanged EventType = "assignment"
	EventCreated           EventType = "created"
)

// OrderEvent mirrors a timeline entry onto the event stream so downstream
// consumers (analytics, notifications) see the same audit log the order
// carries.
type OrderEvent struct {
	OrderID       string              `json:"orderId"`
	OrderNumber   string              `json:"orderNumber,omitempty"`
	WorkspaceID   string              `json:"workspaceId,omitempty"`
	Type          EventType           `json:"type"`
	Status        model.OrderStatus   `json:"status,omitempty"`
	PaymentStatus model.PaymentStatus `json:"paymentStatus,omitempty"`
	Label         string              `json:"label,omitempty"`
	ActorName     string              `json:"actorName,omitempty"`
	Timestamp     time.Time           `json:"timestamp"`
}

// Publisher publishes audit events. A nil Publisher is safe to call and
// drops everything; event publication never gates a store mutation.
type Publisher struct {
	client *Client
}

// NewPublisher creates a publisher over an established NATS client.
func NewPublisher(client *Client) *Publisher {
	return &Publisher{client: client}
}

// EnsureStream creates the audit stream if it does not exist.
func (p *Publisher) EnsureStream(ctx context.Context) error {
	js := p.client.JetStream()

	_, err := js.Stream(ctx, StreamName)
	if err == nil {
		return nil
	}

	_, err = js.CreateStream(ctx, jetstream.StreamConfig{
		Name:        StreamName,
		Subjects:    []string{fmt.Sprintf("%s.>", SubjectPrefix)},
		Retention:   jetstream.LimitsPolicy,
		MaxAge:      365 * 24 * time.Hour,
		Storage:     jetstream.FileStorage,
		Replicas:    1,
		DenyDelete:  true,
		DenyPurge:   true,
		Description: "Order audit events",
	})
	if err != nil {
		return fmt.Errorf("failed to create stream: %w", err)
	}
	return nil
}

// OrderSubject returns the subject for one order's events.
func OrderSubject(workspaceID, orderID string, t EventType) string {
	if workspaceID == "" {
		workspaceID = "default"
	}
	return fmt.Sprintf("%s.%s.orders.%s.event.%s", SubjectPrefix, workspaceID, orderID, t)
}

// PublishOrderEvent publishes one order audit event. On a nil publisher it
// is a no-op.
func (p *Publisher) PublishOrderEvent(ctx context.Context, ev OrderEvent) error {
	if p == nil || p.client == nil {
		return nil
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	subject := OrderSubject(ev.WorkspaceID, ev.OrderID, ev.Type)
	if _, err := p.client.JetStream().Publish(ctx, subject, data); err != nil {
		p.client.logger.Warn("failed to publish audit event",
			zap.String("subject", subject),
			zap.Error(err),
		)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	metrics.EventsPublishedTotal.WithLabelValues("order", string(ev.Type)).Inc()
	return nil
}

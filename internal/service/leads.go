package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chatcart/crm-platform/internal/model"
	"github.com/chatcart/crm-platform/internal/status"
	"github.com/chatcart/crm-platform/internal/store"
	"github.com/chatcart/crm-platform/internal/upstream"
	"github.com/chatcart/crm-platform/pkg/logger"
	"github.com/chatcart/crm-platform/pkg/metrics"
)

// LeadService mediates every lead mutation.
type LeadService struct {
	store  *store.LeadStore
	api    *upstream.Client
	logger *logger.Logger
	now    func() time.Time
}

// NewLeadService creates a lead service.
func NewLeadService(st *store.LeadStore, api *upstream.Client, log *logger.Logger) *LeadService {
	return &LeadService{
		store:  st,
		api:    api,
		logger: log,
		now:    time.Now,
	}
}

// Store exposes the underlying cache for read paths.
func (s *LeadService) Store() *store.LeadStore {
	return s.store
}

// Refresh replaces the cache with the authoritative upstream list.
func (s *LeadService) Refresh(ctx context.Context) error {
	s.store.BeginFetch()
	res, err := s.api.ListLeads(ctx, upstream.ListParams{})
	if err != nil {
		s.store.EndFetch()
		return fmt.Errorf("refresh leads: %w", err)
	}
	s.store.Replace(res.Items)
	metrics.StoreSize.WithLabelValues("lead").Set(float64(s.store.Len()))
	return nil
}

// CreateLeadInput is the validated input for a manual lead.
type CreateLeadInput struct {
	ConversationID string
	Channel        model.Channel
	CustomerHandle string
	CustomerName   string
	Intent         model.IntentLabel
	Notes          string
	Value          float64
}

func (in *CreateLeadInput) validate() error {
	var verr ValidationError
	if in.CustomerHandle == "" {
		verr.add("customerHandle", "customer handle is required")
	}
	if in.Channel == "" {
		verr.add("channel", "channel is required")
	}
	if in.Value < 0 {
		verr.add("value", "value cannot be negative")
	}
	return verr.orNil()
}

// Create creates a manual lead server-side and inserts the returned record.
func (s *LeadService) Create(ctx context.Context, in CreateLeadInput) (*model.Lead, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	created, err := s.api.CreateLead(ctx, upstream.CreateLeadRequest{
		ConversationID: in.ConversationID,
		Channel:        in.Channel,
		CustomerHandle: in.CustomerHandle,
		CustomerName:   in.CustomerName,
		Intent:         in.Intent,
		Source:         model.LeadSourceManual,
		Notes:          in.Notes,
		Value:          in.Value,
	})
	if err != nil {
		return nil, fmt.Errorf("create lead: %w", err)
	}

	s.store.Add(created)
	metrics.RecordMutation("lead", "create")
	return created, nil
}

// Transition moves the lead's status. Every transition out of New is
// terminal, so a second transition on the same lead always fails here.
func (s *LeadService) Transition(ctx context.Context, id string, next model.LeadStatus) (*model.Lead, error) {
	current, ok := s.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("lead %s not cached", id)
	}
	if !status.IsValidTransition(status.KindLead, string(current.Status), string(next)) {
		return nil, fmt.Errorf("illegal lead transition %s -> %s", current.Status, next)
	}

	snapshot := current.Clone()
	s.store.TransitionStatus(id, next)
	metrics.RecordMutation("lead", "transition")

	updated, err := s.api.SetLeadStatus(ctx, id, next)
	if err != nil {
		s.rollback(id, snapshot)
		return nil, fmt.Errorf("set lead status: %w", err)
	}

	s.store.Reconcile(updated)
	return updated, nil
}

// Assign sets or clears the lead's assignee.
func (s *LeadService) Assign(ctx context.Context, id, userID, userName string) (*model.Lead, error) {
	current, ok := s.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("lead %s not cached", id)
	}

	snapshot := current.Clone()
	s.store.Assign(id, userID, userName)
	metrics.RecordMutation("lead", "assign")

	updated, err := s.api.AssignLead(ctx, id, userID)
	if err != nil {
		s.rollback(id, snapshot)
		return nil, fmt.Errorf("assign lead: %w", err)
	}

	s.store.Reconcile(updated)
	return updated, nil
}

// UpdateNotes replaces the lead's free-text notes.
func (s *LeadService) UpdateNotes(ctx context.Context, id, notes string) (*model.Lead, error) {
	current, ok := s.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("lead %s not cached", id)
	}

	snapshot := current.Clone()
	s.store.Update(id, func(l *model.Lead) {
		l.Notes = notes
	})
	metrics.RecordMutation("lead", "notes")

	updated, err := s.api.UpdateLeadNotes(ctx, id, notes)
	if err != nil {
		s.rollback(id, snapshot)
		return nil, fmt.Errorf("update lead notes: %w", err)
	}

	s.store.Reconcile(updated)
	return updated, nil
}

func (s *LeadService) rollback(id string, snapshot *model.Lead) {
	s.store.Reconcile(snapshot)
	metrics.RecordRollback("lead")
	s.logger.Warn("optimistic lead update rolled back", zap.String("lead_id", id))
}

package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chatcart/crm-platform/internal/intent"
	"github.com/chatcart/crm-platform/internal/model"
	"github.com/chatcart/crm-platform/internal/store"
	"github.com/chatcart/crm-platform/internal/upstream"
	"github.com/chatcart/crm-platform/pkg/logger"
	"github.com/chatcart/crm-platform/pkg/metrics"
)

// ConversationService mediates every conversation mutation.
type ConversationService struct {
	store      *store.ConversationStore
	api        *upstream.Client
	classifier intent.Classifier
	logger     *logger.Logger
	now        func() time.Time
}

// NewConversationService creates a conversation service. The classifier may
// be nil, in which case Classify reports an error and intent labels only
// arrive via upstream refreshes.
func NewConversationService(st *store.ConversationStore, api *upstream.Client, cls intent.Classifier, log *logger.Logger) *ConversationService {
	return &ConversationService{
		store:      st,
		api:        api,
		classifier: cls,
		logger:     log,
		now:        time.Now,
	}
}

// Store exposes the underlying cache for read paths.
func (s *ConversationService) Store() *store.ConversationStore {
	return s.store
}

// Refresh replaces the cache with the authoritative upstream list.
func (s *ConversationService) Refresh(ctx context.Context) error {
	s.store.BeginFetch()
	res, err := s.api.ListConversations(ctx, upstream.ListParams{})
	if err != nil {
		s.store.EndFetch()
		return fmt.Errorf("refresh conversations: %w", err)
	}
	s.store.Replace(res.Items)
	metrics.StoreSize.WithLabelValues("conversation").Set(float64(s.store.Len()))
	return nil
}

// SetStatus updates the conversation's lifecycle status.
func (s *ConversationService) SetStatus(ctx context.Context, id string, next model.ConversationStatus) (*model.Conversation, error) {
	current, ok := s.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("conversation %s not cached", id)
	}

	snapshot := current.Clone()
	s.store.SetStatus(id, next)
	metrics.RecordMutation("conversation", "status")

	updated, err := s.api.SetConversationStatus(ctx, id, next)
	if err != nil {
		s.rollback(id, snapshot)
		return nil, fmt.Errorf("set conversation status: %w", err)
	}

	s.store.Reconcile(updated)
	return updated, nil
}

// Assign sets or clears the conversation's assignee.
func (s *ConversationService) Assign(ctx context.Context, id, userID, userName string) (*model.Conversation, error) {
	current, ok := s.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("conversation %s not cached", id)
	}

	snapshot := current.Clone()
	s.store.Assign(id, userID, userName)
	metrics.RecordMutation("conversation", "assign")

	updated, err := s.api.AssignConversation(ctx, id, userID)
	if err != nil {
		s.rollback(id, snapshot)
		return nil, fmt.Errorf("assign conversation: %w", err)
	}

	s.store.Reconcile(updated)
	return updated, nil
}

// AssignToMe self-assigns the conversation to the acting user.
func (s *ConversationService) AssignToMe(ctx context.Context, id string, actor Actor) (*model.Conversation, error) {
	current, ok := s.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("conversation %s not cached", id)
	}

	snapshot := current.Clone()
	s.store.Assign(id, actor.ID, actor.Name)
	metrics.RecordMutation("conversation", "assign")

	updated, err := s.api.AssignConversationToMe(ctx, id)
	if err != nil {
		s.rollback(id, snapshot)
		return nil, fmt.Errorf("assign conversation to me: %w", err)
	}

	s.store.Reconcile(updated)
	return updated, nil
}

// SetVIP toggles the conversation's VIP flag.
func (s *ConversationService) SetVIP(ctx context.Context, id string, vip bool) (*model.Conversation, error) {
	current, ok := s.store.Get(id)
	if !ok {
		return nil, fmt.Errorf("conversation %s not cached", id)
	}

	snapshot := current.Clone()
	s.store.SetVIP(id, vip)
	metrics.RecordMutation("conversation", "vip")

	updated, err := s.api.SetConversationVIP(ctx, id, vip)
	if err != nil {
		s.rollback(id, snapshot)
		return nil, fmt.Errorf("set conversation vip: %w", err)
	}

	s.store.Reconcile(updated)
	return updated, nil
}

// Classify runs the AI intent classifier over the given message text and
// records the result on the conversation. Classification is advisory: a
// failure leaves the conversation untouched.
func (s *ConversationService) Classify(ctx context.Context, id, text string) (*intent.Result, error) {
	if s.classifier == nil {
		return nil, fmt.Errorf("no intent classifier configured")
	}
	if _, ok := s.store.Get(id); !ok {
		return nil, fmt.Errorf("conversation %s not cached", id)
	}

	res, err := s.classifier.Classify(ctx, text)
	if err != nil {
		metrics.IntentClassificationsTotal.WithLabelValues(s.classifier.Name(), "error").Inc()
		return nil, fmt.Errorf("classify intent: %w", err)
	}

	s.store.ApplyIntent(id, res.Label, res.Confidence)
	metrics.IntentClassificationsTotal.WithLabelValues(s.classifier.Name(), string(res.Label)).Inc()
	s.logger.Debug("conversation intent classified",
		zap.String("conversation_id", id),
		zap.String("label", string(res.Label)),
		zap.Float64("confidence", res.Confidence),
	)
	return res, nil
}

func (s *ConversationService) rollback(id string, snapshot *model.Conversation) {
	s.store.Reconcile(snapshot)
	metrics.RecordRollback("conversation")
	s.logger.Warn("optimistic conversation update rolled back", zap.String("conversation_id", id))
}

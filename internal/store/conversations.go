package store

import (
	"github.com/chatcart/crm-platform/internal/model"
)

// ConversationStore caches conversations.
type ConversationStore struct {
	*Store[*model.Conversation]
}

// NewConversations creates an empty conversation store.
func NewConversations() *ConversationStore {
	return &ConversationStore{Store: New[*model.Conversation]()}
}

// SetVIP toggles the VIP flag.
func (s *ConversationStore) SetVIP(id string, vip bool) {
	s.Update(id, func(c *model.Conversation) {
		c.VIP = vip
	})
}

// SetStatus sets the conversation status.
func (s *ConversationStore) SetStatus(id string, status model.ConversationStatus) {
	s.Update(id, func(c *model.Conversation) {
		c.Status = status
	})
}

// Assign sets the conversation's assignee. Empty ids unassign.
func (s *ConversationStore) Assign(id, userID, userName string) {
	s.Update(id, func(c *model.Conversation) {
		c.AssignedToUserID = userID
		c.AssignedToName = userName
	})
}

// ApplyIntent records an AI intent classification.
func (s *ConversationStore) ApplyIntent(id string, label model.IntentLabel, confidence float64) {
	s.Update(id, func(c *model.Conversation) {
		c.IntentLabel = label
		c.IntentConfidence = confidence
	})
}

// ByChannel returns the visible conversations on one channel.
func (s *ConversationStore) ByChannel(channel model.Channel) []*model.Conversation {
	return s.FilterActive(func(c *model.Conversation) bool {
		return c.Channel == channel
	})
}

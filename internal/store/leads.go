package store

import (
	"github.com/chatcart/crm-platform/internal/model"
)

// LeadStore caches leads.
type LeadStore struct {
	*Store[*model.Lead]
}

// NewLeads creates an empty lead store.
func NewLeads() *LeadStore {
	return &LeadStore{Store: New[*model.Lead]()}
}

// TransitionStatus sets the lead's status. Callers validate against the
// lead graph first; the store does not police transitions.
func (s *LeadStore) TransitionStatus(id string, next model.LeadStatus) {
	s.Update(id, func(l *model.Lead) {
		l.Status = next
	})
}

// Assign sets the lead's assignee. Empty ids unassign.
func (s *LeadStore) Assign(id, userID, userName string) {
	s.Update(id, func(l *model.Lead) {
		l.AssignedToUserID = userID
		l.AssignedToName = userName
	})
}

// ByConversation returns the visible leads linked to a conversation.
func (s *LeadStore) ByConversation(conversationID string) []*model.Lead {
	return s.FilterActive(func(l *model.Lead) bool {
		return l.ConversationID == conversationID
	})
}

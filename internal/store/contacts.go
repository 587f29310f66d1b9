package store

import (
	"github.com/chatcart/crm-platform/internal/model"
)

// ContactStore caches unified customer profiles.
type ContactStore struct {
	*Store[*model.Contact]
}

// NewContacts creates an empty contact store.
func NewContacts() *ContactStore {
	return &ContactStore{Store: New[*model.Contact]()}
}

// ByHandle finds the visible contact holding a handle on a channel.
func (s *ContactStore) ByHandle(channel model.Channel, handle string) (*model.Contact, bool) {
	for _, c := range s.GetActive() {
		if c.Handles[channel] == handle {
			return c, true
		}
	}
	return nil, false
}

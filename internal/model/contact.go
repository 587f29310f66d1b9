package model

import (
	"time"
)

// Contact is the unified customer profile across channels.
type Contact struct {
	ID          string `json:"id"`
	WorkspaceID string `json:"workspaceId,omitempty"`

	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`

	// Handles maps a channel to the customer's identity on it,
	// e.g. instagram -> "@username", whatsapp -> "+15550100".
	Handles map[Channel]string `json:"handles,omitempty"`

	FirstSeenAt *time.Time `json:"firstSeenAt,omitempty"`
	LastSeenAt  *time.Time `json:"lastSeenAt,omitempty"`

	TotalOrders  int     `json:"totalOrders"`
	TotalRevenue float64 `json:"totalRevenue"`

	Lifecycle
}

// EntityID returns the contact's identity.
func (c *Contact) EntityID() string {
	return c.ID
}

// Clone returns an independent copy, including the handles map.
func (c *Contact) Clone() *Contact {
	dup := *c
	if c.Handles != nil {
		dup.Handles = make(map[Channel]string, len(c.Handles))
		for k, v := range c.Handles {
			dup.Handles[k] = v
		}
	}
	if c.FirstSeenAt != nil {
		t := *c.FirstSeenAt
		dup.FirstSeenAt = &t
	}
	if c.LastSeenAt != nil {
		t := *c.LastSeenAt
		dup.LastSeenAt = &t
	}
	dup.Lifecycle = c.Lifecycle.cloned()
	return &dup
}

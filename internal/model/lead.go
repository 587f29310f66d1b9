package model

import (
	"time"
)

// LeadStatus is the lifecycle status of a lead. New is the only
// non-terminal state; Converted, Closed and Lost are terminal.
type LeadStatus string

const (
	LeadNew       LeadStatus = "New"
	LeadConverted LeadStatus = "Converted"
	LeadClosed    LeadStatus = "Closed"
	LeadLost      LeadStatus = "Lost"
)

// Legacy lead statuses. Recognized for display on records imported from
// older data, excluded from the active transition graph.
const (
	LeadContacted   LeadStatus = "Contacted"
	LeadQualified   LeadStatus = "Qualified"
	LeadNegotiating LeadStatus = "Negotiating"
	LeadSpam        LeadStatus = "Spam"
)

// LeadSource records how a lead was created.
type LeadSource string

const (
	LeadSourceAI     LeadSource = "AI"
	LeadSourceManual LeadSource = "MANUAL"
)

// Lead represents a sales opportunity, optionally linked to a conversation.
type Lead struct {
	ID             string `json:"id"`
	WorkspaceID    string `json:"workspaceId,omitempty"`
	ConversationID string `json:"conversationId,omitempty"`
	ContactID      string `json:"contactId,omitempty"`

	Channel        Channel `json:"channel"`
	CustomerHandle string  `json:"customerHandle"`
	CustomerName   string  `json:"customerName,omitempty"`

	Intent IntentLabel `json:"intent,omitempty"`
	Status LeadStatus  `json:"status"`
	Source LeadSource  `json:"source,omitempty"`

	AssignedToUserID string `json:"assignedToUserId,omitempty"`
	AssignedToName   string `json:"assignedTo,omitempty"`

	LastMessageTime    time.Time `json:"lastMessageTime"`
	LastMessageSnippet string    `json:"lastMessageSnippet,omitempty"`
	Notes              string    `json:"notes,omitempty"`
	Labels             []string  `json:"labels,omitempty"`
	Value              float64   `json:"value,omitempty"`

	Lifecycle
}

// EntityID returns the lead's identity.
func (l *Lead) EntityID() string {
	return l.ID
}

// Clone returns an independent copy.
func (l *Lead) Clone() *Lead {
	dup := *l
	dup.Labels = append([]string(nil), l.Labels...)
	dup.Lifecycle = l.Lifecycle.cloned()
	return &dup
}

// Terminal reports whether the lead can no longer change status.
func (s LeadStatus) Terminal() bool {
	return s == LeadConverted || s == LeadClosed || s == LeadLost
}

package model

import (
	"time"
)

// Channel identifies the messaging channel a conversation arrived on.
type Channel string

const (
	ChannelInstagram Channel = "instagram"
	ChannelWhatsApp  Channel = "whatsapp"
	ChannelMessenger Channel = "messenger"
)

// IntentLabel is the AI-assigned classification of a conversation.
type IntentLabel string

const (
	IntentBuying   IntentLabel = "BUYING"
	IntentSupport  IntentLabel = "SUPPORT"
	IntentBrowsing IntentLabel = "BROWSING"
	IntentSpam     IntentLabel = "SPAM"
	IntentOther    IntentLabel = "OTHER"
)

// ConversationStatus is the lifecycle status of a conversation.
type ConversationStatus string

const (
	ConversationNew       ConversationStatus = "New"
	ConversationActive    ConversationStatus = "Active"
	ConversationConverted ConversationStatus = "Converted"
	ConversationClosed    ConversationStatus = "Closed"
)

// Conversation represents a customer thread on one channel.
// AssignedToUserID is empty when the conversation is unassigned.
type Conversation struct {
	ID          string `json:"id"`
	WorkspaceID string `json:"workspaceId,omitempty"`
	ContactID   string `json:"contactId,omitempty"`

	Channel        Channel `json:"channel"`
	CustomerHandle string  `json:"customerHandle"`
	CustomerName   string  `json:"customerName,omitempty"`

	LastMessage     string    `json:"lastMessage"`
	LastMessageTime time.Time `json:"lastMessageTime"`
	UnreadCount     int       `json:"unreadCount,omitempty"`

	IntentLabel      IntentLabel `json:"intentLabel,omitempty"`
	IntentConfidence float64     `json:"intentConfidence,omitempty"`

	AssignedToUserID string `json:"assignedToUserId,omitempty"`
	AssignedToName   string `json:"assignedTo,omitempty"`

	VIP    bool               `json:"isVip,omitempty"`
	Status ConversationStatus `json:"status"`

	// Denormalized counts maintained by the server.
	LeadCount  int `json:"leadCount,omitempty"`
	OrderCount int `json:"orderCount,omitempty"`

	Lifecycle
}

// EntityID returns the conversation's identity.
func (c *Conversation) EntityID() string {
	return c.ID
}

// Clone returns an independent copy.
func (c *Conversation) Clone() *Conversation {
	dup := *c
	dup.Lifecycle = c.Lifecycle.cloned()
	return &dup
}

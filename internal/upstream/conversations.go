package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/chatcart/crm-platform/internal/model"
)

// ListConversations fetches a page of conversations.
func (c *Client) ListConversations(ctx context.Context, p ListParams) (*ListResult[*model.Conversation], error) {
	return getList[*model.Conversation](ctx, c, "/api/v1/conversations", p)
}

// AssignConversation sets or clears a conversation's assignee.
func (c *Client) AssignConversation(ctx context.Context, conversationID, userID string) (*model.Conversation, error) {
	var out model.Conversation
	path := fmt.Sprintf("/api/v1/conversations/%s/assign", conversationID)
	body := map[string]string{"assignedToUserId": userID}
	if err := c.do(ctx, http.MethodPatch, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AssignConversationToMe self-assigns the conversation to the caller.
func (c *Client) AssignConversationToMe(ctx context.Context, conversationID string) (*model.Conversation, error) {
	var out model.Conversation
	path := fmt.Sprintf("/api/v1/conversations/%s/assign-to-me", conversationID)
	if err := c.do(ctx, http.MethodPatch, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetConversationStatus updates the conversation's lifecycle status.
func (c *Client) SetConversationStatus(ctx context.Context, conversationID string, status model.ConversationStatus) (*model.Conversation, error) {
	var out model.Conversation
	path := fmt.Sprintf("/api/v1/conversations/%s/status", conversationID)
	body := map[string]model.ConversationStatus{"status": status}
	if err := c.do(ctx, http.MethodPatch, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetConversationVIP toggles the VIP flag.
func (c *Client) SetConversationVIP(ctx context.Context, conversationID string, vip bool) (*model.Conversation, error) {
	var out model.Conversation
	path := fmt.Sprintf("/api/v1/conversations/%s/vip", conversationID)
	body := map[string]bool{"isVip": vip}
	if err := c.do(ctx, http.MethodPatch, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

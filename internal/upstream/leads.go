package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/chatcart/crm-platform/internal/model"
)

// CreateLeadRequest is the body for POST /api/v1/leads.
type CreateLeadRequest struct {
	ConversationID string           `json:"conversationId,omitempty"`
	Channel        model.Channel    `json:"channel"`
	CustomerHandle string           `json:"customerHandle"`
	CustomerName   string           `json:"customerName,omitempty"`
	Intent         model.IntentLabel `json:"intent,omitempty"`
	Source         model.LeadSource `json:"source"`
	Notes          string           `json:"notes,omitempty"`
	Value          float64          `json:"value,omitempty"`
}

// ListLeads fetches a page of leads.
func (c *Client) ListLeads(ctx context.Context, p ListParams) (*ListResult[*model.Lead], error) {
	return getList[*model.Lead](ctx, c, "/api/v1/leads", p)
}

// CreateLead creates a manual lead.
func (c *Client) CreateLead(ctx context.Context, req CreateLeadRequest) (*model.Lead, error) {
	var out model.Lead
	if err := c.do(ctx, http.MethodPost, "/api/v1/leads", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SetLeadStatus updates the lead's lifecycle status.
func (c *Client) SetLeadStatus(ctx context.Context, leadID string, status model.LeadStatus) (*model.Lead, error) {
	var out model.Lead
	path := fmt.Sprintf("/api/v1/leads/%s/status", leadID)
	body := map[string]model.LeadStatus{"status": status}
	if err := c.do(ctx, http.MethodPatch, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AssignLead sets or clears the lead's assignee.
func (c *Client) AssignLead(ctx context.Context, leadID, userID string) (*model.Lead, error) {
	var out model.Lead
	path := fmt.Sprintf("/api/v1/leads/%s/assign", leadID)
	body := map[string]string{"assignedToUserId": userID}
	if err := c.do(ctx, http.MethodPatch, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateLeadNotes replaces the lead's free-text notes.
func (c *Client) UpdateLeadNotes(ctx context.Context, leadID, notes string) (*model.Lead, error) {
	var out model.Lead
	path := fmt.Sprintf("/api/v1/leads/%s/notes", leadID)
	body := map[string]string{"notes": notes}
	if err := c.do(ctx, http.MethodPatch, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

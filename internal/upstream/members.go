package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/chatcart/crm-platform/internal/model"
)

// ListContacts fetches a page of contacts.
func (c *Client) ListContacts(ctx context.Context, p ListParams) (*ListResult[*model.Contact], error) {
	return getList[*model.Contact](ctx, c, "/api/v1/contacts", p)
}

// GetWorkspace fetches the workspace, including plan and seat cap.
func (c *Client) GetWorkspace(ctx context.Context, workspaceID string) (*model.Workspace, error) {
	var out model.Workspace
	path := fmt.Sprintf("/api/v1/workspaces/%s", workspaceID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMembers fetches the workspace's members.
func (c *Client) ListMembers(ctx context.Context, workspaceID string) ([]model.Member, error) {
	var out []model.Member
	path := fmt.Sprintf("/api/v1/workspaces/%s/members", workspaceID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// InviteMember adds a user to the workspace. Seat-cap and duplicate-member
// rejections arrive as *workspace.APIError values.
func (c *Client) InviteMember(ctx context.Context, workspaceID, email string, role model.Role) (*model.Member, error) {
	var out model.Member
	path := fmt.Sprintf("/api/v1/workspaces/%s/members", workspaceID)
	body := map[string]any{"email": email, "role": role}
	if err := c.do(ctx, http.MethodPost, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateMemberRole changes a member's role. The server rejects changes that
// would leave the workspace without an admin; the rejection arrives as a
// *workspace.APIError.
func (c *Client) UpdateMemberRole(ctx context.Context, workspaceID, memberID string, role model.Role) (*model.Member, error) {
	var out model.Member
	path := fmt.Sprintf("/api/v1/workspaces/%s/members/%s/role", workspaceID, memberID)
	body := map[string]model.Role{"role": role}
	if err := c.do(ctx, http.MethodPatch, path, nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveMember removes a member from the workspace, subject to the same
// server-side invariants as role changes.
func (c *Client) RemoveMember(ctx context.Context, workspaceID, memberID string) error {
	path := fmt.Sprintf("/api/v1/workspaces/%s/members/%s", workspaceID, memberID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

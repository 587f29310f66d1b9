package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/chatcart/crm-platform/internal/model"
	"github.com/chatcart/crm-platform/internal/upstream"
	"github.com/chatcart/crm-platform/pkg/logger"
)

// TeamService manages workspace membership. Unlike the entity services it
// holds no optimistic cache: membership changes are rare, the server is the
// sole authority on seat caps and admin invariants, and its rejections
// (*workspace.APIError) must surface to the caller unaltered.
type TeamService struct {
	api    *upstream.Client
	logger *logger.Logger

	mu        sync.RWMutex
	workspace *model.Workspace
	members   []model.Member
}

// NewTeamService creates a team service.
func NewTeamService(api *upstream.Client, log *logger.Logger) *TeamService {
	return &TeamService{api: api, logger: log}
}

// Refresh fetches the workspace and its member list.
func (s *TeamService) Refresh(ctx context.Context, workspaceID string) error {
	ws, err := s.api.GetWorkspace(ctx, workspaceID)
	if err != nil {
		return fmt.Errorf("fetch workspace: %w", err)
	}
	members, err := s.api.ListMembers(ctx, workspaceID)
	if err != nil {
		return fmt.Errorf("fetch members: %w", err)
	}

	s.mu.Lock()
	s.workspace = ws
	s.members = members
	s.mu.Unlock()
	return nil
}

// Workspace returns the cached workspace, or nil before the first refresh.
func (s *TeamService) Workspace() *model.Workspace {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.workspace == nil {
		return nil
	}
	dup := *s.workspace
	return &dup
}

// Members returns the cached member list.
func (s *TeamService) Members() []model.Member {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Member(nil), s.members...)
}

// AtSeatCap reports whether the cached workspace has used every seat its
// plan allows. The server enforces the cap regardless; this only lets the
// UI disable the invite action up front.
func (s *TeamService) AtSeatCap() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.workspace == nil || s.workspace.MaxUsers <= 0 {
		return false
	}
	return s.workspace.MemberCount >= s.workspace.MaxUsers
}

// Invite adds a user to the workspace and refreshes the member list on
// success. Plan-limit and duplicate-member errors pass through as
// *workspace.APIError for the handler to present.
func (s *TeamService) Invite(ctx context.Context, workspaceID, email string, role model.Role) (*model.Member, error) {
	var verr ValidationError
	if email == "" {
		verr.add("email", "email is required")
	}
	if role != model.RoleAdmin && role != model.RoleMember {
		verr.add("role", "role must be ADMIN or MEMBER")
	}
	if err := verr.orNil(); err != nil {
		return nil, err
	}

	member, err := s.api.InviteMember(ctx, workspaceID, email, role)
	if err != nil {
		return nil, err
	}

	if err := s.Refresh(ctx, workspaceID); err != nil {
		s.logger.Warn("member list refresh after invite failed")
	}
	return member, nil
}

// UpdateRole changes a member's role. The server rejects demoting the last
// admin; that rejection passes through unaltered.
func (s *TeamService) UpdateRole(ctx context.Context, workspaceID, memberID string, role model.Role) (*model.Member, error) {
	member, err := s.api.UpdateMemberRole(ctx, workspaceID, memberID, role)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	for i := range s.members {
		if s.members[i].ID == memberID {
			s.members[i] = *member
			break
		}
	}
	s.mu.Unlock()
	return member, nil
}

// Remove removes a member from the workspace.
func (s *TeamService) Remove(ctx context.Context, workspaceID, memberID string) error {
	if err := s.api.RemoveMember(ctx, workspaceID, memberID); err != nil {
		return err
	}

	s.mu.Lock()
	kept := s.members[:0]
	for _, m := range s.members {
		if m.ID != memberID {
			kept = append(kept, m)
		}
	}
	s.members = kept
	if s.workspace != nil && s.workspace.MemberCount > 0 {
		s.workspace.MemberCount--
	}
	s.mu.Unlock()
	return nil
}

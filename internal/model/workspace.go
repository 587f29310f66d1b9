package model

import (
	"time"
)

// Plan is the workspace subscription tier.
type Plan string

const (
	PlanPro        Plan = "PRO"
	PlanEnterprise Plan = "ENTERPRISE"
)

// Role is a member's role inside a workspace. The server guarantees every
// workspace keeps at least one admin; the client only surfaces rejections.
type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

// Workspace describes a team workspace and its seat cap.
type Workspace struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Plan        Plan      `json:"plan"`
	MaxUsers    int       `json:"maxUsers"`
	MemberCount int       `json:"memberCount"`
	OwnerID     string    `json:"ownerId"`
	OwnerName   string    `json:"ownerName,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Member is one user's membership in a workspace.
type Member struct {
	ID            string     `json:"id"`
	UserID        string     `json:"userId"`
	UserName      string     `json:"userName"`
	UserEmail     string     `json:"userEmail"`
	Role          Role       `json:"role"`
	InvitedByID   string     `json:"invitedById,omitempty"`
	InvitedByName string     `json:"invitedByName,omitempty"`
	InvitedAt     *time.Time `json:"invitedAt,omitempty"`
	JoinedAt      *time.Time `json:"joinedAt,omitempty"`
}

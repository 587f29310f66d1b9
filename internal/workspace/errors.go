// Package workspace maps the upstream's structured workspace error codes to
// user-facing messages. The server owns the invariants (seat caps, the
// last-admin rule); the client only renders the rejection.
package workspace

import (
	"errors"
	"fmt"
)

// Error codes returned by the workspace endpoints.
const (
	CodePlanUserLimitReached = "PLAN_USER_LIMIT_REACHED"
	CodeAdminRequired        = "ADMIN_REQUIRED"
	CodeMustHaveAdmin        = "MUST_HAVE_ADMIN"
	CodeUserAlreadyMember    = "USER_ALREADY_MEMBER"
	CodeUserNotFound         = "USER_NOT_FOUND"
	CodeWorkspaceNotFound    = "WORKSPACE_NOT_FOUND"
	CodeMemberNotFound       = "MEMBER_NOT_FOUND"
)

// APIError is a structured error from the workspace endpoints.
type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("workspace: %s: %s", e.Code, e.Message)
}

// IsPlanLimitReached reports whether the workspace hit its seat cap.
func (e *APIError) IsPlanLimitReached() bool {
	return e.Code == CodePlanUserLimitReached
}

// IsMustHaveAdmin reports whether the change would leave zero admins.
func (e *APIError) IsMustHaveAdmin() bool {
	return e.Code == CodeMustHaveAdmin
}

// Presentation is what the UI shows for a failure. ShowUpgrade signals an
// upgrade call-to-action instead of a plain error.
type Presentation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ShowUpgrade bool   `json:"showUpgrade,omitempty"`
}

var presentations = map[string]Presentation{
	CodePlanUserLimitReached: {
		Title:       "Team Limit Reached",
		Description: "Pro plan supports up to 5 users. Upgrade to add more team members.",
		ShowUpgrade: true,
	},
	CodeAdminRequired: {
		Title:       "Admin Required",
		Description: "Only workspace admins can perform this action.",
	},
	CodeMustHaveAdmin: {
		Title:       "Cannot Remove Last Admin",
		Description: "Every workspace must have at least one admin.",
	},
	CodeUserAlreadyMember: {
		Title:       "Already a Member",
		Description: "This user is already a member of this workspace.",
	},
	CodeUserNotFound: {
		Title:       "User Not Found",
		Description: "No user found with this email address. They need to sign up first.",
	},
}

// Describe maps any error to a user-facing title and description. Known
// codes get specific copy; other structured errors fall back to the server
// message; everything else gets a generic description.
func Describe(err error) Presentation {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		if p, ok := presentations[apiErr.Code]; ok {
			return p
		}
		return Presentation{Title: "Error", Description: apiErr.Message}
	}
	if err != nil {
		return Presentation{Title: "Error", Description: err.Error()}
	}
	return Presentation{Title: "Error", Description: "An unexpected error occurred."}
}

package workspace

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDescribeKnownCodes(t *testing.T) {
	tests := []struct {
		code        string
		title       string
		showUpgrade bool
	}{
		{CodePlanUserLimitReached, "Team Limit Reached", true},
		{CodeAdminRequired, "Admin Required", false},
		{CodeMustHaveAdmin, "Cannot Remove Last Admin", false},
		{CodeUserAlreadyMember, "Already a Member", false},
		{CodeUserNotFound, "User Not Found", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := &APIError{Code: tt.code, Message: "server message"}
			p := Describe(err)
			assert.Equal(t, tt.title, p.Title)
			assert.NotEmpty(t, p.Description)
			assert.Equal(t, tt.showUpgrade, p.ShowUpgrade)
		})
	}
}

func TestDescribeUnknownCodeFallsBackToServerMessage(t *testing.T) {
	err := &APIError{Code: "SOMETHING_NEW", Message: "the server said so"}
	p := Describe(err)
	assert.Equal(t, "Error", p.Title)
	assert.Equal(t, "the server said so", p.Description)
	assert.False(t, p.ShowUpgrade)
}

func TestDescribeWrappedError(t *testing.T) {
	inner := &APIError{Code: CodePlanUserLimitReached, Message: "limit"}
	wrapped := fmt.Errorf("invite member: %w", inner)

	p := Describe(wrapped)
	assert.Equal(t, "Team Limit Reached", p.Title)
	assert.True(t, p.ShowUpgrade)
}

func TestDescribePlainError(t *testing.T) {
	p := Describe(errors.New("connection refused"))
	assert.Equal(t, "Error", p.Title)
	assert.Equal(t, "connection refused", p.Description)

	p = Describe(nil)
	assert.Equal(t, "An unexpected error occurred.", p.Description)
}

func TestPredicates(t *testing.T) {
	assert.True(t, (&APIError{Code: CodePlanUserLimitReached}).IsPlanLimitReached())
	assert.False(t, (&APIError{Code: CodeUserNotFound}).IsPlanLimitReached())
	assert.True(t, (&APIError{Code: CodeMustHaveAdmin}).IsMustHaveAdmin())
}

func TestErrorString(t *testing.T) {
	err := &APIError{Code: CodeUserNotFound, Message: "no such user"}
	assert.Equal(t, "workspace: USER_NOT_FOUND: no such user", err.Error())
}

package upstream

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatcart/crm-platform/internal/model"
	"github.com/chatcart/crm-platform/internal/workspace"
	"github.com/chatcart/crm-platform/pkg/logger"
)

func TestNewIdempotencyKey(t *testing.T) {
	at := time.UnixMilli(1718000000123)
	assert.Equal(t, "create-conv-42-1718000000123", NewIdempotencyKey("conv-42", at))

	// same attempt, same key
	assert.Equal(t, NewIdempotencyKey("conv-42", at), NewIdempotencyKey("conv-42", at))

	// a new attempt a tick later gets a new key
	assert.NotEqual(t, NewIdempotencyKey("conv-42", at), NewIdempotencyKey("conv-42", at.Add(time.Millisecond)))
}

func TestClientSendsBearerToken(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"items":[],"page":1}`))
	}))
	defer server.Close()

	c := New(server.URL, StaticToken("secret-token"), logger.NewNop())
	_, err := c.ListOrders(context.Background(), ListParams{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer secret-token", gotAuth)
}

func TestClientDecodesStructuredError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"code":"PLAN_USER_LIMIT_REACHED","message":"seat cap reached"}`))
	}))
	defer server.Close()

	c := New(server.URL, nil, logger.NewNop())
	_, err := c.InviteMember(context.Background(), "ws-1", "new@example.com", model.RoleMember)
	require.Error(t, err)

	var apiErr *workspace.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, workspace.CodePlanUserLimitReached, apiErr.Code)
	assert.Equal(t, "seat cap reached", apiErr.Message)
	assert.Equal(t, http.StatusForbidden, apiErr.HTTPStatus)
	assert.True(t, apiErr.IsPlanLimitReached())
}

func TestClientFallsBackToGenericError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway timeout", http.StatusGatewayTimeout)
	}))
	defer server.Close()

	c := New(server.URL, nil, logger.NewNop())
	_, err := c.ListLeads(context.Background(), ListParams{})
	require.Error(t, err)

	var apiErr *workspace.APIError
	assert.False(t, errors.As(err, &apiErr))
	assert.Contains(t, err.Error(), "status 504")
}

func TestListParamsValues(t *testing.T) {
	q := ListParams{
		Status:     "PENDING",
		AssignedTo: "me",
		Query:      "scarf",
		Sort:       "updated_desc",
		Page:       2,
		PageSize:   10,
	}.values()

	assert.Equal(t, "PENDING", q.Get("status"))
	assert.Equal(t, "me", q.Get("assignedTo"))
	assert.Equal(t, "scarf", q.Get("q"))
	assert.Equal(t, "updated_desc", q.Get("sort"))
	assert.Equal(t, "2", q.Get("page"))
	assert.Equal(t, "10", q.Get("pageSize"))

	// "any" is the default and never serialized
	q = ListParams{AssignedTo: "any"}.values()
	assert.Empty(t, q.Get("assignedTo"))
	assert.Empty(t, q)
}

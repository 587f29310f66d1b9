package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatcart/crm-platform/internal/model"
	"github.com/chatcart/crm-platform/internal/service"
	"github.com/chatcart/crm-platform/internal/store"
	"github.com/chatcart/crm-platform/pkg/logger"
)

func testConversation(id string, channel model.Channel) *model.Conversation {
	return &model.Conversation{
		ID:             id,
		Channel:        channel,
		CustomerHandle: "@" + id,
		CustomerName:   "Priya Sharma",
		Status:         model.ConversationActive,
	}
}

func newConversationHandler(t *testing.T, items []*model.Conversation) *ConversationHandler {
	st := store.NewConversations()
	st.Replace(items)
	svc := service.NewConversationService(st, nil, nil, logger.NewNop())
	return NewConversationHandler(svc, logger.NewNop())
}

func TestConversationListFiltersByChannel(t *testing.T) {
	h := newConversationHandler(t, []*model.Conversation{
		testConversation("c1", model.ChannelInstagram),
		testConversation("c2", model.ChannelWhatsApp),
		testConversation("c3", model.ChannelInstagram),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/conversations?channel=instagram", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var page struct {
		Items      []*model.Conversation `json:"items"`
		TotalCount int                   `json:"totalItems"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 2, page.TotalCount)
	for _, c := range page.Items {
		assert.Equal(t, model.ChannelInstagram, c.Channel)
	}
}

func TestConversationListRejectsOversizedQuery(t *testing.T) {
	h := newConversationHandler(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/conversations?q="+strings.Repeat("a", 257), nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderStatuses(t *testing.T) {
	h := NewOrderHandler(nil, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Statuses(rec, httptest.NewRequest(http.MethodGet, "/api/v1/orders/statuses", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var opts []statusOption
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opts))
	require.Len(t, opts, 6)
	assert.Equal(t, string(model.OrderNew), opts[0].Value)
	assert.Equal(t, "New", opts[0].Label)
	assert.Equal(t, string(model.OrderCancelled), opts[5].Value)
}

func TestLeadStatuses(t *testing.T) {
	h := NewLeadHandler(nil, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Statuses(rec, httptest.NewRequest(http.MethodGet, "/api/v1/leads/statuses", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var opts []statusOption
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &opts))
	require.Len(t, opts, 4)
	values := make([]string, 0, len(opts))
	for _, o := range opts {
		values = append(values, o.Value)
	}
	// legacy pipeline statuses never show up in filter controls
	assert.Equal(t, []string{"New", "Converted", "Closed", "Lost"}, values)
}

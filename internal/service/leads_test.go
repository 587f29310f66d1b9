package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatcart/crm-platform/internal/model"
	"github.com/chatcart/crm-platform/internal/store"
	"github.com/chatcart/crm-platform/internal/upstream"
	"github.com/chatcart/crm-platform/pkg/logger"
)

func newLeadService(t *testing.T, f *fakeUpstream) *LeadService {
	api := upstream.New(f.server.URL, upstream.StaticToken("test-token"), logger.NewNop())
	return NewLeadService(store.NewLeads(), api, logger.NewNop())
}

func newLead(id string) *model.Lead {
	return &model.Lead{
		ID:             id,
		Channel:        model.ChannelInstagram,
		CustomerHandle: "@meera.m",
		Status:         model.LeadNew,
	}
}

func TestLeadTransitionIsTerminal(t *testing.T) {
	f := newFakeUpstream(t)
	server := newLead("l1")
	server.Status = model.LeadConverted
	f.respond("/api/v1/leads/l1/status", http.StatusOK, server)

	svc := newLeadService(t, f)
	svc.Store().Replace([]*model.Lead{newLead("l1")})

	updated, err := svc.Transition(context.Background(), "l1", model.LeadConverted)
	require.NoError(t, err)
	assert.Equal(t, model.LeadConverted, updated.Status)

	// converted is terminal, nothing moves again
	_, err = svc.Transition(context.Background(), "l1", model.LeadClosed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "illegal lead transition")
}

func TestLeadTransitionRollsBack(t *testing.T) {
	f := newFakeUpstream(t)
	// status endpoint not seeded: the fake answers 500
	svc := newLeadService(t, f)
	svc.Store().Replace([]*model.Lead{newLead("l1")})

	_, err := svc.Transition(context.Background(), "l1", model.LeadLost)
	require.Error(t, err)

	got, ok := svc.Store().Get("l1")
	require.True(t, ok)
	assert.Equal(t, model.LeadNew, got.Status)
}

func TestCreateLeadValidatesAndMarksManual(t *testing.T) {
	f := newFakeUpstream(t)
	f.respond("/api/v1/leads", http.StatusCreated, newLead("l1"))
	svc := newLeadService(t, f)
	svc.Store().Replace(nil)

	_, err := svc.Create(context.Background(), CreateLeadInput{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "customerHandle")
	assert.Contains(t, verr.Fields, "channel")

	created, err := svc.Create(context.Background(), CreateLeadInput{
		Channel:        model.ChannelInstagram,
		CustomerHandle: "@meera.m",
	})
	require.NoError(t, err)
	assert.Equal(t, "l1", created.ID)

	// the request carried the manual source marker
	assert.Contains(t, f.bodies[len(f.bodies)-1], `"source":"MANUAL"`)

	_, ok := svc.Store().Get("l1")
	assert.True(t, ok)
}

func TestLeadUpdateNotesOptimistic(t *testing.T) {
	f := newFakeUpstream(t)
	server := newLead("l1")
	server.Notes = "prefers COD"
	f.respond("/api/v1/leads/l1/notes", http.StatusOK, server)

	svc := newLeadService(t, f)
	svc.Store().Replace([]*model.Lead{newLead("l1")})

	updated, err := svc.UpdateNotes(context.Background(), "l1", "prefers COD")
	require.NoError(t, err)
	assert.Equal(t, "prefers COD", updated.Notes)
}

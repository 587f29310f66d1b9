package service

import (
	"context"
	"fmt"

	"github.com/chatcart/crm-platform/internal/store"
	"github.com/chatcart/crm-platform/internal/upstream"
	"github.com/chatcart/crm-platform/pkg/logger"
	"github.com/chatcart/crm-platform/pkg/metrics"
)

// ContactService keeps the contact cache fresh. Contacts are read-only on
// this side: they are created and merged server-side as conversations
// arrive.
type ContactService struct {
	store  *store.ContactStore
	api    *upstream.Client
	logger *logger.Logger
}

// NewContactService creates a contact service.
func NewContactService(st *store.ContactStore, api *upstream.Client, log *logger.Logger) *ContactService {
	return &ContactService{store: st, api: api, logger: log}
}

// Store exposes the underlying cache for read paths.
func (s *ContactService) Store() *store.ContactStore {
	return s.store
}

// Refresh replaces the cache with the authoritative upstream list.
func (s *ContactService) Refresh(ctx context.Context) error {
	s.store.BeginFetch()
	res, err := s.api.ListContacts(ctx, upstream.ListParams{})
	if err != nil {
		s.store.EndFetch()
		return fmt.Errorf("refresh contacts: %w", err)
	}
	s.store.Replace(res.Items)
	metrics.StoreSize.WithLabelValues("contact").Set(float64(s.store.Len()))
	return nil
}

// Package store provides in-memory entity caches with optimistic-update
// semantics. Each store holds the authoritative local snapshot of one
// collection and mediates every mutation to it.
//
// Mutations on missing ids are silent no-ops: the entity may belong to a
// page that is not currently cached. Stores never carry an error state;
// fetch failures are the caller's to surface.
package store

import (
	"sync"
	"time"

	"github.com/chatcart/crm-platform/internal/model"
)

// Entity is the contract a record must satisfy to live in a Store.
// T is always a pointer type, e.g. *model.Order.
type Entity[T any] interface {
	EntityID() string
	Clone() T
	Meta() *model.Lifecycle
}

// Store is a cache of one entity collection. Any number of readers may use
// it concurrently; mutations apply synchronously in call order.
type Store[T Entity[T]] struct {
	mu              sync.RWMutex
	items           []T
	loading         bool
	includeArchived bool
	now             func() time.Time
}

// New creates an empty store. A store starts in the loading state until the
// first fetch lands.
func New[T Entity[T]]() *Store[T] {
	return &Store[T]{loading: true, now: time.Now}
}

// WithClock overrides the store's clock. Intended for tests.
func (s *Store[T]) WithClock(now func() time.Time) *Store[T] {
	s.mu.Lock()
	s.now = now
	s.mu.Unlock()
	return s
}

// Now returns the store's current time.
func (s *Store[T]) Now() time.Time {
	return s.now()
}

// BeginFetch marks the store as loading. The flag is the only coordination
// signal callers get while a fetch is in flight.
func (s *Store[T]) BeginFetch() {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()
}

// EndFetch clears the loading flag without touching the snapshot. Used when
// a fetch fails and the caller keeps the previous data.
func (s *Store[T]) EndFetch() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

// Replace installs the authoritative list, deep-cloning every record so
// later local mutation cannot alias the caller's copies. Fetches are always
// a full replace, never a merge; when two fetches race, the last to resolve
// wins.
func (s *Store[T]) Replace(items []T) {
	cloned := make([]T, len(items))
	for i, item := range items {
		cloned[i] = item.Clone()
	}

	s.mu.Lock()
	s.items = cloned
	s.loading = false
	s.mu.Unlock()
}

// Add prepends a deep-cloned entity. Creates are awaited server-side before
// Add is called, so there is no pre-confirmation insert path.
func (s *Store[T]) Add(item T) {
	cloned := item.Clone()

	s.mu.Lock()
	s.items = append([]T{cloned}, s.items...)
	s.mu.Unlock()
}

// Update applies a mutation to the entity with the given id and refreshes
// its UpdatedAt. Missing ids are a no-op. This is the optimistic-update
// primitive: callers invoke it before or without server confirmation.
func (s *Store[T]) Update(id string, apply func(T)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, item := range s.items {
		if item.EntityID() == id {
			apply(item)
			item.Meta().Touch(s.now())
			return
		}
	}
}

// Reconcile replaces the cached entry with a deep clone of the
// server-returned record. A missing id is a no-op, same as Update.
func (s *Store[T]) Reconcile(item T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := item.EntityID()
	for i, existing := range s.items {
		if existing.EntityID() == id {
			s.items[i] = item.Clone()
			return
		}
	}
}

// Archive hides the entity from default listings.
func (s *Store[T]) Archive(id string) {
	s.Update(id, func(item T) {
		now := s.now()
		item.Meta().ArchivedAt = &now
	})
}

// Unarchive restores an archived entity to default listings.
func (s *Store[T]) Unarchive(id string) {
	s.Update(id, func(item T) {
		item.Meta().ArchivedAt = nil
	})
}

// SoftDelete removes the entity from every listing. There is no restore:
// deletion is terminal from the client's perspective.
func (s *Store[T]) SoftDelete(id string) {
	s.Update(id, func(item T) {
		now := s.now()
		item.Meta().DeletedAt = &now
	})
}

// Get returns a deep copy of the cached entity with the given id. Readers
// hold results past the lock (encoding, rendering), so interior pointers
// must never escape the store.
func (s *Store[T]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, item := range s.items {
		if item.EntityID() == id {
			return item.Clone(), true
		}
	}
	var zero T
	return zero, false
}

// GetActive returns deep copies of the entities passing the visibility
// predicate. The result is recomputed on every call; items and the
// archived toggle can both change between calls.
func (s *Store[T]) GetActive() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.items))
	for _, item := range s.items {
		if item.Meta().Visible(s.includeArchived) {
			out = append(out, item.Clone())
		}
	}
	return out
}

// FilterActive returns the visible entities matching pred, preserving
// insertion order.
func (s *Store[T]) FilterActive(pred func(T) bool) []T {
	out := s.GetActive()
	filtered := out[:0]
	for _, item := range out {
		if pred(item) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// SetIncludeArchived switches the visibility predicate between
// "active only" and "active + archived". Deleted entities stay hidden
// regardless.
func (s *Store[T]) SetIncludeArchived(include bool) {
	s.mu.Lock()
	s.includeArchived = include
	s.mu.Unlock()
}

// IncludeArchived reports the current visibility toggle.
func (s *Store[T]) IncludeArchived() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.includeArchived
}

// Loading reports whether a fetch is in flight.
func (s *Store[T]) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Len returns the total number of cached entities, including archived and
// deleted ones.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

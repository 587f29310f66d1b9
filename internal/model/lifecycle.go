// Package model defines data structures for the CRM platform.
package model

import (
	"time"
)

// Lifecycle carries the timestamps shared by every soft-deletable entity.
// An entity is active while DeletedAt is unset. It is visible while it is
// active and ArchivedAt is unset, unless the caller opts into archived rows.
// Deleted entities are never visible.
type Lifecycle struct {
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  time.Time  `json:"updatedAt"`
	ArchivedAt *time.Time `json:"archivedAt,omitempty"`
	DeletedAt  *time.Time `json:"deletedAt,omitempty"`
}

// Active reports whether the entity has not been soft deleted.
func (l *Lifecycle) Active() bool {
	return l.DeletedAt == nil
}

// Visible reports whether the entity should appear in listings.
func (l *Lifecycle) Visible(includeArchived bool) bool {
	if !l.Active() {
		return false
	}
	return includeArchived || l.ArchivedAt == nil
}

// Touch refreshes the update timestamp.
func (l *Lifecycle) Touch(now time.Time) {
	l.UpdatedAt = now
}

// Meta exposes the lifecycle for store bookkeeping. The method is promoted
// to every entity that embeds Lifecycle.
func (l *Lifecycle) Meta() *Lifecycle {
	return l
}

// cloned returns a copy with its own timestamp pointers.
func (l Lifecycle) cloned() Lifecycle {
	dup := l
	if l.ArchivedAt != nil {
		t := *l.ArchivedAt
		dup.ArchivedAt = &t
	}
	if l.DeletedAt != nil {
		t := *l.DeletedAt
		dup.DeletedAt = &t
	}
	return dup
}

// Package view implements the pure filter/sort/paginate pipeline that turns
// a store snapshot plus UI-selected parameters into the page a client
// renders. The pipeline never mutates its input and is recomputed on every
// call; debouncing of raw keystrokes happens upstream of it.
package view

import (
	"strings"

	"github.com/chatcart/crm-platform/internal/model"
)

// DefaultPageSize matches the reference list views.
const DefaultPageSize = 10

// AssignmentFilter is the three-way assignee filter. Exactly one value is
// active at a time.
type AssignmentFilter string

const (
	AssignmentAny        AssignmentFilter = "any"
	AssignmentMe         AssignmentFilter = "me"
	AssignmentUnassigned AssignmentFilter = "unassigned"
)

// SortKey is an explicit (field, direction) pair.
type SortKey string

const (
	SortUpdatedDesc SortKey = "updated_desc"
	SortUpdatedAsc  SortKey = "updated_asc"
	SortAmountDesc  SortKey = "amount_desc"
	SortAmountAsc   SortKey = "amount_asc"
	SortCreatedDesc SortKey = "created_desc"
	SortCreatedAsc  SortKey = "created_asc"
)

// Params configures one pipeline run. Status is the exact status string to
// match; empty means all statuses. ActorID backs the "me" assignment filter.
type Params struct {
	Status         string
	Assignment     AssignmentFilter
	ActorID        string
	Query          string
	ConversationID string
	Sort           SortKey
	Page           int
	PageSize       int
}

func (p Params) normalized() Params {
	if p.Assignment == "" {
		p.Assignment = AssignmentAny
	}
	if p.Sort == "" {
		p.Sort = SortUpdatedDesc
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = DefaultPageSize
	}
	return p
}

// Page is one rendered page of records.
type Page[T any] struct {
	Items      []T `json:"items"`
	Page       int `json:"page"`
	PageSize   int `json:"pageSize"`
	TotalCount int `json:"totalItems"`
	TotalPages int `json:"totalPages"`
}

// Orders runs the pipeline over an order snapshot. Search is a
// case-insensitive substring match across order number, customer name,
// handle, email, phone and line-item names; a record matches if any field
// contains the query.
func Orders(items []*model.Order, p Params) Page[*model.Order] {
	p = p.normalized()
	query := strings.ToLower(strings.TrimSpace(p.Query))

	filtered := make([]*model.Order, 0, len(items))
	for _, o := range items {
		if p.Status != "" && string(o.Status) != p.Status {
			continue
		}
		if p.ConversationID != "" && o.ConversationID != p.ConversationID {
			continue
		}
		if !matchAssignment(o.AssignedToUserID, p) {
			continue
		}
		if query != "" && !orderMatches(o, query) {
			continue
		}
		filtered = append(filtered, o)
	}

	sortSlice(filtered, p.Sort, func(o *model.Order) sortFields {
		return sortFields{
			updated: o.UpdatedAt,
			created: o.CreatedAt,
			amount:  o.Totals.Total,
		}
	})
	return paginate(filtered, p)
}

// Leads runs the pipeline over a lead snapshot. Searchable fields: customer
// name, handle, notes and message snippet. Amount sorts use the lead value.
func Leads(items []*model.Lead, p Params) Page[*model.Lead] {
	p = p.normalized()
	query := strings.ToLower(strings.TrimSpace(p.Query))

	filtered := make([]*model.Lead, 0, len(items))
	for _, l := range items {
		if p.Status != "" && string(l.Status) != p.Status {
			continue
		}
		if p.ConversationID != "" && l.ConversationID != p.ConversationID {
			continue
		}
		if !matchAssignment(l.AssignedToUserID, p) {
			continue
		}
		if query != "" && !leadMatches(l, query) {
			continue
		}
		filtered = append(filtered, l)
	}

	sortSlice(filtered, p.Sort, func(l *model.Lead) sortFields {
		return sortFields{
			updated: l.UpdatedAt,
			created: l.CreatedAt,
			amount:  l.Value,
		}
	})
	return paginate(filtered, p)
}

// Conversations runs the pipeline over a conversation snapshot. Searchable
// fields: customer name, handle and last message. Amount sorts fall back to
// insertion order.
func Conversations(items []*model.Conversation, p Params) Page[*model.Conversation] {
	p = p.normalized()
	query := strings.ToLower(strings.TrimSpace(p.Query))

	filtered := make([]*model.Conversation, 0, len(items))
	for _, c := range items {
		if p.Status != "" && string(c.Status) != p.Status {
			continue
		}
		if !matchAssignment(c.AssignedToUserID, p) {
			continue
		}
		if query != "" && !conversationMatches(c, query) {
			continue
		}
		filtered = append(filtered, c)
	}

	sortSlice(filtered, p.Sort, func(c *model.Conversation) sortFields {
		return sortFields{
			updated: c.UpdatedAt,
			created: c.CreatedAt,
		}
	})
	return paginate(filtered, p)
}

func matchAssignment(assigneeID string, p Params) bool {
	switch p.Assignment {
	case AssignmentMe:
		return assigneeID != "" && assigneeID == p.ActorID
	case AssignmentUnassigned:
		return assigneeID == ""
	default:
		return true
	}
}

func orderMatches(o *model.Order, query string) bool {
	if contains(o.OrderNumber, query) ||
		contains(o.CustomerName, query) ||
		contains(o.CustomerHandle, query) ||
		contains(o.CustomerEmail, query) ||
		contains(o.CustomerPhone, query) {
		return true
	}
	for _, item := range o.Items {
		if contains(item.Name, query) {
			return true
		}
	}
	return false
}

func leadMatches(l *model.Lead, query string) bool {
	return contains(l.CustomerName, query) ||
		contains(l.CustomerHandle, query) ||
		contains(l.Notes, query) ||
		contains(l.LastMessageSnippet, query)
}

func conversationMatches(c *model.Conversation, query string) bool {
	return contains(c.CustomerName, query) ||
		contains(c.CustomerHandle, query) ||
		contains(c.LastMessage, query)
}

func contains(field, loweredQuery string) bool {
	return strings.Contains(strings.ToLower(field), loweredQuery)
}


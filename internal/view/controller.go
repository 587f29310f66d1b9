package view

import (
	"sync"
)

// Controller owns the current pipeline parameters for one list view.
// Changing any filter, the query or the sort resets the page to 1 so a user
// never lands on a stale page of a freshly filtered list.
type Controller struct {
	mu     sync.Mutex
	params Params
}

// NewController creates a controller with the reference defaults.
func NewController(actorID string) *Controller {
	return &Controller{params: Params{
		Assignment: AssignmentAny,
		ActorID:    actorID,
		Sort:       SortUpdatedDesc,
		Page:       1,
		PageSize:   DefaultPageSize,
	}}
}

// Params returns a snapshot of the current parameters.
func (c *Controller) Params() Params {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.params
}

// SetStatus changes the status filter. Empty means all statuses.
func (c *Controller) SetStatus(status string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.params.Status = status
	c.params.Page = 1
}

// SetAssignment changes the three-way assignee filter.
func (c *Controller) SetAssignment(a AssignmentFilter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.params.Assignment = a
	c.params.Page = 1
}

// SetQuery changes the (already debounced) search query.
func (c *Controller) SetQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.params.Query = query
	c.params.Page = 1
}

// SetSort changes the sort key.
func (c *Controller) SetSort(key SortKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.params.Sort = key
	c.params.Page = 1
}

// SetConversation scopes the view to one conversation's records.
func (c *Controller) SetConversation(conversationID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.params.ConversationID = conversationID
	c.params.Page = 1
}

// SetPage moves to a page without touching the filters.
func (c *Controller) SetPage(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if page < 1 {
		page = 1
	}
	c.params.Page = page
}

// ClearFilters resets status, assignment and query, returning to page 1.
func (c *Controller) ClearFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.params.Status = ""
	c.params.Assignment = AssignmentAny
	c.params.Query = ""
	c.params.Page = 1
}

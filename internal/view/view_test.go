package view

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chatcart/crm-platform/internal/model"
)

func order(id string, mutate ...func(*model.Order)) *model.Order {
	o := &model.Order{
		ID:             id,
		OrderNumber:    "ORD-" + id,
		CustomerName:   "Priya Sharma",
		CustomerHandle: "@priya.s",
		CustomerEmail:  "priya@example.com",
		CustomerPhone:  "+91 98765 43210",
		Status:         model.OrderPending,
		Items: []model.OrderItem{
			{Name: "Silk Scarf", Quantity: 1, UnitPrice: 450},
		},
	}
	for _, m := range mutate {
		m(o)
	}
	return o
}

func TestOrderSearchFields(t *testing.T) {
	items := []*model.Order{order("a")}

	tests := []struct {
		name  string
		query string
		hits  int
	}{
		{"order number", "ord-a", 1},
		{"customer name", "priya", 1},
		{"handle", "@priya", 1},
		{"email", "example.com", 1},
		{"phone", "98765", 1},
		{"item name", "silk", 1},
		{"case insensitive", "SILK SCARF", 1},
		{"substring not prefix", "carf", 1},
		{"no match", "necklace", 0},
		{"whitespace only matches all", "   ", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := Orders(items, Params{Query: tt.query})
			assert.Len(t, page.Items, tt.hits)
		})
	}
}

func TestAssignmentFilter(t *testing.T) {
	items := []*model.Order{
		order("mine", func(o *model.Order) { o.AssignedToUserID = "u1" }),
		order("other", func(o *model.Order) { o.AssignedToUserID = "u2" }),
		order("nobody"),
	}

	page := Orders(items, Params{Assignment: AssignmentAny, ActorID: "u1"})
	assert.Len(t, page.Items, 3)

	page = Orders(items, Params{Assignment: AssignmentMe, ActorID: "u1"})
	require.Len(t, page.Items, 1)
	assert.Equal(t, "mine", page.Items[0].ID)

	page = Orders(items, Params{Assignment: AssignmentUnassigned})
	require.Len(t, page.Items, 1)
	assert.Equal(t, "nobody", page.Items[0].ID)

	// "me" with no actor matches nothing rather than leaking unassigned rows
	page = Orders(items, Params{Assignment: AssignmentMe})
	assert.Empty(t, page.Items)
}

func TestStatusFilter(t *testing.T) {
	items := []*model.Order{
		order("a", func(o *model.Order) { o.Status = model.OrderPending }),
		order("b", func(o *model.Order) { o.Status = model.OrderShipped }),
	}

	page := Orders(items, Params{Status: "SHIPPED"})
	require.Len(t, page.Items, 1)
	assert.Equal(t, "b", page.Items[0].ID)

	page = Orders(items, Params{})
	assert.Len(t, page.Items, 2)
}

func TestSortKeys(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	items := []*model.Order{
		order("old", func(o *model.Order) {
			o.UpdatedAt = base
			o.CreatedAt = base.Add(2 * time.Hour)
			o.Totals.Total = 300
		}),
		order("new", func(o *model.Order) {
			o.UpdatedAt = base.Add(time.Hour)
			o.CreatedAt = base
			o.Totals.Total = 100
		}),
	}

	first := func(key SortKey) string {
		return Orders(items, Params{Sort: key}).Items[0].ID
	}

	assert.Equal(t, "new", first(SortUpdatedDesc))
	assert.Equal(t, "old", first(SortUpdatedAsc))
	assert.Equal(t, "old", first(SortAmountDesc))
	assert.Equal(t, "new", first(SortAmountAsc))
	assert.Equal(t, "old", first(SortCreatedDesc))
	assert.Equal(t, "new", first(SortCreatedAsc))
}

func TestSortIsStable(t *testing.T) {
	items := make([]*model.Order, 5)
	for i := range items {
		items[i] = order(fmt.Sprintf("o%d", i))
	}

	page := Orders(items, Params{Sort: SortAmountDesc})
	for i, o := range page.Items {
		assert.Equal(t, fmt.Sprintf("o%d", i), o.ID)
	}
}

func TestPagination(t *testing.T) {
	items := make([]*model.Order, 23)
	for i := range items {
		items[i] = order(fmt.Sprintf("o%02d", i))
	}

	page := Orders(items, Params{Page: 1})
	assert.Len(t, page.Items, 10)
	assert.Equal(t, 23, page.TotalCount)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 10, page.PageSize)

	page = Orders(items, Params{Page: 3})
	assert.Len(t, page.Items, 3)

	// out-of-range pages are empty, not an error
	page = Orders(items, Params{Page: 4})
	assert.Empty(t, page.Items)
	assert.Equal(t, 3, page.TotalPages)

	// zero and negative pages normalize to 1
	page = Orders(items, Params{Page: 0})
	assert.Equal(t, 1, page.Page)
	assert.Len(t, page.Items, 10)
}

func TestPaginationEmptyList(t *testing.T) {
	page := Orders(nil, Params{})
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalCount)
	assert.Equal(t, 0, page.TotalPages)
}

func TestLeadSearchAndAmount(t *testing.T) {
	leads := []*model.Lead{
		{ID: "a", CustomerHandle: "@meera", Notes: "wants bulk pricing", Status: model.LeadNew, Value: 100},
		{ID: "b", CustomerHandle: "@kiran", LastMessageSnippet: "do you ship to Pune?", Status: model.LeadNew, Value: 500},
	}

	page := Leads(leads, Params{Query: "bulk"})
	require.Len(t, page.Items, 1)
	assert.Equal(t, "a", page.Items[0].ID)

	page = Leads(leads, Params{Query: "pune"})
	require.Len(t, page.Items, 1)
	assert.Equal(t, "b", page.Items[0].ID)

	page = Leads(leads, Params{Sort: SortAmountDesc})
	assert.Equal(t, "b", page.Items[0].ID)
}

func TestConversationSearch(t *testing.T) {
	convs := []*model.Conversation{
		{ID: "a", CustomerName: "Meera", LastMessage: "is the blue one available"},
		{ID: "b", CustomerHandle: "@kiran_k", LastMessage: "thanks!"},
	}

	page := Conversations(convs, Params{Query: "blue"})
	require.Len(t, page.Items, 1)
	assert.Equal(t, "a", page.Items[0].ID)

	page = Conversations(convs, Params{Query: "kiran"})
	require.Len(t, page.Items, 1)
	assert.Equal(t, "b", page.Items[0].ID)
}

func TestControllerResetsPage(t *testing.T) {
	c := NewController("u1")
	c.SetPage(4)
	assert.Equal(t, 4, c.Params().Page)

	tests := []struct {
		name  string
		apply func()
	}{
		{"status", func() { c.SetStatus("PENDING") }},
		{"assignment", func() { c.SetAssignment(AssignmentMe) }},
		{"query", func() { c.SetQuery("scarf") }},
		{"sort", func() { c.SetSort(SortAmountDesc) }},
		{"conversation", func() { c.SetConversation("conv-1") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c.SetPage(4)
			tt.apply()
			assert.Equal(t, 1, c.Params().Page)
		})
	}

	// moving pages keeps the filters
	c.SetStatus("PENDING")
	c.SetPage(2)
	p := c.Params()
	assert.Equal(t, "PENDING", p.Status)
	assert.Equal(t, 2, p.Page)

	c.ClearFilters()
	p = c.Params()
	assert.Empty(t, p.Status)
	assert.Equal(t, AssignmentAny, p.Assignment)
	assert.Empty(t, p.Query)
	assert.Equal(t, 1, p.Page)
}

func TestDebouncerCoalesces(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	defer d.Stop()

	fired := make(chan string, 4)
	d.Trigger(func() { fired <- "first" })
	d.Trigger(func() { fired <- "second" })

	select {
	case got := <-fired:
		assert.Equal(t, "second", got)
	case <-time.After(time.Second):
		t.Fatal("debounced call never fired")
	}

	select {
	case got := <-fired:
		t.Fatalf("unexpected extra call %q", got)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestDebouncerStop(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)

	fired := make(chan struct{}, 1)
	d.Trigger(func() { fired <- struct{}{} })
	d.Stop()

	select {
	case <-fired:
		t.Fatal("stopped call still fired")
	case <-time.After(50 * time.Millisecond):
	}
}

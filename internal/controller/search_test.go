package controller

import (
	"context"
	"testing"
	"time"
)

func TestSetSearch_Debounced(t *testing.T) {
	c, _, view, clock := newTestController(10)
	if err := c.Init(context.Background()); err != nil {
		t.Fatal(err)
	}
	renders := view.tableCount()

	c.SetSearch("i")
	c.SetSearch("it")
	c.SetSearch("item 1")

	clock.Advance(SearchDebounce - time.Millisecond)
	if view.tableCount() != renders {
		t.Fatal("table re-rendered before the debounce elapsed")
	}

	clock.Advance(time.Millisecond)
	if view.tableCount() != renders+1 {
		t.Fatalf("expected exactly one render, got %d", view.tableCount()-renders)
	}

	// "item 1" and "item 10" match by name
	if got := len(view.lastTable()); got != 2 {
		t.Errorf("filtered rows = %d, want 2", got)
	}
	if clock.pending() != 0 {
		t.Errorf("pending timers = %d", clock.pending())
	}
}

func TestSetSearch_EmptyStateAndRestore(t *testing.T) {
	ctx := context.Background()
	c, api, view, clock := newTestController(7)
	if err := c.Init(ctx); err != nil {
		t.Fatal(err)
	}
	api.reset()

	c.SetSearch("nothing matches this")
	clock.Advance(SearchDebounce)
	if rows := view.lastTable(); rows == nil || len(rows) != 0 {
		t.Fatalf("expected empty state, got %v", rows)
	}

	c.SetSearch("")
	clock.Advance(SearchDebounce)
	if got := len(view.lastTable()); got != 7 {
		t.Errorf("rows after clearing = %d, want 7", got)
	}

	if len(api.ops()) != 0 {
		t.Errorf("search must not call the API, got %v", api.ops())
	}
	if c.Snapshot().Total != 7 {
		t.Error("search must not change the total")
	}
}

func TestSetSearch_MatchesDescriptionIgnoringCase(t *testing.T) {
	c, _, view, clock := newTestController(5)
	if err := c.Init(context.Background()); err != nil {
		t.Fatal(err)
	}

	c.SetSearch("DESCRIPTION 4")
	clock.Advance(SearchDebounce)

	rows := view.lastTable()
	if len(rows) != 1 || rows[0].ID != 4 {
		t.Errorf("unexpected rows: %v", rows)
	}
}

func TestLoadItems_AppliesActiveSearch(t *testing.T) {
	ctx := context.Background()
	c, _, view, _ := newTestController(15)
	if err := c.Init(ctx); err != nil {
		t.Fatal(err)
	}

	c.SetSearch("item 1")
	if err := c.NextPage(ctx); err != nil {
		t.Fatal(err)
	}

	// Page two holds items 11..15, all of which contain "item 1"
	if got := len(view.lastTable()); got != 5 {
		t.Errorf("rows = %d, want 5", got)
	}
	c.Close()
}

func TestFilterItems(t *testing.T) {
	api := newFakeAPI(3)
	api.items[2].Description = nil

	if got := filterItems(api.items, ""); len(got) != 3 {
		t.Errorf("empty term kept %d items", len(got))
	}
	if got := filterItems(api.items, "DESCRIPTION"); len(got) != 2 {
		t.Errorf("nil descriptions must not match, got %d", len(got))
	}
}

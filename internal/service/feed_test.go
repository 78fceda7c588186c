package service

import (
	"testing"

	"github.com/Pavan1214/prompts/internal/domain"
)

func testItems() []domain.FeedItem {
	return []domain.FeedItem{
		{ID: "a1", Title: "Neon Portrait", Description: "moody cyberpunk lighting", LikeCount: 12},
		{ID: "b2", Title: "Anime Forest", Description: "lush watercolor scene", LikeCount: 3},
		{ID: "c3", Title: "Cinematic Skyline", Description: "golden hour portrait of a city", LikeCount: 7},
		{ID: "d4", Title: "Desert Dunes", Description: "minimal landscape", LikeCount: 0},
	}
}

func newTestFeed(t *testing.T) (*FeedService, *InteractionService) {
	t.Helper()
	interactions := NewInteractionService(&fakeStore{}, nil)
	feed := NewFeedService(interactions, nil)
	feed.SetMaster(testItems())
	return feed, interactions
}

func ids(items []domain.FeedItem) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestSetMasterKeepsAllItems(t *testing.T) {
	feed, _ := newTestFeed(t)

	master := feed.Master()
	if len(master) != 4 {
		t.Fatalf("master has %d items, want 4", len(master))
	}
	seen := make(map[string]bool)
	for _, item := range master {
		seen[item.ID] = true
	}
	for _, id := range []string{"a1", "b2", "c3", "d4"} {
		if !seen[id] {
			t.Errorf("id %s missing from master", id)
		}
	}
	if feed.Mode() != domain.ViewAll {
		t.Errorf("mode after SetMaster = %v, want ViewAll", feed.Mode())
	}
}

func TestMasterOrderStableWithinSession(t *testing.T) {
	feed, _ := newTestFeed(t)

	before := ids(feed.Displayed())
	feed.SetSearch("portrait")
	after := ids(feed.ClearFilter())

	if len(before) != len(after) {
		t.Fatalf("length changed: %d vs %d", len(before), len(after))
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("order changed after filter round trip: %v vs %v", before, after)
		}
	}
}

func TestSearchMatchesTitleAndDescription(t *testing.T) {
	feed, _ := newTestFeed(t)

	// "PORTRAIT" matches "Neon Portrait" by title and "Cinematic
	// Skyline" by description, case-insensitively.
	got := ids(feed.SetSearch("PORTRAIT"))
	if len(got) != 2 {
		t.Fatalf("got %v, want a1 and c3", got)
	}
	found := map[string]bool{}
	for _, id := range got {
		found[id] = true
	}
	if !found["a1"] || !found["c3"] {
		t.Errorf("got %v, want a1 and c3", got)
	}
	if feed.Mode() != domain.ViewSearch {
		t.Errorf("mode = %v, want ViewSearch", feed.Mode())
	}
}

func TestSearchNoMatchesIsEmpty(t *testing.T) {
	feed, _ := newTestFeed(t)

	if got := feed.SetSearch("zzzzz"); len(got) != 0 {
		t.Errorf("got %v, want empty", ids(got))
	}
}

func TestEmptySearchClearsFilter(t *testing.T) {
	feed, _ := newTestFeed(t)

	feed.SetSearch("portrait")
	got := feed.SetSearch("   ")
	if len(got) != 4 {
		t.Errorf("blank search returned %d items, want all 4", len(got))
	}
	if feed.Mode() != domain.ViewAll {
		t.Errorf("mode = %v, want ViewAll", feed.Mode())
	}
}

func TestCategoryMatchesTitleOnly(t *testing.T) {
	feed, _ := newTestFeed(t)

	// "portrait" appears in c3's description but not its title
	got := ids(feed.SetCategory("portrait"))
	if len(got) != 1 || got[0] != "a1" {
		t.Errorf("got %v, want [a1]", got)
	}
	if feed.FilterLabel() != "portrait" {
		t.Errorf("label = %q, want the category term", feed.FilterLabel())
	}
}

func TestSavedViewFiltersBySavedSet(t *testing.T) {
	feed, interactions := newTestFeed(t)

	interactions.ToggleSave("b2")
	interactions.ToggleSave("d4")

	got := ids(feed.ShowSaved())
	if len(got) != 2 {
		t.Fatalf("got %v, want b2 and d4", got)
	}
	if feed.FilterLabel() != "Saved" {
		t.Errorf("label = %q, want Saved", feed.FilterLabel())
	}

	// Unsaving while the view is active removes the item on recompute
	interactions.ToggleSave("b2")
	got = ids(feed.Displayed())
	if len(got) != 1 || got[0] != "d4" {
		t.Errorf("got %v, want [d4]", got)
	}
}

func TestModesAreExclusive(t *testing.T) {
	feed, interactions := newTestFeed(t)
	interactions.ToggleSave("a1")

	feed.SetSearch("forest")
	feed.ShowSaved()
	if feed.Term() != "" {
		t.Errorf("term = %q, saved view must not retain the search term", feed.Term())
	}

	got := ids(feed.Displayed())
	if len(got) != 1 || got[0] != "a1" {
		t.Errorf("got %v, want only the saved item", got)
	}
}

func TestApplyLikeCount(t *testing.T) {
	feed, _ := newTestFeed(t)

	feed.ApplyLikeCount("b2", 99)
	item, ok := feed.Item("b2")
	if !ok {
		t.Fatal("b2 missing")
	}
	if item.LikeCount != 99 {
		t.Errorf("LikeCount = %d, want 99", item.LikeCount)
	}

	// Unknown ids are ignored
	feed.ApplyLikeCount("nope", 1)
	if _, ok := feed.Item("nope"); ok {
		t.Error("unknown id should not appear")
	}
}

func TestDisplayedReturnsCopy(t *testing.T) {
	feed, _ := newTestFeed(t)

	first := feed.Displayed()
	first[0].Title = "mutated"

	second := feed.Displayed()
	if second[0].Title == "mutated" {
		t.Error("Displayed must not expose the master sequence for mutation")
	}
}

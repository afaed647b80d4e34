package domain

import (
	"testing"
)

func TestNormalizeListName(t *testing.T) {
	if got := NormalizeListName("  Bathroom remodel "); got != "Bathroom remodel" {
		t.Fatalf("unexpected normalized name %q", got)
	}
	if got := NormalizeListName("   "); got != "" {
		t.Fatalf("whitespace-only name should normalize to empty, got %q", got)
	}
}

func TestFilterListsSearchIsCaseInsensitiveNameOnly(t *testing.T) {
	all := []*List{
		{Name: "Bathroom remodel", Description: "kitchen tiles actually"},
		{Name: "Kitchen floor"},
		{Name: "Garage"},
	}

	got := FilterLists(all, "KITCHEN", "")
	if len(got) != 1 || got[0].Name != "Kitchen floor" {
		t.Fatalf("search should match name only, case-insensitively: %+v", got)
	}

	got = FilterLists(all, "", "")
	if len(got) != 3 {
		t.Fatalf("empty search should match everything, got %d", len(got))
	}
}

func TestFilterListsByStatus(t *testing.T) {
	all := []*List{
		{Name: "a", Status: ListStatusDraft},
		{Name: "b", Status: ListStatusQuoted},
		{Name: "c", Status: ListStatusOrdered},
		{Name: "d", Status: ListStatusQuoted},
	}

	got := FilterLists(all, "", "quoted")
	if len(got) != 2 {
		t.Fatalf("expected 2 quoted lists, got %d", len(got))
	}

	if got := FilterLists(all, "", StatusFilterAll); len(got) != 4 {
		t.Fatalf("status %q should match everything, got %d", StatusFilterAll, len(got))
	}
}

func TestFilterListsCombined(t *testing.T) {
	all := []*List{
		{Name: "Bathroom remodel", Status: ListStatusDraft},
		{Name: "Bathroom v2", Status: ListStatusQuoted},
	}

	got := FilterLists(all, "bathroom", "quoted")
	if len(got) != 1 || got[0].Name != "Bathroom v2" {
		t.Fatalf("combined filter mismatch: %+v", got)
	}
}

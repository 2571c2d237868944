package content

import (
	"context"
	"testing"
)

func TestBookmarksStartEmpty(t *testing.T) {
	store, _ := newTestStores(t)

	ids, err := store.ListBookmarks(context.Background(), "user-2")
	if err != nil {
		t.Fatalf("ListBookmarks failed: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty reading list, got %v", ids)
	}
}

func TestToggleBookmarkIsInvolution(t *testing.T) {
	store, _ := newTestStores(t)
	ctx := context.Background()

	ids, err := store.ToggleBookmark(ctx, "user-2", "story-1")
	if err != nil {
		t.Fatalf("ToggleBookmark failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != "story-1" {
		t.Fatalf("expected [story-1], got %v", ids)
	}

	ids, err = store.ToggleBookmark(ctx, "user-2", "story-1")
	if err != nil {
		t.Fatalf("second ToggleBookmark failed: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty list after second toggle, got %v", ids)
	}
}

func TestBookmarksArePerUser(t *testing.T) {
	store, _ := newTestStores(t)
	ctx := context.Background()

	if _, err := store.ToggleBookmark(ctx, "user-2", "story-1"); err != nil {
		t.Fatalf("ToggleBookmark failed: %v", err)
	}
	if _, err := store.ToggleBookmark(ctx, "user-3", "story-2"); err != nil {
		t.Fatalf("ToggleBookmark failed: %v", err)
	}

	ids, err := store.ListBookmarks(ctx, "user-3")
	if err != nil {
		t.Fatalf("ListBookmarks failed: %v", err)
	}
	if len(ids) != 1 || ids[0] != "story-2" {
		t.Fatalf("expected [story-2], got %v", ids)
	}
}

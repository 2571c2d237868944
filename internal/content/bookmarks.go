package content

import (
	"context"
	"encoding/json"
	"fmt"
)

const bookmarksKey = "bookmarks"

// Bookmarks are a per-user reading list: a map of user id to story ids,
// persisted whole under its own key. A bookmark is just a reference;
// removing a story does not prune reading lists, stale entries are
// simply skipped on resolution.

func (s *Store) loadBookmarks(ctx context.Context) (map[string][]string, error) {
	raw, ok, err := s.storage.Get(ctx, bookmarksKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return make(map[string][]string), nil
	}
	var bookmarks map[string][]string
	if err := json.Unmarshal(raw, &bookmarks); err != nil {
		return nil, fmt.Errorf("decode bookmarks: %w", err)
	}
	return bookmarks, nil
}

func (s *Store) saveBookmarks(ctx context.Context, bookmarks map[string][]string) error {
	raw, err := json.Marshal(bookmarks)
	if err != nil {
		return fmt.Errorf("encode bookmarks: %w", err)
	}
	return s.storage.Set(ctx, bookmarksKey, raw)
}

// ListBookmarks returns the story ids the user has bookmarked, in the
// order they were added.
func (s *Store) ListBookmarks(ctx context.Context, userID string) ([]string, error) {
	bookmarks, err := s.loadBookmarks(ctx)
	if err != nil {
		return nil, err
	}
	ids := bookmarks[userID]
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// ToggleBookmark adds the story id to the user's list if absent, removes
// it if present, and returns the updated list.
func (s *Store) ToggleBookmark(ctx context.Context, userID, storyID string) ([]string, error) {
	bookmarks, err := s.loadBookmarks(ctx)
	if err != nil {
		return nil, err
	}

	ids := bookmarks[userID]
	removed := false
	for i, id := range ids {
		if id == storyID {
			ids = append(ids[:i], ids[i+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		ids = append(ids, storyID)
	}
	bookmarks[userID] = ids

	if err := s.saveBookmarks(ctx, bookmarks); err != nil {
		return nil, err
	}
	return ids, nil
}

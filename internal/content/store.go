// Package content owns the story collection: stories with their embedded
// likes and comments, persisted as one JSON array under one key.
// Mutations load the whole collection, change it in memory, and write it
// back; the deployment model is single-writer, so there is no locking or
// optimistic concurrency.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hikaya/api/internal/identity"
	"hikaya/api/internal/storage"
	"hikaya/api/internal/util"
)

const storiesKey = "stories"

var (
	// ErrNotFound is returned when no story matches the given id.
	ErrNotFound = errors.New("story not found")
	// ErrForbidden is returned when a mutation is attempted by someone
	// other than the story's author.
	ErrForbidden = errors.New("not the story author")
)

// Store composes the storage capability with the identity store. The
// identity store is the canonical source for user records; author and
// comment-user snapshots persisted inside stories are caches that get
// replaced on every read (rehydration).
type Store struct {
	storage storage.Store
	users   *identity.Store
}

func NewStore(s storage.Store, users *identity.Store) *Store {
	return &Store{storage: s, users: users}
}

// loadAll returns the raw persisted collection, seeding the demo stories
// on first access. Snapshots are returned as stored; use rehydrate for
// anything handed to callers.
func (s *Store) loadAll(ctx context.Context) ([]Story, error) {
	raw, ok, err := s.storage.Get(ctx, storiesKey)
	if err != nil {
		return nil, err
	}
	if ok {
		var stories []Story
		if err := json.Unmarshal(raw, &stories); err != nil {
			return nil, fmt.Errorf("decode story collection: %w", err)
		}
		return stories, nil
	}

	stories, err := s.seedStories(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.saveAll(ctx, stories); err != nil {
		return nil, err
	}
	return stories, nil
}

func (s *Store) saveAll(ctx context.Context, stories []Story) error {
	raw, err := json.Marshal(stories)
	if err != nil {
		return fmt.Errorf("encode story collection: %w", err)
	}
	return s.storage.Set(ctx, storiesKey, raw)
}

// rehydrate swaps the persisted author and comment-user snapshots for
// the current canonical records, so avatar or name changes show up in
// historical content. Unknown ids keep their stale snapshot.
func (s *Store) rehydrate(ctx context.Context, story Story) (Story, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return Story{}, err
	}
	if canonical, ok := users[story.Author.ID]; ok {
		story.Author = canonical
	}
	for i, comment := range story.Comments {
		if canonical, ok := users[comment.User.ID]; ok {
			story.Comments[i].User = canonical
		}
	}
	return story, nil
}

// ListAll returns every story, newest first, with snapshots rehydrated.
func (s *Store) ListAll(ctx context.Context) ([]Story, error) {
	stories, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i, story := range stories {
		rehydrated, err := s.rehydrate(ctx, story)
		if err != nil {
			return nil, err
		}
		stories[i] = rehydrated
	}
	return stories, nil
}

// ListByAuthor returns the stories authored by the given user id,
// keeping collection order.
func (s *Store) ListByAuthor(ctx context.Context, authorID string) ([]Story, error) {
	stories, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	authored := make([]Story, 0)
	for _, story := range stories {
		if story.Author.ID == authorID {
			authored = append(authored, story)
		}
	}
	return authored, nil
}

// GetByID returns one story and, as a side effect of the successful
// lookup, increments its view count and persists the collection. The
// read is deliberately not idempotent; callers that must not inflate
// views (export, search indexing) go through Peek instead.
func (s *Store) GetByID(ctx context.Context, id string) (Story, error) {
	stories, err := s.loadAll(ctx)
	if err != nil {
		return Story{}, err
	}
	for i := range stories {
		if stories[i].ID != id {
			continue
		}
		stories[i].Views++
		if err := s.saveAll(ctx, stories); err != nil {
			return Story{}, err
		}
		return s.rehydrate(ctx, stories[i])
	}
	return Story{}, ErrNotFound
}

// Peek returns one story without touching the view count.
func (s *Store) Peek(ctx context.Context, id string) (Story, error) {
	stories, err := s.loadAll(ctx)
	if err != nil {
		return Story{}, err
	}
	for _, story := range stories {
		if story.ID == id {
			return s.rehydrate(ctx, story)
		}
	}
	return Story{}, ErrNotFound
}

// Create prepends a new story so the collection stays
// reverse-chronological by default.
func (s *Store) Create(ctx context.Context, in StoryInput, author identity.User) (Story, error) {
	stories, err := s.loadAll(ctx)
	if err != nil {
		return Story{}, err
	}

	story := Story{
		ID:        util.NewID("story"),
		Title:     in.Title,
		Content:   in.Content,
		Category:  in.Category,
		Author:    author,
		CreatedAt: time.Now(),
		Views:     0,
		Likes:     []Like{},
		Comments:  []Comment{},
	}
	if in.Image != nil {
		story.Image = *in.Image
	}

	stories = append([]Story{story}, stories...)
	if err := s.saveAll(ctx, stories); err != nil {
		return Story{}, err
	}
	return story, nil
}

// Update replaces title, content and category. The image is replaced
// only when the caller explicitly supplied one; a nil Image preserves
// whatever was there. Only the author may update.
func (s *Store) Update(ctx context.Context, id string, in StoryInput, requesterID string) (Story, error) {
	stories, err := s.loadAll(ctx)
	if err != nil {
		return Story{}, err
	}
	for i := range stories {
		if stories[i].ID != id {
			continue
		}
		if stories[i].Author.ID != requesterID {
			return Story{}, ErrForbidden
		}
		stories[i].Title = in.Title
		stories[i].Content = in.Content
		stories[i].Category = in.Category
		if in.Image != nil {
			stories[i].Image = *in.Image
		}
		if err := s.saveAll(ctx, stories); err != nil {
			return Story{}, err
		}
		return s.rehydrate(ctx, stories[i])
	}
	return Story{}, ErrNotFound
}

// Remove deletes a story outright; embedded likes and comments go with
// it. Only the author may remove.
func (s *Store) Remove(ctx context.Context, id, requesterID string) error {
	stories, err := s.loadAll(ctx)
	if err != nil {
		return err
	}
	for i := range stories {
		if stories[i].ID != id {
			continue
		}
		if stories[i].Author.ID != requesterID {
			return ErrForbidden
		}
		stories = append(stories[:i], stories[i+1:]...)
		return s.saveAll(ctx, stories)
	}
	return ErrNotFound
}

// ToggleLike removes the user's like when present, otherwise appends a
// fresh one. Any user id is accepted; there is no cross-check against
// the identity store.
func (s *Store) ToggleLike(ctx context.Context, id, userID string) (Story, error) {
	stories, err := s.loadAll(ctx)
	if err != nil {
		return Story{}, err
	}
	for i := range stories {
		if stories[i].ID != id {
			continue
		}
		removed := false
		for j, like := range stories[i].Likes {
			if like.UserID == userID {
				stories[i].Likes = append(stories[i].Likes[:j], stories[i].Likes[j+1:]...)
				removed = true
				break
			}
		}
		if !removed {
			stories[i].Likes = append(stories[i].Likes, Like{UserID: userID, CreatedAt: time.Now()})
		}
		if err := s.saveAll(ctx, stories); err != nil {
			return Story{}, err
		}
		return s.rehydrate(ctx, stories[i])
	}
	return Story{}, ErrNotFound
}

// AddComment appends to the end of the comment list, so comments read in
// chronological order (unlike stories, which are prepended). Text is not
// validated here; the facade rejects empty text before calling.
func (s *Store) AddComment(ctx context.Context, id, text string, user identity.User) (Story, error) {
	stories, err := s.loadAll(ctx)
	if err != nil {
		return Story{}, err
	}
	for i := range stories {
		if stories[i].ID != id {
			continue
		}
		stories[i].Comments = append(stories[i].Comments, Comment{
			ID:        util.NewID("comment"),
			Text:      text,
			User:      user,
			CreatedAt: time.Now(),
		})
		if err := s.saveAll(ctx, stories); err != nil {
			return Story{}, err
		}
		return s.rehydrate(ctx, stories[i])
	}
	return Story{}, ErrNotFound
}

package content

import (
	"context"
	"errors"
	"testing"

	"hikaya/api/internal/identity"
	"hikaya/api/internal/storage"
)

func newTestStores(t *testing.T) (*Store, *identity.Store) {
	t.Helper()
	backend := storage.NewMemoryStore()
	users := identity.NewStore(backend)
	return NewStore(backend, users), users
}

func registerUser(t *testing.T, users *identity.Store, name string) identity.User {
	t.Helper()
	user, err := users.Register(context.Background(), name)
	if err != nil {
		t.Fatalf("register %s: %v", name, err)
	}
	return user
}

func createStory(t *testing.T, store *Store, author identity.User, title string) Story {
	t.Helper()
	story, err := store.Create(context.Background(), StoryInput{
		Title:    title,
		Content:  "محتوى القصة",
		Category: Categories[0],
	}, author)
	if err != nil {
		t.Fatalf("create story: %v", err)
	}
	return story
}

func TestListAllSeedsDemoStories(t *testing.T) {
	store, _ := newTestStores(t)

	stories, err := store.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if len(stories) != 2 {
		t.Fatalf("expected 2 seeded stories, got %d", len(stories))
	}
	if stories[0].ID != "story-2" || stories[1].ID != "story-1" {
		t.Fatalf("unexpected seed order: %s, %s", stories[0].ID, stories[1].ID)
	}
	if stories[1].Views != 152 {
		t.Fatalf("expected seeded views 152, got %d", stories[1].Views)
	}
}

func TestCreatePrependsStory(t *testing.T) {
	store, users := newTestStores(t)
	author := registerUser(t, users, "Layla")

	created := createStory(t, store, author, "عنوان")
	if created.Views != 0 {
		t.Fatalf("new story should start at 0 views, got %d", created.Views)
	}
	if len(created.Likes) != 0 || len(created.Comments) != 0 {
		t.Fatal("new story should start with empty likes and comments")
	}

	stories, err := store.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	if stories[0].ID != created.ID {
		t.Fatalf("expected new story first, got %s", stories[0].ID)
	}
}

func TestGetByIDIncrementsViewsExactlyOncePerCall(t *testing.T) {
	store, users := newTestStores(t)
	author := registerUser(t, users, "Layla")
	created := createStory(t, store, author, "عنوان")
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		story, err := store.GetByID(ctx, created.ID)
		if err != nil {
			t.Fatalf("GetByID call %d failed: %v", i, err)
		}
		if story.Views != i {
			t.Fatalf("after %d calls expected %d views, got %d", i, i, story.Views)
		}
	}
}

func TestGetByIDUnknown(t *testing.T) {
	store, _ := newTestStores(t)

	_, err := store.GetByID(context.Background(), "story-999")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPeekDoesNotIncrementViews(t *testing.T) {
	store, users := newTestStores(t)
	author := registerUser(t, users, "Layla")
	created := createStory(t, store, author, "عنوان")
	ctx := context.Background()

	if _, err := store.Peek(ctx, created.ID); err != nil {
		t.Fatalf("Peek failed: %v", err)
	}
	story, err := store.Peek(ctx, created.ID)
	if err != nil {
		t.Fatalf("Peek failed: %v", err)
	}
	if story.Views != 0 {
		t.Fatalf("Peek must not count views, got %d", story.Views)
	}
}

func TestRoundTripAndRehydration(t *testing.T) {
	store, users := newTestStores(t)
	author := registerUser(t, users, "Layla")
	ctx := context.Background()

	image := "https://example.com/cover.png"
	created, err := store.Create(ctx, StoryInput{
		Title:    "عنوان",
		Content:  "محتوى",
		Category: Categories[0],
		Image:    &image,
	}, author)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// Change the author's avatar after creation; reads must reflect the
	// canonical record, not the snapshot persisted with the story.
	if _, err := users.UpdateAvatar(ctx, author.ID, "https://example.com/new.png"); err != nil {
		t.Fatalf("UpdateAvatar failed: %v", err)
	}

	story, err := store.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if story.Title != "عنوان" || story.Content != "محتوى" || story.Category != Categories[0] || story.Image != image {
		t.Fatalf("round-trip mismatch: %+v", story)
	}
	if story.Author.Avatar != "https://example.com/new.png" {
		t.Fatalf("author snapshot not rehydrated: %q", story.Author.Avatar)
	}
}

func TestCommentUserRehydration(t *testing.T) {
	store, users := newTestStores(t)
	author := registerUser(t, users, "Layla")
	commenter := registerUser(t, users, "Omar")
	created := createStory(t, store, author, "عنوان")
	ctx := context.Background()

	if _, err := store.AddComment(ctx, created.ID, "رائع", commenter); err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	if _, err := users.UpdateAvatar(ctx, commenter.ID, "https://example.com/omar.png"); err != nil {
		t.Fatalf("UpdateAvatar failed: %v", err)
	}

	story, err := store.Peek(ctx, created.ID)
	if err != nil {
		t.Fatalf("Peek failed: %v", err)
	}
	if len(story.Comments) != 1 {
		t.Fatalf("expected 1 comment, got %d", len(story.Comments))
	}
	if story.Comments[0].User.Avatar != "https://example.com/omar.png" {
		t.Fatalf("comment user not rehydrated: %q", story.Comments[0].User.Avatar)
	}
}

func TestUpdatePreservesImageWhenNotSupplied(t *testing.T) {
	store, users := newTestStores(t)
	author := registerUser(t, users, "Layla")
	ctx := context.Background()

	image := "https://example.com/cover.png"
	created, err := store.Create(ctx, StoryInput{
		Title:    "قبل",
		Content:  "محتوى",
		Category: Categories[0],
		Image:    &image,
	}, author)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := store.Update(ctx, created.ID, StoryInput{
		Title:    "بعد",
		Content:  "محتوى جديد",
		Category: Categories[1],
	}, author.ID)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Title != "بعد" || updated.Category != Categories[1] {
		t.Fatalf("fields not replaced: %+v", updated)
	}
	if updated.Image != image {
		t.Fatalf("image should be preserved when not supplied, got %q", updated.Image)
	}

	empty := ""
	cleared, err := store.Update(ctx, created.ID, StoryInput{
		Title:    "بعد",
		Content:  "محتوى جديد",
		Category: Categories[1],
		Image:    &empty,
	}, author.ID)
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if cleared.Image != "" {
		t.Fatalf("explicitly supplied image must overwrite, got %q", cleared.Image)
	}
}

func TestUpdateByNonAuthorIsForbiddenAndLeavesStoryUnmodified(t *testing.T) {
	store, users := newTestStores(t)
	author := registerUser(t, users, "Layla")
	intruder := registerUser(t, users, "Omar")
	created := createStory(t, store, author, "عنوان")
	ctx := context.Background()

	_, err := store.Update(ctx, created.ID, StoryInput{
		Title:    "مخترق",
		Content:  "x",
		Category: Categories[0],
	}, intruder.ID)
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	story, err := store.Peek(ctx, created.ID)
	if err != nil {
		t.Fatalf("Peek failed: %v", err)
	}
	if story.Title != "عنوان" {
		t.Fatalf("story modified despite forbidden update: %q", story.Title)
	}
}

func TestRemove(t *testing.T) {
	store, users := newTestStores(t)
	author := registerUser(t, users, "Layla")
	intruder := registerUser(t, users, "Omar")
	created := createStory(t, store, author, "عنوان")
	ctx := context.Background()

	if err := store.Remove(ctx, created.ID, intruder.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-author, got %v", err)
	}
	if err := store.Remove(ctx, "story-999", author.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}

	if err := store.Remove(ctx, created.ID, author.ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	stories, err := store.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll failed: %v", err)
	}
	for _, story := range stories {
		if story.ID == created.ID {
			t.Fatal("story still present after removal")
		}
	}
}

func TestToggleLikeTwiceIsInvolution(t *testing.T) {
	store, users := newTestStores(t)
	author := registerUser(t, users, "Layla")
	liker := registerUser(t, users, "Omar")
	created := createStory(t, store, author, "عنوان")
	ctx := context.Background()

	liked, err := store.ToggleLike(ctx, created.ID, liker.ID)
	if err != nil {
		t.Fatalf("ToggleLike failed: %v", err)
	}
	if len(liked.Likes) != 1 || !liked.LikedBy(liker.ID) {
		t.Fatalf("expected one like by %s, got %+v", liker.ID, liked.Likes)
	}

	unliked, err := store.ToggleLike(ctx, created.ID, liker.ID)
	if err != nil {
		t.Fatalf("second ToggleLike failed: %v", err)
	}
	if len(unliked.Likes) != 0 {
		t.Fatalf("expected like set restored to empty, got %+v", unliked.Likes)
	}
}

func TestToggleLikeUnknownStory(t *testing.T) {
	store, _ := newTestStores(t)

	_, err := store.ToggleLike(context.Background(), "story-999", "user-2")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAddCommentAppendsChronologically(t *testing.T) {
	store, users := newTestStores(t)
	author := registerUser(t, users, "Layla")
	commenter := registerUser(t, users, "Omar")
	created := createStory(t, store, author, "عنوان")
	ctx := context.Background()

	if _, err := store.AddComment(ctx, created.ID, "الأول", commenter); err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}
	story, err := store.AddComment(ctx, created.ID, "الثاني", author)
	if err != nil {
		t.Fatalf("AddComment failed: %v", err)
	}

	if len(story.Comments) != 2 {
		t.Fatalf("expected 2 comments, got %d", len(story.Comments))
	}
	if story.Comments[0].Text != "الأول" || story.Comments[1].Text != "الثاني" {
		t.Fatalf("comments out of order: %+v", story.Comments)
	}
	if story.Comments[0].ID == story.Comments[1].ID {
		t.Fatal("comment ids must be unique")
	}
}

func TestListByAuthor(t *testing.T) {
	store, users := newTestStores(t)
	layla := registerUser(t, users, "Layla")
	omar := registerUser(t, users, "Omar")
	createStory(t, store, layla, "الأولى")
	createStory(t, store, omar, "الثانية")
	createStory(t, store, layla, "الثالثة")

	stories, err := store.ListByAuthor(context.Background(), layla.ID)
	if err != nil {
		t.Fatalf("ListByAuthor failed: %v", err)
	}
	if len(stories) != 2 {
		t.Fatalf("expected 2 stories, got %d", len(stories))
	}
	for _, story := range stories {
		if story.Author.ID != layla.ID {
			t.Fatalf("foreign story in result: %+v", story)
		}
	}
}

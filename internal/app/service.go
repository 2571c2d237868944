// Package app ties the identity and content stores together behind the
// session and story facades and exposes them over HTTP.
package app

import (
	"context"
	"errors"
	"strings"

	"hikaya/api/internal/content"
	"hikaya/api/internal/export"
	"hikaya/api/internal/gen"
	"hikaya/api/internal/history"
	"hikaya/api/internal/identity"
	"hikaya/api/internal/media"
	"hikaya/api/internal/search"
	"hikaya/api/internal/storage"
)

type Service struct {
	users   *identity.Store
	stories *content.Store
	gen     *gen.Service
	search  *search.Service
	history *history.Service
	media   *media.Service
	backend storage.Store
}

// Options carries the optional collaborators. Any of them may be nil;
// the matching endpoints then answer with a service-unavailable error
// (or, for search, fall back to scanning).
type Options struct {
	Gen     *gen.Service
	Search  *search.Service
	History *history.Service
	Media   *media.Service
}

func NewService(backend storage.Store, users *identity.Store, stories *content.Store, opts Options) *Service {
	return &Service{
		users:   users,
		stories: stories,
		gen:     opts.Gen,
		search:  opts.Search,
		history: opts.History,
		media:   opts.Media,
		backend: backend,
	}
}

// Ping verifies the storage backend answers reads.
func (s *Service) Ping(ctx context.Context) error {
	_, _, err := s.backend.Get(ctx, "users")
	return err
}

// Bootstrap forces the lazily-seeded collections into existence and
// fills the search index from them.
func (s *Service) Bootstrap(ctx context.Context) error {
	if _, err := s.users.ListUsers(ctx); err != nil {
		return err
	}
	stories, err := s.stories.ListAll(ctx)
	if err != nil {
		return err
	}
	if s.search != nil {
		records := make([]search.StoryRecord, 0, len(stories))
		for _, story := range stories {
			records = append(records, storyRecord(story))
		}
		s.search.ReindexAll(records)
	}
	return nil
}

// ── Session facade ───────────────────────────────────────────────

// SessionInfo reports the signed-in user, if any.
func (s *Service) SessionInfo(ctx context.Context) (identity.User, bool, error) {
	id, err := s.users.CurrentSessionID(ctx)
	if err != nil {
		return identity.User{}, false, err
	}
	if id == "" {
		return identity.User{}, false, nil
	}
	user, err := s.users.GetByID(ctx, id)
	if errors.Is(err, identity.ErrNotFound) {
		// Stale pointer to a user that no longer exists.
		_ = s.users.SetCurrentSessionID(ctx, "")
		return identity.User{}, false, nil
	}
	if err != nil {
		return identity.User{}, false, err
	}
	return user, true, nil
}

// CurrentUser is SessionInfo for callers that require a session.
func (s *Service) CurrentUser(ctx context.Context) (identity.User, error) {
	user, ok, err := s.SessionInfo(ctx)
	if err != nil {
		return identity.User{}, err
	}
	if !ok {
		return identity.User{}, errUnauthorized()
	}
	return user, nil
}

// Login signs in by display name. An unknown name registers a fresh
// account; a known name resumes that account. No password is involved.
func (s *Service) Login(ctx context.Context, name string) (identity.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return identity.User{}, errValidation("name is required", nil)
	}

	user, err := s.users.FindByName(ctx, name)
	if errors.Is(err, identity.ErrNotFound) {
		user, err = s.users.Register(ctx, name)
	}
	if err != nil {
		return identity.User{}, err
	}

	if err := s.users.SetCurrentSessionID(ctx, user.ID); err != nil {
		return identity.User{}, err
	}
	return user, nil
}

func (s *Service) Logout(ctx context.Context) error {
	return s.users.SetCurrentSessionID(ctx, "")
}

// UpdateAvatar changes the signed-in user's avatar URL.
func (s *Service) UpdateAvatar(ctx context.Context, avatar string) (identity.User, error) {
	user, err := s.CurrentUser(ctx)
	if err != nil {
		return identity.User{}, err
	}
	avatar = strings.TrimSpace(avatar)
	if avatar == "" {
		return identity.User{}, errValidation("avatar is required", nil)
	}
	return s.users.UpdateAvatar(ctx, user.ID, avatar)
}

// ── Story facade ─────────────────────────────────────────────────

func (s *Service) ListStories(ctx context.Context) ([]content.Story, error) {
	return s.stories.ListAll(ctx)
}

// GetStory returns one story and counts the read as a view.
func (s *Service) GetStory(ctx context.Context, id string) (content.Story, error) {
	return s.stories.GetByID(ctx, id)
}

func (s *Service) StoriesByAuthor(ctx context.Context, authorID string) ([]content.Story, error) {
	if _, err := s.users.GetByID(ctx, authorID); err != nil {
		return nil, err
	}
	return s.stories.ListByAuthor(ctx, authorID)
}

func (s *Service) CreateStory(ctx context.Context, in content.StoryInput) (content.Story, error) {
	user, err := s.CurrentUser(ctx)
	if err != nil {
		return content.Story{}, err
	}
	if err := validateStoryInput(in); err != nil {
		return content.Story{}, err
	}

	story, err := s.stories.Create(ctx, in, user)
	if err != nil {
		return content.Story{}, err
	}

	s.indexStory(story)
	s.recordRevision(story, user.Name, "create story")
	return story, nil
}

func (s *Service) UpdateStory(ctx context.Context, id string, in content.StoryInput) (content.Story, error) {
	user, err := s.CurrentUser(ctx)
	if err != nil {
		return content.Story{}, err
	}
	if err := validateStoryInput(in); err != nil {
		return content.Story{}, err
	}

	story, err := s.stories.Update(ctx, id, in, user.ID)
	if err != nil {
		return content.Story{}, err
	}

	s.indexStory(story)
	s.recordRevision(story, user.Name, "update story")
	return story, nil
}

func (s *Service) DeleteStory(ctx context.Context, id string) error {
	user, err := s.CurrentUser(ctx)
	if err != nil {
		return err
	}
	if err := s.stories.Remove(ctx, id, user.ID); err != nil {
		return err
	}

	if s.search != nil {
		s.search.DeleteStory(id)
	}
	if s.history != nil {
		_ = s.history.Forget(id)
	}
	return nil
}

func (s *Service) ToggleLike(ctx context.Context, storyID string) (content.Story, error) {
	user, err := s.CurrentUser(ctx)
	if err != nil {
		return content.Story{}, err
	}
	return s.stories.ToggleLike(ctx, storyID, user.ID)
}

func (s *Service) AddComment(ctx context.Context, storyID, text string) (content.Story, error) {
	user, err := s.CurrentUser(ctx)
	if err != nil {
		return content.Story{}, err
	}
	if strings.TrimSpace(text) == "" {
		return content.Story{}, errValidation("comment text is required", nil)
	}
	return s.stories.AddComment(ctx, storyID, text, user)
}

// ── Bookmarks ────────────────────────────────────────────────────

func (s *Service) ToggleBookmark(ctx context.Context, storyID string) ([]string, error) {
	user, err := s.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.stories.Peek(ctx, storyID); err != nil {
		return nil, err
	}
	return s.stories.ToggleBookmark(ctx, user.ID, storyID)
}

// ListBookmarkedStories resolves the signed-in user's bookmarks to
// stories. Reading a bookmark list is not a story view, so the view
// counters stay put. Bookmarks pointing at deleted stories are skipped.
func (s *Service) ListBookmarkedStories(ctx context.Context) ([]content.Story, error) {
	user, err := s.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	ids, err := s.stories.ListBookmarks(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	stories := make([]content.Story, 0, len(ids))
	for _, id := range ids {
		story, err := s.stories.Peek(ctx, id)
		if errors.Is(err, content.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		stories = append(stories, story)
	}
	return stories, nil
}

// ── Generation ───────────────────────────────────────────────────

func (s *Service) GenerateDraft(ctx context.Context, prompt string) (gen.Draft, error) {
	if s.gen == nil || !s.gen.Enabled() {
		return gen.Draft{}, errGenerationUnavailable()
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return gen.Draft{}, errValidation("prompt is required", nil)
	}
	draft, err := s.gen.Generate(ctx, prompt)
	if errors.Is(err, gen.ErrNotConfigured) {
		return gen.Draft{}, errGenerationUnavailable()
	}
	if err != nil {
		return gen.Draft{}, errGenerationFailed(err)
	}
	return draft, nil
}

// ── Search ───────────────────────────────────────────────────────

func (s *Service) SearchStories(ctx context.Context, q search.Query) (search.Response, error) {
	if s.search == nil {
		return search.Response{Results: []search.Result{}, Query: q.Text}, nil
	}
	return s.search.Search(ctx, q), nil
}

// ── Export ───────────────────────────────────────────────────────

// ExportStory renders a story to PDF or DOCX. The read bypasses the
// view counter.
func (s *Service) ExportStory(ctx context.Context, id string, format export.Format, includeComments bool) (*export.Result, error) {
	if _, err := s.CurrentUser(ctx); err != nil {
		return nil, err
	}
	story, err := s.stories.Peek(ctx, id)
	if err != nil {
		return nil, err
	}
	return export.Export(story, format, includeComments)
}

// ── History ──────────────────────────────────────────────────────

func (s *Service) StoryRevisions(ctx context.Context, id string, limit int) ([]history.Revision, error) {
	if s.history == nil {
		return nil, errServiceUnavailable("HISTORY_UNAVAILABLE", "Story history is not configured")
	}
	if _, err := s.stories.Peek(ctx, id); err != nil {
		return nil, err
	}
	return s.history.Revisions(id, limit)
}

// ── Media ────────────────────────────────────────────────────────

func (s *Service) UploadMedia(ctx context.Context, data []byte, contentType string) (media.Upload, error) {
	if _, err := s.CurrentUser(ctx); err != nil {
		return media.Upload{}, err
	}
	if s.media == nil {
		return media.Upload{}, errServiceUnavailable("MEDIA_UNAVAILABLE", "Media storage is not configured")
	}
	upload, err := s.media.Store(ctx, data, contentType)
	if errors.Is(err, media.ErrUnsupportedType) {
		return media.Upload{}, errValidation("unsupported media type", nil)
	}
	if errors.Is(err, media.ErrTooLarge) {
		return media.Upload{}, errValidation("media too large", nil)
	}
	return upload, err
}

// ── helpers ──────────────────────────────────────────────────────

func validateStoryInput(in content.StoryInput) error {
	details := map[string]string{}
	if strings.TrimSpace(in.Title) == "" {
		details["title"] = "required"
	}
	if strings.TrimSpace(in.Content) == "" {
		details["content"] = "required"
	}
	if !content.IsValidCategory(in.Category) {
		details["category"] = "unknown category"
	}
	if len(details) > 0 {
		return errValidation("invalid story", details)
	}
	return nil
}

func (s *Service) indexStory(story content.Story) {
	if s.search != nil {
		s.search.IndexStory(storyRecord(story))
	}
}

func (s *Service) recordRevision(story content.Story, author, message string) {
	if s.history == nil {
		return
	}
	_ = s.history.Record(story.ID, history.Snapshot{
		Title:    story.Title,
		Category: story.Category,
		Image:    story.Image,
		Content:  story.Content,
	}, author, message)
}

func storyRecord(story content.Story) search.StoryRecord {
	return search.StoryRecord{
		ID:         story.ID,
		Title:      story.Title,
		Content:    story.Content,
		Category:   story.Category,
		AuthorName: story.Author.Name,
	}
}

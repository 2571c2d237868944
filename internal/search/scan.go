package search

import (
	"context"
	"strings"

	"hikaya/api/internal/content"
)

const snippetRunes = 140

// Scan answers queries by walking the story collection directly. It is
// the always-available fallback when Meilisearch is absent or down; the
// collection is small enough that a linear pass is fine.
type Scan struct {
	stories *content.Store
}

func NewScan(stories *content.Store) *Scan {
	return &Scan{stories: stories}
}

// Healthy always reports true; the scan has no external dependency.
func (s *Scan) Healthy() bool {
	return true
}

// Search matches the query text case-insensitively against title,
// content and author name.
func (s *Scan) Search(ctx context.Context, q Query) ([]Result, int, error) {
	stories, err := s.stories.ListAll(ctx)
	if err != nil {
		return nil, 0, err
	}

	needle := strings.ToLower(strings.TrimSpace(q.Text))

	matched := make([]Result, 0)
	for _, story := range stories {
		if q.Category != "" && story.Category != q.Category {
			continue
		}
		if needle != "" && !matchesStory(story, needle) {
			continue
		}
		matched = append(matched, Result{
			ID:         story.ID,
			Title:      story.Title,
			Snippet:    snippetOf(story.Content),
			Category:   story.Category,
			AuthorName: story.Author.Name,
		})
	}

	total := len(matched)

	offset := q.Offset
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	matched = matched[offset:]

	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	if limit < len(matched) {
		matched = matched[:limit]
	}

	return matched, total, nil
}

func matchesStory(story content.Story, needle string) bool {
	return strings.Contains(strings.ToLower(story.Title), needle) ||
		strings.Contains(strings.ToLower(story.Content), needle) ||
		strings.Contains(strings.ToLower(story.Author.Name), needle)
}

func snippetOf(text string) string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) <= snippetRunes {
		return string(runes)
	}
	return string(runes[:snippetRunes]) + "…"
}

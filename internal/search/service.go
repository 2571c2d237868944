package search

import (
	"context"
	"log"
)

// Service is the facade that tries Meilisearch first and falls back to
// scanning the collection.
type Service struct {
	meili *Meili
	scan  *Scan
}

// NewService creates a search service. meili may be nil when
// Meilisearch is not configured.
func NewService(meili *Meili, scan *Scan) *Service {
	return &Service{meili: meili, scan: scan}
}

// Search tries Meilisearch if healthy, otherwise scans.
func (s *Service) Search(ctx context.Context, q Query) Response {
	if s.meili != nil && s.meili.Healthy() {
		results, total, err := s.meili.Search(ctx, q)
		if err == nil {
			return Response{Results: nonNil(results), Total: total, Query: q.Text}
		}
		log.Printf("search: meilisearch error, falling back to scan: %v", err)
	}

	results, total, err := s.scan.Search(ctx, q)
	if err != nil {
		log.Printf("search: scan error: %v", err)
		return Response{Results: []Result{}, Total: 0, Query: q.Text}
	}
	return Response{Results: nonNil(results), Total: total, Query: q.Text}
}

// IndexStory pushes a story into Meilisearch (fire-and-forget).
func (s *Service) IndexStory(record StoryRecord) {
	if s.meili == nil || !s.meili.Healthy() {
		return
	}
	go func() {
		if err := s.meili.IndexStory(record); err != nil {
			log.Printf("search: index story %s: %v", record.ID, err)
		}
	}()
}

// DeleteStory removes a story from the index (fire-and-forget).
func (s *Service) DeleteStory(id string) {
	if s.meili == nil || !s.meili.Healthy() {
		return
	}
	go func() {
		if err := s.meili.DeleteStory(id); err != nil {
			log.Printf("search: delete story %s: %v", id, err)
		}
	}()
}

// ReindexAll pushes the whole collection into Meilisearch. Called at
// bootstrap so a fresh index catches up with existing stories.
func (s *Service) ReindexAll(records []StoryRecord) {
	if s.meili == nil || !s.meili.Healthy() {
		return
	}
	if err := s.meili.IndexStories(records); err != nil {
		log.Printf("search: reindex stories: %v", err)
	}
}

func nonNil(r []Result) []Result {
	if r == nil {
		return []Result{}
	}
	return r
}

// Package search provides full-text search over the story collection.
// Meilisearch is used when configured and healthy; otherwise a direct
// scan of the collection answers the query.
package search

import "context"

// Result is a single search hit.
type Result struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Snippet    string `json:"snippet"`
	Category   string `json:"category"`
	AuthorName string `json:"authorName"`
}

// Query describes a search request.
type Query struct {
	Text     string
	Category string // empty = all categories
	Limit    int
	Offset   int
}

// Response is the envelope returned by the search endpoint.
type Response struct {
	Results []Result `json:"results"`
	Total   int      `json:"total"`
	Query   string   `json:"query"`
}

// StoryRecord is the data indexed per story.
type StoryRecord struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
	Category   string `json:"category"`
	AuthorName string `json:"authorName"`
}

// Searcher can execute a full-text search.
type Searcher interface {
	Search(ctx context.Context, q Query) ([]Result, int, error)
	Healthy() bool
}

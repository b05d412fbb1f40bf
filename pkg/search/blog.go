package search

import (
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"

	"portfolio-server/pkg/content"
)

// BlogIndex is an in-memory Bleve index over published blog posts. It is
// rebuilt whenever the blogPosts document changes; a portfolio's post count
// is small enough that a full rebuild is cheaper than incremental updates.
type BlogIndex struct {
	mu    sync.RWMutex
	index bleve.Index
}

type indexedPost struct {
	Title   string
	Summary string
	Content string
	Tags    []string
}

// Result is one search hit.
type Result struct {
	ID        string              `json:"id"`
	Title     string              `json:"title"`
	Score     float64             `json:"score"`
	Fragments map[string][]string `json:"fragments,omitempty"`
}

func NewBlogIndex() (*BlogIndex, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("create blog index: %w", err)
	}
	return &BlogIndex{index: idx}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	textFieldMapping := bleve.NewTextFieldMapping()

	titleFieldMapping := bleve.NewTextFieldMapping()
	titleFieldMapping.Analyzer = "en"

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("Title", titleFieldMapping)
	docMapping.AddFieldMappingsAt("Summary", textFieldMapping)
	docMapping.AddFieldMappingsAt("Content", textFieldMapping)
	docMapping.AddFieldMappingsAt("Tags", bleve.NewTextFieldMapping())

	indexMapping := bleve.NewIndexMapping()
	indexMapping.AddDocumentMapping("_default", docMapping)
	return indexMapping
}

// Rebuild replaces the index contents with the given posts. Drafts are skipped.
func (b *BlogIndex) Rebuild(posts []content.BlogPost) error {
	fresh, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return fmt.Errorf("rebuild blog index: %w", err)
	}
	batch := fresh.NewBatch()
	for _, p := range posts {
		if !p.Published {
			continue
		}
		doc := indexedPost{Title: p.Title, Summary: p.Summary, Content: p.Content, Tags: p.Tags}
		if err := batch.Index(p.ID.String(), doc); err != nil {
			return fmt.Errorf("index post %s: %w", p.ID, err)
		}
	}
	if err := fresh.Batch(batch); err != nil {
		return fmt.Errorf("apply blog index batch: %w", err)
	}

	b.mu.Lock()
	old := b.index
	b.index = fresh
	b.mu.Unlock()
	if old != nil {
		_ = old.Close()
	}
	return nil
}

// Search runs a query-string search (quotes, booleans and ~fuzzy supported)
// and returns highlighted hits.
func (b *BlogIndex) Search(queryStr string, limit int) ([]Result, error) {
	if limit <= 0 {
		limit = 10
	}
	query := bleve.NewQueryStringQuery(queryStr)
	req := bleve.NewSearchRequestOptions(query, limit, 0, false)
	req.Highlight = bleve.NewHighlightWithStyle("html")
	req.Fields = []string{"Title"}

	b.mu.RLock()
	idx := b.index
	b.mu.RUnlock()

	res, err := idx.Search(req)
	if err != nil {
		return nil, fmt.Errorf("search blog posts: %w", err)
	}
	out := make([]Result, 0, len(res.Hits))
	for _, hit := range res.Hits {
		r := Result{ID: hit.ID, Score: hit.Score, Fragments: hit.Fragments}
		if title, ok := hit.Fields["Title"].(string); ok {
			r.Title = title
		}
		out = append(out, r)
	}
	return out, nil
}

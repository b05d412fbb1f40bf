package search

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio-server/pkg/content"
)

func testPosts() []content.BlogPost {
	return []content.BlogPost{
		{
			ID:        uuid.New(),
			Title:     "Deploying Go services with Docker",
			Summary:   "Containerizing a backend",
			Content:   "A walkthrough of multi-stage builds and health checks.",
			Tags:      []string{"go", "docker"},
			Published: true,
		},
		{
			ID:        uuid.New(),
			Title:     "PostgreSQL JSONB in practice",
			Content:   "Storing documents without giving up SQL.",
			Published: true,
		},
		{
			ID:        uuid.New(),
			Title:     "Secret draft about Docker",
			Content:   "Not ready yet.",
			Published: false,
		},
	}
}

func TestBlogIndex_SearchFindsPublishedPosts(t *testing.T) {
	idx, err := NewBlogIndex()
	require.NoError(t, err)
	require.NoError(t, idx.Rebuild(testPosts()))

	hits, err := idx.Search("docker", 10)
	require.NoError(t, err)

	require.Len(t, hits, 1, "drafts must never be indexed")
	assert.Equal(t, "Deploying Go services with Docker", hits[0].Title)
	assert.Greater(t, hits[0].Score, 0.0)
}

func TestBlogIndex_RebuildReplacesContents(t *testing.T) {
	idx, err := NewBlogIndex()
	require.NoError(t, err)
	require.NoError(t, idx.Rebuild(testPosts()))

	require.NoError(t, idx.Rebuild([]content.BlogPost{{
		ID:        uuid.New(),
		Title:     "Only post left",
		Content:   "Everything else was removed.",
		Published: true,
	}}))

	hits, err := idx.Search("docker", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)

	hits, err = idx.Search("removed", 10)
	require.NoError(t, err)
	require.Len(t, hits, 1)
}

func TestBlogIndex_EmptyIndex(t *testing.T) {
	idx, err := NewBlogIndex()
	require.NoError(t, err)

	hits, err := idx.Search("anything", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestBlogIndex_LimitIsApplied(t *testing.T) {
	idx, err := NewBlogIndex()
	require.NoError(t, err)
	posts := make([]content.BlogPost, 0, 5)
	for i := 0; i < 5; i++ {
		posts = append(posts, content.BlogPost{
			ID:        uuid.New(),
			Title:     "Shipping notes",
			Content:   "Shipping a backend iteration.",
			Published: true,
		})
	}
	require.NoError(t, idx.Rebuild(posts))

	hits, err := idx.Search("shipping", 2)
	require.NoError(t, err)
	assert.Len(t, hits, 2)
}

package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio-server/pkg/content"
)

// ContentRepository implements content.Repository backed by PostgreSQL.
// All categories live in one table, one JSONB document per category.
type ContentRepository struct {
	pool *pgxpool.Pool
}

func NewContentRepository(pool *pgxpool.Pool) (*ContentRepository, error) {
	r := &ContentRepository{pool: pool}
	if err := r.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ContentRepository) ensureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS portfolio_documents (
	category TEXT PRIMARY KEY,
	data JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);
`)
	return err
}

// GetDocument returns the category's document. A missing document is created
// with the category default first, so a first read never fails.
func (r *ContentRepository) GetDocument(ctx context.Context, c content.Category) (content.Document, error) {
	row := r.pool.QueryRow(ctx, `
SELECT data, updated_at FROM portfolio_documents WHERE category = $1
`, string(c))
	var raw []byte
	var updated time.Time
	err := row.Scan(&raw, &updated)
	if errors.Is(err, pgx.ErrNoRows) {
		doc := content.DefaultDocument(c)
		if err := r.insertDefault(ctx, doc); err != nil {
			return content.Document{}, err
		}
		return doc, nil
	}
	if err != nil {
		return content.Document{}, err
	}
	var doc content.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return content.Document{}, err
	}
	doc.Category = c
	doc.UpdatedAt = updated.UTC()
	return doc, nil
}

func (r *ContentRepository) insertDefault(ctx context.Context, doc content.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	// ON CONFLICT keeps a concurrent first read from failing on the insert race.
	_, err = r.pool.Exec(ctx, `
INSERT INTO portfolio_documents (category, data, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (category) DO NOTHING
`, string(doc.Category), raw, doc.UpdatedAt)
	return err
}

func (r *ContentRepository) ReplaceDocument(ctx context.Context, doc content.Document) error {
	if doc.UpdatedAt.IsZero() {
		doc.UpdatedAt = time.Now().UTC()
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO portfolio_documents (category, data, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (category) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
`, string(doc.Category), raw, doc.UpdatedAt)
	return err
}

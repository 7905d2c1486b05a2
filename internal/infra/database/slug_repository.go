package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/raskraski/storefront/internal/entity"
)

type SlugRepository struct {
	DB *sql.DB
}

func NewSlugRepository(db *sql.DB) *SlugRepository {
	return &SlugRepository{DB: db}
}

func (r *SlugRepository) ExistsWithSlug(ctx context.Context, collection entity.Collection, slug, excludeID string) (bool, error) {
	if !collection.Valid() {
		return false, fmt.Errorf("unknown collection %q", collection)
	}

	query := fmt.Sprintf(
		`SELECT EXISTS (SELECT 1 FROM %s WHERE slug = $1 AND ($2 = '' OR id::text <> $2))`,
		collection.Table(),
	)

	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, slug, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check slug in %s: %w", collection, err)
	}
	return exists, nil
}

package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/raskraski/storefront/internal/entity"
)

type CategoryRepository struct {
	DB *sql.DB
}

func NewCategoryRepository(db *sql.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) Create(ctx context.Context, c *entity.Category) error {
	query := `
		INSERT INTO categories (id, name, slug, description, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.DB.ExecContext(ctx, query, c.ID, c.Name, c.Slug, c.Description, c.CreatedAt)
	return mapWriteError(err)
}

func (r *CategoryRepository) Update(ctx context.Context, c *entity.Category) error {
	if !validID(c.ID) {
		return entity.ErrNotFound
	}
	query := `UPDATE categories SET name = $2, slug = $3, description = $4 WHERE id = $1`
	return expectOneRow(r.DB.ExecContext(ctx, query, c.ID, c.Name, c.Slug, c.Description))
}

func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return entity.ErrNotFound
	}
	return expectOneRow(r.DB.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id))
}

func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*entity.Category, error) {
	if !validID(id) {
		return nil, entity.ErrNotFound
	}
	return r.findOne(ctx, `WHERE id = $1`, id)
}

func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	return r.findOne(ctx, `WHERE slug = $1`, slug)
}

func (r *CategoryRepository) List(ctx context.Context) ([]entity.Category, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT id, name, slug, description, created_at FROM categories ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := []entity.Category{}
	for rows.Next() {
		var c entity.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) findOne(ctx context.Context, where string, arg any) (*entity.Category, error) {
	var c entity.Category
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, name, slug, description, created_at FROM categories `+where, arg,
	).Scan(&c.ID, &c.Name, &c.Slug, &c.Description, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

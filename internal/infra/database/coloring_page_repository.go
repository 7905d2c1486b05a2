package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/raskraski/storefront/internal/entity"
)

const coloringPageColumns = `cp.id, cp.title, cp.slug, cp.description, cp.image_url, cp.pdf_url,
	cp.category_id, cp.tags, cp.difficulty, cp.downloads, cp.created_at`

type ColoringPageFilter struct {
	CategorySlug string
	Tag          string
	Search       string
	Page         Page
}

type ColoringPageRepository struct {
	DB *sql.DB
}

func NewColoringPageRepository(db *sql.DB) *ColoringPageRepository {
	return &ColoringPageRepository{DB: db}
}

func (r *ColoringPageRepository) Create(ctx context.Context, p *entity.ColoringPage) error {
	if !validReference(p.CategoryID) {
		return entity.ErrInvalidReference
	}
	query := `
		INSERT INTO coloring_pages (id, title, slug, description, image_url, pdf_url,
			category_id, tags, difficulty, downloads, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.DB.ExecContext(ctx, query,
		p.ID, p.Title, p.Slug, p.Description, p.ImageURL, p.PDFURL,
		p.CategoryID, pq.Array(p.Tags), p.Difficulty, p.Downloads, p.CreatedAt,
	)
	return mapWriteError(err)
}

func (r *ColoringPageRepository) Update(ctx context.Context, p *entity.ColoringPage) error {
	if !validID(p.ID) {
		return entity.ErrNotFound
	}
	if !validReference(p.CategoryID) {
		return entity.ErrInvalidReference
	}
	query := `
		UPDATE coloring_pages
		SET title = $2, slug = $3, description = $4, image_url = $5, pdf_url = $6,
			category_id = $7, tags = $8, difficulty = $9
		WHERE id = $1
	`
	return expectOneRow(r.DB.ExecContext(ctx, query,
		p.ID, p.Title, p.Slug, p.Description, p.ImageURL, p.PDFURL,
		p.CategoryID, pq.Array(p.Tags), p.Difficulty,
	))
}

func (r *ColoringPageRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return entity.ErrNotFound
	}
	return expectOneRow(r.DB.ExecContext(ctx, `DELETE FROM coloring_pages WHERE id = $1`, id))
}

func (r *ColoringPageRepository) FindByID(ctx context.Context, id string) (*entity.ColoringPage, error) {
	if !validID(id) {
		return nil, entity.ErrNotFound
	}
	query := `SELECT ` + coloringPageColumns + ` FROM coloring_pages cp WHERE cp.id = $1`
	return scanColoringPage(r.DB.QueryRowContext(ctx, query, id))
}

func (r *ColoringPageRepository) FindBySlug(ctx context.Context, slug string) (*entity.ColoringPage, error) {
	query := `SELECT ` + coloringPageColumns + ` FROM coloring_pages cp WHERE cp.slug = $1`
	return scanColoringPage(r.DB.QueryRowContext(ctx, query, slug))
}

func (r *ColoringPageRepository) List(ctx context.Context, f ColoringPageFilter) ([]entity.ColoringPage, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	from := `coloring_pages cp`
	if f.CategorySlug != "" {
		from += ` JOIN categories c ON c.id = cp.category_id`
		where = append(where, "c.slug = "+arg(f.CategorySlug))
	}
	if tag := strings.ToLower(strings.TrimSpace(f.Tag)); tag != "" {
		where = append(where, arg(tag)+" = ANY(cp.tags)")
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		ph := arg("%" + escapeLike(s) + "%")
		where = append(where, fmt.Sprintf("(cp.title ILIKE %s OR cp.description ILIKE %s)", ph, ph))
	}

	query := `SELECT ` + coloringPageColumns + ` FROM ` + from
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	page := NewPage(f.Page.Limit, f.Page.Offset)
	query += fmt.Sprintf(` ORDER BY cp.created_at DESC LIMIT %s OFFSET %s`, arg(page.Limit), arg(page.Offset))

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pages := []entity.ColoringPage{}
	for rows.Next() {
		p, err := scanColoringPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, *p)
	}
	return pages, rows.Err()
}

// IncrementDownloads bumps the counter and returns the new value.
func (r *ColoringPageRepository) IncrementDownloads(ctx context.Context, slug string) (int64, error) {
	var downloads int64
	err := r.DB.QueryRowContext(ctx,
		`UPDATE coloring_pages SET downloads = downloads + 1 WHERE slug = $1 RETURNING downloads`,
		slug,
	).Scan(&downloads)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, entity.ErrNotFound
	}
	return downloads, err
}

func scanColoringPage(row rowScanner) (*entity.ColoringPage, error) {
	var (
		p          entity.ColoringPage
		categoryID sql.NullString
		tags       pq.StringArray
	)
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Description, &p.ImageURL, &p.PDFURL,
		&categoryID, &tags, &p.Difficulty, &p.Downloads, &p.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	p.CategoryID = stringPtr(categoryID)
	p.Tags = []string(tags)
	if p.Tags == nil {
		p.Tags = []string{}
	}
	return &p, nil
}

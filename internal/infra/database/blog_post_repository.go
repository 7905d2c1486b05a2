package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/raskraski/storefront/internal/entity"
)

const blogPostColumns = `id, title, slug, excerpt, content, cover_url, published, published_at,
	created_at, updated_at`

type BlogPostRepository struct {
	DB *sql.DB
}

func NewBlogPostRepository(db *sql.DB) *BlogPostRepository {
	return &BlogPostRepository{DB: db}
}

func (r *BlogPostRepository) Create(ctx context.Context, p *entity.BlogPost) error {
	query := `
		INSERT INTO blog_posts (id, title, slug, excerpt, content, cover_url, published,
			published_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.DB.ExecContext(ctx, query,
		p.ID, p.Title, p.Slug, p.Excerpt, p.Content, p.CoverURL, p.Published,
		p.PublishedAt, p.CreatedAt, p.UpdatedAt,
	)
	return mapWriteError(err)
}

func (r *BlogPostRepository) Update(ctx context.Context, p *entity.BlogPost) error {
	if !validID(p.ID) {
		return entity.ErrNotFound
	}
	query := `
		UPDATE blog_posts
		SET title = $2, slug = $3, excerpt = $4, content = $5, cover_url = $6,
			published = $7, published_at = $8, updated_at = $9
		WHERE id = $1
	`
	return expectOneRow(r.DB.ExecContext(ctx, query,
		p.ID, p.Title, p.Slug, p.Excerpt, p.Content, p.CoverURL,
		p.Published, p.PublishedAt, p.UpdatedAt,
	))
}

func (r *BlogPostRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return entity.ErrNotFound
	}
	return expectOneRow(r.DB.ExecContext(ctx, `DELETE FROM blog_posts WHERE id = $1`, id))
}

func (r *BlogPostRepository) FindByID(ctx context.Context, id string) (*entity.BlogPost, error) {
	if !validID(id) {
		return nil, entity.ErrNotFound
	}
	return scanBlogPost(r.DB.QueryRowContext(ctx,
		`SELECT `+blogPostColumns+` FROM blog_posts WHERE id = $1`, id))
}

// FindBySlug hides drafts unless includeDrafts is set.
func (r *BlogPostRepository) FindBySlug(ctx context.Context, slug string, includeDrafts bool) (*entity.BlogPost, error) {
	return scanBlogPost(r.DB.QueryRowContext(ctx,
		`SELECT `+blogPostColumns+` FROM blog_posts WHERE slug = $1 AND (published OR $2)`,
		slug, includeDrafts,
	))
}

// ListPublished returns published posts, newest first.
func (r *BlogPostRepository) ListPublished(ctx context.Context, page Page) ([]entity.BlogPost, error) {
	page = NewPage(page.Limit, page.Offset)
	return r.query(ctx,
		`SELECT `+blogPostColumns+` FROM blog_posts WHERE published
		ORDER BY published_at DESC NULLS LAST LIMIT $1 OFFSET $2`,
		page.Limit, page.Offset,
	)
}

// ListAll includes drafts; admin only.
func (r *BlogPostRepository) ListAll(ctx context.Context, page Page) ([]entity.BlogPost, error) {
	page = NewPage(page.Limit, page.Offset)
	return r.query(ctx,
		`SELECT `+blogPostColumns+` FROM blog_posts ORDER BY created_at DESC LIMIT $1 OFFSET $2`,
		page.Limit, page.Offset,
	)
}

func (r *BlogPostRepository) query(ctx context.Context, query string, args ...any) ([]entity.BlogPost, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := []entity.BlogPost{}
	for rows.Next() {
		p, err := scanBlogPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, *p)
	}
	return posts, rows.Err()
}

func scanBlogPost(row rowScanner) (*entity.BlogPost, error) {
	var (
		p           entity.BlogPost
		publishedAt sql.NullTime
	)
	err := row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.CoverURL,
		&p.Published, &publishedAt, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if publishedAt.Valid {
		p.PublishedAt = &publishedAt.Time
	}
	return &p, nil
}

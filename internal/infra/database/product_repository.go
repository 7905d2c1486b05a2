package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/raskraski/storefront/internal/entity"
)

const productColumns = `p.id, p.name, p.slug, p.description, p.price, p.discount_price,
	p.image_url, p.category_id, p.in_stock, p.created_at, p.updated_at`

type ProductFilter struct {
	CategorySlug string
	Search       string
	MaxPrice     *decimal.Decimal
	InStockOnly  bool
	Page         Page
}

type ProductRepository struct {
	DB *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{DB: db}
}

func (r *ProductRepository) Create(ctx context.Context, p *entity.Product) error {
	if !validReference(p.CategoryID) {
		return entity.ErrInvalidReference
	}
	query := `
		INSERT INTO products (id, name, slug, description, price, discount_price, image_url,
			category_id, in_stock, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := r.DB.ExecContext(ctx, query,
		p.ID, p.Name, p.Slug, p.Description, p.Price, nullDecimal(p.DiscountPrice), p.ImageURL,
		p.CategoryID, p.InStock, p.CreatedAt, p.UpdatedAt,
	)
	return mapWriteError(err)
}

func (r *ProductRepository) Update(ctx context.Context, p *entity.Product) error {
	if !validID(p.ID) {
		return entity.ErrNotFound
	}
	if !validReference(p.CategoryID) {
		return entity.ErrInvalidReference
	}
	query := `
		UPDATE products
		SET name = $2, slug = $3, description = $4, price = $5, discount_price = $6,
			image_url = $7, category_id = $8, in_stock = $9, updated_at = $10
		WHERE id = $1
	`
	return expectOneRow(r.DB.ExecContext(ctx, query,
		p.ID, p.Name, p.Slug, p.Description, p.Price, nullDecimal(p.DiscountPrice),
		p.ImageURL, p.CategoryID, p.InStock, p.UpdatedAt,
	))
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return entity.ErrNotFound
	}
	return expectOneRow(r.DB.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id))
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	if !validID(id) {
		return nil, entity.ErrNotFound
	}
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id = $1`
	return scanProduct(r.DB.QueryRowContext(ctx, query, id))
}

func (r *ProductRepository) FindBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.slug = $1`
	return scanProduct(r.DB.QueryRowContext(ctx, query, slug))
}

func (r *ProductRepository) List(ctx context.Context, f ProductFilter) ([]entity.Product, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	from := `products p`
	if f.CategorySlug != "" {
		from += ` JOIN categories c ON c.id = p.category_id`
		where = append(where, "c.slug = "+arg(f.CategorySlug))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		ph := arg("%" + escapeLike(s) + "%")
		where = append(where, fmt.Sprintf("(p.name ILIKE %s OR p.description ILIKE %s)", ph, ph))
	}
	if f.MaxPrice != nil {
		where = append(where, "COALESCE(p.discount_price, p.price) <= "+arg(*f.MaxPrice))
	}
	if f.InStockOnly {
		where = append(where, "p.in_stock")
	}

	query := `SELECT ` + productColumns + ` FROM ` + from
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	page := NewPage(f.Page.Limit, f.Page.Offset)
	query += fmt.Sprintf(` ORDER BY p.created_at DESC LIMIT %s OFFSET %s`, arg(page.Limit), arg(page.Offset))

	return r.query(ctx, query, args...)
}

// ListAll returns every product ordered by name; used by the admin export.
func (r *ProductRepository) ListAll(ctx context.Context) ([]entity.Product, error) {
	return r.query(ctx, `SELECT `+productColumns+` FROM products p ORDER BY p.name`)
}

func (r *ProductRepository) query(ctx context.Context, query string, args ...any) ([]entity.Product, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []entity.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*entity.Product, error) {
	var (
		p          entity.Product
		discount   decimal.NullDecimal
		categoryID sql.NullString
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &discount,
		&p.ImageURL, &categoryID, &p.InStock, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if discount.Valid {
		p.DiscountPrice = &discount.Decimal
	}
	p.CategoryID = stringPtr(categoryID)
	return &p, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

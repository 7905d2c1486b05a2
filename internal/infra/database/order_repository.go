package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/raskraski/storefront/internal/entity"
)

const orderColumns = `id, session_id, customer_name, customer_email, customer_phone, items,
	total, status, created_at, updated_at`

type OrderRepository struct {
	DB *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

func (r *OrderRepository) Create(ctx context.Context, o *entity.Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("encode order items: %w", err)
	}

	query := `
		INSERT INTO orders (id, session_id, customer_name, customer_email, customer_phone,
			items, total, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err = r.DB.ExecContext(ctx, query,
		o.ID, o.SessionID, o.CustomerName, o.CustomerEmail, o.CustomerPhone,
		string(items), o.Total, o.Status, o.CreatedAt, o.UpdatedAt,
	)
	return err
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return entity.ErrNotFound
	}
	return expectOneRow(r.DB.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id))
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*entity.Order, error) {
	if !validID(id) {
		return nil, entity.ErrNotFound
	}
	return scanOrder(r.DB.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
}

// List returns orders newest first, optionally restricted to one status.
func (r *OrderRepository) List(ctx context.Context, status string, page Page) ([]entity.Order, error) {
	page = NewPage(page.Limit, page.Offset)
	rows, err := r.DB.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		status, page.Limit, page.Offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []entity.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	if !validID(id) {
		return entity.ErrNotFound
	}
	if !entity.ValidOrderStatus(status) {
		return entity.ErrInvalidOrderStatus
	}
	return expectOneRow(r.DB.ExecContext(ctx,
		`UPDATE orders SET status = $2, updated_at = NOW() WHERE id = $1`, id, status))
}

// ExpirePending marks PENDING orders created before olderThan as EXPIRED.
func (r *OrderRepository) ExpirePending(ctx context.Context, olderThan time.Time) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `
		UPDATE orders
		SET status = 'EXPIRED', updated_at = NOW()
		WHERE status = 'PENDING' AND created_at < $1
		RETURNING id
	`, olderThan)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func scanOrder(row rowScanner) (*entity.Order, error) {
	var (
		o     entity.Order
		items []byte
	)
	err := row.Scan(
		&o.ID, &o.SessionID, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
		&items, &o.Total, &o.Status, &o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entity.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode order %s items: %w", o.ID, err)
	}
	return &o, nil
}

package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Slug          string           `json:"slug"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discount_price,omitempty"`
	ImageURL      string           `json:"image_url"`
	CategoryID    *string          `json:"category_id,omitempty"`
	InStock       bool             `json:"in_stock"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

func NewProduct(name, slug string, price decimal.Decimal) (*Product, error) {
	p := &Product{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(name),
		Slug:      slug,
		Price:     price,
		InStock:   true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrNameRequired
	}
	if !p.Price.IsPositive() {
		return ErrInvalidPrice
	}
	if p.DiscountPrice != nil && p.DiscountPrice.IsNegative() {
		return ErrInvalidPrice
	}
	return nil
}

// EffectivePrice is the discount price when one is set, otherwise the regular price.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

package usecase

import (
	"github.com/shopspring/decimal"

	"github.com/raskraski/storefront/internal/entity"
)

type ProductInput struct {
	Name          string           `json:"name"`
	Slug          string           `json:"slug"`
	Description   string           `json:"description"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discount_price"`
	ImageURL      string           `json:"image_url"`
	CategoryID    *string          `json:"category_id"`
	InStock       *bool            `json:"in_stock"`
}

type CategoryInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

type ColoringPageInput struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	PDFURL      string   `json:"pdf_url"`
	CategoryID  *string  `json:"category_id"`
	Tags        []string `json:"tags"`
	Difficulty  string   `json:"difficulty"`
}

type BlogPostInput struct {
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Excerpt   string `json:"excerpt"`
	Content   string `json:"content"`
	CoverURL  string `json:"cover_url"`
	Published bool   `json:"published"`
}

type CheckoutInput struct {
	SessionID string `json:"-"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

type CheckoutOutput struct {
	OrderID    string             `json:"order_id"`
	Status     string             `json:"status"`
	Total      decimal.Decimal    `json:"total"`
	TotalItems int                `json:"total_items"`
	Items      []entity.OrderItem `json:"items"`
}

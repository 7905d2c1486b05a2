package entity

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	p, err := NewProduct("  Мелки восковые ", "", decimal.RequireFromString("150"))
	require.NoError(t, err)
	assert.Equal(t, "Мелки восковые", p.Name)
	assert.True(t, p.InStock)
	assert.NotEmpty(t, p.ID)

	_, err = NewProduct(" ", "", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrNameRequired)

	_, err = NewProduct("Мелки", "", decimal.Zero)
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestProduct_EffectivePrice(t *testing.T) {
	p := &Product{Name: "Кисти", Price: decimal.RequireFromString("100")}
	assert.True(t, p.EffectivePrice().Equal(decimal.RequireFromString("100")))

	discount := decimal.RequireFromString("79.90")
	p.DiscountPrice = &discount
	assert.True(t, p.EffectivePrice().Equal(discount))

	negative := decimal.RequireFromString("-1")
	p.DiscountPrice = &negative
	assert.ErrorIs(t, p.Validate(), ErrInvalidPrice)
}

func TestBlogPost_PublishKeepsFirstDate(t *testing.T) {
	post, err := NewBlogPost("Как раскрашивать", "", "")
	require.NoError(t, err)
	assert.False(t, post.Published)

	first := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	post.Publish(first)
	post.Unpublish()
	post.Publish(first.Add(24 * time.Hour))

	assert.True(t, post.Published)
	require.NotNil(t, post.PublishedAt)
	assert.Equal(t, first, *post.PublishedAt)

	_, err = NewBlogPost("", "", "")
	assert.ErrorIs(t, err, ErrTitleRequired)
}

func TestNewOrder_Total(t *testing.T) {
	o := NewOrder("s1", "Анна", "anna@example.com", "89123456789", []OrderItem{
		{ProductID: "p1", UnitPrice: decimal.RequireFromString("19.99"), Quantity: 3},
		{ProductID: "p2", UnitPrice: decimal.RequireFromString("0.03"), Quantity: 1},
	})

	assert.True(t, o.Total.Equal(decimal.RequireFromString("60")), o.Total.String())
	assert.Equal(t, OrderStatusPending, o.Status)
	assert.True(t, ValidOrderStatus(OrderStatusExpired))
	assert.False(t, ValidOrderStatus("SHIPPED"))
}

func TestCollection(t *testing.T) {
	for _, c := range Collections {
		assert.True(t, c.Valid(), c)
		assert.Equal(t, string(c), c.Table())
	}
	assert.False(t, Collection("users").Valid())
}

func TestNewColoringPage(t *testing.T) {
	p, err := NewColoringPage("Котик", "")
	require.NoError(t, err)
	assert.Equal(t, DifficultyEasy, p.Difficulty)
	assert.NotNil(t, p.Tags)
	assert.False(t, ValidDifficulty("extreme"))
}

package cart

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sequentialIDs() Option {
	n := 0
	return WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("item-%d", n)
	})
}

func product(id string, price string) Product {
	return Product{ID: id, Name: "Product " + id, Price: decimal.RequireFromString(price)}
}

func TestAddItem_MergesSameProduct(t *testing.T) {
	ctx := context.Background()
	c := New(ctx, NewMemoryStorage(), discardLogger(), sequentialIDs())
	p := product("p1", "10")

	first := c.AddItem(ctx, p, 2)
	second := c.AddItem(ctx, p, 3)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, c.TotalItems())
}

func TestAddItem_KeepsPositionOnMerge(t *testing.T) {
	ctx := context.Background()
	c := New(ctx, NewMemoryStorage(), discardLogger(), sequentialIDs())

	c.AddItem(ctx, product("p1", "1"), 1)
	c.AddItem(ctx, product("p2", "1"), 1)
	c.AddItem(ctx, product("p1", "1"), 4)

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].Product.ID)
	assert.Equal(t, "item-1", items[0].ID)
	assert.Equal(t, 5, items[0].Quantity)
	assert.Equal(t, "p2", items[1].Product.ID)
}

func TestAddItem_DefaultsQuantityToOne(t *testing.T) {
	ctx := context.Background()
	c := New(ctx, NewMemoryStorage(), discardLogger())

	item := c.AddItem(ctx, product("p1", "3"), 0)

	assert.Equal(t, 1, item.Quantity)
	assert.NotEmpty(t, item.ID)
}

func TestUpdateQuantity(t *testing.T) {
	ctx := context.Background()
	c := New(ctx, NewMemoryStorage(), discardLogger(), sequentialIDs())
	a := c.AddItem(ctx, product("p1", "1"), 1)
	b := c.AddItem(ctx, product("p2", "1"), 1)

	c.UpdateQuantity(ctx, a.ID, 7)

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, a.ID, items[0].ID)
	assert.Equal(t, 7, items[0].Quantity)
	assert.Equal(t, b.ID, items[1].ID)
	assert.Equal(t, 8, c.TotalItems())
}

func TestUpdateQuantity_ZeroRemoves(t *testing.T) {
	ctx := context.Background()
	c := New(ctx, NewMemoryStorage(), discardLogger())
	a := c.AddItem(ctx, product("p1", "1"), 3)
	c.AddItem(ctx, product("p2", "1"), 2)

	c.UpdateQuantity(ctx, a.ID, 0)

	_, found := c.Item(a.ID)
	assert.False(t, found)
	assert.Equal(t, 2, c.TotalItems())
}

func TestUpdateQuantity_UnknownItemIsNoop(t *testing.T) {
	ctx := context.Background()
	c := New(ctx, NewMemoryStorage(), discardLogger())
	c.AddItem(ctx, product("p1", "1"), 3)

	c.UpdateQuantity(ctx, "missing", 9)

	assert.Equal(t, 3, c.TotalItems())
}

func TestRemoveItem(t *testing.T) {
	ctx := context.Background()
	c := New(ctx, NewMemoryStorage(), discardLogger())
	a := c.AddItem(ctx, product("p1", "1"), 1)

	c.RemoveItem(ctx, "missing")
	assert.Len(t, c.Items(), 1)

	c.RemoveItem(ctx, a.ID)
	assert.True(t, c.IsEmpty())
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	c := New(ctx, storage, discardLogger())
	c.AddItem(ctx, product("p1", "1"), 1)
	c.AddItem(ctx, product("p2", "1"), 1)

	c.Clear(ctx)

	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.TotalItems())
	stored, err := storage.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", stored)
}

func TestTotalPrice_UsesDiscountWhenPresent(t *testing.T) {
	ctx := context.Background()
	c := New(ctx, NewMemoryStorage(), discardLogger())

	discounted := product("p1", "10.00")
	d := decimal.RequireFromString("7.50")
	discounted.DiscountPrice = &d

	c.AddItem(ctx, discounted, 2)
	c.AddItem(ctx, product("p2", "4.25"), 3)

	want := decimal.RequireFromString("27.75")
	assert.True(t, want.Equal(c.TotalPrice()), "got %s", c.TotalPrice())
}

func TestTotalPrice_EmptyCart(t *testing.T) {
	c := New(context.Background(), NewMemoryStorage(), discardLogger())

	assert.True(t, c.TotalPrice().IsZero())
	assert.Equal(t, 0, c.TotalItems())
}

func TestPersistence_RoundTrip(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	c := New(ctx, storage, discardLogger())

	d := decimal.RequireFromString("1.99")
	withDiscount := product("p1", "2.49")
	withDiscount.DiscountPrice = &d
	withDiscount.Slug = "raskraska-kot"

	c.AddItem(ctx, withDiscount, 2)
	c.AddItem(ctx, product("p2", "15"), 1)
	c.AddItem(ctx, product("p3", "0.5"), 4)

	restored := New(ctx, storage, discardLogger())

	want := c.Items()
	got := restored.Items()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Quantity, got[i].Quantity)
		assert.Equal(t, want[i].Product.ID, got[i].Product.ID)
		assert.Equal(t, want[i].Product.Name, got[i].Product.Name)
		assert.Equal(t, want[i].Product.Slug, got[i].Product.Slug)
		assert.True(t, want[i].Product.Price.Equal(got[i].Product.Price))
		if want[i].Product.DiscountPrice == nil {
			assert.Nil(t, got[i].Product.DiscountPrice)
		} else {
			require.NotNil(t, got[i].Product.DiscountPrice)
			assert.True(t, want[i].Product.DiscountPrice.Equal(*got[i].Product.DiscountPrice))
		}
	}
	assert.True(t, c.TotalPrice().Equal(restored.TotalPrice()))
}

func TestRestore_MalformedValueYieldsEmptyCart(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	require.NoError(t, storage.Set(ctx, StorageKey, "{not json"))

	c := New(ctx, storage, discardLogger())

	assert.True(t, c.IsEmpty())
}

func TestRestore_ReadErrorYieldsEmptyCart(t *testing.T) {
	ctx := context.Background()
	storage := new(MockStorage)
	storage.On("Get", ctx, StorageKey).Return("", errors.New("connection refused"))

	c := New(ctx, storage, discardLogger())

	assert.True(t, c.IsEmpty())
	storage.AssertExpectations(t)
}

func TestMutation_WriteErrorIsSwallowed(t *testing.T) {
	ctx := context.Background()
	storage := new(MockStorage)
	storage.On("Get", ctx, StorageKey).Return("", ErrNotFound)
	storage.On("Set", ctx, StorageKey, mock.Anything).Return(errors.New("quota exceeded"))

	c := New(ctx, storage, discardLogger())
	item := c.AddItem(ctx, product("p1", "5"), 2)

	assert.Equal(t, 2, item.Quantity)
	assert.Equal(t, 2, c.TotalItems())
	storage.AssertNumberOfCalls(t, "Set", 1)
}

func TestWithPrefix_IsolatesSessions(t *testing.T) {
	ctx := context.Background()
	shared := NewMemoryStorage()

	a := New(ctx, WithPrefix(shared, "session:a:"), discardLogger())
	a.AddItem(ctx, product("p1", "1"), 1)

	b := New(ctx, WithPrefix(shared, "session:b:"), discardLogger())
	assert.True(t, b.IsEmpty())

	again := New(ctx, WithPrefix(shared, "session:a:"), discardLogger())
	assert.Equal(t, 1, again.TotalItems())
}

// Package cart holds the shopping cart of one visitor session.
//
// The in-memory item list is the source of truth while a Cart value lives.
// Every mutation writes the full list to Storage under StorageKey so a later
// Cart built on the same Storage picks up where this one stopped. Storage
// failures are logged and swallowed.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StorageKey is the key the item list is persisted under.
const StorageKey = "cart"

// ErrNotFound is returned by Storage.Get when nothing is stored under the key.
var ErrNotFound = errors.New("cart: key not found")

// Storage is a key-value surface holding one string blob per key.
type Storage interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Product is the snapshot of a catalog product taken when it is added.
// Prices are not refreshed afterwards.
type Product struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Slug          string           `json:"slug,omitempty"`
	ImageURL      string           `json:"image_url,omitempty"`
	Price         decimal.Decimal  `json:"price"`
	DiscountPrice *decimal.Decimal `json:"discount_price,omitempty"`
}

// UnitPrice is the discount price when present, otherwise the regular price.
func (p Product) UnitPrice() decimal.Decimal {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}
	return p.Price
}

type Item struct {
	ID       string  `json:"id"`
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

type Cart struct {
	mu      sync.Mutex
	items   []Item
	storage Storage
	logger  *slog.Logger
	newID   func() string
}

type Option func(*Cart)

// WithIDGenerator replaces the uuid based item id generator.
func WithIDGenerator(fn func() string) Option {
	return func(c *Cart) { c.newID = fn }
}

// New restores a cart from storage. A missing, unreadable or malformed
// value yields an empty cart.
func New(ctx context.Context, storage Storage, logger *slog.Logger, opts ...Option) *Cart {
	if logger == nil {
		logger = slog.Default()
	}
	c := &Cart{
		storage: storage,
		logger:  logger,
		newID:   func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(c)
	}
	c.items = c.restore(ctx)
	return c
}

func (c *Cart) restore(ctx context.Context) []Item {
	raw, err := c.storage.Get(ctx, StorageKey)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		c.logger.WarnContext(ctx, "cart: failed to read stored cart", slog.Any("error", err))
		return nil
	}
	if raw == "" {
		return nil
	}

	var items []Item
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		c.logger.WarnContext(ctx, "cart: failed to parse stored cart", slog.Any("error", err))
		return nil
	}
	return items
}

func (c *Cart) persist(ctx context.Context) {
	items := c.items
	if items == nil {
		items = []Item{}
	}
	body, err := json.Marshal(items)
	if err != nil {
		c.logger.ErrorContext(ctx, "cart: failed to encode cart", slog.Any("error", err))
		return
	}
	if err := c.storage.Set(ctx, StorageKey, string(body)); err != nil {
		c.logger.WarnContext(ctx, "cart: failed to store cart", slog.Any("error", err))
	}
}

// AddItem merges quantity into the line for product.ID, or appends a new
// line. A quantity below 1 counts as 1.
func (c *Cart) AddItem(ctx context.Context, product Product, quantity int) Item {
	if quantity < 1 {
		quantity = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].Product.ID == product.ID {
			c.items[i].Quantity += quantity
			item := c.items[i]
			c.persist(ctx)
			return item
		}
	}

	item := Item{ID: c.newID(), Product: product, Quantity: quantity}
	c.items = append(c.items, item)
	c.persist(ctx)
	return item
}

// UpdateQuantity sets the quantity of an item in place. A quantity of zero
// or less removes the item. Unknown ids are ignored.
func (c *Cart) UpdateQuantity(ctx context.Context, itemID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(ctx, itemID)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == itemID {
			c.items[i].Quantity = quantity
			c.persist(ctx)
			return
		}
	}
}

func (c *Cart) RemoveItem(ctx context.Context, itemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := slices.IndexFunc(c.items, func(it Item) bool { return it.ID == itemID })
	if idx < 0 {
		return
	}
	c.items = slices.Delete(c.items, idx, idx+1)
	c.persist(ctx)
}

func (c *Cart) Clear(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.persist(ctx)
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()

	return slices.Clone(c.items)
}

// Item looks a line up by its id.
func (c *Cart) Item(itemID string) (Item, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, it := range c.items {
		if it.ID == itemID {
			return it, true
		}
	}
	return Item{}, false
}

func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.items) == 0
}

// TotalItems is the sum of all quantities.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, it := range c.items {
		total += it.Quantity
	}
	return total
}

// TotalPrice sums unit price times quantity over all lines.
func (c *Cart) TotalPrice() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := decimal.Zero
	for _, it := range c.items {
		total = total.Add(it.Product.UnitPrice().Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

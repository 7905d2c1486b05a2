package handlers

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/raskraski/storefront/internal/cart"
	"github.com/raskraski/storefront/internal/entity"
	"github.com/raskraski/storefront/internal/infra/database"
	"github.com/raskraski/storefront/internal/infra/queue"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) List(ctx context.Context, f database.ProductFilter) ([]entity.Product, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

func (m *MockProductRepo) FindBySlug(ctx context.Context, slug string) (*entity.Product, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductRepo) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

func (m *MockProductRepo) ListAll(ctx context.Context) ([]entity.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Product), args.Error(1)
}

type MockColoringPageRepo struct {
	mock.Mock
}

func (m *MockColoringPageRepo) List(ctx context.Context, f database.ColoringPageFilter) ([]entity.ColoringPage, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ColoringPage), args.Error(1)
}

func (m *MockColoringPageRepo) FindBySlug(ctx context.Context, slug string) (*entity.ColoringPage, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ColoringPage), args.Error(1)
}

func (m *MockColoringPageRepo) IncrementDownloads(ctx context.Context, slug string) (int64, error) {
	args := m.Called(ctx, slug)
	return args.Get(0).(int64), args.Error(1)
}

type MockBlogPostRepo struct {
	mock.Mock
}

func (m *MockBlogPostRepo) ListPublished(ctx context.Context, page database.Page) ([]entity.BlogPost, error) {
	args := m.Called(ctx, page)
	return args.Get(0).([]entity.BlogPost), args.Error(1)
}

func (m *MockBlogPostRepo) ListAll(ctx context.Context, page database.Page) ([]entity.BlogPost, error) {
	args := m.Called(ctx, page)
	return args.Get(0).([]entity.BlogPost), args.Error(1)
}

func (m *MockBlogPostRepo) FindBySlug(ctx context.Context, slug string, includeDrafts bool) (*entity.BlogPost, error) {
	args := m.Called(ctx, slug, includeDrafts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BlogPost), args.Error(1)
}

type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) Create(ctx context.Context, o *entity.Order) error {
	return m.Called(ctx, o).Error(0)
}

func (m *MockOrderRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) PublishOrderPlaced(ctx context.Context, p queue.OrderPlacedPayload) error {
	return m.Called(ctx, p).Error(0)
}

// memorySessions keeps every session in one MemoryStorage, split by prefix.
type memorySessions struct {
	store *cart.MemoryStorage
}

func newMemorySessions() *memorySessions {
	return &memorySessions{store: cart.NewMemoryStorage()}
}

func (s *memorySessions) ForSession(id string) cart.Storage {
	return cart.WithPrefix(s.store, "session:"+id+":")
}

package usecase

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"github.com/raskraski/storefront/internal/entity"
	"github.com/raskraski/storefront/internal/infra/queue"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeSlugStore answers existence checks from an in-memory map of
// collection -> slug -> owner id.
type fakeSlugStore struct {
	slugs map[entity.Collection]map[string]string
	calls int
}

func newFakeSlugStore() *fakeSlugStore {
	return &fakeSlugStore{slugs: make(map[entity.Collection]map[string]string)}
}

func (f *fakeSlugStore) put(c entity.Collection, slug, id string) {
	if f.slugs[c] == nil {
		f.slugs[c] = make(map[string]string)
	}
	f.slugs[c][slug] = id
}

func (f *fakeSlugStore) ExistsWithSlug(_ context.Context, c entity.Collection, slug, excludeID string) (bool, error) {
	f.calls++
	owner, ok := f.slugs[c][slug]
	if !ok {
		return false, nil
	}
	return excludeID == "" || owner != excludeID, nil
}

type MockSlugChecker struct {
	mock.Mock
}

func (m *MockSlugChecker) ExistsWithSlug(ctx context.Context, c entity.Collection, slug, excludeID string) (bool, error) {
	args := m.Called(ctx, c, slug, excludeID)
	return args.Bool(0), args.Error(1)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, p *entity.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, p *entity.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Product), args.Error(1)
}

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, c *entity.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepository) Update(ctx context.Context, c *entity.Category) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoryRepository) FindByID(ctx context.Context, id string) (*entity.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

type MockBlogPostRepository struct {
	mock.Mock
}

func (m *MockBlogPostRepository) Create(ctx context.Context, p *entity.BlogPost) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockBlogPostRepository) Update(ctx context.Context, p *entity.BlogPost) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockBlogPostRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBlogPostRepository) FindByID(ctx context.Context, id string) (*entity.BlogPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BlogPost), args.Error(1)
}

type MockColoringPageRepository struct {
	mock.Mock
}

func (m *MockColoringPageRepository) Create(ctx context.Context, p *entity.ColoringPage) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockColoringPageRepository) Update(ctx context.Context, p *entity.ColoringPage) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockColoringPageRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockColoringPageRepository) FindByID(ctx context.Context, id string) (*entity.ColoringPage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ColoringPage), args.Error(1)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, o *entity.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishOrderPlaced(ctx context.Context, payload queue.OrderPlacedPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

package usecase

import (
	"context"

	"github.com/raskraski/storefront/internal/entity"
	"github.com/raskraski/storefront/internal/infra/queue"
)

// SlugExistenceChecker reports whether a row of collection other than
// excludeID already holds slug. An empty excludeID excludes nothing.
type SlugExistenceChecker interface {
	ExistsWithSlug(ctx context.Context, collection entity.Collection, slug, excludeID string) (bool, error)
}

type ProductRepositoryInterface interface {
	Create(ctx context.Context, p *entity.Product) error
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.Product, error)
}

type CategoryRepositoryInterface interface {
	Create(ctx context.Context, c *entity.Category) error
	Update(ctx context.Context, c *entity.Category) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.Category, error)
}

type ColoringPageRepositoryInterface interface {
	Create(ctx context.Context, p *entity.ColoringPage) error
	Update(ctx context.Context, p *entity.ColoringPage) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.ColoringPage, error)
}

type BlogPostRepositoryInterface interface {
	Create(ctx context.Context, p *entity.BlogPost) error
	Update(ctx context.Context, p *entity.BlogPost) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*entity.BlogPost, error)
}

type OrderRepositoryInterface interface {
	Create(ctx context.Context, o *entity.Order) error
	Delete(ctx context.Context, id string) error
}

type QueueProducerInterface interface {
	PublishOrderPlaced(ctx context.Context, payload queue.OrderPlacedPayload) error
}

package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/raskraski/storefront/internal/entity"
)

type ManageProductsUseCase struct {
	Repo   ProductRepositoryInterface
	Slugs  *ResolveSlugUseCase
	Logger *slog.Logger
}

func NewManageProductsUseCase(repo ProductRepositoryInterface, slugs *ResolveSlugUseCase, logger *slog.Logger) *ManageProductsUseCase {
	return &ManageProductsUseCase{Repo: repo, Slugs: slugs, Logger: logger}
}

func (uc *ManageProductsUseCase) Create(ctx context.Context, input ProductInput) (*entity.Product, error) {
	product, err := entity.NewProduct(input.Name, "", input.Price)
	if err != nil {
		return nil, validationError(err)
	}
	applyProductInput(product, input)
	if err := product.Validate(); err != nil {
		return nil, validationError(err)
	}

	product.Slug, err = uc.Slugs.Allocate(ctx, entity.CollectionProducts, input.Slug, product.Name, "")
	if err != nil {
		return nil, err
	}

	if err := uc.Repo.Create(ctx, product); err != nil {
		return nil, repositoryError("create product", err)
	}

	uc.Logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID),
		slog.String("slug", product.Slug),
	)
	return product, nil
}

func (uc *ManageProductsUseCase) Update(ctx context.Context, id string, input ProductInput) (*entity.Product, error) {
	product, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, repositoryError("load product", err)
	}

	product.Name = strings.TrimSpace(input.Name)
	product.Price = input.Price
	applyProductInput(product, input)
	if err := product.Validate(); err != nil {
		return nil, validationError(err)
	}

	if strings.TrimSpace(input.Slug) != "" {
		product.Slug, err = uc.Slugs.Allocate(ctx, entity.CollectionProducts, input.Slug, "", product.ID)
		if err != nil {
			return nil, err
		}
	}
	product.UpdatedAt = time.Now()

	if err := uc.Repo.Update(ctx, product); err != nil {
		return nil, repositoryError("update product", err)
	}
	return product, nil
}

func (uc *ManageProductsUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.Repo.Delete(ctx, id); err != nil {
		return repositoryError("delete product", err)
	}
	uc.Logger.InfoContext(ctx, "product deleted", slog.String("product_id", id))
	return nil
}

func applyProductInput(p *entity.Product, input ProductInput) {
	p.Description = input.Description
	p.DiscountPrice = input.DiscountPrice
	p.ImageURL = input.ImageURL
	p.CategoryID = input.CategoryID
	if input.InStock != nil {
		p.InStock = *input.InStock
	}
}

package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/raskraski/storefront/internal/entity"
)

type ManageCategoriesUseCase struct {
	Repo   CategoryRepositoryInterface
	Slugs  *ResolveSlugUseCase
	Logger *slog.Logger
}

func NewManageCategoriesUseCase(repo CategoryRepositoryInterface, slugs *ResolveSlugUseCase, logger *slog.Logger) *ManageCategoriesUseCase {
	return &ManageCategoriesUseCase{Repo: repo, Slugs: slugs, Logger: logger}
}

func (uc *ManageCategoriesUseCase) Create(ctx context.Context, input CategoryInput) (*entity.Category, error) {
	category, err := entity.NewCategory(input.Name, "", input.Description)
	if err != nil {
		return nil, validationError(err)
	}

	category.Slug, err = uc.Slugs.Allocate(ctx, entity.CollectionCategories, input.Slug, category.Name, "")
	if err != nil {
		return nil, err
	}

	if err := uc.Repo.Create(ctx, category); err != nil {
		return nil, repositoryError("create category", err)
	}

	uc.Logger.InfoContext(ctx, "category created",
		slog.String("category_id", category.ID),
		slog.String("slug", category.Slug),
	)
	return category, nil
}

func (uc *ManageCategoriesUseCase) Update(ctx context.Context, id string, input CategoryInput) (*entity.Category, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, validationError(entity.ErrNameRequired)
	}

	category, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, repositoryError("load category", err)
	}
	category.Name = name
	category.Description = input.Description

	if strings.TrimSpace(input.Slug) != "" {
		category.Slug, err = uc.Slugs.Allocate(ctx, entity.CollectionCategories, input.Slug, "", category.ID)
		if err != nil {
			return nil, err
		}
	}

	if err := uc.Repo.Update(ctx, category); err != nil {
		return nil, repositoryError("update category", err)
	}
	return category, nil
}

func (uc *ManageCategoriesUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.Repo.Delete(ctx, id); err != nil {
		return repositoryError("delete category", err)
	}
	uc.Logger.InfoContext(ctx, "category deleted", slog.String("category_id", id))
	return nil
}

package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/raskraski/storefront/internal/entity"
)

type ManageColoringPagesUseCase struct {
	Repo   ColoringPageRepositoryInterface
	Slugs  *ResolveSlugUseCase
	Logger *slog.Logger
}

func NewManageColoringPagesUseCase(repo ColoringPageRepositoryInterface, slugs *ResolveSlugUseCase, logger *slog.Logger) *ManageColoringPagesUseCase {
	return &ManageColoringPagesUseCase{Repo: repo, Slugs: slugs, Logger: logger}
}

func (uc *ManageColoringPagesUseCase) Create(ctx context.Context, input ColoringPageInput) (*entity.ColoringPage, error) {
	page, err := entity.NewColoringPage(input.Title, "")
	if err != nil {
		return nil, validationError(err)
	}
	if err := applyColoringPageInput(page, input); err != nil {
		return nil, err
	}

	page.Slug, err = uc.Slugs.Allocate(ctx, entity.CollectionColoringPages, input.Slug, page.Title, "")
	if err != nil {
		return nil, err
	}

	if err := uc.Repo.Create(ctx, page); err != nil {
		return nil, repositoryError("create coloring page", err)
	}

	uc.Logger.InfoContext(ctx, "coloring page created",
		slog.String("coloring_page_id", page.ID),
		slog.String("slug", page.Slug),
	)
	return page, nil
}

func (uc *ManageColoringPagesUseCase) Update(ctx context.Context, id string, input ColoringPageInput) (*entity.ColoringPage, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, validationError(entity.ErrTitleRequired)
	}

	page, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, repositoryError("load coloring page", err)
	}
	page.Title = title
	if err := applyColoringPageInput(page, input); err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Slug) != "" {
		page.Slug, err = uc.Slugs.Allocate(ctx, entity.CollectionColoringPages, input.Slug, "", page.ID)
		if err != nil {
			return nil, err
		}
	}

	if err := uc.Repo.Update(ctx, page); err != nil {
		return nil, repositoryError("update coloring page", err)
	}
	return page, nil
}

func (uc *ManageColoringPagesUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.Repo.Delete(ctx, id); err != nil {
		return repositoryError("delete coloring page", err)
	}
	uc.Logger.InfoContext(ctx, "coloring page deleted", slog.String("coloring_page_id", id))
	return nil
}

func applyColoringPageInput(page *entity.ColoringPage, input ColoringPageInput) error {
	difficulty := strings.ToLower(strings.TrimSpace(input.Difficulty))
	if difficulty == "" {
		difficulty = entity.DifficultyEasy
	}
	if !entity.ValidDifficulty(difficulty) {
		return validationError(ErrInvalidDifficulty)
	}

	page.Description = input.Description
	page.ImageURL = input.ImageURL
	page.PDFURL = input.PDFURL
	page.CategoryID = input.CategoryID
	page.Difficulty = difficulty
	page.Tags = normalizeTags(input.Tags)
	return nil
}

// normalizeTags lowercases and trims tags, dropping blanks and repeats while
// keeping first-seen order.
func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

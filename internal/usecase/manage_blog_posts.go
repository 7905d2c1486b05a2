package usecase

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/raskraski/storefront/internal/entity"
)

type ManageBlogPostsUseCase struct {
	Repo   BlogPostRepositoryInterface
	Slugs  *ResolveSlugUseCase
	Logger *slog.Logger
	Now    func() time.Time
}

func NewManageBlogPostsUseCase(repo BlogPostRepositoryInterface, slugs *ResolveSlugUseCase, logger *slog.Logger) *ManageBlogPostsUseCase {
	return &ManageBlogPostsUseCase{Repo: repo, Slugs: slugs, Logger: logger, Now: time.Now}
}

func (uc *ManageBlogPostsUseCase) Create(ctx context.Context, input BlogPostInput) (*entity.BlogPost, error) {
	post, err := entity.NewBlogPost(input.Title, "", input.Content)
	if err != nil {
		return nil, validationError(err)
	}
	uc.apply(post, input)

	post.Slug, err = uc.Slugs.Allocate(ctx, entity.CollectionBlogPosts, input.Slug, post.Title, "")
	if err != nil {
		return nil, err
	}

	if err := uc.Repo.Create(ctx, post); err != nil {
		return nil, repositoryError("create blog post", err)
	}

	uc.Logger.InfoContext(ctx, "blog post created",
		slog.String("post_id", post.ID),
		slog.String("slug", post.Slug),
		slog.Bool("published", post.Published),
	)
	return post, nil
}

func (uc *ManageBlogPostsUseCase) Update(ctx context.Context, id string, input BlogPostInput) (*entity.BlogPost, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, validationError(entity.ErrTitleRequired)
	}

	post, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, repositoryError("load blog post", err)
	}
	post.Title = title
	post.Content = input.Content
	uc.apply(post, input)

	if strings.TrimSpace(input.Slug) != "" {
		post.Slug, err = uc.Slugs.Allocate(ctx, entity.CollectionBlogPosts, input.Slug, "", post.ID)
		if err != nil {
			return nil, err
		}
	}
	post.UpdatedAt = uc.Now()

	if err := uc.Repo.Update(ctx, post); err != nil {
		return nil, repositoryError("update blog post", err)
	}
	return post, nil
}

func (uc *ManageBlogPostsUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.Repo.Delete(ctx, id); err != nil {
		return repositoryError("delete blog post", err)
	}
	uc.Logger.InfoContext(ctx, "blog post deleted", slog.String("post_id", id))
	return nil
}

func (uc *ManageBlogPostsUseCase) apply(post *entity.BlogPost, input BlogPostInput) {
	post.Excerpt = input.Excerpt
	post.CoverURL = input.CoverURL
	if input.Published {
		post.Publish(uc.Now())
	} else {
		post.Unpublish()
	}
}

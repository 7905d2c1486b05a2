package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/raskraski/storefront/internal/entity"
)

func TestManageCategories_Create(t *testing.T) {
	ctx := context.Background()
	repo := new(MockCategoryRepository)
	repo.On("Create", ctx, mock.Anything).Return(nil)
	store := newFakeSlugStore()
	store.put(entity.CollectionProducts, "zhivotnye", "p1")

	uc := NewManageCategoriesUseCase(repo, NewResolveSlugUseCase(store, 0, discardLogger()), discardLogger())
	c, err := uc.Create(ctx, CategoryInput{Name: "Животные"})

	require.NoError(t, err)
	assert.Equal(t, "zhivotnye", c.Slug, "slugs are unique per collection")
}

func TestManageCategories_UpdateRequiresName(t *testing.T) {
	repo := new(MockCategoryRepository)
	uc := NewManageCategoriesUseCase(repo, NewResolveSlugUseCase(newFakeSlugStore(), 0, discardLogger()), discardLogger())

	_, err := uc.Update(context.Background(), "c1", CategoryInput{Name: " "})

	assert.ErrorIs(t, err, entity.ErrNameRequired)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

func TestManageColoringPages_CreateNormalizesInput(t *testing.T) {
	ctx := context.Background()
	repo := new(MockColoringPageRepository)
	repo.On("Create", ctx, mock.Anything).Return(nil)

	uc := NewManageColoringPagesUseCase(repo, NewResolveSlugUseCase(newFakeSlugStore(), 0, discardLogger()), discardLogger())
	page, err := uc.Create(ctx, ColoringPageInput{
		Title:      "Котик с клубком",
		Tags:       []string{" Cats ", "cats", "", "Animals"},
		Difficulty: "MEDIUM",
	})

	require.NoError(t, err)
	assert.Equal(t, "kotik-s-klubkom", page.Slug)
	assert.Equal(t, []string{"cats", "animals"}, page.Tags)
	assert.Equal(t, entity.DifficultyMedium, page.Difficulty)
}

func TestManageColoringPages_InvalidDifficulty(t *testing.T) {
	repo := new(MockColoringPageRepository)
	uc := NewManageColoringPagesUseCase(repo, NewResolveSlugUseCase(newFakeSlugStore(), 0, discardLogger()), discardLogger())

	_, err := uc.Create(context.Background(), ColoringPageInput{Title: "Dog", Difficulty: "extreme"})

	assert.ErrorIs(t, err, ErrInvalidDifficulty)
}

func TestManageBlogPosts_PublishKeepsFirstDate(t *testing.T) {
	ctx := context.Background()
	first := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	later := first.Add(72 * time.Hour)

	repo := new(MockBlogPostRepository)
	repo.On("Create", ctx, mock.Anything).Return(nil)

	uc := NewManageBlogPostsUseCase(repo, NewResolveSlugUseCase(newFakeSlugStore(), 0, discardLogger()), discardLogger())
	uc.Now = func() time.Time { return first }

	post, err := uc.Create(ctx, BlogPostInput{Title: "Как раскрашивать", Content: "...", Published: true})
	require.NoError(t, err)
	assert.Equal(t, "kak-raskrashivat", post.Slug)
	require.NotNil(t, post.PublishedAt)

	repo.On("FindByID", ctx, post.ID).Return(post, nil)
	repo.On("Update", ctx, post).Return(nil)
	uc.Now = func() time.Time { return later }

	updated, err := uc.Update(ctx, post.ID, BlogPostInput{Title: "Как раскрашивать", Content: "v2", Published: true})
	require.NoError(t, err)
	assert.Equal(t, first, *updated.PublishedAt)
	assert.Equal(t, later, updated.UpdatedAt)
	assert.Equal(t, "v2", updated.Content)
}

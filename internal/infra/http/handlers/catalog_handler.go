package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/raskraski/storefront/internal/entity"
	"github.com/raskraski/storefront/internal/infra/database"
)

type ProductReader interface {
	List(ctx context.Context, f database.ProductFilter) ([]entity.Product, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Product, error)
}

type CategoryReader interface {
	List(ctx context.Context) ([]entity.Category, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Category, error)
}

type ColoringPageReader interface {
	List(ctx context.Context, f database.ColoringPageFilter) ([]entity.ColoringPage, error)
	FindBySlug(ctx context.Context, slug string) (*entity.ColoringPage, error)
	IncrementDownloads(ctx context.Context, slug string) (int64, error)
}

type BlogPostReader interface {
	ListPublished(ctx context.Context, page database.Page) ([]entity.BlogPost, error)
	ListAll(ctx context.Context, page database.Page) ([]entity.BlogPost, error)
	FindBySlug(ctx context.Context, slug string, includeDrafts bool) (*entity.BlogPost, error)
}

// CatalogHandler serves the public read side straight from the repositories.
type CatalogHandler struct {
	Products      ProductReader
	Categories    CategoryReader
	ColoringPages ColoringPageReader
	BlogPosts     BlogPostReader
	Logger        *slog.Logger
}

func NewCatalogHandler(products ProductReader, categories CategoryReader, pages ColoringPageReader, posts BlogPostReader, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		Products:      products,
		Categories:    categories,
		ColoringPages: pages,
		BlogPosts:     posts,
		Logger:        logger,
	}
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := database.ProductFilter{
		CategorySlug: q.Get("category"),
		Search:       q.Get("q"),
		InStockOnly:  q.Get("in_stock") == "true",
		Page:         pageFromQuery(r),
	}
	if raw := strings.TrimSpace(q.Get("max_price")); raw != "" {
		maxPrice, err := decimal.NewFromString(raw)
		if err != nil || maxPrice.IsNegative() {
			writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", "max_price must be a non-negative number")
			return
		}
		filter.MaxPrice = &maxPrice
	}

	products, err := h.Products.List(r.Context(), filter)
	if err != nil {
		writeUseCaseError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.Products.FindBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeUseCaseError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.Categories.List(r.Context())
	if err != nil {
		writeUseCaseError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

func (h *CatalogHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.Categories.FindBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeUseCaseError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, category)
}

func (h *CatalogHandler) ListColoringPages(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pages, err := h.ColoringPages.List(r.Context(), database.ColoringPageFilter{
		CategorySlug: q.Get("category"),
		Tag:          q.Get("tag"),
		Search:       q.Get("q"),
		Page:         pageFromQuery(r),
	})
	if err != nil {
		writeUseCaseError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, pages)
}

func (h *CatalogHandler) GetColoringPage(w http.ResponseWriter, r *http.Request) {
	page, err := h.ColoringPages.FindBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeUseCaseError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, page)
}

func (h *CatalogHandler) DownloadColoringPage(w http.ResponseWriter, r *http.Request) {
	downloads, err := h.ColoringPages.IncrementDownloads(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		writeUseCaseError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"downloads": downloads})
}

func (h *CatalogHandler) ListBlogPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.BlogPosts.ListPublished(r.Context(), pageFromQuery(r))
	if err != nil {
		writeUseCaseError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

func (h *CatalogHandler) GetBlogPost(w http.ResponseWriter, r *http.Request) {
	post, err := h.BlogPosts.FindBySlug(r.Context(), chi.URLParam(r, "slug"), false)
	if err != nil {
		writeUseCaseError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

// ListAllBlogPosts includes drafts; mounted behind the admin guard.
func (h *CatalogHandler) ListAllBlogPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.BlogPosts.ListAll(r.Context(), pageFromQuery(r))
	if err != nil {
		writeUseCaseError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// GetBlogPostDraft reads a post regardless of its published flag; admin only.
func (h *CatalogHandler) GetBlogPostDraft(w http.ResponseWriter, r *http.Request) {
	post, err := h.BlogPosts.FindBySlug(r.Context(), chi.URLParam(r, "slug"), true)
	if err != nil {
		writeUseCaseError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

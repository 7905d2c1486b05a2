package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/raskraski/storefront/internal/auth"
	"github.com/raskraski/storefront/internal/entity"
	"github.com/raskraski/storefront/internal/infra/http/middleware"
	"github.com/raskraski/storefront/internal/usecase"
)

// AdminHandler exposes the content management use cases. Every route is
// mounted behind middleware.RequireAdmin.
type AdminHandler struct {
	Products      *usecase.ManageProductsUseCase
	Categories    *usecase.ManageCategoriesUseCase
	ColoringPages *usecase.ManageColoringPagesUseCase
	BlogPosts     *usecase.ManageBlogPostsUseCase
	Logger        *slog.Logger
}

func NewAdminHandler(
	products *usecase.ManageProductsUseCase,
	categories *usecase.ManageCategoriesUseCase,
	pages *usecase.ManageColoringPagesUseCase,
	posts *usecase.ManageBlogPostsUseCase,
	logger *slog.Logger,
) *AdminHandler {
	return &AdminHandler{
		Products:      products,
		Categories:    categories,
		ColoringPages: pages,
		BlogPosts:     posts,
		Logger:        logger,
	}
}

// write decodes an input, runs fn and records the slug outcome for collection.
func write[In, Out any](h *AdminHandler, collection entity.Collection, status int, fn func(context.Context, In) (Out, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input In
		if !decodeJSON(w, r, &input) {
			return
		}

		out, err := fn(r.Context(), input)
		middleware.RecordSlugResolution(collection.String(), slugOutcome(err))
		if err != nil {
			writeUseCaseError(w, r, h.Logger, err)
			return
		}
		h.audit(r, collection)
		writeJSON(w, status, out)
	}
}

func withID[In, Out any](r *http.Request, fn func(context.Context, string, In) (Out, error)) func(context.Context, In) (Out, error) {
	id := chi.URLParam(r, "id")
	return func(ctx context.Context, in In) (Out, error) {
		return fn(ctx, id, in)
	}
}

func (h *AdminHandler) remove(collection entity.Collection, fn func(context.Context, string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeUseCaseError(w, r, h.Logger, err)
			return
		}
		h.audit(r, collection)
		w.WriteHeader(http.StatusNoContent)
	}
}

// audit logs which admin changed what.
func (h *AdminHandler) audit(r *http.Request, collection entity.Collection) {
	admin, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		return
	}
	h.Logger.InfoContext(r.Context(), "admin change",
		slog.String("admin", admin.Email),
		slog.String("collection", collection.String()),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)
}

func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	write(h, entity.CollectionProducts, http.StatusCreated, h.Products.Create)(w, r)
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	write(h, entity.CollectionProducts, http.StatusOK, withID(r, h.Products.Update))(w, r)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	h.remove(entity.CollectionProducts, h.Products.Delete)(w, r)
}

func (h *AdminHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	write(h, entity.CollectionCategories, http.StatusCreated, h.Categories.Create)(w, r)
}

func (h *AdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	write(h, entity.CollectionCategories, http.StatusOK, withID(r, h.Categories.Update))(w, r)
}

func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	h.remove(entity.CollectionCategories, h.Categories.Delete)(w, r)
}

func (h *AdminHandler) CreateColoringPage(w http.ResponseWriter, r *http.Request) {
	write(h, entity.CollectionColoringPages, http.StatusCreated, h.ColoringPages.Create)(w, r)
}

func (h *AdminHandler) UpdateColoringPage(w http.ResponseWriter, r *http.Request) {
	write(h, entity.CollectionColoringPages, http.StatusOK, withID(r, h.ColoringPages.Update))(w, r)
}

func (h *AdminHandler) DeleteColoringPage(w http.ResponseWriter, r *http.Request) {
	h.remove(entity.CollectionColoringPages, h.ColoringPages.Delete)(w, r)
}

func (h *AdminHandler) CreateBlogPost(w http.ResponseWriter, r *http.Request) {
	write(h, entity.CollectionBlogPosts, http.StatusCreated, h.BlogPosts.Create)(w, r)
}

func (h *AdminHandler) UpdateBlogPost(w http.ResponseWriter, r *http.Request) {
	write(h, entity.CollectionBlogPosts, http.StatusOK, withID(r, h.BlogPosts.Update))(w, r)
}

func (h *AdminHandler) DeleteBlogPost(w http.ResponseWriter, r *http.Request) {
	h.remove(entity.CollectionBlogPosts, h.BlogPosts.Delete)(w, r)
}

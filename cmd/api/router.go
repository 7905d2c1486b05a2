package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/raskraski/storefront/internal/auth"
	"github.com/raskraski/storefront/internal/infra/http/handlers"
	"github.com/raskraski/storefront/internal/infra/http/middleware"
)

type routerDeps struct {
	catalog *handlers.CatalogHandler
	cart    *handlers.CartHandler
	admin   *handlers.AdminHandler
	orders  *handlers.OrderHandler
	export  *handlers.ExportHandler
	health  *handlers.HealthHandler
	limiter *middleware.RateLimiter

	verifier     middleware.Verifier
	policy       auth.Policy
	corsOrigins  []string
	cookieSecure bool
	logger       *slog.Logger
}

func newRouter(d routerDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", d.health.Handle)
	r.Handle("/metrics", promhttp.Handler())

	r.Get("/products", d.catalog.ListProducts)
	r.Get("/products/{slug}", d.catalog.GetProduct)
	r.Get("/categories", d.catalog.ListCategories)
	r.Get("/categories/{slug}", d.catalog.GetCategory)
	r.Get("/coloring-pages", d.catalog.ListColoringPages)
	r.Get("/coloring-pages/{slug}", d.catalog.GetColoringPage)
	r.Post("/coloring-pages/{slug}/download", d.catalog.DownloadColoringPage)
	r.Get("/blog", d.catalog.ListBlogPosts)
	r.Get("/blog/{slug}", d.catalog.GetBlogPost)

	r.Route("/cart", func(r chi.Router) {
		r.Use(middleware.CartSession(d.cookieSecure))
		r.Get("/", d.cart.Get)
		r.Delete("/", d.cart.Clear)
		r.Post("/items", d.cart.AddItem)
		r.Patch("/items/{itemID}", d.cart.UpdateQuantity)
		r.Delete("/items/{itemID}", d.cart.RemoveItem)
		r.With(middleware.Limit(d.limiter)).Post("/checkout", d.cart.HandleCheckout)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdmin(d.verifier, d.policy, d.logger))

		r.Post("/products", d.admin.CreateProduct)
		r.Put("/products/{id}", d.admin.UpdateProduct)
		r.Delete("/products/{id}", d.admin.DeleteProduct)
		r.Get("/products/export", d.export.ExportProducts)

		r.Post("/categories", d.admin.CreateCategory)
		r.Put("/categories/{id}", d.admin.UpdateCategory)
		r.Delete("/categories/{id}", d.admin.DeleteCategory)

		r.Post("/coloring-pages", d.admin.CreateColoringPage)
		r.Put("/coloring-pages/{id}", d.admin.UpdateColoringPage)
		r.Delete("/coloring-pages/{id}", d.admin.DeleteColoringPage)

		r.Get("/blog", d.catalog.ListAllBlogPosts)
		r.Get("/blog/{slug}", d.catalog.GetBlogPostDraft)
		r.Post("/blog", d.admin.CreateBlogPost)
		r.Put("/blog/{id}", d.admin.UpdateBlogPost)
		r.Delete("/blog/{id}", d.admin.DeleteBlogPost)

		r.Get("/orders", d.orders.List)
		r.Get("/orders/{id}", d.orders.Get)
		r.Patch("/orders/{id}/status", d.orders.UpdateStatus)
	})

	return r
}

package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/raskraski/storefront/internal/cart"
	"github.com/raskraski/storefront/internal/entity"
	"github.com/raskraski/storefront/internal/infra/http/middleware"
	"github.com/raskraski/storefront/internal/usecase"
)

// SessionStore hands out the cart storage of one session.
type SessionStore interface {
	ForSession(sessionID string) cart.Storage
}

type ProductFinder interface {
	FindByID(ctx context.Context, id string) (*entity.Product, error)
}

type CartHandler struct {
	Sessions SessionStore
	Products ProductFinder
	Checkout *usecase.CheckoutUseCase
	Logger   *slog.Logger
}

func NewCartHandler(sessions SessionStore, products ProductFinder, checkout *usecase.CheckoutUseCase, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		Sessions: sessions,
		Products: products,
		Checkout: checkout,
		Logger:   logger,
	}
}

type AddItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type CartResponse struct {
	Items      []cart.Item     `json:"items"`
	TotalItems int             `json:"total_items"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

func (h *CartHandler) load(r *http.Request) *cart.Cart {
	sessionID := middleware.SessionID(r.Context())
	return cart.New(r.Context(), h.Sessions.ForSession(sessionID), h.Logger.With(slog.String("session_id", sessionID)))
}

func (h *CartHandler) respond(w http.ResponseWriter, status int, c *cart.Cart) {
	writeJSON(w, status, CartResponse{
		Items:      c.Items(),
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
	})
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK, h.load(r))
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ProductID == "" {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, "product_id is required")
		return
	}

	product, err := h.Products.FindByID(r.Context(), req.ProductID)
	if err != nil {
		writeUseCaseError(w, r, h.Logger, err)
		return
	}
	if !product.InStock {
		writeErrorResponse(w, http.StatusConflict, "OUT_OF_STOCK", "product is out of stock")
		return
	}

	c := h.load(r)
	c.AddItem(r.Context(), cart.Product{
		ID:            product.ID,
		Name:          product.Name,
		Slug:          product.Slug,
		ImageURL:      product.ImageURL,
		Price:         product.Price,
		DiscountPrice: product.DiscountPrice,
	}, req.Quantity)
	middleware.RecordCartMutation("add")

	h.respond(w, http.StatusOK, c)
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c := h.load(r)
	itemID := chi.URLParam(r, "itemID")
	if _, ok := c.Item(itemID); !ok {
		writeErrorResponse(w, http.StatusNotFound, usecase.CodeNotFound, "cart item not found")
		return
	}

	c.UpdateQuantity(r.Context(), itemID, req.Quantity)
	middleware.RecordCartMutation("update")

	h.respond(w, http.StatusOK, c)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	c := h.load(r)
	c.RemoveItem(r.Context(), chi.URLParam(r, "itemID"))
	middleware.RecordCartMutation("remove")

	h.respond(w, http.StatusOK, c)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	c := h.load(r)
	c.Clear(r.Context())
	middleware.RecordCartMutation("clear")

	h.respond(w, http.StatusOK, c)
}

func (h *CartHandler) HandleCheckout(w http.ResponseWriter, r *http.Request) {
	var input usecase.CheckoutInput
	if !decodeJSON(w, r, &input) {
		return
	}
	input.SessionID = middleware.SessionID(r.Context())

	output, err := h.Checkout.Execute(r.Context(), input, h.load(r))
	if err != nil {
		writeUseCaseError(w, r, h.Logger, err)
		return
	}
	middleware.RecordOrderPlaced()

	writeJSON(w, http.StatusCreated, output)
}

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/raskraski/storefront/internal/entity"
	"github.com/raskraski/storefront/internal/infra/database"
	"github.com/raskraski/storefront/internal/usecase"
)

type OrderStore interface {
	List(ctx context.Context, status string, page database.Page) ([]entity.Order, error)
	FindByID(ctx context.Context, id string) (*entity.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
}

type OrderHandler struct {
	Orders OrderStore
	Logger *slog.Logger
}

func NewOrderHandler(orders OrderStore, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{Orders: orders, Logger: logger}
}

func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	status := strings.ToUpper(r.URL.Query().Get("status"))
	if status != "" && !entity.ValidOrderStatus(status) {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, entity.ErrInvalidOrderStatus.Error())
		return
	}

	orders, err := h.Orders.List(r.Context(), status, pageFromQuery(r))
	if err != nil {
		writeUseCaseError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeUseCaseError(w, r, h.Logger, err)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status string `json:"status"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	id := chi.URLParam(r, "id")
	err := h.Orders.UpdateStatus(r.Context(), id, strings.ToUpper(req.Status))
	if errors.Is(err, entity.ErrInvalidOrderStatus) {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, err.Error())
		return
	}
	if err != nil {
		writeUseCaseError(w, r, h.Logger, err)
		return
	}

	h.Logger.InfoContext(r.Context(), "order status changed",
		slog.String("order_id", id),
		slog.String("status", strings.ToUpper(req.Status)),
	)
	w.WriteHeader(http.StatusNoContent)
}

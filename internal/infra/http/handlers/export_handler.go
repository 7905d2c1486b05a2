package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/tealeg/xlsx"

	"github.com/raskraski/storefront/internal/entity"
)

type ProductLister interface {
	ListAll(ctx context.Context) ([]entity.Product, error)
}

type ExportHandler struct {
	Products ProductLister
	Logger   *slog.Logger
}

func NewExportHandler(products ProductLister, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{Products: products, Logger: logger}
}

var productExportHeaders = []string{
	"ID", "Name", "Slug", "Price", "DiscountPrice", "InStock", "CategoryID", "ImageURL", "CreatedAt", "UpdatedAt",
}

func (h *ExportHandler) ExportProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Products.ListAll(r.Context())
	if err != nil {
		writeUseCaseError(w, r, h.Logger, err)
		return
	}

	file, err := buildProductWorkbook(products)
	if err != nil {
		writeUseCaseError(w, r, h.Logger, err)
		return
	}

	w.Header().Set("Content-Disposition", "attachment; filename=products.xlsx")
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := file.Write(w); err != nil {
		h.Logger.ErrorContext(r.Context(), "failed to write product export", slog.Any("error", err))
	}
}

func buildProductWorkbook(products []entity.Product) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return nil, err
	}

	header := sheet.AddRow()
	for _, name := range productExportHeaders {
		header.AddCell().SetValue(name)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.Slug)
		row.AddCell().SetValue(p.Price.StringFixed(2))

		discount := ""
		if p.DiscountPrice != nil {
			discount = p.DiscountPrice.StringFixed(2)
		}
		row.AddCell().SetValue(discount)
		row.AddCell().SetValue(p.InStock)

		categoryID := ""
		if p.CategoryID != nil {
			categoryID = *p.CategoryID
		}
		row.AddCell().SetValue(categoryID)
		row.AddCell().SetValue(p.ImageURL)
		row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetValue(p.UpdatedAt.Format("2006-01-02 15:04:05"))
	}

	return file, nil
}

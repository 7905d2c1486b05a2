package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/raskraski/storefront/internal/entity"
	"github.com/raskraski/storefront/internal/infra/database"
	"github.com/raskraski/storefront/internal/usecase"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: code, Message: message})
}

// writeUseCaseError maps the use case error kinds onto HTTP statuses.
func writeUseCaseError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	var de *usecase.DomainError
	if errors.As(err, &de) {
		writeErrorResponse(w, domainStatus(de.Code), de.Code, de.Message)
		return
	}

	var te *usecase.TechnicalError
	if errors.As(err, &te) {
		logger.ErrorContext(r.Context(), "request failed",
			slog.String("code", te.Code),
			slog.String("path", r.URL.Path),
			slog.Any("error", te.Err),
		)
		if te.Code == usecase.CodeUniquenessCheckFailed {
			writeErrorResponse(w, http.StatusServiceUnavailable, te.Code, te.Message)
			return
		}
		writeErrorResponse(w, http.StatusInternalServerError, te.Code, te.Message)
		return
	}

	if errors.Is(err, entity.ErrNotFound) {
		writeErrorResponse(w, http.StatusNotFound, usecase.CodeNotFound, err.Error())
		return
	}
	if errors.Is(err, entity.ErrInvalidReference) {
		writeErrorResponse(w, http.StatusBadRequest, usecase.CodeValidation, err.Error())
		return
	}

	logger.ErrorContext(r.Context(), "unexpected error",
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	writeErrorResponse(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

func domainStatus(code string) int {
	switch code {
	case usecase.CodeNotFound:
		return http.StatusNotFound
	case usecase.CodeSlugConflict, usecase.CodeSlugRetriesExhausted:
		return http.StatusConflict
	default:
		return http.StatusBadRequest
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

// pageFromQuery reads limit and offset; bad values fall back to defaults.
func pageFromQuery(r *http.Request) database.Page {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	return database.NewPage(limit, offset)
}

func slugOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, usecase.ErrSlugRetriesExhausted):
		return "exhausted"
	case errors.Is(err, usecase.ErrUniquenessCheckFailed):
		return "check_failed"
	case errors.Is(err, usecase.ErrSlugConflict):
		return "conflict"
	case errors.Is(err, usecase.ErrEmptySlug):
		return "empty"
	default:
		return "error"
	}
}

package usecase

import (
	"errors"
	"fmt"

	"github.com/raskraski/storefront/internal/entity"
)

// Error codes exposed to API clients.
const (
	CodeValidation            = "VALIDATION_ERROR"
	CodeNotFound              = "NOT_FOUND"
	CodeSlugConflict          = "SLUG_CONFLICT"
	CodeSlugRetriesExhausted  = "SLUG_RETRIES_EXHAUSTED"
	CodeUniquenessCheckFailed = "UNIQUENESS_CHECK_FAILED"
	CodeEmptyCart             = "EMPTY_CART"
	CodeDatabase              = "DATABASE_ERROR"
)

var (
	ErrEmptySlug             = errors.New("slug is empty after normalization")
	ErrUnknownCollection     = errors.New("unknown slug collection")
	ErrMalformedSlug         = errors.New("slug must be lowercase latin letters, digits and single hyphens")
	ErrUniquenessCheckFailed = errors.New("could not verify slug uniqueness, try again")
	ErrSlugRetriesExhausted  = errors.New("exhausted retries while allocating a unique slug")
	ErrEmptyCart             = errors.New("cart is empty")
	ErrSlugConflict          = errors.New("slug was taken by a concurrent write, try again")
	ErrInvalidDifficulty     = errors.New("difficulty must be easy, medium or hard")
)

// DomainError is a failure the caller can fix: bad input, a conflict, a
// missing record.
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError is a failure of a backing service.
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

func validationError(err error) *DomainError {
	return &DomainError{Code: CodeValidation, Message: err.Error(), Err: err}
}

// repositoryError translates repository failures into the error kinds the
// HTTP layer understands.
func repositoryError(action string, err error) error {
	switch {
	case errors.Is(err, entity.ErrDuplicateSlug):
		return &DomainError{
			Code:    CodeSlugConflict,
			Message: ErrSlugConflict.Error(),
			Err:     fmt.Errorf("%w: %w", ErrSlugConflict, err),
		}
	case errors.Is(err, entity.ErrNotFound):
		return &DomainError{Code: CodeNotFound, Message: err.Error(), Err: err}
	case errors.Is(err, entity.ErrInvalidReference):
		return validationError(err)
	default:
		return &TechnicalError{
			Code:    CodeDatabase,
			Message: "failed to " + action,
			Err:     err,
		}
	}
}

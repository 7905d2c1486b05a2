package database

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/raskraski/storefront/internal/entity"
)

const (
	uniqueViolation           = "23505"
	foreignKeyViolation       = "23503"
	invalidTextRepresentation = "22P02"
)

// mapWriteError translates the Postgres errors a client can cause.
// Only violations of a <table>_slug_key index count as slug conflicts.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case uniqueViolation:
		if strings.HasSuffix(pgErr.ConstraintName, "_slug_key") {
			return entity.ErrDuplicateSlug
		}
	case foreignKeyViolation, invalidTextRepresentation:
		return entity.ErrInvalidReference
	}
	return err
}

// validID reports whether id can be compared against a UUID column.
// Anything else cannot match a row.
func validID(id string) bool {
	return uuid.Validate(id) == nil
}

// validReference accepts an unset optional foreign key or a well-formed one.
func validReference(id *string) bool {
	return id == nil || validID(*id)
}

// expectOneRow reports entity.ErrNotFound when an UPDATE or DELETE matched nothing.
func expectOneRow(res interface{ RowsAffected() (int64, error) }, err error) error {
	if err != nil {
		return mapWriteError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return entity.ErrNotFound
	}
	return nil
}

// Page is a clamped limit/offset pair.
type Page struct {
	Limit  int
	Offset int
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

func NewPage(limit, offset int) Page {
	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	if offset < 0 {
		offset = 0
	}
	return Page{Limit: limit, Offset: offset}
}

package entity

import "errors"

var (
	ErrNotFound      = errors.New("record not found")
	ErrNameRequired  = errors.New("name is required")
	ErrTitleRequired = errors.New("title is required")
	ErrInvalidPrice  = errors.New("price must be greater than zero")
)

// ErrDuplicateSlug is returned by repositories when an insert or update hits
// the per-table unique slug index.
var ErrDuplicateSlug = errors.New("slug already taken")

// ErrInvalidReference is returned when a write names a related record, such as
// a category, that does not exist or whose id is malformed.
var ErrInvalidReference = errors.New("referenced record does not exist")

package services

import (
	"errors"

	"github.com/marhild/booksmanager/internal/database/books"
)

// ErrNotFound is returned when a lookup by id matches no entity. It
// replaces gorm's sentinel at the service boundary so callers do not
// depend on the persistence layer.
var ErrNotFound = errors.New("entity not found")

// Domain-constraint errors surfaced from the association layer. They are
// distinguishable from plain validation failures and map to client errors
// at the HTTP boundary.
var (
	ErrLastCategory  = books.ErrLastCategory
	ErrNotInCategory = books.ErrNotInCategory
)

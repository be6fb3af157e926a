package books

import (
	"github.com/goliatone/go-errors"
)

// ErrDuplicateISBN is returned when creation hits an existing ISBN.
var ErrDuplicateISBN = errors.New("A book with this ISBN already exists", errors.CategoryConflict).
	WithTextCode("DUPLICATE_ISBN")

// ErrBookNotFound is returned by lookups with no match.
var ErrBookNotFound = errors.New("Book not found", errors.CategoryNotFound).
	WithTextCode("BOOK_NOT_FOUND")

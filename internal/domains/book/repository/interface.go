package repository

import (
	"context"

	"bookstore-web/internal/domains/book/model"

	"github.com/google/uuid"
)

// RepositoryInterface is the data-access contract for the books table.
type RepositoryInterface interface {
	// List returns books ordered by identifier ascending.
	List(ctx context.Context, filter model.ListFilter) ([]model.Book, error)

	// GetByID returns one book or model.ErrBookNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error)

	// Insert stores a new book and returns the row with its
	// server-assigned identifier.
	Insert(ctx context.Context, b model.Book) (*model.Book, error)

	// Update applies the supplied form fields to the row matched by id
	// and returns the merged row, or model.ErrBookNotFound.
	Update(ctx context.Context, id uuid.UUID, form model.BookForm) (*model.Book, error)

	// Delete removes the row matched by id, or model.ErrBookNotFound.
	Delete(ctx context.Context, id uuid.UUID) error
}

package service

import (
	"context"

	"bookstore-web/internal/domains/book/model"
)

// CatalogServiceInterface serves the customer-facing catalog reads.
type CatalogServiceInterface interface {
	List(ctx context.Context) ([]model.Book, error)
	Bestsellers(ctx context.Context, limit int) ([]model.Book, error)
	GetBook(ctx context.Context, id string) (*model.Book, error)
	CategoryCounts(ctx context.Context) ([]model.CategoryCount, error)
}

// CoverUpload is an image file submitted alongside a create/update.
type CoverUpload struct {
	Filename    string
	Content     []byte
	ContentType string
}

// AdminServiceInterface is the mutation relay behind the admin console.
type AdminServiceInterface interface {
	ListAll(ctx context.Context) ([]model.Book, error)
	Create(ctx context.Context, form model.BookForm, cover *CoverUpload) (*model.Book, error)
	Update(ctx context.Context, id string, form model.BookForm, cover *CoverUpload) (*model.Book, error)
	Delete(ctx context.Context, id string, confirmed bool) error
	SupportsImageUpload() bool
}

// CoverStorage is the object-storage contract used for cover images.
// Satisfied by storage.MinIOStorage.
type CoverStorage interface {
	ObjectKey(filename string) string
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

package service

import (
	"context"

	"bookstore-web/internal/domains/book/model"
	"bookstore-web/internal/domains/book/repository"
	"bookstore-web/pkg/logger"

	"github.com/google/uuid"
)

// AdminService - the mutation relay for the admin console. Every
// operation is a single synchronous request to the backing store; no
// retries, no rollback across upload + table write.
type AdminService struct {
	repo           repository.RepositoryInterface
	storage        CoverStorage
	supportsUpload bool
}

// NewAdminService - Constructor with DI. supportsUpload is the
// capability flag that selects between the plain and the
// upload-enabled product-management surface.
func NewAdminService(repo repository.RepositoryInterface, storage CoverStorage, supportsUpload bool) AdminServiceInterface {
	return &AdminService{
		repo:           repo,
		storage:        storage,
		supportsUpload: supportsUpload,
	}
}

func (s *AdminService) SupportsImageUpload() bool {
	return s.supportsUpload
}

// ListAll returns the catalog for the management table, same order as
// the storefront.
func (s *AdminService) ListAll(ctx context.Context) ([]model.Book, error) {
	return s.repo.List(ctx, model.ListFilter{})
}

// Create validates the form, uploads the cover first when one was
// submitted, then inserts. An upload failure aborts the create before
// any table write so no record ever references a missing image.
func (s *AdminService) Create(ctx context.Context, form model.BookForm, cover *CoverUpload) (*model.Book, error) {
	if cover != nil {
		url, err := s.uploadCover(ctx, cover)
		if err != nil {
			return nil, err
		}
		form.Image = &url
	}

	book, err := form.NewBook()
	if err != nil {
		return nil, err
	}

	created, err := s.repo.Insert(ctx, book)
	if err != nil {
		if cover != nil {
			// The uploaded object is now orphaned; it is not cleaned up.
			logger.Warn("cover uploaded but insert failed", map[string]interface{}{
				"image": *form.Image,
			})
		}
		return nil, err
	}
	return created, nil
}

// Update coerces and validates the partial form, uploads a replacement
// cover first when one was submitted, then updates the matched row.
func (s *AdminService) Update(ctx context.Context, id string, form model.BookForm, cover *CoverUpload) (*model.Book, error) {
	bookID, err := uuid.Parse(id)
	if err != nil {
		return nil, model.ErrInvalidBookID
	}

	if err := form.Validate(); err != nil {
		return nil, err
	}

	if cover != nil {
		url, err := s.uploadCover(ctx, cover)
		if err != nil {
			return nil, err
		}
		form.Image = &url
	}

	updated, err := s.repo.Update(ctx, bookID, form)
	if err != nil {
		if cover != nil {
			logger.Warn("cover uploaded but update failed", map[string]interface{}{
				"book_id": id,
				"image":   *form.Image,
			})
		}
		return nil, err
	}
	return updated, nil
}

// Delete requires an explicit confirmation before anything is issued
// to the backing store.
func (s *AdminService) Delete(ctx context.Context, id string, confirmed bool) error {
	if !confirmed {
		return model.ErrDeleteNotConfirmed
	}

	bookID, err := uuid.Parse(id)
	if err != nil {
		return model.ErrInvalidBookID
	}

	return s.repo.Delete(ctx, bookID)
}

func (s *AdminService) uploadCover(ctx context.Context, cover *CoverUpload) (string, error) {
	if !s.supportsUpload {
		return "", model.ErrUploadNotSupported
	}

	key := s.storage.ObjectKey(cover.Filename)
	url, err := s.storage.Upload(ctx, key, cover.Content, cover.ContentType)
	if err != nil {
		return "", model.NewRequestError("upload", err)
	}
	return url, nil
}

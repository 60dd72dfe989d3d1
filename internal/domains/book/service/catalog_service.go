package service

import (
	"context"

	"bookstore-web/internal/domains/book/model"
	"bookstore-web/internal/domains/book/repository"

	"github.com/google/uuid"
)

// CatalogService - storefront reads over the books table.
type CatalogService struct {
	repo repository.RepositoryInterface
}

// NewCatalogService - Constructor with DI
func NewCatalogService(repo repository.RepositoryInterface) CatalogServiceInterface {
	return &CatalogService{repo: repo}
}

// List returns the full catalog in identifier order.
func (s *CatalogService) List(ctx context.Context) ([]model.Book, error) {
	return s.repo.List(ctx, model.ListFilter{})
}

// Bestsellers returns the bestseller-flagged subset, typically capped
// at the landing page's four cards.
func (s *CatalogService) Bestsellers(ctx context.Context, limit int) ([]model.Book, error) {
	return s.repo.List(ctx, model.ListFilter{BestsellerOnly: true, Limit: limit})
}

// GetBook returns one book for the detail page. An unparseable id is a
// not-found case for the caller, not a collaborator failure.
func (s *CatalogService) GetBook(ctx context.Context, id string) (*model.Book, error) {
	bookID, err := uuid.Parse(id)
	if err != nil {
		return nil, model.ErrInvalidBookID
	}
	return s.repo.GetByID(ctx, bookID)
}

// CategoryCounts fetches the catalog and aggregates it in memory, the
// same sequence grouping the landing page renders.
func (s *CatalogService) CategoryCounts(ctx context.Context) ([]model.CategoryCount, error) {
	books, err := s.repo.List(ctx, model.ListFilter{})
	if err != nil {
		return nil, err
	}
	return model.CountByCategory(books), nil
}

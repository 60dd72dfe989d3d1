package view

import (
	"context"

	"bookstore-web/internal/domains/book/model"
	"bookstore-web/pkg/logger"
)

// Fetcher is the catalog read the view depends on. Satisfied by the
// book repository.
type Fetcher interface {
	List(ctx context.Context, filter model.ListFilter) ([]model.Book, error)
}

// Mode selects the storefront rendering layout.
type Mode string

const (
	ModeGrid Mode = "grid"
	ModeList Mode = "list"
)

func (m Mode) IsValid() bool {
	return m == ModeGrid || m == ModeList
}

// SortKey is the storefront sort selector. The selection is held as
// page state but the rendered sequence keeps fetch order.
type SortKey string

const (
	SortPopularity SortKey = "popularity"
	SortPriceAsc   SortKey = "price-asc"
	SortPriceDesc  SortKey = "price-desc"
	SortRating     SortKey = "rating"
	SortNewest     SortKey = "newest"
)

func (k SortKey) IsValid() bool {
	switch k {
	case SortPopularity, SortPriceAsc, SortPriceDesc, SortRating, SortNewest:
		return true
	}
	return false
}

// CatalogView owns the state of one catalog page session: the fetched
// sequence, the filter selection and the loading flag. Each page load
// constructs its own view; there is no shared module-level state.
//
// Lifecycle is loading -> loaded, terminal per session. Selection
// changes after Load are synchronous local mutations that re-run the
// pure filter stage without refetching.
type CatalogView struct {
	fetcher Fetcher

	books    []model.Book
	loading  bool
	criteria model.Criteria
	sortKey  SortKey
	mode     Mode
}

// NewCatalogView creates a view seeded with the q query parameter.
func NewCatalogView(fetcher Fetcher, searchTerm string) *CatalogView {
	return &CatalogView{
		fetcher:  fetcher,
		loading:  true,
		criteria: model.Criteria{SearchTerm: searchTerm},
		sortKey:  SortPopularity,
		mode:     ModeGrid,
	}
}

// Load fetches the catalog exactly once. On failure the sequence is
// left empty and the loading flag is still cleared so the view never
// sticks in a half-loaded state. The error is returned for logging;
// the view itself stays usable.
func (v *CatalogView) Load(ctx context.Context) error {
	v.loading = true

	books, err := v.fetcher.List(ctx, model.ListFilter{})
	if err != nil {
		logger.Error("catalog fetch failed", err)
		v.books = []model.Book{}
		v.loading = false
		return err
	}

	v.books = books
	v.loading = false
	return nil
}

// Loading reports whether the initial fetch has settled.
func (v *CatalogView) Loading() bool {
	return v.loading
}

// Books returns the full fetched sequence in fetch order.
func (v *CatalogView) Books() []model.Book {
	return v.books
}

// Visible re-derives the filtered sequence from the held books.
func (v *CatalogView) Visible() []model.Book {
	return model.Filter(v.books, v.criteria)
}

// CategoryCounts aggregates the full fetched sequence, not the
// filtered one, so sidebar totals stay stable while filtering.
func (v *CatalogView) CategoryCounts() []model.CategoryCount {
	return model.CountByCategory(v.books)
}

// Categories lists the distinct categories available for selection.
func (v *CatalogView) Categories() []string {
	return model.UniqueCategories(v.books)
}

// ToggleCategory adds or removes a category from the selected set.
func (v *CatalogView) ToggleCategory(name string) {
	for i, c := range v.criteria.Categories {
		if c == name {
			v.criteria.Categories = append(v.criteria.Categories[:i], v.criteria.Categories[i+1:]...)
			return
		}
	}
	v.criteria.Categories = append(v.criteria.Categories, name)
}

// SelectCategories replaces the selected set wholesale.
func (v *CatalogView) SelectCategories(names []string) {
	v.criteria.Categories = names
}

// SetPriceRange selects a price bucket. Unrecognized values are kept
// as-is; the filter stage treats them as no constraint.
func (v *CatalogView) SetPriceRange(bucket string) {
	v.criteria.PriceRange = bucket
}

// SetSearchTerm replaces the free-text search term.
func (v *CatalogView) SetSearchTerm(q string) {
	v.criteria.SearchTerm = q
}

// SetSortKey stores the sort selection. Invalid keys are ignored.
func (v *CatalogView) SetSortKey(k SortKey) {
	if k.IsValid() {
		v.sortKey = k
	}
}

// SortKey returns the held sort selection.
func (v *CatalogView) SortKey() SortKey {
	return v.sortKey
}

// SetViewMode stores the layout selection. Invalid modes are ignored.
func (v *CatalogView) SetViewMode(m Mode) {
	if m.IsValid() {
		v.mode = m
	}
}

// ViewMode returns the held layout selection.
func (v *CatalogView) ViewMode() Mode {
	return v.mode
}

// Criteria returns the current filter selection.
func (v *CatalogView) Criteria() model.Criteria {
	return v.criteria
}

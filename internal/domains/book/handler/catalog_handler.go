package handler

import (
	"errors"
	"net/http"
	"strconv"

	"bookstore-web/internal/domains/book/model"
	"bookstore-web/internal/domains/book/service"
	"bookstore-web/internal/domains/book/view"
	"bookstore-web/internal/shared/response"
	"bookstore-web/internal/shared/utils"
	"bookstore-web/pkg/logger"

	"github.com/gin-gonic/gin"
)

// CatalogHandler - storefront endpoints
type CatalogHandler struct {
	fetcher view.Fetcher
	service service.CatalogServiceInterface
}

// NewCatalogHandler - Constructor with DI
func NewCatalogHandler(fetcher view.Fetcher, svc service.CatalogServiceInterface) *CatalogHandler {
	return &CatalogHandler{
		fetcher: fetcher,
		service: svc,
	}
}

// catalogPage is the rendered state of one catalog page session.
type catalogPage struct {
	Books          []model.Book          `json:"books"`
	Total          int                   `json:"total"`
	Showing        int                   `json:"showing"`
	Categories     []string              `json:"categories"`
	CategoryCounts []model.CategoryCount `json:"category_counts"`
	SortBy         view.SortKey          `json:"sort_by"`
	ViewMode       view.Mode             `json:"view_mode"`
}

// ListBooks - GET /v1/books
// Query params: q, category (repeatable), price_range, sort, view
//
// Each request builds its own catalog view: load the full catalog once,
// apply the selection, return the visible sequence. A fetch failure
// yields an empty, settled page rather than an error page.
func (h *CatalogHandler) ListBooks(c *gin.Context) {
	v := view.NewCatalogView(h.fetcher, c.Query("q"))

	v.SelectCategories(c.QueryArray("category"))
	v.SetPriceRange(c.Query("price_range"))
	v.SetSortKey(view.SortKey(c.Query("sort")))
	v.SetViewMode(view.Mode(c.Query("view")))

	if err := v.Load(c.Request.Context()); err != nil {
		logger.Error("catalog page load failed", err)
	}

	visible := v.Visible()
	page := catalogPage{
		Books:          visible,
		Total:          len(v.Books()),
		Showing:        len(visible),
		Categories:     v.Categories(),
		CategoryCounts: v.CategoryCounts(),
		SortBy:         v.SortKey(),
		ViewMode:       v.ViewMode(),
	}

	response.SuccessWithMeta(c, http.StatusOK, page, &response.Meta{
		Total:   page.Total,
		Showing: page.Showing,
	})
}

// GetBookDetail - GET /v1/books/:id
func (h *CatalogHandler) GetBookDetail(c *gin.Context) {
	book, err := h.service.GetBook(c.Request.Context(), c.Param("id"))
	if err != nil {
		// A missing or malformed id is a plain not-found page.
		if errors.Is(err, model.ErrBookNotFound) || errors.Is(err, model.ErrInvalidBookID) {
			response.NotFound(c, "book not found")
			return
		}
		logger.Error("get book detail failed", err)
		response.InternalServerError(c, "failed to load book")
		return
	}

	response.Success(c, http.StatusOK, book)
}

// ListBestsellers - GET /v1/books/bestsellers
func (h *CatalogHandler) ListBestsellers(c *gin.Context) {
	limit := 4
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	books, err := h.service.Bestsellers(c.Request.Context(), limit)
	if err != nil {
		logger.Error("bestsellers fetch failed", err)
		response.InternalServerError(c, "failed to load bestsellers")
		return
	}

	response.Success(c, http.StatusOK, books)
}

type categoryEntry struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
}

// ListCategories - GET /v1/categories
func (h *CatalogHandler) ListCategories(c *gin.Context) {
	counts, err := h.service.CategoryCounts(c.Request.Context())
	if err != nil {
		logger.Error("category counts fetch failed", err)
		response.InternalServerError(c, "failed to load categories")
		return
	}

	entries := make([]categoryEntry, 0, len(counts))
	for _, cc := range counts {
		entries = append(entries, categoryEntry{
			Name:  cc.Name,
			Slug:  utils.GenerateSlug(cc.Name),
			Count: cc.Count,
		})
	}

	response.Success(c, http.StatusOK, entries)
}

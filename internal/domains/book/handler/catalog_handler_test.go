package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookstore-web/internal/domains/book/model"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	books []model.Book
	err   error
}

func (f *fakeFetcher) List(ctx context.Context, filter model.ListFilter) ([]model.Book, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.books, nil
}

type fakeCatalogService struct {
	books []model.Book
	err   error
}

func (s *fakeCatalogService) List(ctx context.Context) ([]model.Book, error) {
	return s.books, s.err
}

func (s *fakeCatalogService) Bestsellers(ctx context.Context, limit int) ([]model.Book, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := []model.Book{}
	for _, b := range s.books {
		if !b.Bestseller {
			continue
		}
		out = append(out, b)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *fakeCatalogService) GetBook(ctx context.Context, id string) (*model.Book, error) {
	if s.err != nil {
		return nil, s.err
	}
	bookID, err := uuid.Parse(id)
	if err != nil {
		return nil, model.ErrInvalidBookID
	}
	for i := range s.books {
		if s.books[i].ID == bookID {
			return &s.books[i], nil
		}
	}
	return nil, model.ErrBookNotFound
}

func (s *fakeCatalogService) CategoryCounts(ctx context.Context) ([]model.CategoryCount, error) {
	if s.err != nil {
		return nil, s.err
	}
	return model.CountByCategory(s.books), nil
}

func shelfFixture() []model.Book {
	return []model.Book{
		{ID: uuid.New(), Title: "Dune", Category: "Science Fiction", Price: decimal.NewFromInt(12), Bestseller: true},
		{ID: uuid.New(), Title: "Hyperion", Category: "Science Fiction", Price: decimal.NewFromInt(55)},
		{ID: uuid.New(), Title: "Clean Architecture", Category: "Programming", Price: decimal.NewFromInt(32), Bestseller: true},
	}
}

func newCatalogRouter(books []model.Book, fetchErr error) *gin.Engine {
	gin.SetMode(gin.TestMode)

	h := NewCatalogHandler(
		&fakeFetcher{books: books, err: fetchErr},
		&fakeCatalogService{books: books, err: fetchErr},
	)

	router := gin.New()
	router.GET("/books", h.ListBooks)
	router.GET("/books/bestsellers", h.ListBestsellers)
	router.GET("/books/:id", h.GetBookDetail)
	router.GET("/categories", h.ListCategories)
	return router
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestListBooks(t *testing.T) {
	router := newCatalogRouter(shelfFixture(), nil)

	t.Run("no filters returns everything", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books", nil))

		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		data := body["data"].(map[string]interface{})
		assert.Len(t, data["books"], 3)
		assert.Equal(t, float64(3), data["total"])
		assert.Equal(t, float64(3), data["showing"])
	})

	t.Run("filters narrow the visible sequence but not the total", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books?category=Science+Fiction&price_range=0-15", nil))

		require.Equal(t, http.StatusOK, w.Code)
		data := decodeBody(t, w)["data"].(map[string]interface{})
		assert.Len(t, data["books"], 1)
		assert.Equal(t, float64(3), data["total"])
		assert.Equal(t, float64(1), data["showing"])
	})

	t.Run("search via q param", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books?q=dune", nil))

		data := decodeBody(t, w)["data"].(map[string]interface{})
		books := data["books"].([]interface{})
		require.Len(t, books, 1)
		assert.Equal(t, "Dune", books[0].(map[string]interface{})["title"])
	})

	t.Run("sort selection is echoed but order keeps fetch order", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books?sort=price-desc", nil))

		data := decodeBody(t, w)["data"].(map[string]interface{})
		assert.Equal(t, "price-desc", data["sort_by"])

		books := data["books"].([]interface{})
		require.Len(t, books, 3)
		assert.Equal(t, "Dune", books[0].(map[string]interface{})["title"])
	})

	t.Run("fetch failure yields an empty settled page", func(t *testing.T) {
		broken := newCatalogRouter(nil, errors.New("connection refused"))

		w := httptest.NewRecorder()
		broken.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books", nil))

		require.Equal(t, http.StatusOK, w.Code)
		data := decodeBody(t, w)["data"].(map[string]interface{})
		assert.Len(t, data["books"], 0)
		assert.Equal(t, float64(0), data["total"])
	})
}

func TestGetBookDetail(t *testing.T) {
	books := shelfFixture()
	router := newCatalogRouter(books, nil)

	t.Run("found", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books/"+books[0].ID.String(), nil))

		require.Equal(t, http.StatusOK, w.Code)
		data := decodeBody(t, w)["data"].(map[string]interface{})
		assert.Equal(t, "Dune", data["title"])
	})

	t.Run("unknown id is a 404", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books/"+uuid.NewString(), nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("malformed id is a 404 too", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books/shelf-42", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListBestsellers(t *testing.T) {
	router := newCatalogRouter(shelfFixture(), nil)

	t.Run("default limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books/bestsellers", nil))

		require.Equal(t, http.StatusOK, w.Code)
		data := decodeBody(t, w)["data"].([]interface{})
		assert.Len(t, data, 2)
	})

	t.Run("explicit limit", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books/bestsellers?limit=1", nil))

		data := decodeBody(t, w)["data"].([]interface{})
		assert.Len(t, data, 1)
	})
}

func TestListCategories(t *testing.T) {
	router := newCatalogRouter(shelfFixture(), nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/categories", nil))

	require.Equal(t, http.StatusOK, w.Code)
	data := decodeBody(t, w)["data"].([]interface{})
	require.Len(t, data, 2)

	first := data[0].(map[string]interface{})
	assert.Equal(t, "Science Fiction", first["name"])
	assert.Equal(t, "science-fiction", first["slug"])
	assert.Equal(t, float64(2), first["count"])
}

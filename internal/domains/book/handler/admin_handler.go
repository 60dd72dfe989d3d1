package handler

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"bookstore-web/internal/domains/book/model"
	"bookstore-web/internal/domains/book/service"
	"bookstore-web/internal/shared/response"
	"bookstore-web/pkg/logger"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// maxCoverSize caps cover uploads at 5 MB.
const maxCoverSize = 5 << 20

// AdminHandler - product management endpoints
type AdminHandler struct {
	service service.AdminServiceInterface
}

// NewAdminHandler - Constructor with DI
func NewAdminHandler(svc service.AdminServiceInterface) *AdminHandler {
	return &AdminHandler{service: svc}
}

// ListBooks - GET /v1/admin/books
func (h *AdminHandler) ListBooks(c *gin.Context) {
	books, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		logger.Error("admin list books failed", err)
		response.InternalServerError(c, "failed to load books")
		return
	}

	response.Success(c, http.StatusOK, books)
}

// CreateBook - POST /v1/admin/books
// Accepts JSON, or multipart/form-data when a cover file is attached.
func (h *AdminHandler) CreateBook(c *gin.Context) {
	form, cover, err := h.parseForm(c)
	if err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), form, cover)
	if err != nil {
		h.handleMutationError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, created)
}

// UpdateBook - PUT /v1/admin/books/:id
func (h *AdminHandler) UpdateBook(c *gin.Context) {
	form, cover, err := h.parseForm(c)
	if err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}

	updated, err := h.service.Update(c.Request.Context(), c.Param("id"), form, cover)
	if err != nil {
		h.handleMutationError(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated)
}

// DeleteBook - DELETE /v1/admin/books/:id?confirm=true
// The confirmation step is explicit; without it nothing is issued.
func (h *AdminHandler) DeleteBook(c *gin.Context) {
	confirmed := c.Query("confirm") == "true"

	err := h.service.Delete(c.Request.Context(), c.Param("id"), confirmed)
	if err != nil {
		h.handleMutationError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": c.Param("id")})
}

// UploadCover - POST /v1/admin/books/:id/cover
// Replaces the cover of an existing book without touching other fields.
func (h *AdminHandler) UploadCover(c *gin.Context) {
	cover, err := h.readCover(c)
	if err != nil {
		response.UnprocessableEntity(c, err.Error())
		return
	}
	if cover == nil {
		response.BadRequest(c, "cover file is required")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), c.Param("id"), model.BookForm{}, cover)
	if err != nil {
		h.handleMutationError(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated)
}

// parseForm reads the book form from either a JSON body or multipart
// form fields, plus the optional cover file.
func (h *AdminHandler) parseForm(c *gin.Context) (model.BookForm, *service.CoverUpload, error) {
	contentType := c.ContentType()

	if strings.HasPrefix(contentType, "multipart/form-data") {
		return h.parseMultipartForm(c)
	}

	var form model.BookForm
	if err := c.ShouldBindJSON(&form); err != nil {
		return model.BookForm{}, nil, err
	}
	return form, nil, nil
}

// parseMultipartForm coerces string-typed form inputs at the boundary.
// Unparseable numeric/boolean values fail the whole request instead of
// being forwarded as strings.
func (h *AdminHandler) parseMultipartForm(c *gin.Context) (model.BookForm, *service.CoverUpload, error) {
	var form model.BookForm

	str := func(field string) *string {
		if v, ok := c.GetPostForm(field); ok {
			return &v
		}
		return nil
	}

	form.Title = str("title")
	form.Author = str("author")
	form.Description = str("description")
	form.Category = str("category")
	form.Image = str("image")

	for _, f := range []struct {
		name string
		dst  **model.FlexNumber
	}{
		{"price", &form.Price},
		{"original_price", &form.OriginalPrice},
		{"rating", &form.Rating},
		{"reviews", &form.Reviews},
	} {
		raw, ok := c.GetPostForm(f.name)
		if !ok {
			continue
		}
		d, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return model.BookForm{}, nil, &model.ValidationError{Field: f.name, Message: "unparseable number"}
		}
		*f.dst = &model.FlexNumber{Decimal: d}
	}

	if raw, ok := c.GetPostForm("bestseller"); ok {
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "true", "1", "on":
			v := model.FlexBool(true)
			form.Bestseller = &v
		case "false", "0", "off":
			v := model.FlexBool(false)
			form.Bestseller = &v
		default:
			return model.BookForm{}, nil, &model.ValidationError{Field: "bestseller", Message: "unparseable boolean"}
		}
	}

	cover, err := h.readCover(c)
	if err != nil {
		return model.BookForm{}, nil, err
	}

	return form, cover, nil
}

func (h *AdminHandler) readCover(c *gin.Context) (*service.CoverUpload, error) {
	fileHeader, err := c.FormFile("cover")
	if err != nil {
		// No file attached is fine.
		return nil, nil
	}

	if fileHeader.Size > maxCoverSize {
		return nil, &model.ValidationError{Field: "cover", Message: "file too large"}
	}

	f, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}

	return &service.CoverUpload{
		Filename:    fileHeader.Filename,
		Content:     content,
		ContentType: fileHeader.Header.Get("Content-Type"),
	}, nil
}

// handleMutationError maps service errors onto the response envelope.
// Every failure is terminal for the action; the admin retries manually.
func (h *AdminHandler) handleMutationError(c *gin.Context, err error) {
	var verrs validation.Errors
	var reqErr *model.RequestError

	switch {
	case errors.Is(err, model.ErrBookNotFound):
		response.NotFound(c, "book not found")
	case errors.Is(err, model.ErrInvalidBookID):
		response.BadRequest(c, "invalid book id")
	case errors.Is(err, model.ErrDeleteNotConfirmed):
		response.BadRequest(c, "delete requires confirm=true")
	case errors.Is(err, model.ErrUploadNotSupported):
		response.BadRequest(c, "image upload is not enabled")
	case errors.As(err, &verrs):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_FAILED", "invalid book data", verrs)
	case model.IsValidation(err):
		response.UnprocessableEntity(c, err.Error())
	case errors.As(err, &reqErr):
		logger.Error("storage request failed", err)
		response.ErrorWithDetails(c, http.StatusInternalServerError, "REQUEST_FAILED", "request to backing store failed", reqErr.Op)
	default:
		logger.Error("admin mutation failed", err)
		response.InternalServerError(c, "unexpected error")
	}
}

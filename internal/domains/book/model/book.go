package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PlaceholderImage is served when a book has no cover of its own.
const PlaceholderImage = "/placeholder.svg"

// UncategorizedLabel groups books whose category field is blank.
const UncategorizedLabel = "Uncategorized"

// Book is the catalog entity. The database row is the source of truth;
// instances held in memory are transient per-request copies.
type Book struct {
	ID            uuid.UUID       `json:"id"`
	Title         string          `json:"title"`
	Author        string          `json:"author"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	OriginalPrice decimal.Decimal `json:"original_price"`
	Rating        float64         `json:"rating"`
	Reviews       int             `json:"reviews"`
	Image         string          `json:"image"`
	Category      string          `json:"category"`
	Bestseller    bool            `json:"bestseller"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ImageOrPlaceholder returns the cover URL, falling back to the placeholder.
func (b *Book) ImageOrPlaceholder() string {
	if b.Image == "" {
		return PlaceholderImage
	}
	return b.Image
}

// DisplayCategory returns the free-form category with a blank fallback.
func (b *Book) DisplayCategory() string {
	if b.Category == "" {
		return UncategorizedLabel
	}
	return b.Category
}

// HasDiscount reports whether the original price exceeds the current price.
func (b *Book) HasDiscount() bool {
	return b.OriginalPrice.GreaterThan(b.Price)
}

// ListFilter narrows a catalog read. Results are always ordered by
// identifier ascending; Limit <= 0 means no limit.
type ListFilter struct {
	BestsellerOnly bool
	Limit          int
}

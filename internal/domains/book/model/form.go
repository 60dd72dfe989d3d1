package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/shopspring/decimal"
)

// FlexNumber is a numeric form field that tolerates string-typed input
// ("19.99" as well as 19.99). Unparseable input is rejected at decode
// time instead of being silently propagated.
type FlexNumber struct {
	decimal.Decimal
}

func (n *FlexNumber) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if len(s) >= 2 && s[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		raw = strings.TrimSpace(raw)
		if raw == "" {
			return fmt.Errorf("empty numeric value")
		}
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return fmt.Errorf("unparseable number %q", raw)
		}
		n.Decimal = d
		return nil
	}
	return n.Decimal.UnmarshalJSON(data)
}

// FlexBool is a boolean form field that tolerates string-typed input
// ("true", "1", ...). Anything else is rejected at decode time.
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "true" || s == "false" {
		var v bool
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*b = FlexBool(v)
		return nil
	}
	if len(s) >= 2 && s[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		v, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf("unparseable boolean %q", raw)
		}
		*b = FlexBool(v)
		return nil
	}
	return fmt.Errorf("unparseable boolean %s", s)
}

// BookForm is the form-to-record boundary for admin create/update.
// All fields are optional; nil means "not supplied".
type BookForm struct {
	Title         *string     `json:"title"`
	Author        *string     `json:"author"`
	Description   *string     `json:"description"`
	Price         *FlexNumber `json:"price"`
	OriginalPrice *FlexNumber `json:"original_price"`
	Rating        *FlexNumber `json:"rating"`
	Reviews       *FlexNumber `json:"reviews"`
	Image         *string     `json:"image"`
	Category      *string     `json:"category"`
	Bestseller    *FlexBool   `json:"bestseller"`
}

// flexValue unwraps the ozzo-indirected field value. Unset fields are
// skipped by ozzo before rules run, but both forms are handled anyway.
func flexValue(v interface{}) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case FlexNumber:
		return n.Decimal, true
	case *FlexNumber:
		if n == nil {
			return decimal.Decimal{}, false
		}
		return n.Decimal, true
	}
	return decimal.Decimal{}, false
}

// nonNegative validates an optional FlexNumber field.
func nonNegative(v interface{}) error {
	d, ok := flexValue(v)
	if !ok {
		return nil
	}
	if d.IsNegative() {
		return fmt.Errorf("must be >= 0")
	}
	return nil
}

// wholeNumber validates that an optional FlexNumber carries an integer.
func wholeNumber(v interface{}) error {
	d, ok := flexValue(v)
	if !ok {
		return nil
	}
	if !d.Equal(d.Truncate(0)) {
		return fmt.Errorf("must be a whole number")
	}
	return nil
}

// Validate applies the rules shared by create and update.
func (f BookForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title, validation.Length(0, 500)),
		validation.Field(&f.Author, validation.Length(0, 255)),
		validation.Field(&f.Category, validation.Length(0, 100)),
		validation.Field(&f.Price, validation.By(nonNegative)),
		validation.Field(&f.OriginalPrice, validation.By(nonNegative)),
		validation.Field(&f.Reviews, validation.By(nonNegative), validation.By(wholeNumber)),
	)
}

// ValidateCreate additionally requires a title.
func (f BookForm) ValidateCreate() error {
	if err := f.Validate(); err != nil {
		return err
	}
	// Title must be supplied on create; an empty string is still a
	// displayable title, so only presence is checked.
	return validation.ValidateStruct(&f,
		validation.Field(&f.Title, validation.NotNil.Error("title is required")),
	)
}

// IsEmpty reports whether no field was supplied at all.
func (f BookForm) IsEmpty() bool {
	return f.Title == nil && f.Author == nil && f.Description == nil &&
		f.Price == nil && f.OriginalPrice == nil && f.Rating == nil &&
		f.Reviews == nil && f.Image == nil && f.Category == nil && f.Bestseller == nil
}

// NewBook builds a full record from a create form.
// Unspecified fields default: original_price/rating/reviews 0, bestseller
// false, description empty, image placeholder, category "Uncategorized".
func (f BookForm) NewBook() (Book, error) {
	if err := f.ValidateCreate(); err != nil {
		return Book{}, err
	}

	now := time.Now()
	b := Book{
		Title:         strOr(f.Title, ""),
		Author:        strOr(f.Author, ""),
		Description:   strOr(f.Description, ""),
		Price:         numOr(f.Price, decimal.Zero),
		OriginalPrice: numOr(f.OriginalPrice, decimal.Zero),
		Image:         strOr(f.Image, PlaceholderImage),
		Category:      strOr(f.Category, UncategorizedLabel),
		Bestseller:    boolOr(f.Bestseller, false),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if f.Rating != nil {
		b.Rating, _ = f.Rating.Float64()
	}
	if f.Reviews != nil {
		b.Reviews = int(f.Reviews.IntPart())
	}
	return b, nil
}

// ApplyTo merges the supplied fields into an existing record.
func (f BookForm) ApplyTo(b Book) Book {
	if f.Title != nil {
		b.Title = *f.Title
	}
	if f.Author != nil {
		b.Author = *f.Author
	}
	if f.Description != nil {
		b.Description = *f.Description
	}
	if f.Price != nil {
		b.Price = f.Price.Decimal
	}
	if f.OriginalPrice != nil {
		b.OriginalPrice = f.OriginalPrice.Decimal
	}
	if f.Rating != nil {
		b.Rating, _ = f.Rating.Float64()
	}
	if f.Reviews != nil {
		b.Reviews = int(f.Reviews.IntPart())
	}
	if f.Image != nil {
		b.Image = *f.Image
	}
	if f.Category != nil {
		b.Category = *f.Category
	}
	if f.Bestseller != nil {
		b.Bestseller = bool(*f.Bestseller)
	}
	b.UpdatedAt = time.Now()
	return b
}

func strOr(p *string, def string) string {
	if p == nil {
		return def
	}
	return *p
}

func numOr(p *FlexNumber, def decimal.Decimal) decimal.Decimal {
	if p == nil {
		return def
	}
	return p.Decimal
}

func boolOr(p *FlexBool, def bool) bool {
	if p == nil {
		return def
	}
	return bool(*p)
}

package model

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexNumber_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain number", input: `19.99`, want: "19.99"},
		{name: "quoted number", input: `"19.99"`, want: "19.99"},
		{name: "quoted integer", input: `"42"`, want: "42"},
		{name: "quoted with spaces", input: `" 7.5 "`, want: "7.5"},
		{name: "unparseable string", input: `"abc"`, wantErr: true},
		{name: "empty string", input: `""`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n FlexNumber
			err := json.Unmarshal([]byte(tt.input), &n)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			want, _ := decimal.NewFromString(tt.want)
			assert.True(t, n.Decimal.Equal(want), "got %s want %s", n.Decimal, want)
		})
	}
}

func TestFlexBool_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    bool
		wantErr bool
	}{
		{name: "plain true", input: `true`, want: true},
		{name: "plain false", input: `false`, want: false},
		{name: "quoted true", input: `"true"`, want: true},
		{name: "quoted one", input: `"1"`, want: true},
		{name: "quoted zero", input: `"0"`, want: false},
		{name: "unparseable string", input: `"yes please"`, wantErr: true},
		{name: "number is rejected", input: `2`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b FlexBool
			err := json.Unmarshal([]byte(tt.input), &b)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, bool(b))
		})
	}
}

func TestBookForm_NewBook_Defaults(t *testing.T) {
	title := "Sparse"
	form := BookForm{Title: &title}

	book, err := form.NewBook()
	require.NoError(t, err)

	assert.Equal(t, "Sparse", book.Title)
	assert.Equal(t, "", book.Description)
	assert.True(t, book.Price.IsZero())
	assert.True(t, book.OriginalPrice.IsZero())
	assert.Zero(t, book.Rating)
	assert.Zero(t, book.Reviews)
	assert.False(t, book.Bestseller)
	assert.Equal(t, PlaceholderImage, book.Image)
	assert.Equal(t, UncategorizedLabel, book.Category)
}

func TestBookForm_NewBook_EmptyTitleIsAllowed(t *testing.T) {
	title := ""
	form := BookForm{Title: &title}

	book, err := form.NewBook()
	require.NoError(t, err)
	assert.Equal(t, "", book.Title)
}

func TestBookForm_NewBook_MissingTitleIsRejected(t *testing.T) {
	_, err := BookForm{}.NewBook()
	assert.Error(t, err)
}

func TestBookForm_NewBook_CoercedFields(t *testing.T) {
	var form BookForm
	payload := `{
		"title": "Priced",
		"price": "19.99",
		"rating": 4.5,
		"reviews": "12",
		"bestseller": "true"
	}`
	require.NoError(t, json.Unmarshal([]byte(payload), &form))

	book, err := form.NewBook()
	require.NoError(t, err)

	assert.True(t, book.Price.Equal(decimal.NewFromFloat(19.99)))
	assert.Equal(t, 4.5, book.Rating)
	assert.Equal(t, 12, book.Reviews)
	assert.True(t, book.Bestseller)
}

func TestBookForm_Validate(t *testing.T) {
	neg := FlexNumber{decimal.NewFromInt(-1)}
	frac := FlexNumber{decimal.NewFromFloat(2.5)}

	t.Run("negative price is rejected", func(t *testing.T) {
		form := BookForm{Price: &neg}
		assert.Error(t, form.Validate())
	})

	t.Run("fractional reviews are rejected", func(t *testing.T) {
		form := BookForm{Reviews: &frac}
		assert.Error(t, form.Validate())
	})

	t.Run("empty form is valid", func(t *testing.T) {
		assert.NoError(t, BookForm{}.Validate())
	})
}

func TestBookForm_ApplyTo(t *testing.T) {
	existing := Book{
		Title:    "Old Title",
		Author:   "Old Author",
		Price:    decimal.NewFromInt(10),
		Category: "Drama",
	}

	title := "New Title"
	price := FlexNumber{decimal.NewFromInt(20)}
	updated := BookForm{Title: &title, Price: &price}.ApplyTo(existing)

	assert.Equal(t, "New Title", updated.Title)
	assert.True(t, updated.Price.Equal(decimal.NewFromInt(20)))

	// Unsupplied fields stay untouched.
	assert.Equal(t, "Old Author", updated.Author)
	assert.Equal(t, "Drama", updated.Category)
}

func TestBookForm_IsEmpty(t *testing.T) {
	assert.True(t, BookForm{}.IsEmpty())

	author := "Someone"
	assert.False(t, BookForm{Author: &author}.IsEmpty())
}

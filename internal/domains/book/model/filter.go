package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Criteria is the storefront filter selection. All three predicates are
// AND-composed; a zero-value Criteria passes everything.
type Criteria struct {
	SearchTerm string
	Categories []string
	PriceRange string // "", "0-15", "15-25", "25-50", "50+"
}

var fiftyPlus = decimal.NewFromInt(50)

// Filter returns the subset of books that pass all selected predicates.
// The input slice is never mutated.
func Filter(books []Book, c Criteria) []Book {
	out := make([]Book, 0, len(books))
	for _, b := range books {
		if !matchesSearch(b, c.SearchTerm) {
			continue
		}
		if !matchesCategory(b, c.Categories) {
			continue
		}
		if !matchesPrice(b.Price, c.PriceRange) {
			continue
		}
		out = append(out, b)
	}
	return out
}

// matchesSearch is a case-insensitive substring match against the title.
// An empty term passes everything.
func matchesSearch(b Book, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(b.Title), strings.ToLower(term))
}

// matchesCategory passes when no category is selected or the book's
// category is one of the selected ones.
func matchesCategory(b Book, selected []string) bool {
	if len(selected) == 0 {
		return true
	}
	for _, c := range selected {
		if b.Category == c {
			return true
		}
	}
	return false
}

// matchesPrice applies a price bucket. "50+" means strictly above 50;
// "min-max" is inclusive on both ends. An unset, unrecognized or
// malformed bucket never fails a book - it is treated as no constraint.
func matchesPrice(price decimal.Decimal, bucket string) bool {
	if bucket == "" {
		return true
	}
	if bucket == "50+" {
		return price.GreaterThan(fiftyPlus)
	}

	parts := strings.SplitN(bucket, "-", 2)
	if len(parts) != 2 {
		return true
	}
	min, errMin := decimal.NewFromString(strings.TrimSpace(parts[0]))
	max, errMax := decimal.NewFromString(strings.TrimSpace(parts[1]))
	if errMin != nil || errMax != nil {
		return true
	}
	return price.GreaterThanOrEqual(min) && price.LessThanOrEqual(max)
}

// CategoryCount is one landing-page aggregate row.
type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// CountByCategory groups books by category in first-seen order.
// Blank categories are counted under "Uncategorized".
func CountByCategory(books []Book) []CategoryCount {
	index := make(map[string]int, len(books))
	counts := make([]CategoryCount, 0, len(books))
	for _, b := range books {
		name := b.DisplayCategory()
		if i, ok := index[name]; ok {
			counts[i].Count++
			continue
		}
		index[name] = len(counts)
		counts = append(counts, CategoryCount{Name: name, Count: 1})
	}
	return counts
}

// UniqueCategories returns the distinct raw category values in
// first-seen order, used to render the sidebar checkboxes.
func UniqueCategories(books []Book) []string {
	seen := make(map[string]struct{}, len(books))
	out := make([]string, 0, len(books))
	for _, b := range books {
		if _, ok := seen[b.Category]; ok {
			continue
		}
		seen[b.Category] = struct{}{}
		out = append(out, b.Category)
	}
	return out
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bookstore-web/internal/domains/book/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// postgresRepository - raw SQL with pgxpool
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository - Constructor
func NewPostgresRepository(pool *pgxpool.Pool) RepositoryInterface {
	return &postgresRepository{pool: pool}
}

const bookColumns = `id, title, author, description, price, original_price,
	rating, reviews, image, category, bestseller, created_at, updated_at`

func scanBook(row pgx.Row) (*model.Book, error) {
	var b model.Book
	err := row.Scan(
		&b.ID, &b.Title, &b.Author, &b.Description, &b.Price, &b.OriginalPrice,
		&b.Rating, &b.Reviews, &b.Image, &b.Category, &b.Bestseller,
		&b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// List - get books ordered by id ascending, optionally bestsellers only
// and optionally limited. Exactly one query per call; no caching, so
// repeated page mounts repeat the read.
func (r *postgresRepository) List(ctx context.Context, filter model.ListFilter) ([]model.Book, error) {
	var sb strings.Builder
	sb.WriteString("SELECT " + bookColumns + " FROM books")

	args := []interface{}{}
	if filter.BestsellerOnly {
		sb.WriteString(" WHERE bestseller = true")
	}
	sb.WriteString(" ORDER BY id ASC")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", len(args)))
	}

	rows, err := r.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, model.NewRequestError("list", err)
	}
	defer rows.Close()

	books := make([]model.Book, 0)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, model.NewRequestError("list", err)
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, model.NewRequestError("list", err)
	}

	return books, nil
}

// GetByID - single row lookup
func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Book, error) {
	query := "SELECT " + bookColumns + " FROM books WHERE id = $1"

	b, err := scanBook(r.pool.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrBookNotFound
	}
	if err != nil {
		return nil, model.NewRequestError("get", err)
	}
	return b, nil
}

// Insert - store a new book, id assigned by the database
func (r *postgresRepository) Insert(ctx context.Context, b model.Book) (*model.Book, error) {
	query := `
		INSERT INTO books (title, author, description, price, original_price,
			rating, reviews, image, category, bestseller, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + bookColumns

	created, err := scanBook(r.pool.QueryRow(ctx, query,
		b.Title, b.Author, b.Description, b.Price, b.OriginalPrice,
		b.Rating, b.Reviews, b.Image, b.Category, b.Bestseller,
		b.CreatedAt, b.UpdatedAt,
	))
	if err != nil {
		return nil, model.NewRequestError("insert", err)
	}
	return created, nil
}

// Update - build the SET clause dynamically from the supplied fields
func (r *postgresRepository) Update(ctx context.Context, id uuid.UUID, form model.BookForm) (*model.Book, error) {
	sets := []string{}
	args := []interface{}{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if form.Title != nil {
		add("title", *form.Title)
	}
	if form.Author != nil {
		add("author", *form.Author)
	}
	if form.Description != nil {
		add("description", *form.Description)
	}
	if form.Price != nil {
		add("price", form.Price.Decimal)
	}
	if form.OriginalPrice != nil {
		add("original_price", form.OriginalPrice.Decimal)
	}
	if form.Rating != nil {
		rating, _ := form.Rating.Float64()
		add("rating", rating)
	}
	if form.Reviews != nil {
		add("reviews", int(form.Reviews.IntPart()))
	}
	if form.Image != nil {
		add("image", *form.Image)
	}
	if form.Category != nil {
		add("category", *form.Category)
	}
	if form.Bestseller != nil {
		add("bestseller", bool(*form.Bestseller))
	}

	if len(sets) == 0 {
		// Nothing to change; return the current row.
		return r.GetByID(ctx, id)
	}

	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(
		"UPDATE books SET %s WHERE id = $%d RETURNING %s",
		strings.Join(sets, ", "), len(args), bookColumns,
	)

	b, err := scanBook(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrBookNotFound
	}
	if err != nil {
		return nil, model.NewRequestError("update", err)
	}
	return b, nil
}

// Delete - remove the row by id
func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM books WHERE id = $1", id)
	if err != nil {
		return model.NewRequestError("delete", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

package reviews

import (
	"context"
	"errors"
	"fmt"

	"bookreviews/internal/infra/dbx"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS reviews (
    id          UUID PRIMARY KEY,
    book_title  TEXT NOT NULL CHECK (book_title <> ''),
    author      TEXT NOT NULL CHECK (author <> ''),
    rating      SMALLINT NOT NULL CHECK (rating BETWEEN 1 AND 5),
    review_text TEXT NOT NULL CHECK (review_text <> ''),
    date_added  TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS reviews_date_added_idx ON reviews (date_added DESC);
`

const reviewColumns = `id::text, book_title, author, rating, review_text, date_added`

type PostgresRepository struct {
	db dbx.Querier
}

func NewPostgresRepository(db dbx.Querier) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureSchema creates the reviews table and its ordering index if missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("failed to create reviews schema: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]Review, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
        SELECT ` + reviewColumns + `
        FROM reviews
        ORDER BY date_added DESC, id DESC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	out := []Review{}
	for rows.Next() {
		var review Review
		if err := scanReview(rows, &review); err != nil {
			return nil, fmt.Errorf("failed to scan review row: %w", err)
		}
		out = append(out, review)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresRepository) Create(ctx context.Context, in CreateInput) (*Review, error) {
	in = in.trimmed()
	if err := Validate(in); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
        INSERT INTO reviews (id, book_title, author, rating, review_text)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + reviewColumns

	var review Review
	err := scanReview(r.db.QueryRow(ctx, query,
		uuid.NewString(),
		in.BookTitle,
		in.Author,
		int(in.Rating),
		in.ReviewText,
	), &review)
	if err != nil {
		return nil, fmt.Errorf("failed to insert review: %w", err)
	}
	return &review, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*Review, error) {
	key, ok := parseUUID(id)
	if !ok {
		return nil, ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`

	var review Review
	if err := scanReview(r.db.QueryRow(ctx, query, key), &review); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &review, nil
}

// Update merges the non-empty fields in one statement; NULLIF turns the
// "keep" values ('' and 0) into NULL so COALESCE falls back to the column.
func (r *PostgresRepository) Update(ctx context.Context, id string, in UpdateInput) (*Review, error) {
	key, ok := parseUUID(id)
	if !ok {
		return nil, ErrNotFound
	}
	if err := validateUpdate(in); err != nil {
		// a missing record is reported ahead of a bad rating
		if _, lookupErr := r.GetByID(ctx, id); errors.Is(lookupErr, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	query := `
        UPDATE reviews
        SET book_title  = COALESCE(NULLIF($2::text, ''), book_title),
            author      = COALESCE(NULLIF($3::text, ''), author),
            rating      = COALESCE(NULLIF($4::smallint, 0), rating),
            review_text = COALESCE(NULLIF($5::text, ''), review_text)
        WHERE id = $1
        RETURNING ` + reviewColumns

	var review Review
	err := scanReview(r.db.QueryRow(ctx, query,
		key,
		in.bookTitle(),
		in.author(),
		in.rating(),
		in.reviewText(),
	), &review)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	return &review, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	key, ok := parseUUID(id)
	if !ok {
		return ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	tag, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id = $1`, key)
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanReview(row pgx.Row, review *Review) error {
	return row.Scan(
		&review.ID,
		&review.BookTitle,
		&review.Author,
		&review.Rating,
		&review.ReviewText,
		&review.DateAdded,
	)
}

func parseUUID(id string) (string, bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cinescore/cinescore/internal/domain"
	"github.com/cinescore/cinescore/internal/stats"
)

// ReviewsRepository provides helpers for movie reviews and their admission.
type ReviewsRepository struct {
	pool *pgxpool.Pool
}

const reviewColumns = `
    id,
    user_id,
    movie_id,
    score,
    review_text,
    created_at
`

// ReviewAdmitParams captures the payload required to admit a review.
type ReviewAdmitParams struct {
	MovieID    string
	UserID     string
	Score      int
	ReviewText *string
}

// Admit durably accepts one review and folds it into the movie's aggregate
// within a single transaction, so no reader can observe a review without its
// aggregate contribution or vice versa.
//
// The (user_id, movie_id) unique constraint is the conflict mechanism: the
// insert is attempted unconditionally and a unique violation surfaces as
// ErrReviewExists with nothing mutated. A pre-check-then-insert sequence
// would race between concurrent submissions for the same pair. SELECT FOR
// UPDATE on the movie row serializes aggregate updates from different users
// of the same movie, preventing lost updates.
func (r *ReviewsRepository) Admit(ctx context.Context, params ReviewAdmitParams) (domain.Review, error) {
	if params.Score < domain.MinScore || params.Score > domain.MaxScore {
		return domain.Review{}, ErrScoreOutOfRange
	}

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return domain.Review{}, fmt.Errorf("begin admission: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var current domain.MovieStats
	err = tx.QueryRow(ctx,
		`SELECT avg_score, score_number, review_number FROM movies WHERE id = $1 FOR UPDATE`,
		params.MovieID,
	).Scan(&current.AvgScore, &current.ScoreNumber, &current.ReviewNumber)
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Review{}, ErrNotFound
		}
		return domain.Review{}, fmt.Errorf("lock movie aggregate: %w", err)
	}

	insert := fmt.Sprintf(`
        INSERT INTO reviews (id, user_id, movie_id, score, review_text)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING %s
    `, reviewColumns)

	row := tx.QueryRow(ctx, insert, uuid.NewString(), params.UserID, params.MovieID, params.Score, params.ReviewText)
	review, err := scanReview(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Review{}, ErrReviewExists
		}
		return domain.Review{}, err
	}

	next := stats.Apply(current, params.Score, params.ReviewText)
	_, err = tx.Exec(ctx,
		`UPDATE movies SET avg_score = $2, score_number = $3, review_number = $4, updated_at = now() WHERE id = $1`,
		params.MovieID, next.AvgScore, next.ScoreNumber, next.ReviewNumber,
	)
	if err != nil {
		return domain.Review{}, fmt.Errorf("write back aggregate: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.Review{}, fmt.Errorf("commit admission: %w", err)
	}
	return review, nil
}

// Get retrieves a review for a specific user/movie combination.
func (r *ReviewsRepository) Get(ctx context.Context, userID, movieID string) (domain.Review, error) {
	query := fmt.Sprintf(`SELECT %s FROM reviews WHERE user_id = $1 AND movie_id = $2`, reviewColumns)
	review, err := scanReview(r.pool.QueryRow(ctx, query, userID, movieID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Review{}, ErrNotFound
		}
		return domain.Review{}, err
	}
	return review, nil
}

// ListByMovie returns all reviews for a movie in insertion order.
func (r *ReviewsRepository) ListByMovie(ctx context.Context, movieID string) ([]domain.Review, error) {
	query := fmt.Sprintf(`SELECT %s FROM reviews WHERE movie_id = $1 ORDER BY created_at, id`, reviewColumns)
	rows, err := r.pool.Query(ctx, query, movieID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.Review
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, review)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func scanReview(row pgx.Row) (domain.Review, error) {
	var review domain.Review
	err := row.Scan(
		&review.ID,
		&review.UserID,
		&review.MovieID,
		&review.Score,
		&review.ReviewText,
		&review.CreatedAt,
	)
	if err != nil {
		return domain.Review{}, err
	}
	return review, nil
}

package repository

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cinescore/cinescore/internal/domain"
)

// MoviesRepository provides persistence helpers for movie entities.
type MoviesRepository struct {
	pool *pgxpool.Pool
}

const movieColumns = `
    id,
    title,
    release_year,
    avg_score,
    score_number,
    review_number,
    created_at,
    updated_at
`

// MovieCreateParams bundles the fields required to create a movie. Aggregates
// start at their defaults and are only ever touched by review admission.
type MovieCreateParams struct {
	Title       string
	ReleaseYear int
}

// MovieListFilters encapsulates the filter specification for a movie query:
// optional title substring, optional exact year, sort flag, plus pagination.
type MovieListFilters struct {
	TitleContains  *string
	Year           *int
	SortByAvgScore bool
	Limit          int
	Cursor         *MovieCursor
}

// MovieCursor allows stable pagination by created_at/id in the default
// insertion order. It does not combine with SortByAvgScore.
type MovieCursor struct {
	CreatedAt time.Time `json:"createdAt"`
	ID        string    `json:"id"`
}

// MovieListResult returns the paginated payload.
type MovieListResult struct {
	Items      []domain.Movie
	NextCursor *string
}

// Create inserts a new movie row and returns the stored entity. An exact-title
// lookup guards against duplicates; the release_year check constraint remains
// the last line of defense and surfaces as ErrYearOutOfRange.
func (r *MoviesRepository) Create(ctx context.Context, params MovieCreateParams) (domain.Movie, error) {
	_, err := r.GetByTitle(ctx, params.Title)
	switch {
	case err == nil:
		return domain.Movie{}, ErrMovieExists
	case !errors.Is(err, ErrNotFound):
		return domain.Movie{}, err
	}

	query := fmt.Sprintf(`
        INSERT INTO movies (id, title, release_year)
        VALUES ($1,$2,$3)
        RETURNING %s
    `, movieColumns)

	row := r.pool.QueryRow(ctx, query, uuid.NewString(), params.Title, params.ReleaseYear)
	movie, err := scanMovie(row)
	if err != nil {
		if isCheckViolation(err) {
			return domain.Movie{}, ErrYearOutOfRange
		}
		return domain.Movie{}, err
	}
	return movie, nil
}

// GetByID fetches a movie by its identifier.
func (r *MoviesRepository) GetByID(ctx context.Context, id string) (domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE id = $1`, movieColumns)
	movie, err := scanMovie(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Movie{}, ErrNotFound
		}
		return domain.Movie{}, err
	}
	return movie, nil
}

// GetByTitle fetches the earliest-created movie with an exact title match.
func (r *MoviesRepository) GetByTitle(ctx context.Context, title string) (domain.Movie, error) {
	query := fmt.Sprintf(`SELECT %s FROM movies WHERE title = $1 ORDER BY created_at, id LIMIT 1`, movieColumns)
	movie, err := scanMovie(r.pool.QueryRow(ctx, query, title))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.Movie{}, ErrNotFound
		}
		return domain.Movie{}, err
	}
	return movie, nil
}

// List returns movies that match the provided filters.
func (r *MoviesRepository) List(ctx context.Context, filters MovieListFilters) (MovieListResult, error) {
	if filters.Limit <= 0 {
		filters.Limit = 20
	} else if filters.Limit > 100 {
		filters.Limit = 100
	}

	query, args := buildListQuery(filters)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return MovieListResult{}, err
	}
	defer rows.Close()

	items := make([]domain.Movie, 0)
	for rows.Next() {
		movie, err := scanMovie(rows)
		if err != nil {
			return MovieListResult{}, err
		}
		items = append(items, movie)
	}
	if err := rows.Err(); err != nil {
		return MovieListResult{}, err
	}

	var nextCursor *string
	if !filters.SortByAvgScore && len(items) == filters.Limit {
		last := items[len(items)-1]
		cursor := MovieCursor{CreatedAt: last.CreatedAt, ID: last.ID}
		token, err := encodeCursor(cursor)
		if err != nil {
			return MovieListResult{}, err
		}
		nextCursor = &token
	}

	return MovieListResult{Items: items, NextCursor: nextCursor}, nil
}

// buildListQuery renders a filter specification into a SQL plan without
// touching the database. Filters AND together and commute; the sort flag is
// applied last; unset filters contribute nothing. The default order is
// insertion order (created_at, id ascending).
func buildListQuery(filters MovieListFilters) (string, []interface{}) {
	where := make([]string, 0, 3)
	args := make([]interface{}, 0, 4)
	arg := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filters.TitleContains != nil && *filters.TitleContains != "" {
		where = append(where, fmt.Sprintf("title LIKE %s", arg("%"+*filters.TitleContains+"%")))
	}
	if filters.Year != nil {
		where = append(where, fmt.Sprintf("release_year = %s", arg(*filters.Year)))
	}
	if filters.Cursor != nil && !filters.SortByAvgScore {
		cursorCreated := arg(filters.Cursor.CreatedAt)
		cursorID := arg(filters.Cursor.ID)
		where = append(where, fmt.Sprintf("(created_at, id) > (%s, %s)", cursorCreated, cursorID))
	}

	queryBuilder := strings.Builder{}
	queryBuilder.WriteString("SELECT ")
	queryBuilder.WriteString(movieColumns)
	queryBuilder.WriteString(" FROM movies")

	if len(where) > 0 {
		queryBuilder.WriteString(" WHERE ")
		queryBuilder.WriteString(strings.Join(where, " AND "))
	}

	if filters.SortByAvgScore {
		queryBuilder.WriteString(" ORDER BY avg_score DESC, created_at, id")
	} else {
		queryBuilder.WriteString(" ORDER BY created_at, id")
	}
	queryBuilder.WriteString(fmt.Sprintf(" LIMIT %d", filters.Limit))

	return queryBuilder.String(), args
}

func scanMovie(row pgx.Row) (domain.Movie, error) {
	var movie domain.Movie
	err := row.Scan(
		&movie.ID,
		&movie.Title,
		&movie.ReleaseYear,
		&movie.Stats.AvgScore,
		&movie.Stats.ScoreNumber,
		&movie.Stats.ReviewNumber,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)
	if err != nil {
		return domain.Movie{}, err
	}
	return movie, nil
}

func encodeCursor(c MovieCursor) (string, error) {
	payload, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(payload), nil
}

// DecodeCursor parses a cursor token into a MovieCursor.
func DecodeCursor(token string) (*MovieCursor, error) {
	if token == "" {
		return nil, nil
	}
	data, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor: %w", err)
	}
	var cursor MovieCursor
	if err := json.Unmarshal(data, &cursor); err != nil {
		return nil, fmt.Errorf("invalid cursor payload: %w", err)
	}
	return &cursor, nil
}

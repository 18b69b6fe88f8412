package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cinescore/cinescore/internal/store"
)

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("repository: not found")

// Conflict sentinels. Each maps a storage-level rejection to a distinct,
// user-visible outcome.
var (
	ErrLoginExists     = errors.New("repository: login already registered")
	ErrMovieExists     = errors.New("repository: movie already registered")
	ErrReviewExists    = errors.New("repository: review already exists")
	ErrYearOutOfRange  = errors.New("repository: release year out of range")
	ErrScoreOutOfRange = errors.New("repository: score out of range")
)

// ErrInvalidCredentials indicates a failed login/password verification.
var ErrInvalidCredentials = errors.New("repository: invalid credentials")

// Postgres error codes the repositories interpret as domain signals. The
// constraints themselves are the integrity mechanism; a rejection here is the
// authoritative conflict signal, not a backstop.
const (
	pgUniqueViolation = "23505"
	pgCheckViolation  = "23514"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgCheckViolation
}

// Repository aggregates all domain-specific repositories.
type Repository struct {
	Users   *UsersRepository
	Movies  *MoviesRepository
	Reviews *ReviewsRepository
}

// New constructs a Repository backed by the provided store.
func New(st *store.Store) *Repository {
	return NewWithPool(st.Pool())
}

// NewWithPool allows constructing repositories directly from a pgx pool.
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{
		Users:   &UsersRepository{pool: pool},
		Movies:  &MoviesRepository{pool: pool},
		Reviews: &ReviewsRepository{pool: pool},
	}
}

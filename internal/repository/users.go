package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/cinescore/cinescore/internal/domain"
)

// UsersRepository provides persistence helpers for user accounts.
type UsersRepository struct {
	pool *pgxpool.Pool
}

const userColumns = `
    id,
    login,
    password_hash,
    created_at
`

// UserCreateParams bundles the fields required to register a user.
type UserCreateParams struct {
	Login    string
	Password string
}

// Create registers a new user with a bcrypt-hashed password. The unique
// constraint on login is the duplicate-detection mechanism; a violation is
// reported as ErrLoginExists.
func (r *UsersRepository) Create(ctx context.Context, params UserCreateParams) (domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	query := fmt.Sprintf(`
        INSERT INTO users (id, login, password_hash)
        VALUES ($1,$2,$3)
        RETURNING %s
    `, userColumns)

	row := r.pool.QueryRow(ctx, query, uuid.NewString(), params.Login, string(hash))
	user, err := scanUser(row)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.User{}, ErrLoginExists
		}
		return domain.User{}, err
	}
	return user, nil
}

// GetByID fetches a user by its identifier.
func (r *UsersRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userColumns)
	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// GetByLogin fetches a user by its unique login. Logins compare case-sensitively.
func (r *UsersRepository) GetByLogin(ctx context.Context, login string) (domain.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE login = $1`, userColumns)
	user, err := scanUser(r.pool.QueryRow(ctx, query, login))
	if err != nil {
		if err == pgx.ErrNoRows {
			return domain.User{}, ErrNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// Authenticate verifies a login/password pair. Unknown logins and wrong
// passwords are indistinguishable to the caller.
func (r *UsersRepository) Authenticate(ctx context.Context, login, password string) (domain.User, error) {
	user, err := r.GetByLogin(ctx, login)
	if err != nil {
		if err == ErrNotFound {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Login,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	return user, nil
}

package user

import (
	"context"
	"errors"

	"storefront/internal/db"
	"storefront/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepo struct {
	q db.Querier
}

func NewPostgres(pool *pgxpool.Pool) Repository {
	return &postgresRepo{q: pool}
}

func (r *postgresRepo) Create(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	const q = `
INSERT INTO users (email, name, password_hash, is_admin)
VALUES ($1, $2, $3, $4)
RETURNING id::text, email, name, password_hash, is_admin, created_at
`
	var u domain.User
	if err := r.q.QueryRow(ctx, q, in.Email, in.Name, in.PasswordHash, in.IsAdmin).Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.PasswordHash,
		&u.IsAdmin,
		&u.CreatedAt,
	); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, domain.ErrAlreadyExists
		}
		return nil, err
	}
	return &u, nil
}

func (r *postgresRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const q = `
SELECT id::text, email, name, password_hash, is_admin, created_at
FROM users
WHERE email = $1
`
	return r.fetchUser(ctx, q, email)
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const q = `
SELECT id::text, email, name, password_hash, is_admin, created_at
FROM users
WHERE id = $1
`
	return r.fetchUser(ctx, q, id)
}

func (r *postgresRepo) fetchUser(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var u domain.User
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.PasswordHash,
		&u.IsAdmin,
		&u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/eventra/backend/internal/models"
)

// Repository handles user persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository creates an auth repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new user.
func (r *Repository) Create(ctx context.Context, u *models.User) error {
	const q = `INSERT INTO users (uuid, email, password, name, surname)
		VALUES (gen_random_uuid(), $1, $2, $3, $4)
		RETURNING uuid, created_at, updated_at`
	return r.pool.QueryRow(ctx, q, u.Email, u.Password, u.Name, u.Surname).
		Scan(&u.UUID, &u.CreatedAt, &u.UpdatedAt)
}

// GetByEmail returns a user by email, or nil when absent.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	const q = `SELECT uuid, email, password, name, surname, created_at, updated_at FROM users WHERE email = $1`
	var u models.User
	err := r.pool.QueryRow(ctx, q, email).
		Scan(&u.UUID, &u.Email, &u.Password, &u.Name, &u.Surname, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByUUID returns a user by UUID, or nil when absent.
func (r *Repository) GetByUUID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	const q = `SELECT uuid, email, password, name, surname, created_at, updated_at FROM users WHERE uuid = $1`
	var u models.User
	err := r.pool.QueryRow(ctx, q, id).
		Scan(&u.UUID, &u.Email, &u.Password, &u.Name, &u.Surname, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/loginapi/login-service/internal/core/domain"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `
		SELECT id, email, password_hash, created_at
		FROM users
		WHERE email = $1
		LIMIT 1;
	`

	var u domain.User
	err := r.db.QueryRow(ctx, query, domain.NormalizeEmail(email)).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

// Seed inserts user unless its email already exists, then returns the stored row.
func (r *UserRepository) Seed(ctx context.Context, user *domain.User) (*domain.User, error) {
	email := domain.NormalizeEmail(user.Email)

	_, err := r.db.Exec(ctx, `
		INSERT INTO users (email, password_hash, created_at)
		VALUES ($1, $2, COALESCE($3, now()))
		ON CONFLICT (email) DO NOTHING
	`, email, user.PasswordHash, nullableTime(user))
	if err != nil {
		return nil, fmt.Errorf("seed user: %w", err)
	}

	return r.FindByEmail(ctx, email)
}

func nullableTime(u *domain.User) any {
	if u.CreatedAt.IsZero() {
		return nil
	}
	return u.CreatedAt.UTC()
}

// Ping reports whether the database is reachable.
func (r *UserRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

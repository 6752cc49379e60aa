package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-contacts-api/internal/domain"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

// UserRepo provides typed Postgres operations for the users table.
type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, username, passwordHash string) (*domain.User, error) {
	query := `INSERT INTO users (username, password_hash)
	          VALUES ($1, $2)
	          RETURNING id, created_at, updated_at`

	u := &domain.User{Username: username, PasswordHash: passwordHash}
	err := r.db.QueryRowContext(ctx, query, username, passwordHash).
		Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, fmt.Errorf("username already registered: %w", domain.ErrConflict)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT id, username, password_hash, avatar_url, created_at, updated_at
	          FROM users
	          WHERE username = $1`

	u := &domain.User{}
	err := r.db.QueryRowContext(ctx, query, username).
		Scan(&u.ID, &u.Username, &u.PasswordHash, &u.AvatarURL, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return u, nil
}

func (r *UserRepo) UpdatePasswordHash(ctx context.Context, username, passwordHash string) error {
	query := `UPDATE users SET password_hash = $2, updated_at = now()
	          WHERE username = $1`

	res, err := r.db.ExecContext(ctx, query, username, passwordHash)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepo) UpdateAvatarURL(ctx context.Context, userID int64, avatarURL string) error {
	query := `UPDATE users SET avatar_url = $2, updated_at = now()
	          WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, userID, avatarURL)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/avilkin/blog-service/internal/models"
)

// CreateUser creates a new user in the database
func (r *Repository) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, password_hash, is_verified, google_id, created_at, updated_at)
		VALUES ($1, $2, $3, NULLIF($4, ''), CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, user.Username, user.PasswordHash, user.IsVerified, user.GoogleID).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("user %q: %w", user.Username, models.ErrDuplicate)
	}
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// FindUserByUsername retrieves a user by username
func (r *Repository) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, is_verified, COALESCE(google_id, ''), created_at, updated_at
		FROM users
		WHERE username = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, username))
}

// FindUserByGoogleID retrieves a user by its Google OAuth subject
func (r *Repository) FindUserByGoogleID(ctx context.Context, googleID string) (*models.User, error) {
	query := `
		SELECT id, username, password_hash, is_verified, COALESCE(google_id, ''), created_at, updated_at
		FROM users
		WHERE google_id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, googleID))
}

func (r *Repository) scanUser(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.IsVerified,
		&user.GoogleID, &user.CreatedAt, &user.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// AttachGoogleID links an existing account to a Google OAuth subject.
func (r *Repository) AttachGoogleID(ctx context.Context, userID int64, googleID string) error {
	query := `
		UPDATE users
		SET google_id = $2, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, userID, googleID)
	if err != nil {
		return fmt.Errorf("failed to attach google id: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// MarkVerified idempotently sets the verified flag on a user.
func (r *Repository) MarkVerified(ctx context.Context, userID int64) error {
	query := `
		UPDATE users
		SET is_verified = TRUE, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// DeleteUnverifiedBefore removes unverified accounts created before the
// cutoff and returns how many were deleted. Accounts that own posts are kept:
// posts.author_id restricts the delete, and one such account would abort the
// whole statement.
func (r *Repository) DeleteUnverifiedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		DELETE FROM users
		WHERE is_verified = FALSE AND google_id IS NULL AND created_at < $1
		AND NOT EXISTS (SELECT 1 FROM posts p WHERE p.author_id = users.id)`
	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete unverified users: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted users: %w", err)
	}
	return n, nil
}

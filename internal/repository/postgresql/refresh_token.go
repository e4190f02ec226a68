package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/karyaprima/hrops-backend-go/internal/domain/auth"
	"github.com/karyaprima/hrops-backend-go/internal/pkg/database"
)

type refreshTokenRepository struct {
	db *database.DB
}

func NewRefreshTokenRepository(db *database.DB) auth.RefreshTokenRepository {
	return &refreshTokenRepository{db: db}
}

// Store implements auth.RefreshTokenRepository.
func (r *refreshTokenRepository) Store(ctx context.Context, userID string, token string, expiresAt int64) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO refresh_tokens (user_id, token, expires_at)
		VALUES ($1, $2, $3)
	`

	if _, err := q.Exec(ctx, query, userID, token, time.Unix(expiresAt, 0)); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}

	return nil
}

// IsStored implements auth.RefreshTokenRepository.
func (r *refreshTokenRepository) IsStored(ctx context.Context, token string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM refresh_tokens
			WHERE token = $1 AND expires_at > NOW()
		)
	`

	var stored bool
	if err := q.QueryRow(ctx, query, token).Scan(&stored); err != nil {
		return false, fmt.Errorf("failed to check refresh token: %w", err)
	}

	return stored, nil
}

// Revoke implements auth.RefreshTokenRepository.
func (r *refreshTokenRepository) Revoke(ctx context.Context, token string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM refresh_tokens WHERE token = $1`, token); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	// Opportunistic cleanup of expired rows.
	if _, err := q.Exec(ctx, `DELETE FROM refresh_tokens WHERE expires_at <= NOW()`); err != nil {
		return fmt.Errorf("failed to clean up expired refresh tokens: %w", err)
	}

	return nil
}

// RevokeAllForUser implements auth.RefreshTokenRepository.
func (r *refreshTokenRepository) RevokeAllForUser(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM refresh_tokens WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to revoke user refresh tokens: %w", err)
	}

	return nil
}

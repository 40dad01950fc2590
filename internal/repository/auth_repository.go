package repository

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/chessnerd435/study-app/internal/apperrors"
	"github.com/chessnerd435/study-app/pkg/cache"
	"github.com/chessnerd435/study-app/pkg/jwt"
)

const BlacklistTTL = jwt.AccessTokenDuration

type RefreshToken struct {
	TokenHash string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

func NewRefreshToken(token, userID string, expiresAt, createdAt time.Time) *RefreshToken {
	return &RefreshToken{
		TokenHash: hashToken(token),
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: createdAt,
	}
}

type AuthRepository struct {
	redis *cache.RedisClient
	db    *sql.DB
}

func NewAuthRepository(redis *cache.RedisClient, db *sql.DB) *AuthRepository {
	return &AuthRepository{
		redis: redis,
		db:    db,
	}
}

func (r *AuthRepository) AddToBlacklist(ctx context.Context, jti string) error {
	key := fmt.Sprintf("auth:blacklist:%s", jti)
	return r.redis.Set(ctx, key, "revoked", BlacklistTTL)
}

func (r *AuthRepository) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	key := fmt.Sprintf("auth:blacklist:%s", jti)
	count, err := r.redis.Exists(ctx, key)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *AuthRepository) SaveRefreshToken(ctx context.Context, token *RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (token_hash, user_id, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (token_hash) DO UPDATE SET
			user_id = EXCLUDED.user_id,
			expires_at = EXCLUDED.expires_at,
			created_at = EXCLUDED.created_at
	`

	_, err := r.db.ExecContext(ctx, query,
		token.TokenHash,
		token.UserID,
		token.ExpiresAt,
		token.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save refresh token: %w", err)
	}

	return nil
}

func (r *AuthRepository) GetRefreshToken(ctx context.Context, token string) (*RefreshToken, error) {
	query := `
		SELECT token_hash, user_id, expires_at, created_at
		FROM refresh_tokens
		WHERE token_hash = $1
	`

	hashedToken := hashToken(token)
	storedToken := &RefreshToken{}
	err := r.db.QueryRowContext(ctx, query, hashedToken).Scan(
		&storedToken.TokenHash,
		&storedToken.UserID,
		&storedToken.ExpiresAt,
		&storedToken.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.ErrInvalidToken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}

	return storedToken, nil
}

func (r *AuthRepository) DeleteRefreshToken(ctx context.Context, token string) error {
	query := `DELETE FROM refresh_tokens WHERE token_hash = $1`

	hashedToken := hashToken(token)
	_, err := r.db.ExecContext(ctx, query, hashedToken)
	if err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}

	return nil
}

func hashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

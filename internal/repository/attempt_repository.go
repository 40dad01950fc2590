package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chessnerd435/study-app/internal/apperrors"
	"github.com/chessnerd435/study-app/internal/models"
	"github.com/chessnerd435/study-app/pkg/cache"
)

// Attempts are session-scoped state, never archived. A stale attempt
// simply expires.
const AttemptTTL = 24 * time.Hour

type AttemptRepository struct {
	redis *cache.RedisClient
}

func NewAttemptRepository(redis *cache.RedisClient) *AttemptRepository {
	return &AttemptRepository{redis: redis}
}

func (r *AttemptRepository) Save(ctx context.Context, attempt *models.Attempt) error {
	key := fmt.Sprintf("attempt:%s", attempt.ID)

	data, err := json.Marshal(attempt)
	if err != nil {
		return fmt.Errorf("failed to marshal attempt: %w", err)
	}

	return r.redis.Set(ctx, key, data, AttemptTTL)
}

func (r *AttemptRepository) Get(ctx context.Context, id string) (*models.Attempt, error) {
	key := fmt.Sprintf("attempt:%s", id)

	data, err := r.redis.Get(ctx, key)
	if err != nil {
		return nil, apperrors.ErrAttemptNotFound
	}

	attempt := &models.Attempt{}
	if err := json.Unmarshal([]byte(data), attempt); err != nil {
		return nil, fmt.Errorf("failed to unmarshal attempt: %w", err)
	}

	return attempt, nil
}

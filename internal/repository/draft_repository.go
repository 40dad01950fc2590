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

// Drafts live only while a quiz is being authored, so they sit in
// Redis under a generous TTL rather than in Postgres.
const DraftTTL = 7 * 24 * time.Hour

type DraftRepository struct {
	redis *cache.RedisClient
}

func NewDraftRepository(redis *cache.RedisClient) *DraftRepository {
	return &DraftRepository{redis: redis}
}

func (r *DraftRepository) Save(ctx context.Context, userID string, drafts []models.QuestionDraft) error {
	key := fmt.Sprintf("draft:%s", userID)

	data, err := json.Marshal(drafts)
	if err != nil {
		return fmt.Errorf("failed to marshal drafts: %w", err)
	}

	return r.redis.Set(ctx, key, data, DraftTTL)
}

func (r *DraftRepository) Get(ctx context.Context, userID string) ([]models.QuestionDraft, error) {
	key := fmt.Sprintf("draft:%s", userID)

	data, err := r.redis.Get(ctx, key)
	if err != nil {
		return nil, apperrors.ErrDraftNotFound
	}

	var drafts []models.QuestionDraft
	if err := json.Unmarshal([]byte(data), &drafts); err != nil {
		return nil, fmt.Errorf("failed to unmarshal drafts: %w", err)
	}

	return drafts, nil
}

func (r *DraftRepository) Delete(ctx context.Context, userID string) error {
	key := fmt.Sprintf("draft:%s", userID)
	return r.redis.Delete(ctx, key)
}

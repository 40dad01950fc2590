package service

import (
	"context"

	"github.com/chessnerd435/study-app/internal/models"
)

const (
	// DefaultListLimit matches the explore view: the 20 newest quizzes.
	DefaultListLimit = 20
	MaxListLimit     = 100
)

type QuizStore interface {
	GetByID(ctx context.Context, id string) (*models.Quiz, error)
	ListPublic(ctx context.Context, limit int) ([]*models.Quiz, error)
	ListByCreator(ctx context.Context, creatorID string) ([]*models.Quiz, error)
}

// QuizService exposes the read side of the quiz collection. Quizzes
// are created only through draft submission and never changed after.
type QuizService struct {
	quizzes QuizStore
}

func NewQuizService(quizzes QuizStore) *QuizService {
	return &QuizService{quizzes: quizzes}
}

func (s *QuizService) ListPublic(ctx context.Context, limit int) ([]*models.Quiz, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	return s.quizzes.ListPublic(ctx, limit)
}

func (s *QuizService) ListByCreator(ctx context.Context, creatorID string) ([]*models.Quiz, error) {
	return s.quizzes.ListByCreator(ctx, creatorID)
}

func (s *QuizService) GetByID(ctx context.Context, id string) (*models.Quiz, error) {
	return s.quizzes.GetByID(ctx, id)
}

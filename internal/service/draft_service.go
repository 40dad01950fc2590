package service

import (
	"context"
	"errors"
	"log"

	"github.com/chessnerd435/study-app/internal/apperrors"
	"github.com/chessnerd435/study-app/internal/models"
)

type DraftStore interface {
	Save(ctx context.Context, userID string, drafts []models.QuestionDraft) error
	Get(ctx context.Context, userID string) ([]models.QuestionDraft, error)
	Delete(ctx context.Context, userID string) error
}

type QuizCreator interface {
	Create(ctx context.Context, quiz *models.Quiz) error
}

type ProfileGetter interface {
	GetByID(ctx context.Context, id string) (*models.Profile, error)
}

// DraftService drives the quiz authoring flow: one draft list per
// user, edited step by step, persisted as a quiz only on submit.
type DraftService struct {
	drafts    DraftStore
	quizzes   QuizCreator
	profiles  ProfileGetter
	publisher EventPublisher
}

func NewDraftService(drafts DraftStore, quizzes QuizCreator, profiles ProfileGetter, publisher EventPublisher) *DraftService {
	return &DraftService{
		drafts:    drafts,
		quizzes:   quizzes,
		profiles:  profiles,
		publisher: publisher,
	}
}

// GetOrCreate returns the user's draft list, starting a fresh one with
// a single default question if none is in progress.
func (s *DraftService) GetOrCreate(ctx context.Context, userID string) (DraftList, error) {
	drafts, err := s.drafts.Get(ctx, userID)
	if err == nil {
		return drafts, nil
	}
	if !errors.Is(err, apperrors.ErrDraftNotFound) {
		return nil, err
	}

	fresh := NewDraftList()
	if err := s.drafts.Save(ctx, userID, fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

// Reset discards any in-progress draft list and starts a new one.
func (s *DraftService) Reset(ctx context.Context, userID string) (DraftList, error) {
	fresh := NewDraftList()
	if err := s.drafts.Save(ctx, userID, fresh); err != nil {
		return nil, err
	}
	return fresh, nil
}

func (s *DraftService) AddQuestion(ctx context.Context, userID string) (DraftList, error) {
	return s.mutate(ctx, userID, func(d DraftList) (DraftList, error) {
		return d.Add(), nil
	})
}

func (s *DraftService) RemoveQuestion(ctx context.Context, userID string, index int) (DraftList, error) {
	return s.mutate(ctx, userID, func(d DraftList) (DraftList, error) {
		return d.Remove(index)
	})
}

func (s *DraftService) ToggleQuestion(ctx context.Context, userID string, index int) (DraftList, error) {
	return s.mutate(ctx, userID, func(d DraftList) (DraftList, error) {
		return d.Toggle(index)
	})
}

func (s *DraftService) UpdateQuestion(ctx context.Context, userID string, index int, draft models.QuestionDraft) (DraftList, error) {
	return s.mutate(ctx, userID, func(d DraftList) (DraftList, error) {
		return d.Update(index, draft)
	})
}

func (s *DraftService) mutate(ctx context.Context, userID string, op func(DraftList) (DraftList, error)) (DraftList, error) {
	drafts, err := s.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated, err := op(drafts)
	if err != nil {
		return nil, err
	}

	if err := s.drafts.Save(ctx, userID, updated); err != nil {
		return nil, err
	}

	return updated, nil
}

// Submit validates the draft list, persists the quiz and clears the
// drafts. Nothing is saved when validation fails. The creator's
// display name is snapshotted onto the quiz at this moment and never
// updated afterwards.
func (s *DraftService) Submit(ctx context.Context, userID, title string) (*models.Quiz, error) {
	drafts, err := s.drafts.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	creatorName := "Anonymous"
	if profile, err := s.profiles.GetByID(ctx, userID); err == nil && profile != nil {
		creatorName = profile.DisplayName
	}

	quiz, err := DraftList(drafts).Build(title, userID, creatorName)
	if err != nil {
		return nil, err
	}

	if err := s.quizzes.Create(ctx, quiz); err != nil {
		return nil, err
	}

	if err := s.drafts.Delete(ctx, userID); err != nil {
		log.Printf("Failed to clear drafts for user %s: %v", userID, err)
	}

	publishEvent(ctx, s.publisher, QueueQuizCreated, map[string]any{
		"quiz_id":        quiz.ID,
		"creator_id":     quiz.CreatorID,
		"title":          quiz.Title,
		"question_count": quiz.QuestionCount,
	})

	return quiz, nil
}

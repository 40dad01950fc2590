package service

import (
	"context"
	"log"
	"time"

	"github.com/chessnerd435/study-app/internal/apperrors"
	"github.com/chessnerd435/study-app/internal/models"

	"github.com/google/uuid"
)

// awardTimeout bounds the XP write on finish so a slow backend never
// holds up the results screen for more than a short fixed interval.
const awardTimeout = 2 * time.Second

type AttemptStore interface {
	Save(ctx context.Context, attempt *models.Attempt) error
	Get(ctx context.Context, id string) (*models.Attempt, error)
}

type QuizGetter interface {
	GetByID(ctx context.Context, id string) (*models.Quiz, error)
}

type XPAwarder interface {
	AwardXP(ctx context.Context, userID string, amount int) (int, error)
}

// AttemptService runs the quiz-taking state machine:
// answering → revealed per question, then finished, with retry
// looping back to the start of the same snapshot.
type AttemptService struct {
	attempts  AttemptStore
	quizzes   QuizGetter
	awarder   XPAwarder
	publisher EventPublisher
}

func NewAttemptService(attempts AttemptStore, quizzes QuizGetter, awarder XPAwarder, publisher EventPublisher) *AttemptService {
	return &AttemptService{
		attempts:  attempts,
		quizzes:   quizzes,
		awarder:   awarder,
		publisher: publisher,
	}
}

// Start fetches the quiz and opens an attempt at its first question.
// A quiz that cannot be fetched is indistinguishable from one that
// does not exist: both surface as ErrQuizNotFound.
func (s *AttemptService) Start(ctx context.Context, quizID, userID string) (*models.Attempt, error) {
	quiz, err := s.quizzes.GetByID(ctx, quizID)
	if err != nil {
		log.Printf("Failed to load quiz %s for attempt: %v", quizID, err)
		return nil, apperrors.ErrQuizNotFound
	}

	attempt := &models.Attempt{
		ID:        uuid.New().String(),
		QuizID:    quiz.ID,
		QuizTitle: quiz.Title,
		UserID:    userID,
		Questions: quiz.Questions,
		Phase:     models.AttemptPhaseAnswering,
		StartedAt: time.Now(),
	}

	if err := s.attempts.Save(ctx, attempt); err != nil {
		return nil, err
	}

	return attempt, nil
}

func (s *AttemptService) Get(ctx context.Context, id string) (*models.Attempt, error) {
	return s.attempts.Get(ctx, id)
}

// SubmitAnswer checks the pending answer against the current question
// and reveals the result.
func (s *AttemptService) SubmitAnswer(ctx context.Context, id string, optionIndex *int, answer string) (*models.Attempt, error) {
	attempt, err := s.attempts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := checkAnswer(attempt, optionIndex, answer); err != nil {
		return nil, err
	}

	if err := s.attempts.Save(ctx, attempt); err != nil {
		return nil, err
	}

	return attempt, nil
}

// Next advances past a revealed question. Finishing the last question
// awards XP once for this completion; a failed award is logged and
// otherwise dropped so the user still reaches the results screen.
func (s *AttemptService) Next(ctx context.Context, id string) (*models.Attempt, error) {
	attempt, err := s.attempts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	finished, err := advance(attempt)
	if err != nil {
		return nil, err
	}

	if err := s.attempts.Save(ctx, attempt); err != nil {
		return nil, err
	}

	if finished {
		s.finish(ctx, attempt)
	}

	return attempt, nil
}

// Retry restarts a finished attempt from its embedded question
// snapshot. Completing the retried run awards XP again.
func (s *AttemptService) Retry(ctx context.Context, id string) (*models.Attempt, error) {
	attempt, err := s.attempts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := retry(attempt); err != nil {
		return nil, err
	}

	if err := s.attempts.Save(ctx, attempt); err != nil {
		return nil, err
	}

	return attempt, nil
}

func (s *AttemptService) finish(ctx context.Context, attempt *models.Attempt) {
	xp := RewardXP(attempt.Score, len(attempt.Questions))

	if attempt.UserID != "" {
		awardCtx, cancel := context.WithTimeout(ctx, awardTimeout)
		defer cancel()

		if _, err := s.awarder.AwardXP(awardCtx, attempt.UserID, xp); err != nil {
			log.Printf("Failed to award %d xp to user %s: %v", xp, attempt.UserID, err)
		}
	}

	publishEvent(ctx, s.publisher, QueueQuizCompleted, map[string]any{
		"attempt_id": attempt.ID,
		"quiz_id":    attempt.QuizID,
		"user_id":    attempt.UserID,
		"score":      attempt.Score,
		"total":      len(attempt.Questions),
		"xp_earned":  xp,
	})
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/chessnerd435/study-app/internal/apperrors"
	"github.com/chessnerd435/study-app/internal/models"
)

type fakeAttemptStore struct {
	attempts map[string]*models.Attempt
	saveErr  error
}

func newFakeAttemptStore() *fakeAttemptStore {
	return &fakeAttemptStore{attempts: make(map[string]*models.Attempt)}
}

func (f *fakeAttemptStore) Save(ctx context.Context, attempt *models.Attempt) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	copied := *attempt
	f.attempts[attempt.ID] = &copied
	return nil
}

func (f *fakeAttemptStore) Get(ctx context.Context, id string) (*models.Attempt, error) {
	attempt, ok := f.attempts[id]
	if !ok {
		return nil, apperrors.ErrAttemptNotFound
	}
	copied := *attempt
	return &copied, nil
}

type fakeQuizGetter struct {
	quiz *models.Quiz
	err  error
}

func (f *fakeQuizGetter) GetByID(ctx context.Context, id string) (*models.Quiz, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.quiz, nil
}

type fakeXPAwarder struct {
	calls   []int
	userIDs []string
	err     error
}

func (f *fakeXPAwarder) AwardXP(ctx context.Context, userID string, amount int) (int, error) {
	f.calls = append(f.calls, amount)
	f.userIDs = append(f.userIDs, userID)
	if f.err != nil {
		return 0, f.err
	}
	return amount, nil
}

func testQuiz() *models.Quiz {
	return &models.Quiz{
		ID:    "quiz-1",
		Title: "Geography",
		Questions: []models.Question{
			{
				Type:          models.QuestionTypeMultipleChoice,
				Options:       []string{"Paris", "London", "Berlin", "Madrid"},
				CorrectAnswer: "Paris",
			},
			{
				Type:          models.QuestionTypeTypeIn,
				CorrectAnswer: "Jupiter",
			},
		},
	}
}

func newTestAttemptService(store *fakeAttemptStore, quizzes *fakeQuizGetter, awarder *fakeXPAwarder) *AttemptService {
	return NewAttemptService(store, quizzes, awarder, nil)
}

func TestAttemptServiceStart(t *testing.T) {
	store := newFakeAttemptStore()
	svc := newTestAttemptService(store, &fakeQuizGetter{quiz: testQuiz()}, &fakeXPAwarder{})

	attempt, err := svc.Start(context.Background(), "quiz-1", "user-1")
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}

	if attempt.ID == "" {
		t.Fatal("expected a generated attempt id")
	}
	if attempt.QuizID != "quiz-1" || attempt.QuizTitle != "Geography" {
		t.Fatalf("unexpected attempt: %+v", attempt)
	}
	if attempt.Phase != models.AttemptPhaseAnswering || attempt.Index != 0 {
		t.Fatalf("expected attempt at first question, got %+v", attempt)
	}
	if len(attempt.Questions) != 2 {
		t.Fatalf("expected question snapshot, got %d questions", len(attempt.Questions))
	}

	if _, ok := store.attempts[attempt.ID]; !ok {
		t.Fatal("expected attempt to be persisted")
	}
}

func TestAttemptServiceStart_QuizLookupFails(t *testing.T) {
	svc := newTestAttemptService(newFakeAttemptStore(), &fakeQuizGetter{err: errors.New("db down")}, &fakeXPAwarder{})

	_, err := svc.Start(context.Background(), "quiz-1", "user-1")
	if !errors.Is(err, apperrors.ErrQuizNotFound) {
		t.Fatalf("want ErrQuizNotFound, got %v", err)
	}
}

func runAttempt(t *testing.T, svc *AttemptService, id string, answers []func() (*int, string)) *models.Attempt {
	t.Helper()
	var attempt *models.Attempt
	var err error
	for _, answer := range answers {
		optionIndex, text := answer()
		if _, err = svc.SubmitAnswer(context.Background(), id, optionIndex, text); err != nil {
			t.Fatalf("SubmitAnswer error: %v", err)
		}
		if attempt, err = svc.Next(context.Background(), id); err != nil {
			t.Fatalf("Next error: %v", err)
		}
	}
	return attempt
}

func TestAttemptServiceFullRun_AwardsXPOnce(t *testing.T) {
	store := newFakeAttemptStore()
	awarder := &fakeXPAwarder{}
	svc := newTestAttemptService(store, &fakeQuizGetter{quiz: testQuiz()}, awarder)

	attempt, err := svc.Start(context.Background(), "quiz-1", "user-1")
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}

	final := runAttempt(t, svc, attempt.ID, []func() (*int, string){
		func() (*int, string) { return intPtr(0), "" },
		func() (*int, string) { return nil, " jupiter " },
	})

	if final.Phase != models.AttemptPhaseFinished || final.Score != 2 {
		t.Fatalf("unexpected final state: %+v", final)
	}

	if len(awarder.calls) != 1 {
		t.Fatalf("expected exactly one XP award, got %d", len(awarder.calls))
	}
	if awarder.calls[0] != 70 {
		t.Fatalf("expected 70 xp for a perfect 2-question run, got %d", awarder.calls[0])
	}
	if awarder.userIDs[0] != "user-1" {
		t.Fatalf("xp awarded to wrong user: %q", awarder.userIDs[0])
	}

	if _, err := svc.Next(context.Background(), attempt.ID); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition for next on finished attempt, got %v", err)
	}
	if len(awarder.calls) != 1 {
		t.Fatalf("expected no extra awards, got %d", len(awarder.calls))
	}
}

func TestAttemptServicePartialScore(t *testing.T) {
	store := newFakeAttemptStore()
	awarder := &fakeXPAwarder{}
	svc := newTestAttemptService(store, &fakeQuizGetter{quiz: testQuiz()}, awarder)

	attempt, err := svc.Start(context.Background(), "quiz-1", "user-1")
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}

	final := runAttempt(t, svc, attempt.ID, []func() (*int, string){
		func() (*int, string) { return intPtr(1), "" },
		func() (*int, string) { return nil, "Jupiter" },
	})

	if final.Score != 1 {
		t.Fatalf("expected score 1, got %d", final.Score)
	}
	if len(awarder.calls) != 1 || awarder.calls[0] != 10 {
		t.Fatalf("expected a single 10 xp award, got %v", awarder.calls)
	}
}

func TestAttemptServiceAnonymous_NoAward(t *testing.T) {
	store := newFakeAttemptStore()
	awarder := &fakeXPAwarder{}
	svc := newTestAttemptService(store, &fakeQuizGetter{quiz: testQuiz()}, awarder)

	attempt, err := svc.Start(context.Background(), "quiz-1", "")
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}

	runAttempt(t, svc, attempt.ID, []func() (*int, string){
		func() (*int, string) { return intPtr(0), "" },
		func() (*int, string) { return nil, "Jupiter" },
	})

	if len(awarder.calls) != 0 {
		t.Fatalf("expected no awards for an anonymous attempt, got %v", awarder.calls)
	}
}

func TestAttemptServiceRetry_ReawardsOnRecompletion(t *testing.T) {
	store := newFakeAttemptStore()
	quizzes := &fakeQuizGetter{quiz: testQuiz()}
	awarder := &fakeXPAwarder{}
	svc := newTestAttemptService(store, quizzes, awarder)

	attempt, err := svc.Start(context.Background(), "quiz-1", "user-1")
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}

	runAttempt(t, svc, attempt.ID, []func() (*int, string){
		func() (*int, string) { return intPtr(0), "" },
		func() (*int, string) { return nil, "wrong" },
	})

	// The quiz backing the attempt goes away; retry must still work
	// from the snapshot inside the attempt.
	quizzes.err = errors.New("db down")

	retried, err := svc.Retry(context.Background(), attempt.ID)
	if err != nil {
		t.Fatalf("Retry error: %v", err)
	}
	if retried.Phase != models.AttemptPhaseAnswering || retried.Index != 0 || retried.Score != 0 {
		t.Fatalf("unexpected retried state: %+v", retried)
	}

	runAttempt(t, svc, attempt.ID, []func() (*int, string){
		func() (*int, string) { return intPtr(0), "" },
		func() (*int, string) { return nil, "Jupiter" },
	})

	if len(awarder.calls) != 2 {
		t.Fatalf("expected an award per completion, got %v", awarder.calls)
	}
	if awarder.calls[0] != 10 || awarder.calls[1] != 70 {
		t.Fatalf("unexpected awards: %v", awarder.calls)
	}
}

func TestAttemptServiceRetry_NotFinished(t *testing.T) {
	store := newFakeAttemptStore()
	svc := newTestAttemptService(store, &fakeQuizGetter{quiz: testQuiz()}, &fakeXPAwarder{})

	attempt, err := svc.Start(context.Background(), "quiz-1", "user-1")
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}

	if _, err := svc.Retry(context.Background(), attempt.ID); !errors.Is(err, apperrors.ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition, got %v", err)
	}
}

func TestAttemptServiceFinish_AwardFailureIsDropped(t *testing.T) {
	store := newFakeAttemptStore()
	awarder := &fakeXPAwarder{err: errors.New("db down")}
	svc := newTestAttemptService(store, &fakeQuizGetter{quiz: testQuiz()}, awarder)

	attempt, err := svc.Start(context.Background(), "quiz-1", "user-1")
	if err != nil {
		t.Fatalf("Start error: %v", err)
	}

	final := runAttempt(t, svc, attempt.ID, []func() (*int, string){
		func() (*int, string) { return intPtr(0), "" },
		func() (*int, string) { return nil, "Jupiter" },
	})

	if final.Phase != models.AttemptPhaseFinished {
		t.Fatalf("expected the run to finish despite the failed award, got %+v", final)
	}
}

func TestAttemptServiceGet_NotFound(t *testing.T) {
	svc := newTestAttemptService(newFakeAttemptStore(), &fakeQuizGetter{quiz: testQuiz()}, &fakeXPAwarder{})

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, apperrors.ErrAttemptNotFound) {
		t.Fatalf("want ErrAttemptNotFound, got %v", err)
	}
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/chessnerd435/study-app/internal/apperrors"
	"github.com/chessnerd435/study-app/internal/models"
)

type fakeDraftStore struct {
	drafts map[string][]models.QuestionDraft
	getErr error
}

func newFakeDraftStore() *fakeDraftStore {
	return &fakeDraftStore{drafts: make(map[string][]models.QuestionDraft)}
}

func (f *fakeDraftStore) Save(ctx context.Context, userID string, drafts []models.QuestionDraft) error {
	f.drafts[userID] = drafts
	return nil
}

func (f *fakeDraftStore) Get(ctx context.Context, userID string) ([]models.QuestionDraft, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	drafts, ok := f.drafts[userID]
	if !ok {
		return nil, apperrors.ErrDraftNotFound
	}
	return drafts, nil
}

func (f *fakeDraftStore) Delete(ctx context.Context, userID string) error {
	delete(f.drafts, userID)
	return nil
}

type fakeQuizCreator struct {
	created *models.Quiz
	err     error
}

func (f *fakeQuizCreator) Create(ctx context.Context, quiz *models.Quiz) error {
	if f.err != nil {
		return f.err
	}
	f.created = quiz
	return nil
}

type fakeProfileGetter struct {
	profile *models.Profile
	err     error
}

func (f *fakeProfileGetter) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profile, nil
}

func newTestDraftService(store *fakeDraftStore, creator *fakeQuizCreator, profiles *fakeProfileGetter) *DraftService {
	return NewDraftService(store, creator, profiles, nil)
}

func TestDraftServiceGetOrCreate(t *testing.T) {
	store := newFakeDraftStore()
	svc := newTestDraftService(store, &fakeQuizCreator{}, &fakeProfileGetter{})

	drafts, err := svc.GetOrCreate(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetOrCreate error: %v", err)
	}
	if len(drafts) != 1 {
		t.Fatalf("expected one fresh draft, got %d", len(drafts))
	}
	if _, ok := store.drafts["user-1"]; !ok {
		t.Fatal("expected the fresh list to be persisted")
	}

	again, err := svc.GetOrCreate(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("GetOrCreate error: %v", err)
	}
	if len(again) != 1 {
		t.Fatalf("expected the same single draft back, got %d", len(again))
	}
}

func TestDraftServiceGetOrCreate_StoreError(t *testing.T) {
	store := newFakeDraftStore()
	store.getErr = errors.New("redis down")
	svc := newTestDraftService(store, &fakeQuizCreator{}, &fakeProfileGetter{})

	if _, err := svc.GetOrCreate(context.Background(), "user-1"); err == nil {
		t.Fatal("expected store errors to surface")
	}
}

func TestDraftServiceEditFlow(t *testing.T) {
	store := newFakeDraftStore()
	svc := newTestDraftService(store, &fakeQuizCreator{}, &fakeProfileGetter{})
	ctx := context.Background()

	drafts, err := svc.AddQuestion(ctx, "user-1")
	if err != nil {
		t.Fatalf("AddQuestion error: %v", err)
	}
	if len(drafts) != 2 {
		t.Fatalf("expected 2 drafts, got %d", len(drafts))
	}

	drafts, err = svc.UpdateQuestion(ctx, "user-1", 0, models.QuestionDraft{
		Text:          "Capital of France?",
		Type:          models.QuestionTypeMultipleChoice,
		Options:       []string{"Paris", "London", "Berlin", "Madrid"},
		CorrectOption: 0,
	})
	if err != nil {
		t.Fatalf("UpdateQuestion error: %v", err)
	}
	if drafts[0].Text != "Capital of France?" {
		t.Fatalf("unexpected draft: %+v", drafts[0])
	}

	drafts, err = svc.ToggleQuestion(ctx, "user-1", 1)
	if err != nil {
		t.Fatalf("ToggleQuestion error: %v", err)
	}
	if drafts[1].Type != models.QuestionTypeTypeIn {
		t.Fatalf("expected type_in after toggle, got %q", drafts[1].Type)
	}

	drafts, err = svc.RemoveQuestion(ctx, "user-1", 1)
	if err != nil {
		t.Fatalf("RemoveQuestion error: %v", err)
	}
	if len(drafts) != 1 {
		t.Fatalf("expected 1 draft after removal, got %d", len(drafts))
	}

	if len(store.drafts["user-1"]) != 1 {
		t.Fatal("expected every edit to be persisted")
	}
}

func TestDraftServiceReset(t *testing.T) {
	store := newFakeDraftStore()
	svc := newTestDraftService(store, &fakeQuizCreator{}, &fakeProfileGetter{})
	ctx := context.Background()

	if _, err := svc.AddQuestion(ctx, "user-1"); err != nil {
		t.Fatalf("AddQuestion error: %v", err)
	}

	drafts, err := svc.Reset(ctx, "user-1")
	if err != nil {
		t.Fatalf("Reset error: %v", err)
	}
	if len(drafts) != 1 {
		t.Fatalf("expected a fresh single-draft list, got %d", len(drafts))
	}
}

func TestDraftServiceSubmit(t *testing.T) {
	store := newFakeDraftStore()
	store.drafts["user-1"] = validDraftList()
	creator := &fakeQuizCreator{}
	profiles := &fakeProfileGetter{profile: &models.Profile{ID: "user-1", DisplayName: "Alice"}}
	svc := newTestDraftService(store, creator, profiles)

	quiz, err := svc.Submit(context.Background(), "user-1", "Geography")
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}

	if creator.created == nil {
		t.Fatal("expected the quiz to be persisted")
	}
	if quiz.CreatorName != "Alice" {
		t.Fatalf("expected the creator name snapshot, got %q", quiz.CreatorName)
	}
	if quiz.QuestionCount != 2 {
		t.Fatalf("unexpected question count: %d", quiz.QuestionCount)
	}

	if _, ok := store.drafts["user-1"]; ok {
		t.Fatal("expected drafts to be cleared after submit")
	}
}

func TestDraftServiceSubmit_ProfileLookupFails(t *testing.T) {
	store := newFakeDraftStore()
	store.drafts["user-1"] = validDraftList()
	creator := &fakeQuizCreator{}
	profiles := &fakeProfileGetter{err: errors.New("db down")}
	svc := newTestDraftService(store, creator, profiles)

	quiz, err := svc.Submit(context.Background(), "user-1", "Geography")
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if quiz.CreatorName != "Anonymous" {
		t.Fatalf("expected fallback creator name, got %q", quiz.CreatorName)
	}
}

func TestDraftServiceSubmit_NilProfile(t *testing.T) {
	store := newFakeDraftStore()
	store.drafts["user-1"] = validDraftList()
	creator := &fakeQuizCreator{}
	// A getter that reports neither a profile nor an error must not
	// crash the submit; the name falls back like a lookup failure.
	svc := newTestDraftService(store, creator, &fakeProfileGetter{})

	quiz, err := svc.Submit(context.Background(), "user-1", "Geography")
	if err != nil {
		t.Fatalf("Submit error: %v", err)
	}
	if quiz.CreatorName != "Anonymous" {
		t.Fatalf("expected fallback creator name, got %q", quiz.CreatorName)
	}
}

func TestDraftServiceSubmit_ValidationKeepsDrafts(t *testing.T) {
	store := newFakeDraftStore()
	drafts := validDraftList()
	drafts[0].Options[1] = ""
	store.drafts["user-1"] = drafts
	creator := &fakeQuizCreator{}
	svc := newTestDraftService(store, creator, &fakeProfileGetter{})

	_, err := svc.Submit(context.Background(), "user-1", "Geography")
	var vErr *apperrors.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	if creator.created != nil {
		t.Fatal("expected no quiz on failed validation")
	}
	if _, ok := store.drafts["user-1"]; !ok {
		t.Fatal("expected drafts to survive failed validation")
	}
}

func TestDraftServiceSubmit_CreateFails(t *testing.T) {
	store := newFakeDraftStore()
	store.drafts["user-1"] = validDraftList()
	creator := &fakeQuizCreator{err: errors.New("db down")}
	svc := newTestDraftService(store, creator, &fakeProfileGetter{})

	if _, err := svc.Submit(context.Background(), "user-1", "Geography"); err == nil {
		t.Fatal("expected create errors to surface")
	}
	if _, ok := store.drafts["user-1"]; !ok {
		t.Fatal("expected drafts to survive a failed create")
	}
}

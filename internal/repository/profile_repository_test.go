package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/chessnerd435/study-app/internal/apperrors"
	"github.com/chessnerd435/study-app/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
)

func newProfileRepoWithMock(t *testing.T) (*ProfileRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return NewProfileRepository(db), mock, db
}

func profileRows(p *models.Profile) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "display_name", "password_hash", "provider", "xp", "streak",
		"quizzes_created", "quizzes_completed", "last_active", "created_at",
	}).AddRow(p.ID, p.Email, p.DisplayName, p.PasswordHash, p.Provider, p.XP, p.Streak,
		p.QuizzesCreated, p.QuizzesCompleted, p.LastActive, p.CreatedAt)
}

func TestProfileGetByID(t *testing.T) {
	repo, mock, db := newProfileRepoWithMock(t)
	defer db.Close()

	want := &models.Profile{
		ID:          "u-1",
		Email:       "alice@example.com",
		DisplayName: "Alice",
		Provider:    "password",
		XP:          120,
		LastActive:  time.Now(),
		CreatedAt:   time.Now(),
	}

	mock.ExpectQuery(`(?s)SELECT .+ FROM profiles\s+WHERE id = \$1`).
		WithArgs("u-1").
		WillReturnRows(profileRows(want))

	got, err := repo.GetByID(context.Background(), "u-1")
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.ID != "u-1" || got.Email != "alice@example.com" || got.XP != 120 {
		t.Fatalf("unexpected profile: %+v", got)
	}
}

func TestProfileGetByID_NotFound(t *testing.T) {
	repo, mock, db := newProfileRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT .+ FROM profiles\s+WHERE id = \$1`).
		WithArgs("ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "ghost")
	if !errors.Is(err, apperrors.ErrProfileNotFound) {
		t.Fatalf("want ErrProfileNotFound, got %v", err)
	}
}

func TestProfileGetByEmail_NotFound(t *testing.T) {
	repo, mock, db := newProfileRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`(?s)SELECT .+ FROM profiles\s+WHERE email = \$1`).
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@example.com")
	if !errors.Is(err, apperrors.ErrProfileNotFound) {
		t.Fatalf("want ErrProfileNotFound, got %v", err)
	}
}

func TestProfileCreate(t *testing.T) {
	repo, mock, db := newProfileRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO profiles`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	profile := &models.Profile{ID: "u-1", Email: "alice@example.com", DisplayName: "Alice", Provider: "password"}
	if err := repo.Create(context.Background(), profile); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if profile.CreatedAt.IsZero() || profile.LastActive.IsZero() {
		t.Fatal("expected timestamps to be stamped on create")
	}
}

func TestProfileCreate_DuplicateEmail(t *testing.T) {
	repo, mock, db := newProfileRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO profiles`).
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), &models.Profile{ID: "u-1", Email: "alice@example.com"})
	if !errors.Is(err, apperrors.ErrEmailTaken) {
		t.Fatalf("want ErrEmailTaken, got %v", err)
	}
}

func TestProfileAddXP(t *testing.T) {
	repo, mock, db := newProfileRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE profiles SET xp = xp \+ \$1 WHERE id = \$2 RETURNING xp`).
		WithArgs(30, "u-1").
		WillReturnRows(sqlmock.NewRows([]string{"xp"}).AddRow(150))

	total, err := repo.AddXP(context.Background(), "u-1", 30)
	if err != nil {
		t.Fatalf("AddXP error: %v", err)
	}
	if total != 150 {
		t.Fatalf("unexpected total: %d", total)
	}
}

func TestProfileAddXP_NotFound(t *testing.T) {
	repo, mock, db := newProfileRepoWithMock(t)
	defer db.Close()

	mock.ExpectQuery(`UPDATE profiles SET xp = xp \+ \$1 WHERE id = \$2 RETURNING xp`).
		WithArgs(30, "ghost").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.AddXP(context.Background(), "ghost", 30)
	if !errors.Is(err, apperrors.ErrProfileNotFound) {
		t.Fatalf("want ErrProfileNotFound, got %v", err)
	}
}

func TestProfileTouchLastActive(t *testing.T) {
	repo, mock, db := newProfileRepoWithMock(t)
	defer db.Close()

	mock.ExpectExec(`UPDATE profiles SET last_active = \$1 WHERE id = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := repo.TouchLastActive(context.Background(), "u-1"); err != nil {
		t.Fatalf("TouchLastActive error: %v", err)
	}
}

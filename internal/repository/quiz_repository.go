package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chessnerd435/study-app/internal/apperrors"
	"github.com/chessnerd435/study-app/internal/models"

	"github.com/google/uuid"
)

type QuizRepository struct {
	db *sql.DB
}

func NewQuizRepository(db *sql.DB) *QuizRepository {
	return &QuizRepository{db: db}
}

// Create persists a new quiz document and assigns its id. Quizzes are
// immutable after this point; there is no update or delete.
func (r *QuizRepository) Create(ctx context.Context, quiz *models.Quiz) error {
	quiz.ID = uuid.New().String()
	quiz.CreatedAt = time.Now()

	questionsJSON, err := json.Marshal(quiz.Questions)
	if err != nil {
		return fmt.Errorf("failed to marshal questions: %w", err)
	}

	query := `
		INSERT INTO quizzes (id, title, creator_id, creator_name, question_count, is_public, questions, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = r.db.ExecContext(ctx, query,
		quiz.ID,
		quiz.Title,
		quiz.CreatorID,
		quiz.CreatorName,
		quiz.QuestionCount,
		quiz.IsPublic,
		questionsJSON,
		quiz.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create quiz: %w", err)
	}

	return nil
}

func (r *QuizRepository) GetByID(ctx context.Context, id string) (*models.Quiz, error) {
	query := `
		SELECT id, title, creator_id, creator_name, question_count, is_public, questions, created_at
		FROM quizzes
		WHERE id = $1
	`

	return r.scanQuiz(r.db.QueryRowContext(ctx, query, id))
}

func (r *QuizRepository) ListPublic(ctx context.Context, limit int) ([]*models.Quiz, error) {
	query := `
		SELECT id, title, creator_id, creator_name, question_count, is_public, questions, created_at
		FROM quizzes
		WHERE is_public = TRUE
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	defer rows.Close()

	return r.scanQuizzes(rows)
}

func (r *QuizRepository) ListByCreator(ctx context.Context, creatorID string) ([]*models.Quiz, error) {
	query := `
		SELECT id, title, creator_id, creator_name, question_count, is_public, questions, created_at
		FROM quizzes
		WHERE creator_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, creatorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list quizzes: %w", err)
	}
	defer rows.Close()

	return r.scanQuizzes(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *QuizRepository) scanQuiz(row rowScanner) (*models.Quiz, error) {
	quiz := &models.Quiz{}
	var questionsJSON []byte

	err := row.Scan(
		&quiz.ID,
		&quiz.Title,
		&quiz.CreatorID,
		&quiz.CreatorName,
		&quiz.QuestionCount,
		&quiz.IsPublic,
		&questionsJSON,
		&quiz.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.ErrQuizNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get quiz: %w", err)
	}

	if err := json.Unmarshal(questionsJSON, &quiz.Questions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal questions: %w", err)
	}

	return quiz, nil
}

func (r *QuizRepository) scanQuizzes(rows *sql.Rows) ([]*models.Quiz, error) {
	var quizzes []*models.Quiz
	for rows.Next() {
		quiz, err := r.scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, quiz)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate quizzes: %w", err)
	}
	return quizzes, nil
}

package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/chessnerd435/study-app/internal/apperrors"
	"github.com/chessnerd435/study-app/internal/dto"
	"github.com/chessnerd435/study-app/internal/models"
	"github.com/chessnerd435/study-app/internal/service"

	"github.com/gin-gonic/gin"
)

// respondError maps the application error taxonomy onto HTTP statuses.
// Anything unrecognized is a persistence-level failure surfaced as a
// generic 500.
func respondError(c *gin.Context, err error) {
	var validationErr *apperrors.ValidationError
	if errors.As(err, &validationErr) {
		dto.JsonValidationError(c, validationErr.Reason, validationErr.Question)
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrQuizNotFound),
		errors.Is(err, apperrors.ErrProfileNotFound),
		errors.Is(err, apperrors.ErrAttemptNotFound),
		errors.Is(err, apperrors.ErrDraftNotFound):
		dto.JsonError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, apperrors.ErrInvalidCredentials),
		errors.Is(err, apperrors.ErrInvalidToken),
		errors.Is(err, apperrors.ErrGoogleVerification):
		dto.JsonError(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, apperrors.ErrEmailTaken):
		dto.JsonError(c, http.StatusConflict, err.Error())
	case errors.Is(err, apperrors.ErrAnswerRequired),
		errors.Is(err, apperrors.ErrInvalidTransition):
		dto.JsonError(c, http.StatusBadRequest, err.Error())
	default:
		dto.JsonError(c, http.StatusInternalServerError, "Something went wrong")
	}
}

func toProfileDTO(p *models.Profile) dto.ProfileDTO {
	return dto.ProfileDTO{
		ID:               p.ID,
		Email:            p.Email,
		DisplayName:      p.DisplayName,
		Provider:         p.Provider,
		XP:               p.XP,
		Streak:           p.Streak,
		QuizzesCreated:   p.QuizzesCreated,
		QuizzesCompleted: p.QuizzesCompleted,
		LastActive:       p.LastActive.Format(time.RFC3339),
		CreatedAt:        p.CreatedAt.Format(time.RFC3339),
	}
}

func toQuizSummaryDTO(q *models.Quiz) dto.QuizSummaryDTO {
	return dto.QuizSummaryDTO{
		ID:            q.ID,
		Title:         q.Title,
		CreatorID:     q.CreatorID,
		CreatorName:   q.CreatorName,
		QuestionCount: q.QuestionCount,
		CreatedAt:     q.CreatedAt.Format(time.RFC3339),
	}
}

func toQuestionDTO(q models.Question) dto.QuestionDTO {
	return dto.QuestionDTO{
		Text:    q.Text,
		Type:    q.Type,
		Options: q.Options,
	}
}

func toQuizDTO(q *models.Quiz) dto.QuizDTO {
	questions := make([]dto.QuestionDTO, len(q.Questions))
	for i, question := range q.Questions {
		questions[i] = toQuestionDTO(question)
	}
	return dto.QuizDTO{
		QuizSummaryDTO: toQuizSummaryDTO(q),
		Questions:      questions,
	}
}

func toAttemptDTO(a *models.Attempt) dto.AttemptDTO {
	out := dto.AttemptDTO{
		ID:            a.ID,
		QuizID:        a.QuizID,
		QuizTitle:     a.QuizTitle,
		Phase:         a.Phase,
		Index:         a.Index,
		Score:         a.Score,
		QuestionCount: len(a.Questions),
	}

	switch a.Phase {
	case models.AttemptPhaseAnswering:
		question := toQuestionDTO(a.Questions[a.Index])
		out.Question = &question
	case models.AttemptPhaseRevealed:
		question := toQuestionDTO(a.Questions[a.Index])
		out.Question = &question
		correct := a.LastCorrect
		out.Correct = &correct
		out.CorrectAnswer = a.Questions[a.Index].CorrectAnswer
	case models.AttemptPhaseFinished:
		xp := service.RewardXP(a.Score, len(a.Questions))
		out.XPEarned = &xp
	}

	return out
}

package service

import (
	"fmt"
	"strings"

	"github.com/chessnerd435/study-app/internal/apperrors"
	"github.com/chessnerd435/study-app/internal/models"
)

// DraftList is the ordered question-draft sequence of one in-progress
// quiz. It never drops below one element.
type DraftList []models.QuestionDraft

func NewDraftList() DraftList {
	return DraftList{models.NewQuestionDraft()}
}

func (d DraftList) Add() DraftList {
	return append(d, models.NewQuestionDraft())
}

func (d DraftList) Remove(index int) (DraftList, error) {
	if index < 0 || index >= len(d) {
		return d, apperrors.NewValidationError(0, fmt.Sprintf("no question at position %d", index+1))
	}
	if len(d) == 1 {
		return d, apperrors.NewValidationError(0, "a quiz needs at least one question")
	}
	return append(d[:index:index], d[index+1:]...), nil
}

// Toggle switches the draft at index between the two question
// variants. The question text survives the switch; everything else is
// reset to the variant's defaults.
func (d DraftList) Toggle(index int) (DraftList, error) {
	if index < 0 || index >= len(d) {
		return d, apperrors.NewValidationError(0, fmt.Sprintf("no question at position %d", index+1))
	}

	out := make(DraftList, len(d))
	copy(out, d)

	current := out[index]
	if current.Type == models.QuestionTypeMultipleChoice {
		out[index] = models.QuestionDraft{
			Text: current.Text,
			Type: models.QuestionTypeTypeIn,
		}
	} else {
		out[index] = models.QuestionDraft{
			Text:    current.Text,
			Type:    models.QuestionTypeMultipleChoice,
			Options: make([]string, models.MultipleChoiceOptions),
		}
	}

	return out, nil
}

func (d DraftList) Update(index int, draft models.QuestionDraft) (DraftList, error) {
	if index < 0 || index >= len(d) {
		return d, apperrors.NewValidationError(0, fmt.Sprintf("no question at position %d", index+1))
	}

	switch draft.Type {
	case models.QuestionTypeMultipleChoice:
		if len(draft.Options) != models.MultipleChoiceOptions {
			return d, apperrors.NewValidationError(index+1, "a multiple-choice question needs exactly 4 options")
		}
		if draft.CorrectOption < 0 || draft.CorrectOption >= models.MultipleChoiceOptions {
			return d, apperrors.NewValidationError(index+1, "correct option out of range")
		}
		draft.Answer = ""
	case models.QuestionTypeTypeIn:
		draft.Options = nil
		draft.CorrectOption = 0
	default:
		return d, apperrors.NewValidationError(index+1, "unknown question type")
	}

	out := make(DraftList, len(d))
	copy(out, d)
	out[index] = draft

	return out, nil
}

// Validate enforces the submission rules in order and reports the
// first violation with the offending question's 1-based position.
func (d DraftList) Validate(title string) error {
	if strings.TrimSpace(title) == "" {
		return apperrors.NewValidationError(0, "quiz title is empty")
	}

	for i, q := range d {
		if strings.TrimSpace(q.Text) == "" {
			return apperrors.NewValidationError(i+1, "question text is empty")
		}

		switch q.Type {
		case models.QuestionTypeMultipleChoice:
			for _, option := range q.Options {
				if strings.TrimSpace(option) == "" {
					return apperrors.NewValidationError(i+1, "has empty options")
				}
			}
		case models.QuestionTypeTypeIn:
			if strings.TrimSpace(q.Answer) == "" {
				return apperrors.NewValidationError(i+1, "needs an answer")
			}
		default:
			return apperrors.NewValidationError(i+1, "unknown question type")
		}
	}

	return nil
}

// Build validates and assembles the immutable quiz document. The
// multiple-choice correct answer is stored as the literal option
// string at the chosen index, title and question count denormalized.
func (d DraftList) Build(title, creatorID, creatorName string) (*models.Quiz, error) {
	if err := d.Validate(title); err != nil {
		return nil, err
	}

	questions := make([]models.Question, len(d))
	for i, q := range d {
		switch q.Type {
		case models.QuestionTypeMultipleChoice:
			questions[i] = models.Question{
				Text:          q.Text,
				Type:          q.Type,
				Options:       q.Options,
				CorrectAnswer: q.Options[q.CorrectOption],
			}
		case models.QuestionTypeTypeIn:
			questions[i] = models.Question{
				Text:          q.Text,
				Type:          q.Type,
				CorrectAnswer: q.Answer,
			}
		}
	}

	return &models.Quiz{
		Title:         strings.TrimSpace(title),
		CreatorID:     creatorID,
		CreatorName:   creatorName,
		QuestionCount: len(d),
		IsPublic:      true,
		Questions:     questions,
	}, nil
}

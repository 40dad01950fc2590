package service

import (
	"strings"

	"github.com/chessnerd435/study-app/internal/apperrors"
	"github.com/chessnerd435/study-app/internal/models"
)

const (
	xpPerCorrectAnswer = 10
	xpPerfectBonus     = 50
)

// RewardXP is the experience awarded for finishing an attempt: 10 per
// correct answer plus a 50 bonus for a perfect run.
func RewardXP(score, total int) int {
	xp := score * xpPerCorrectAnswer
	if score == total {
		xp += xpPerfectBonus
	}
	return xp
}

// EvaluateAnswer decides whether the given response answers the
// question correctly. Multiple-choice compares the selected option's
// text to the stored correct answer exactly; type-in compares trimmed
// and lower-cased strings.
func EvaluateAnswer(q models.Question, optionIndex *int, answer string) (bool, error) {
	switch q.Type {
	case models.QuestionTypeMultipleChoice:
		if optionIndex == nil {
			return false, apperrors.ErrAnswerRequired
		}
		if *optionIndex < 0 || *optionIndex >= len(q.Options) {
			return false, apperrors.ErrAnswerRequired
		}
		return q.Options[*optionIndex] == q.CorrectAnswer, nil
	default:
		trimmed := strings.TrimSpace(answer)
		if trimmed == "" {
			return false, apperrors.ErrAnswerRequired
		}
		return strings.EqualFold(trimmed, strings.TrimSpace(q.CorrectAnswer)), nil
	}
}

// checkAnswer runs the answering → revealed transition in place,
// incrementing the score by exactly 1 on a correct response.
func checkAnswer(a *models.Attempt, optionIndex *int, answer string) error {
	if a.Phase != models.AttemptPhaseAnswering {
		return apperrors.ErrInvalidTransition
	}

	correct, err := EvaluateAnswer(a.Questions[a.Index], optionIndex, answer)
	if err != nil {
		return err
	}

	if correct {
		a.Score++
	}
	a.LastCorrect = correct
	a.Phase = models.AttemptPhaseRevealed

	return nil
}

// advance runs the revealed → answering/finished transition in place
// and reports whether the attempt just finished.
func advance(a *models.Attempt) (bool, error) {
	if a.Phase != models.AttemptPhaseRevealed {
		return false, apperrors.ErrInvalidTransition
	}

	a.LastCorrect = false

	if a.Index+1 < len(a.Questions) {
		a.Index++
		a.Phase = models.AttemptPhaseAnswering
		return false, nil
	}

	a.Phase = models.AttemptPhaseFinished
	return true, nil
}

// retry resets a finished attempt to its initial state. The question
// snapshot inside the attempt is reused; the quiz document is not
// fetched again.
func retry(a *models.Attempt) error {
	if a.Phase != models.AttemptPhaseFinished {
		return apperrors.ErrInvalidTransition
	}

	a.Index = 0
	a.Score = 0
	a.LastCorrect = false
	a.Phase = models.AttemptPhaseAnswering

	return nil
}

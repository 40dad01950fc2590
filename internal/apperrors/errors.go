package apperrors

import (
	"errors"
	"fmt"
)

var (
	// auth errors
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidToken       = errors.New("invalid token")
	ErrGoogleVerification = errors.New("google token verification failed")

	// lookup errors
	ErrQuizNotFound    = errors.New("quiz not found")
	ErrProfileNotFound = errors.New("profile not found")
	ErrAttemptNotFound = errors.New("attempt not found")
	ErrDraftNotFound   = errors.New("draft not found")

	// quiz-taking errors
	ErrAnswerRequired    = errors.New("an answer is required before checking")
	ErrInvalidTransition = errors.New("action not allowed in current state")
)

// ValidationError reports the first authoring rule a submission breaks.
// Question is the 1-based position of the offending question, or 0 when
// the violation is not tied to a question (empty title, removal of the
// last draft).
type ValidationError struct {
	Question int
	Reason   string
}

func (e *ValidationError) Error() string {
	if e.Question > 0 {
		return fmt.Sprintf("question %d: %s", e.Question, e.Reason)
	}
	return e.Reason
}

func NewValidationError(question int, reason string) *ValidationError {
	return &ValidationError{Question: question, Reason: reason}
}

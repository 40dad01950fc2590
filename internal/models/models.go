package models

import "time"

const (
	QuestionTypeMultipleChoice = "multiple_choice"
	QuestionTypeTypeIn         = "type_in"
)

// MultipleChoiceOptions is fixed: every multiple-choice question has
// exactly four options.
const MultipleChoiceOptions = 4

type Profile struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	DisplayName      string    `json:"display_name"`
	PasswordHash     string    `json:"-"`
	Provider         string    `json:"provider"`
	XP               int       `json:"xp"`
	Streak           int       `json:"streak"`
	QuizzesCreated   int       `json:"quizzes_created"`
	QuizzesCompleted int       `json:"quizzes_completed"`
	LastActive       time.Time `json:"last_active"`
	CreatedAt        time.Time `json:"created_at"`
}

// Question is one quiz item. Type discriminates the two variants:
// multiple_choice carries Options (4 entries) with CorrectAnswer equal
// to one of them, type_in carries only CorrectAnswer, compared
// case-insensitively and trimmed at evaluation time.
type Question struct {
	Text          string   `json:"text"`
	Type          string   `json:"type"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer string   `json:"correct_answer"`
}

type Quiz struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	CreatorID     string     `json:"creator_id"`
	CreatorName   string     `json:"creator_name"`
	QuestionCount int        `json:"question_count"`
	IsPublic      bool       `json:"is_public"`
	Questions     []Question `json:"questions"`
	CreatedAt     time.Time  `json:"created_at"`
}

// QuestionDraft is an in-progress question during authoring. For
// multiple-choice drafts CorrectOption indexes Options; for type_in
// drafts Answer holds the expected string and Options is empty.
type QuestionDraft struct {
	Text          string   `json:"text"`
	Type          string   `json:"type"`
	Options       []string `json:"options,omitempty"`
	CorrectOption int      `json:"correct_option"`
	Answer        string   `json:"answer,omitempty"`
}

// NewQuestionDraft returns the default draft: a multiple-choice
// question with empty text, four empty options, correct option 0.
func NewQuestionDraft() QuestionDraft {
	return QuestionDraft{
		Type:    QuestionTypeMultipleChoice,
		Options: make([]string, MultipleChoiceOptions),
	}
}

const (
	AttemptPhaseAnswering = "answering"
	AttemptPhaseRevealed  = "revealed"
	AttemptPhaseFinished  = "finished"
)

// Attempt is the ephemeral state of one quiz run. The quiz's questions
// are snapshotted into the attempt when it starts so progression and
// retry never go back to the quiz document.
type Attempt struct {
	ID        string     `json:"id"`
	QuizID    string     `json:"quiz_id"`
	QuizTitle string     `json:"quiz_title"`
	UserID    string     `json:"user_id,omitempty"`
	Questions []Question `json:"questions"`
	Index     int        `json:"index"`
	Score     int        `json:"score"`
	Phase     string     `json:"phase"`
	// LastCorrect is meaningful only in the revealed phase.
	LastCorrect bool      `json:"last_correct"`
	StartedAt   time.Time `json:"started_at"`
}

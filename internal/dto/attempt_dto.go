package dto

type SubmitAnswerRequest struct {
	// OptionIndex answers a multiple-choice question, Answer a type-in
	// one; exactly one of them is expected.
	OptionIndex *int   `json:"option_index"`
	Answer      string `json:"answer"`
}

// AttemptDTO is the client's view of a running attempt. The current
// question is included without its correct answer while answering;
// Correct and CorrectAnswer are filled only in the revealed phase,
// XPEarned only when finished.
type AttemptDTO struct {
	ID            string       `json:"id"`
	QuizID        string       `json:"quiz_id"`
	QuizTitle     string       `json:"quiz_title"`
	Phase         string       `json:"phase"`
	Index         int          `json:"index"`
	Score         int          `json:"score"`
	QuestionCount int          `json:"question_count"`
	Question      *QuestionDTO `json:"question,omitempty"`
	Correct       *bool        `json:"correct,omitempty"`
	CorrectAnswer string       `json:"correct_answer,omitempty"`
	XPEarned      *int         `json:"xp_earned,omitempty"`
}

type AttemptResponse struct {
	Attempt AttemptDTO `json:"attempt"`
}

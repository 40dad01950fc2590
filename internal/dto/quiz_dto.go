package dto

// QuestionDTO never carries the correct answer; answers are checked
// server-side during an attempt.
type QuestionDTO struct {
	Text    string   `json:"text"`
	Type    string   `json:"type"`
	Options []string `json:"options,omitempty"`
}

type QuizSummaryDTO struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	CreatorID     string `json:"creator_id"`
	CreatorName   string `json:"creator_name"`
	QuestionCount int    `json:"question_count"`
	CreatedAt     string `json:"created_at"`
}

type QuizDTO struct {
	QuizSummaryDTO
	Questions []QuestionDTO `json:"questions"`
}

type ListQuizzesResponse struct {
	Quizzes []QuizSummaryDTO `json:"quizzes"`
}

type GetQuizResponse struct {
	Quiz QuizDTO `json:"quiz"`
}

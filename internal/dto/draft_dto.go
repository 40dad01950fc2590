package dto

type QuestionDraftDTO struct {
	Text          string   `json:"text"`
	Type          string   `json:"type"`
	Options       []string `json:"options,omitempty"`
	CorrectOption int      `json:"correct_option"`
	Answer        string   `json:"answer,omitempty"`
}

type DraftListResponse struct {
	Questions []QuestionDraftDTO `json:"questions"`
}

type UpdateDraftQuestionRequest struct {
	Text          string   `json:"text"`
	Type          string   `json:"type" binding:"required,oneof=multiple_choice type_in"`
	Options       []string `json:"options"`
	CorrectOption int      `json:"correct_option"`
	Answer        string   `json:"answer"`
}

// Title validation happens in the draft service so an empty or blank
// title surfaces as the same ValidationError as other authoring rules.
type SubmitDraftRequest struct {
	Title string `json:"title"`
}

type SubmitDraftResponse struct {
	QuizID  string `json:"quiz_id"`
	Message string `json:"message"`
}

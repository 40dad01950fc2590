package handlers

import (
	"net/http"
	"strconv"

	"github.com/chessnerd435/study-app/internal/dto"
	"github.com/chessnerd435/study-app/internal/models"
	"github.com/chessnerd435/study-app/internal/service"

	"github.com/gin-gonic/gin"
)

type DraftHandler struct {
	drafts *service.DraftService
}

func NewDraftHandler(drafts *service.DraftService) *DraftHandler {
	return &DraftHandler{drafts: drafts}
}

func (h *DraftHandler) Get(c *gin.Context) {
	userID := c.GetString("user_id")

	drafts, err := h.drafts.GetOrCreate(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toDraftListResponse(drafts))
}

// Reset discards any in-progress draft and starts over with a single
// default question.
func (h *DraftHandler) Reset(c *gin.Context) {
	userID := c.GetString("user_id")

	drafts, err := h.drafts.Reset(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toDraftListResponse(drafts))
}

func (h *DraftHandler) AddQuestion(c *gin.Context) {
	userID := c.GetString("user_id")

	drafts, err := h.drafts.AddQuestion(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toDraftListResponse(drafts))
}

func (h *DraftHandler) RemoveQuestion(c *gin.Context) {
	userID := c.GetString("user_id")

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		dto.JsonError(c, http.StatusBadRequest, "Invalid question index")
		return
	}

	drafts, err := h.drafts.RemoveQuestion(c.Request.Context(), userID, index)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toDraftListResponse(drafts))
}

func (h *DraftHandler) ToggleQuestion(c *gin.Context) {
	userID := c.GetString("user_id")

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		dto.JsonError(c, http.StatusBadRequest, "Invalid question index")
		return
	}

	drafts, err := h.drafts.ToggleQuestion(c.Request.Context(), userID, index)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toDraftListResponse(drafts))
}

func (h *DraftHandler) UpdateQuestion(c *gin.Context) {
	userID := c.GetString("user_id")

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		dto.JsonError(c, http.StatusBadRequest, "Invalid question index")
		return
	}

	var req dto.UpdateDraftQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.JsonError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	draft := models.QuestionDraft{
		Text:          req.Text,
		Type:          req.Type,
		Options:       req.Options,
		CorrectOption: req.CorrectOption,
		Answer:        req.Answer,
	}

	drafts, err := h.drafts.UpdateQuestion(c.Request.Context(), userID, index, draft)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, toDraftListResponse(drafts))
}

func (h *DraftHandler) Submit(c *gin.Context) {
	userID := c.GetString("user_id")

	var req dto.SubmitDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.JsonError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	quiz, err := h.drafts.Submit(c.Request.Context(), userID, req.Title)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SubmitDraftResponse{
		QuizID:  quiz.ID,
		Message: "Quiz created successfully",
	})
}

func toDraftListResponse(drafts service.DraftList) dto.DraftListResponse {
	questions := make([]dto.QuestionDraftDTO, len(drafts))
	for i, d := range drafts {
		questions[i] = dto.QuestionDraftDTO{
			Text:          d.Text,
			Type:          d.Type,
			Options:       d.Options,
			CorrectOption: d.CorrectOption,
			Answer:        d.Answer,
		}
	}
	return dto.DraftListResponse{Questions: questions}
}

package handlers

import (
	"net/http"

	"github.com/chessnerd435/study-app/internal/dto"
	"github.com/chessnerd435/study-app/internal/service"

	"github.com/gin-gonic/gin"
)

type AttemptHandler struct {
	attempts *service.AttemptService
}

func NewAttemptHandler(attempts *service.AttemptService) *AttemptHandler {
	return &AttemptHandler{attempts: attempts}
}

func (h *AttemptHandler) Start(c *gin.Context) {
	userID := c.GetString("user_id")

	attempt, err := h.attempts.Start(c.Request.Context(), c.Param("id"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AttemptResponse{Attempt: toAttemptDTO(attempt)})
}

func (h *AttemptHandler) Get(c *gin.Context) {
	attempt, err := h.attempts.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AttemptResponse{Attempt: toAttemptDTO(attempt)})
}

func (h *AttemptHandler) SubmitAnswer(c *gin.Context) {
	var req dto.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.JsonError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	attempt, err := h.attempts.SubmitAnswer(c.Request.Context(), c.Param("id"), req.OptionIndex, req.Answer)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AttemptResponse{Attempt: toAttemptDTO(attempt)})
}

func (h *AttemptHandler) Next(c *gin.Context) {
	attempt, err := h.attempts.Next(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AttemptResponse{Attempt: toAttemptDTO(attempt)})
}

func (h *AttemptHandler) Retry(c *gin.Context) {
	attempt, err := h.attempts.Retry(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.AttemptResponse{Attempt: toAttemptDTO(attempt)})
}

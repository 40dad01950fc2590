package handlers

import (
	"net/http"
	"strconv"

	"github.com/chessnerd435/study-app/internal/dto"
	"github.com/chessnerd435/study-app/internal/service"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	quizzes *service.QuizService
}

func NewQuizHandler(quizzes *service.QuizService) *QuizHandler {
	return &QuizHandler{quizzes: quizzes}
}

// ListPublic returns the newest public quizzes, capped by the limit
// query parameter (default 20).
func (h *QuizHandler) ListPublic(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	quizzes, err := h.quizzes.ListPublic(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	summaries := make([]dto.QuizSummaryDTO, 0, len(quizzes))
	for _, quiz := range quizzes {
		summaries = append(summaries, toQuizSummaryDTO(quiz))
	}

	c.JSON(http.StatusOK, dto.ListQuizzesResponse{Quizzes: summaries})
}

func (h *QuizHandler) ListMine(c *gin.Context) {
	userID := c.GetString("user_id")

	quizzes, err := h.quizzes.ListByCreator(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	summaries := make([]dto.QuizSummaryDTO, 0, len(quizzes))
	for _, quiz := range quizzes {
		summaries = append(summaries, toQuizSummaryDTO(quiz))
	}

	c.JSON(http.StatusOK, dto.ListQuizzesResponse{Quizzes: summaries})
}

func (h *QuizHandler) Get(c *gin.Context) {
	quiz, err := h.quizzes.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.GetQuizResponse{Quiz: toQuizDTO(quiz)})
}

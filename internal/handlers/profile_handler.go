package handlers

import (
	"net/http"

	"github.com/chessnerd435/study-app/internal/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	auth *service.AuthService
}

func NewProfileHandler(auth *service.AuthService) *ProfileHandler {
	return &ProfileHandler{auth: auth}
}

// Me re-runs the load-or-create profile pass for the authenticated
// identity, so callers use it both as a plain read and as a refresh
// after cross-cutting writes.
func (h *ProfileHandler) Me(c *gin.Context) {
	userID := c.GetString("user_id")
	email := c.GetString("email")

	profile, err := h.auth.LoadProfile(c.Request.Context(), userID, email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": toProfileDTO(profile)})
}

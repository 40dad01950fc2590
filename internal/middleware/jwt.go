package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/chessnerd435/study-app/internal/dto"
	"github.com/chessnerd435/study-app/pkg/jwt"

	"github.com/gin-gonic/gin"
)

// BlacklistChecker reports whether an access token's JTI has been
// revoked by a logout.
type BlacklistChecker interface {
	IsTokenBlacklisted(ctx context.Context, jti string) (bool, error)
}

func JWTAuth(jwtSecret string, blacklist BlacklistChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			dto.JsonError(c, http.StatusUnauthorized, "Authorization header is required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			dto.JsonError(c, http.StatusUnauthorized, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwt.ValidateAccessToken(parts[1], jwtSecret)
		if err != nil {
			dto.JsonError(c, http.StatusUnauthorized, "Invalid token")
			c.Abort()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		revoked, err := blacklist.IsTokenBlacklisted(ctx, claims.JTI)
		if err != nil {
			dto.JsonError(c, http.StatusUnauthorized, "Failed to validate token")
			c.Abort()
			return
		}
		if revoked {
			dto.JsonError(c, http.StatusUnauthorized, "Token has been revoked")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)

		c.Next()
	}
}

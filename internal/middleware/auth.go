package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/osc-dev/contest-api/internal/models"
	"github.com/osc-dev/contest-api/internal/service"
)

// Auth decodes the bearer token, when present, and attaches the claims to
// the request context. A missing or invalid token leaves the context
// unauthenticated; individual operations decide whether that is fatal.
func Auth(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			c.Next()
			return
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			c.Next()
			return
		}

		c.Request = c.Request.WithContext(models.WithClaims(c.Request.Context(), claims))
		c.Next()
	}
}

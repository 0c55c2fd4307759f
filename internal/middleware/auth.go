package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	jwtsvc "radioplayer/internal/pkg/jwt"
	"radioplayer/internal/pkg/response"
)

// SessionCookieName is the cookie the HTML pages use; API clients may
// send the same token as a Bearer header instead.
const SessionCookieName = "session"

// CurrentUser resolves the session token to a user id and stores it on
// the context. It never aborts: every route works anonymously, handlers
// that need a user check for it themselves or sit behind RequireAuth.
func CurrentUser(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := tokenFromRequest(c)
		if tokenStr != "" {
			if claims, err := jwt.ValidateToken(tokenStr); err == nil {
				c.Set("user_id", claims.UserID)
			}
		}
		c.Next()
	}
}

// RequireAuth rejects anonymous requests. Must run after CurrentUser.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetInt64("user_id") == 0 {
			response.AbortError(c, http.StatusUnauthorized, "Authentication required")
			return
		}
		c.Next()
	}
}

// UserIDFromContext returns the authenticated user id, nil if anonymous.
func UserIDFromContext(c *gin.Context) *int64 {
	id := c.GetInt64("user_id")
	if id == 0 {
		return nil
	}
	return &id
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookieName); err == nil && cookie != "" {
		return cookie
	}

	h := c.GetHeader("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return ""
}

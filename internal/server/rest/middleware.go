package rest

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/gophtasks/internal/server/auth"
)

const (
	bearerPrefix = "bearer "

	userIDContextKey = "userID"
	emailContextKey  = "email"
)

// requireAuth rejects requests without a valid Bearer session token. On
// success the account id and email from the token claims are stored in the
// request context for the handlers.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse(codeUnauthorized))
			return
		}

		claims, err := auth.ParseToken(header[len(bearerPrefix):], s.jwtSecret)
		if err != nil || claims.Subject == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse(codeUnauthorized))
			return
		}

		c.Set(userIDContextKey, claims.Subject)
		c.Set(emailContextKey, claims.Email)
		c.Next()
	}
}

func currentUserID(c *gin.Context) string {
	return c.GetString(userIDContextKey)
}

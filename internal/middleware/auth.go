package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foca/internal/model"
)

const sessionKey = "session"

// SessionResolver resolves the session of an API request.
type SessionResolver interface {
	Session(w http.ResponseWriter, r *http.Request) *model.Session
}

// Auth is a middleware to protect routes that require a resolved session.
func Auth(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		s := resolver.Session(c.Writer, c.Request)
		if !s.Resolved() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied", "loading": false})
			return
		}

		c.Set(sessionKey, s)
		c.Next()
	}
}

// Session returns the session stored by Auth.
func Session(c *gin.Context) *model.Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(*model.Session); ok {
			return s
		}
	}
	return &model.Session{}
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foca/internal/middleware"
	"foca/internal/model"
)

// LinkCalendar starts the Google OAuth flow for the session user.
func (h *Handler) LinkCalendar(c *gin.Context) {
	if h.auth == nil {
		h.fail(c, http.StatusServiceUnavailable, "calendar sync is not configured", nil)
		return
	}
	h.auth.BeginUserAuth(c.Writer, c.Request)
}

// CalendarCallback stores the granted tokens and returns to the app.
func (h *Handler) CalendarCallback(c *gin.Context) {
	if h.auth == nil {
		h.fail(c, http.StatusServiceUnavailable, "calendar sync is not configured", nil)
		return
	}

	q := c.Request.URL.Query()
	q.Del("scope")
	c.Request.URL.RawQuery = q.Encode()

	gothUser, err := h.auth.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "calendar authorization failed", err)
		return
	}

	s := middleware.Session(c)
	err = h.stores.Users.SaveGoogleCredentials(c.Request.Context(), &model.GoogleCredentials{
		UserID:       s.UserID(),
		AccessToken:  gothUser.AccessToken,
		RefreshToken: gothUser.RefreshToken,
		TokenExpiry:  gothUser.ExpiresAt,
	})
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "failed to save calendar credentials", err)
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, h.cfg.FrontendURL)
}

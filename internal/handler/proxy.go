package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ProxyLimit caps the rows returned by GetDashboard.
const ProxyLimit = 10

const proxyError = "failed to load finances"

var errMissingUserID = errors.New("userId is required")

// GetDashboard returns the latest finance rows of the userId query
// parameter. It answers on behalf of clients that must not hold the
// database credential, so every failure is a 500 with a fixed message.
func (h *Handler) GetDashboard(c *gin.Context) {
	raw := c.Query("userId")
	if raw == "" {
		h.fail(c, http.StatusInternalServerError, proxyError, errMissingUserID)
		return
	}
	userID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, proxyError, err)
		return
	}

	rows, err := h.stores.Finances.RecentFinances(c.Request.Context(), userID, ProxyLimit)
	if err != nil {
		h.fail(c, http.StatusInternalServerError, proxyError, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

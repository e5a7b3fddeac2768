package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"foca/internal/middleware"
	"foca/internal/model"
)

type healthRequest struct {
	Category    string           `json:"category" binding:"required"`
	Value       *decimal.Decimal `json:"value"`
	Item        *string          `json:"item"`
	Description *string          `json:"description"`
	Unit        *string          `json:"unit"`
	RecordedAt  *time.Time       `json:"recorded_at"`
}

func (h *Handler) Health(c *gin.Context) {
	showPage(h, c, h.pages.Health)
}

func (h *Handler) CreateHealth(c *gin.Context) {
	var req healthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	category, ok := model.ParseHealthCategory(req.Category)
	if !ok {
		h.fail(c, http.StatusBadRequest, "unknown health category", nil)
		return
	}
	if req.Value == nil {
		h.fail(c, http.StatusBadRequest, "value is required", nil)
		return
	}
	if req.Value.IsNegative() {
		h.fail(c, http.StatusBadRequest, "value must not be negative", nil)
		return
	}

	recordedAt := time.Now()
	if req.RecordedAt != nil {
		recordedAt = *req.RecordedAt
	}
	unit := blankToNil(req.Unit)
	if unit == nil {
		def := category.DefaultUnit()
		unit = &def
	}

	s := middleware.Session(c)
	rec := &model.HealthRecord{
		UserID:      s.UserID(),
		Category:    category,
		Value:       *req.Value,
		Item:        blankToNil(req.Item),
		Description: blankToNil(req.Description),
		Unit:        unit,
		RecordedAt:  recordedAt,
	}

	if err := h.stores.Health.InsertHealth(c.Request.Context(), rec); err != nil {
		h.fail(c, http.StatusInternalServerError, "failed to save health record", err)
		return
	}

	view := h.pages.Health.Get(s).Refresh(c.Request.Context())
	c.JSON(http.StatusCreated, gin.H{"record": rec, "view": view})
}

func (h *Handler) DeleteHealth(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		h.fail(c, http.StatusBadRequest, "invalid id", nil)
		return
	}

	s := middleware.Session(c)
	deleted, err := h.stores.Health.DeleteHealth(c.Request.Context(), id, s.UserID())
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "failed to delete health record", err)
		return
	}

	view := h.pages.Health.Get(s).Refresh(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"deleted": deleted, "view": view})
}

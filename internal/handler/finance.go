package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"foca/internal/middleware"
	"foca/internal/model"
)

type financeRequest struct {
	Type        model.FinanceType `json:"type" binding:"required,oneof=income expense"`
	Category    string            `json:"category" binding:"required"`
	Amount      decimal.Decimal   `json:"amount"`
	Description *string           `json:"description"`
	Date        model.Date        `json:"date"`
}

func (h *Handler) Finances(c *gin.Context) {
	showPage(h, c, h.pages.Finances)
}

func (h *Handler) CreateFinance(c *gin.Context) {
	var req financeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	if !req.Amount.IsPositive() {
		h.fail(c, http.StatusBadRequest, "amount must be greater than zero", nil)
		return
	}
	if req.Date.IsZero() {
		h.fail(c, http.StatusBadRequest, "date is required", nil)
		return
	}

	s := middleware.Session(c)
	category, _ := model.ParseFinanceCategory(req.Category)
	rec := &model.FinanceRecord{
		UserID:          s.UserID(),
		Type:            req.Type,
		Category:        category,
		Amount:          req.Amount,
		Description:     blankToNil(req.Description),
		TransactionDate: req.Date,
	}

	if err := h.stores.Finances.InsertFinance(c.Request.Context(), rec); err != nil {
		h.fail(c, http.StatusInternalServerError, "failed to save transaction", err)
		return
	}

	view := h.pages.Finances.Get(s).Refresh(c.Request.Context())
	c.JSON(http.StatusCreated, gin.H{"record": rec, "view": view})
}

func (h *Handler) DeleteFinance(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		h.fail(c, http.StatusBadRequest, "invalid id", nil)
		return
	}

	s := middleware.Session(c)
	deleted, err := h.stores.Finances.DeleteFinance(c.Request.Context(), id, s.UserID())
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "failed to delete transaction", err)
		return
	}

	view := h.pages.Finances.Get(s).Refresh(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"deleted": deleted, "view": view})
}

func blankToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

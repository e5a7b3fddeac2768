package handler

import (
	"net/http"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/gin-gonic/gin"

	"foca/internal/middleware"
	"foca/internal/model"
)

type academicRequest struct {
	DocName string  `json:"doc_name" binding:"required"`
	Summary *string `json:"summary"`
	Tag     string  `json:"tag"`
}

func (h *Handler) Academic(c *gin.Context) {
	showPage(h, c, h.pages.Academic)
}

func (h *Handler) CreateAcademic(c *gin.Context) {
	var req academicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	summary, err := toMarkdown(blankToNil(req.Summary))
	if err != nil {
		h.fail(c, http.StatusBadRequest, "invalid summary", err)
		return
	}

	s := middleware.Session(c)
	tag, _ := model.ParseAcademicTag(req.Tag)
	item := &model.AcademicItem{
		UserID:  s.UserID(),
		DocName: strings.TrimSpace(req.DocName),
		Summary: summary,
		Tag:     tag,
	}

	if err := h.stores.Academic.InsertAcademic(c.Request.Context(), item); err != nil {
		h.fail(c, http.StatusInternalServerError, "failed to save academic item", err)
		return
	}

	view := h.pages.Academic.Get(s).Refresh(c.Request.Context())
	c.JSON(http.StatusCreated, gin.H{"record": item, "view": view})
}

func (h *Handler) DeleteAcademic(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		h.fail(c, http.StatusBadRequest, "invalid id", nil)
		return
	}

	s := middleware.Session(c)
	deleted, err := h.stores.Academic.DeleteAcademic(c.Request.Context(), id, s.UserID())
	if err != nil {
		h.fail(c, http.StatusInternalServerError, "failed to delete academic item", err)
		return
	}

	view := h.pages.Academic.Get(s).Refresh(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"deleted": deleted, "view": view})
}

// toMarkdown converts rich-text summaries pasted from the editor. Plain text
// is kept as typed.
func toMarkdown(s *string) (*string, error) {
	if s == nil || !strings.Contains(*s, "<") {
		return s, nil
	}

	converter := md.NewConverter("", true, nil)
	markdown, err := converter.ConvertString(*s)
	if err != nil {
		return nil, err
	}
	return &markdown, nil
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/litey/litey-go/internal/ngwords"
	"github.com/litey/litey-go/pkg/metrics"
)

type wordRequest struct {
	Word *string `json:"word" binding:"required"`
}

// GetWords returns the banned words as newline-joined plain text.
func (h *Handler) GetWords(c *gin.Context) {
	joined, err := h.ngs.Joined(c.Request.Context())
	if err != nil {
		storeFailure(c, "list ng words", err)
		return
	}
	c.String(http.StatusOK, joined)
}

func (h *Handler) PostWord(c *gin.Context) {
	var req wordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	if err := h.ngs.Add(c.Request.Context(), *req.Word); err != nil {
		if errors.Is(err, ngwords.ErrDuplicateWord) {
			c.String(http.StatusConflict, err.Error())
			return
		}
		storeFailure(c, "post ng word", err)
		return
	}
	metrics.ModerationActions.WithLabelValues("ng-post").Inc()
	c.String(http.StatusOK, "OK")
}

func (h *Handler) DeleteWord(c *gin.Context) {
	var req wordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	if err := h.ngs.Remove(c.Request.Context(), *req.Word); err != nil {
		storeFailure(c, "delete ng word", err)
		return
	}
	metrics.ModerationActions.WithLabelValues(actionWordDelete).Inc()
	c.String(http.StatusOK, "OK")
}

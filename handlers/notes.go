package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/litey/litey-go/pkg/metrics"
	"github.com/litey/litey-go/pkg/middleware"
)

type postNoteRequest struct {
	Content *string `json:"content" binding:"required"`
}

type deleteNoteRequest struct {
	ID *string `json:"id" binding:"required"`
}

// GetNotes returns the whole feed, or the single note named by ?id= (null when absent).
func (h *Handler) GetNotes(c *gin.Context) {
	if id := c.Query("id"); id != "" {
		n, err := h.notes.Get(c.Request.Context(), id)
		if err != nil {
			storeFailure(c, "get note", err)
			return
		}
		c.JSON(http.StatusOK, n)
		return
	}
	list, err := h.notes.List(c.Request.Context())
	if err != nil {
		storeFailure(c, "list notes", err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *Handler) PostNote(c *gin.Context) {
	var req postNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	if _, err := h.notes.Post(c.Request.Context(), *req.Content, middleware.ClientIP(c.Request)); err != nil {
		storeFailure(c, "post note", err)
		return
	}
	metrics.NotesPosted.Inc()
	c.String(http.StatusOK, "OK")
}

func (h *Handler) DeleteNote(c *gin.Context) {
	var req deleteNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	if err := h.notes.Delete(c.Request.Context(), *req.ID); err != nil {
		storeFailure(c, "delete note", err)
		return
	}
	metrics.ModerationActions.WithLabelValues(actionNoteDelete).Inc()
	c.String(http.StatusOK, "OK")
}

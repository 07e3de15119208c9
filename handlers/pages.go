package handlers

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/litey/litey-go/internal/imageproxy"
	"github.com/litey/litey-go/pkg/logger"
	"github.com/litey/litey-go/pkg/metrics"
	"github.com/litey/litey-go/pkg/middleware"
)

// Home renders the feed page. Masking happens in the template so stored notes stay untouched.
func (h *Handler) Home(c *gin.Context) {
	ctx := c.Request.Context()
	list, err := h.notes.List(ctx)
	if err != nil {
		storeFailure(c, "list notes", err)
		return
	}
	words, err := h.ngs.List(ctx)
	if err != nil {
		storeFailure(c, "list ng words", err)
		return
	}
	c.HTML(http.StatusOK, "index.html", gin.H{"notes": list, "ngWords": words})
}

// Static serves files from the static root for any unmatched GET or HEAD path.
func (h *Handler) Static(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.String(http.StatusNotFound, "file not found")
		return
	}
	name, ok := h.static.Resolve(c.Request.URL.Path)
	if !ok {
		c.String(http.StatusNotFound, "file not found")
		return
	}
	f, err := os.Open(name)
	if err != nil {
		logger.Warnf("open static file %s: %v", name, err)
		c.String(http.StatusNotFound, "file not found")
		return
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		logger.Warnf("stat static file %s: %v", name, err)
		c.String(http.StatusNotFound, "file not found")
		return
	}
	// ServeContent, unlike ServeFile, does not redirect ".../index.html" requests
	http.ServeContent(c.Writer, c.Request, fi.Name(), fi.ModTime(), f)
}

// ImageProxy fetches ?url= and relays its body and content type.
func (h *Handler) ImageProxy(c *gin.Context) {
	raw := c.Query("url")
	if raw == "" {
		middleware.NoStore(c)
		c.String(http.StatusBadRequest, "url is required")
		return
	}
	res, err := h.proxy.Fetch(c.Request.Context(), raw)
	if err != nil {
		status := http.StatusBadGateway
		switch {
		case errors.Is(err, imageproxy.ErrInvalidURL), errors.Is(err, imageproxy.ErrUnsupportedScheme):
			status = http.StatusBadRequest
		case errors.Is(err, imageproxy.ErrUserAgent):
			status = http.StatusInternalServerError
		}
		metrics.ImageProxyFetches.WithLabelValues("error").Inc()
		logger.Warnf("image proxy: %v", err)
		middleware.NoStore(c)
		c.String(status, http.StatusText(status))
		return
	}
	metrics.ImageProxyFetches.WithLabelValues("ok").Inc()
	contentType := res.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, res.Body)
}

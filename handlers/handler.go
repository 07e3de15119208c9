package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/litey/litey-go/internal/imageproxy"
	"github.com/litey/litey-go/internal/ngwords"
	"github.com/litey/litey-go/internal/notes"
	"github.com/litey/litey-go/internal/static"
	"github.com/litey/litey-go/pkg/logger"
	"github.com/litey/litey-go/pkg/middleware"
)

const (
	shortCacheSeconds = 60
	longCacheSeconds  = 3600

	actionNoteDelete = "litey-delete"
	actionWordDelete = "ng-delete"
)

// Handler holds the services every route depends on.
type Handler struct {
	notes   *notes.Service
	ngs     *ngwords.Service
	limiter middleware.Limiter
	proxy   *imageproxy.Proxy
	static  *static.Resolver
}

func NewHandler(n *notes.Service, w *ngwords.Service, lim middleware.Limiter, p *imageproxy.Proxy, s *static.Resolver) *Handler {
	return &Handler{notes: n, ngs: w, limiter: lim, proxy: p, static: s}
}

// Register wires the board API, the feed page and the static fallback.
// The feed page requires HTML templates to be loaded on r beforehand.
func (h *Handler) Register(r *gin.Engine) {
	short := middleware.CacheControl(shortCacheSeconds)
	long := middleware.CacheControl(longCacheSeconds)

	litey := r.Group("/api/litey")
	litey.GET("/get", short, h.GetNotes)
	litey.POST("/post", h.PostNote)
	litey.POST("/delete", middleware.RateLimit(h.limiter, actionNoteDelete), h.DeleteNote)
	litey.GET("/image-proxy", long, h.ImageProxy)

	ng := r.Group("/api/ng")
	ng.GET("/get", short, h.GetWords)
	ng.POST("/post", h.PostWord)
	ng.POST("/delete", middleware.RateLimit(h.limiter, actionWordDelete), h.DeleteWord)

	r.GET("/", short, h.Home)
	r.NoRoute(long, h.Static)
}

func storeFailure(c *gin.Context, op string, err error) {
	logger.Errorf("%s: %v", op, err)
	middleware.NoStore(c)
	c.String(http.StatusInternalServerError, "Internal Server Error")
}

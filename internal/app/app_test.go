package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	mr "github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/litey/litey-go/internal/config"
	"github.com/litey/litey-go/pkg/middleware"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	tplDir := filepath.Join(dir, "templates")
	require.NoError(t, os.MkdirAll(tplDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tplDir, "index.html"), []byte(`{{ len .notes }}`), 0o644))
	return &config.Config{
		MongoDB:    config.MongoDBConfig{Backend: "memory"},
		RateLimit:  config.RateLimitConfig{Backend: "memory", Times: 1, Window: 24 * time.Hour},
		Static:     config.StaticConfig{Root: filepath.Join(dir, "static"), Indexes: []string{"index.html"}},
		Templates:  config.TemplatesConfig{Dir: tplDir},
		ImageProxy: config.ImageProxyConfig{UserAgentFile: filepath.Join(dir, "ua"), Timeout: time.Second},
	}
}

func TestApp_MemoryBackends(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig(t)
	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close(context.Background())

	r, err := a.Router()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/litey/post", strings.NewReader(`{"content":"hi"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "1", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	require.Equal(t, http.StatusOK, w.Code)
}

func TestApp_RedisLimiter(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	defer m.Close()

	cfg := testConfig(t)
	cfg.RateLimit.Backend = "redis"
	cfg.Redis.URI = "redis://" + m.Addr() + "/0"

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close(context.Background())
	require.IsType(t, &middleware.RedisLimiter{}, a.Limiter)
	require.Contains(t, a.checks(), "redis")
}

func TestApp_RedisUnavailable(t *testing.T) {
	m, err := mr.Run()
	require.NoError(t, err)
	addr := m.Addr()
	m.Close()

	cfg := testConfig(t)
	cfg.RateLimit.Backend = "redis"
	cfg.Redis.URI = "redis://" + addr + "/0"

	_, err = New(context.Background(), cfg)
	require.Error(t, err)
}

func TestApp_MissingTemplates(t *testing.T) {
	cfg := testConfig(t)
	cfg.Templates.Dir = filepath.Join(t.TempDir(), "nope")
	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	_, err = a.Router()
	require.Error(t, err)
}

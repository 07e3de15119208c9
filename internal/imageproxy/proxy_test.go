package imageproxy

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/litey/litey-go/internal/config"
	"github.com/stretchr/testify/require"
)

func newTestProxy(t *testing.T, allowPrivate bool, maxBytes int64) *Proxy {
	t.Helper()
	uaFile := filepath.Join(t.TempDir(), "user_agent.txt")
	require.NoError(t, os.WriteFile(uaFile, []byte("LiteYBot/1.0\n\n"), 0o644))
	return New(config.ImageProxyConfig{
		UserAgentFile: uaFile,
		Timeout:       2 * time.Second,
		MaxBytes:      maxBytes,
		AllowPrivate:  allowPrivate,
	})
}

func TestFetch_ReturnsBodyAndContentType(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.UserAgent()
		w.Header().Set("Content-Type", "image/png")
		w.Write([]byte("\x89PNG"))
	}))
	defer srv.Close()

	p := newTestProxy(t, true, 1024)
	res, err := p.Fetch(context.Background(), srv.URL+"/a.png")
	require.NoError(t, err)
	require.Equal(t, "image/png", res.ContentType)
	require.Equal(t, []byte("\x89PNG"), res.Body)
	require.Equal(t, "LiteYBot/1.0", gotUA)
}

func TestFetch_UserAgentReadPerRequest(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.UserAgent()
	}))
	defer srv.Close()

	p := newTestProxy(t, true, 1024)
	require.NoError(t, os.WriteFile(p.userAgentFile, []byte("Changed/2.0\n"), 0o644))
	_, err := p.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, "Changed/2.0", gotUA)
}

func TestFetch_RejectsScheme(t *testing.T) {
	p := newTestProxy(t, true, 1024)
	_, err := p.Fetch(context.Background(), "file:///etc/passwd")
	require.True(t, errors.Is(err, ErrUnsupportedScheme))
}

func TestFetch_RejectsLoopback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	p := newTestProxy(t, false, 1024)
	_, err := p.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrBlockedAddress), "got %v", err)
}

func TestFetch_EnforcesSizeCap(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// chunked, so the cap is hit while reading rather than from Content-Length
		w.(http.Flusher).Flush()
		w.Write([]byte(strings.Repeat("a", 64)))
	}))
	defer srv.Close()

	p := newTestProxy(t, true, 16)
	_, err := p.Fetch(context.Background(), srv.URL)
	require.True(t, errors.Is(err, ErrTooLarge))
}

func TestFetch_MissingUserAgentFile(t *testing.T) {
	p := New(config.ImageProxyConfig{UserAgentFile: filepath.Join(t.TempDir(), "none"), Timeout: time.Second})
	_, err := p.Fetch(context.Background(), "http://example.com/")
	require.True(t, errors.Is(err, ErrUserAgent))
}

func TestFetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	p := newTestProxy(t, true, 1024)
	p.timeout = 100 * time.Millisecond
	start := time.Now()
	_, err := p.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	require.Less(t, time.Since(start), 2*time.Second)
}

func TestBlocked(t *testing.T) {
	for _, s := range []string{"127.0.0.1", "10.1.2.3", "192.168.0.1", "169.254.169.254", "::1", "0.0.0.0", "fd00::1",
		"0.1.2.3", "100.64.0.1", "100.127.255.254", "198.18.0.1", "198.19.255.1", "::ffff:100.64.0.1"} {
		require.True(t, blocked(net.ParseIP(s)), s)
	}
	for _, s := range []string{"93.184.216.34", "2606:2800:220:1::1", "100.128.0.1", "198.20.0.1"} {
		require.False(t, blocked(net.ParseIP(s)), s)
	}
}

func TestRefusePrivate_SharedAndBenchmarkRanges(t *testing.T) {
	for _, addr := range []string{"100.64.0.1:80", "0.1.2.3:80", "198.18.0.1:443"} {
		require.ErrorIs(t, refusePrivate("tcp4", addr, nil), ErrBlockedAddress, addr)
	}
	require.NoError(t, refusePrivate("tcp4", "93.184.216.34:443", nil))
}

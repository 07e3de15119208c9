// Package imageproxy fetches remote images on behalf of the feed page.
package imageproxy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/litey/litey-go/internal/config"
)

var (
	ErrInvalidURL        = errors.New("invalid url")
	ErrUnsupportedScheme = errors.New("only http and https urls can be proxied")
	ErrBlockedAddress    = errors.New("destination address is not allowed")
	ErrTooLarge          = errors.New("upstream response exceeds size limit")
	ErrUserAgent         = errors.New("user agent file unreadable")
)

// Result is a fully buffered upstream response.
type Result struct {
	Body        []byte
	ContentType string
}

// Proxy performs the outbound fetches.
type Proxy struct {
	client        *http.Client
	userAgentFile string
	timeout       time.Duration
	maxBytes      int64
}

// New builds a Proxy. Unless cfg.AllowPrivate is set, connections to
// loopback, private, link-local, unspecified and multicast addresses are
// refused after DNS resolution, so redirects cannot reach them either.
func New(cfg config.ImageProxyConfig) *Proxy {
	dialer := &net.Dialer{Timeout: cfg.Timeout}
	if !cfg.AllowPrivate {
		dialer.Control = refusePrivate
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.DialContext = dialer.DialContext
	transport.Proxy = nil
	return &Proxy{
		client:        &http.Client{Transport: transport},
		userAgentFile: cfg.UserAgentFile,
		timeout:       cfg.Timeout,
		maxBytes:      cfg.MaxBytes,
	}
}

func refusePrivate(network, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	ip := net.ParseIP(host)
	if ip == nil || blocked(ip) {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, host)
	}
	return nil
}

// nonPublic lists ranges the net.IP predicates do not cover.
var nonPublic = []netip.Prefix{
	netip.MustParsePrefix("0.0.0.0/8"),
	netip.MustParsePrefix("100.64.0.0/10"),
	netip.MustParsePrefix("198.18.0.0/15"),
}

func blocked(ip net.IP) bool {
	if addr, ok := netip.AddrFromSlice(ip); ok {
		addr = addr.Unmap()
		for _, p := range nonPublic {
			if p.Contains(addr) {
				return true
			}
		}
	}
	return ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() ||
		ip.IsInterfaceLocalMulticast() || ip.IsMulticast()
}

// UserAgent reads the configured user agent. The file is read on every call
// so it can be changed without a restart.
func (p *Proxy) UserAgent() (string, error) {
	b, err := os.ReadFile(p.userAgentFile)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUserAgent, err)
	}
	return strings.TrimRight(string(b), "\n"), nil
}

// Fetch downloads rawURL. The fetch ends when ctx is done or the configured timeout elapses.
func (p *Proxy) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, ErrUnsupportedScheme
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: missing host", ErrInvalidURL)
	}
	ua, err := p.UserAgent()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", ua)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", u.Redacted(), err)
	}
	defer resp.Body.Close()

	if p.maxBytes > 0 && resp.ContentLength > p.maxBytes {
		return nil, ErrTooLarge
	}
	var body io.Reader = resp.Body
	if p.maxBytes > 0 {
		body = io.LimitReader(resp.Body, p.maxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", u.Redacted(), err)
	}
	if p.maxBytes > 0 && int64(len(data)) > p.maxBytes {
		return nil, ErrTooLarge
	}
	return &Result{Body: data, ContentType: resp.Header.Get("Content-Type")}, nil
}

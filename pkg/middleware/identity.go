package middleware

import (
	"net"
	"net/http"
	"strings"
)

const (
	headerCFConnectingIP = "CF-Connecting-IP"
	headerForwardedFor   = "X-Forwarded-For"
)

// ClientIdentity is the rate-limit key for r: the first CF-Connecting-IP
// value, else the first X-Forwarded-For value, else the socket host joined
// with the request path.
func ClientIdentity(r *http.Request) string {
	if v := r.Header.Get(headerCFConnectingIP); v != "" {
		return firstValue(v)
	}
	if v := r.Header.Get(headerForwardedFor); v != "" {
		return firstValue(v)
	}
	return remoteHost(r) + ":" + r.URL.Path
}

// ClientIP is the submitter address recorded on notes. Header values are kept verbatim.
func ClientIP(r *http.Request) string {
	if v := r.Header.Get(headerCFConnectingIP); v != "" {
		return v
	}
	if v := r.Header.Get(headerForwardedFor); v != "" {
		return v
	}
	return remoteHost(r)
}

func firstValue(v string) string {
	if i := strings.IndexByte(v, ','); i >= 0 {
		v = v[:i]
	}
	return strings.TrimSpace(v)
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

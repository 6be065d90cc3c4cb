package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// proxy hints consulted when the transport peer is not a routable address
var proxyHeaders = []string{"X-Forwarded-For", "X-Real-IP", "X-Client-IP"}

// ClientIP resolves the visitor address into the Gin context (key:
// "client_ip"). The transport peer wins; a loopback or unspecified peer
// means we are behind a local proxy, so the forwarding headers are
// consulted instead. Falls back to the "Unknown" placeholder.
func ClientIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("client_ip", ExtractClientIP(c.Request))
		c.Next()
	}
}

// ExtractClientIP applies the peer-then-headers policy to one request.
func ExtractClientIP(r *http.Request) string {
	peer := ""
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		peer = host
	} else if r.RemoteAddr != "" {
		peer = r.RemoteAddr
	}

	if ip := net.ParseIP(peer); ip != nil && !ip.IsLoopback() && !ip.IsUnspecified() {
		return stripMapped(peer)
	}

	for _, h := range proxyHeaders {
		v := strings.TrimSpace(r.Header.Get(h))
		if v == "" {
			continue
		}
		// multiple proxies report a comma-separated chain; the left-most
		// entry is the original client
		if i := strings.IndexByte(v, ','); i >= 0 {
			v = strings.TrimSpace(v[:i])
		}
		return stripMapped(v)
	}

	if peer != "" {
		return stripMapped(peer)
	}
	return "Unknown"
}

// stripMapped removes the IPv4-mapped IPv6 prefix.
func stripMapped(ip string) string {
	return strings.TrimPrefix(ip, "::ffff:")
}

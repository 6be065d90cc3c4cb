package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newReq(remoteAddr string, headers map[string]string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/abc", nil)
	req.RemoteAddr = remoteAddr
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req
}

func TestExtractClientIPRoutablePeerWins(t *testing.T) {
	req := newReq("198.51.100.9:40000", map[string]string{
		"X-Forwarded-For": "203.0.113.5",
	})
	assert.Equal(t, "198.51.100.9", ExtractClientIP(req))
}

func TestExtractClientIPLoopbackPeerDefersToForwardedFor(t *testing.T) {
	req := newReq("127.0.0.1:40000", map[string]string{
		"X-Forwarded-For": "203.0.113.5, 10.0.0.1",
	})
	assert.Equal(t, "203.0.113.5", ExtractClientIP(req))
}

func TestExtractClientIPHeaderPriority(t *testing.T) {
	req := newReq("127.0.0.1:40000", map[string]string{
		"X-Real-IP":   "203.0.113.7",
		"X-Client-IP": "203.0.113.8",
	})
	assert.Equal(t, "203.0.113.7", ExtractClientIP(req))

	req = newReq("127.0.0.1:40000", map[string]string{
		"X-Client-IP": "203.0.113.8",
	})
	assert.Equal(t, "203.0.113.8", ExtractClientIP(req))
}

func TestExtractClientIPStripsMappedPrefix(t *testing.T) {
	req := newReq("127.0.0.1:40000", map[string]string{
		"X-Forwarded-For": "::ffff:203.0.113.5",
	})
	assert.Equal(t, "203.0.113.5", ExtractClientIP(req))

	req = newReq("[::ffff:198.51.100.9]:40000", nil)
	assert.Equal(t, "198.51.100.9", ExtractClientIP(req))
}

func TestExtractClientIPLoopbackWithoutHeaders(t *testing.T) {
	req := newReq("127.0.0.1:40000", nil)
	assert.Equal(t, "127.0.0.1", ExtractClientIP(req))

	req = newReq("[::1]:40000", nil)
	assert.Equal(t, "::1", ExtractClientIP(req))
}

func TestExtractClientIPNoPeerNoHeaders(t *testing.T) {
	req := newReq("", nil)
	assert.Equal(t, "Unknown", ExtractClientIP(req))
}

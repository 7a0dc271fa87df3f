package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveClientIP(t *testing.T) {
	trusted := []netip.Prefix{
		netip.MustParsePrefix("10.0.0.0/8"),
		netip.MustParsePrefix("192.168.1.1/32"),
	}

	cases := []struct {
		name      string
		remote    string
		forwarded string
		realIP    string
		want      string
	}{
		{name: "no headers", remote: "192.0.2.10:4711", want: "192.0.2.10"},
		{name: "untrusted peer ignores forwarded for", remote: "192.0.2.10:4711", forwarded: "203.0.113.5", want: "192.0.2.10"},
		{name: "untrusted peer ignores real ip", remote: "192.0.2.10:4711", realIP: "198.51.100.7", want: "192.0.2.10"},
		{name: "trusted peer uses forwarded for", remote: "10.0.0.1:4711", forwarded: "203.0.113.5", want: "203.0.113.5"},
		{name: "skips trusted hops from the right", remote: "10.0.0.1:4711", forwarded: "198.51.100.9, 203.0.113.5, 192.168.1.1", want: "203.0.113.5"},
		{name: "trusted peer falls back to real ip", remote: "10.0.0.1:4711", realIP: "198.51.100.7", want: "198.51.100.7"},
		{name: "garbage forwarded for falls back", remote: "10.0.0.1:4711", forwarded: "not-an-ip", want: "10.0.0.1"},
		{name: "remote without port", remote: "192.0.2.10", want: "192.0.2.10"},
		{name: "empty remote", remote: "", want: "unknown"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tc.remote
			if tc.forwarded != "" {
				req.Header.Set("X-Forwarded-For", tc.forwarded)
			}
			if tc.realIP != "" {
				req.Header.Set("X-Real-IP", tc.realIP)
			}

			assert.Equal(t, tc.want, resolveClientIP(req, trusted))
		})
	}
}

func TestClientIPStoresResolvedAddress(t *testing.T) {
	var seen string
	handler := ClientIP(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = clientIP(r)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.10:4711"
	req.Header.Set("X-Forwarded-For", "203.0.113.5")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "192.0.2.10", seen)
}

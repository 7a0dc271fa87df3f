package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCSRF(t *testing.T) {
	handler := CSRF([]string{"https://weather.example.com/"})(okHandler())

	tests := []struct {
		name       string
		method     string
		origin     string
		referer    string
		wantStatus int
	}{
		{name: "GET passes without headers", method: http.MethodGet, wantStatus: http.StatusOK},
		{name: "HEAD passes without headers", method: http.MethodHead, wantStatus: http.StatusOK},
		{name: "same host origin", method: http.MethodPost, origin: "http://dashboard.local:8080", wantStatus: http.StatusOK},
		{name: "trusted origin", method: http.MethodPost, origin: "HTTPS://WEATHER.EXAMPLE.COM", wantStatus: http.StatusOK},
		{name: "same host referer", method: http.MethodPost, referer: "http://dashboard.local:8080/favorites", wantStatus: http.StatusOK},
		{name: "foreign origin", method: http.MethodPost, origin: "https://evil.example", wantStatus: http.StatusForbidden},
		{name: "foreign origin beats good referer", method: http.MethodPost, origin: "https://evil.example", referer: "http://dashboard.local:8080/", wantStatus: http.StatusForbidden},
		{name: "foreign referer", method: http.MethodPost, referer: "https://evil.example/form", wantStatus: http.StatusForbidden},
		{name: "garbage referer", method: http.MethodPost, referer: "::not a url", wantStatus: http.StatusForbidden},
		{name: "no origin or referer", method: http.MethodPost, wantStatus: http.StatusForbidden},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, "http://dashboard.local:8080/favorites", nil)
			if tc.origin != "" {
				req.Header.Set("Origin", tc.origin)
			}
			if tc.referer != "" {
				req.Header.Set("Referer", tc.referer)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
		})
	}
}

package middleware

import (
	"net/http"
	"time"
)

// Timeout bounds a whole request. A weather page makes two sequential provider
// calls, so this should exceed twice the weather timeout.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	message := `{"success":false,"error":{"code":"REQUEST_TIMEOUT","message":"request timed out"}}`

	return func(next http.Handler) http.Handler {
		limited := http.TimeoutHandler(next, timeout, message)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limited.ServeHTTP(timeoutEnvelopeWriter{ResponseWriter: w}, r)
		})
	}
}

// timeoutEnvelopeWriter labels the body http.TimeoutHandler writes on expiry.
// Responses from next arrive with their own headers already copied in, so
// only a bare 503 is touched.
type timeoutEnvelopeWriter struct {
	http.ResponseWriter
}

func (w timeoutEnvelopeWriter) WriteHeader(statusCode int) {
	if statusCode == http.StatusServiceUnavailable && w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "application/json")
	}
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w timeoutEnvelopeWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

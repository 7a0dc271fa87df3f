package middleware

import (
	"net/http"
	"net/url"
	"strings"
)

// CSRF rejects state-changing browser requests whose Origin (or Referer, when
// Origin is absent) is neither the request's own host nor a trusted origin.
// Requests carrying neither header are rejected.
func CSRF(trustedOrigins []string) func(http.Handler) http.Handler {
	trusted := make(map[string]struct{}, len(trustedOrigins))
	for _, origin := range trustedOrigins {
		trusted[normalizeOrigin(origin)] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				next.ServeHTTP(w, r)
				return
			}

			source := r.Header.Get("Origin")
			if source == "" {
				source = refererOrigin(r.Header.Get("Referer"))
			}

			if source == "" || !originAllowed(source, r.Host, trusted) {
				http.Error(w, "CSRF validation failed", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func originAllowed(origin string, host string, trusted map[string]struct{}) bool {
	normalized := normalizeOrigin(origin)
	if _, ok := trusted[normalized]; ok {
		return true
	}

	parsed, err := url.Parse(normalized)
	if err != nil || parsed.Host == "" {
		return false
	}
	return strings.EqualFold(parsed.Host, host)
}

func refererOrigin(referer string) string {
	if referer == "" {
		return ""
	}
	parsed, err := url.Parse(referer)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return ""
	}
	return parsed.Scheme + "://" + parsed.Host
}

func normalizeOrigin(origin string) string {
	return strings.TrimSuffix(strings.ToLower(strings.TrimSpace(origin)), "/")
}

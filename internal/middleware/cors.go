package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// CORS applies to the JSON API only. Browser pages are same-origin and rely
// on the CSRF origin check instead.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	handler := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", requestIDHeader},
		ExposedHeaders: []string{"WWW-Authenticate", requestIDHeader},
		MaxAge:         600,
	})

	return handler.Handler
}

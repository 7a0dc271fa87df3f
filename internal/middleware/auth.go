package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"weather-dashboard/internal/model"
	"weather-dashboard/pkg/apierror"
)

const (
	// AccessTokenCookie carries "Bearer <jwt>" for browser sessions.
	AccessTokenCookie = "access_token"

	bearerPrefix = "bearer "
	loginPath    = "/login"
)

type sessionResolver interface {
	Resolve(ctx context.Context, token string) (model.User, error)
}

type contextKey string

const userContextKey contextKey = "session_user"

type AuthMiddleware struct {
	resolver sessionResolver
}

func NewAuthMiddleware(resolver sessionResolver) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver}
}

// RequireAPIUser rejects unauthenticated requests with a 401 JSON envelope.
func (m *AuthMiddleware) RequireAPIUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.resolver.Resolve(r.Context(), TokenFromRequest(r))
		if errors.Is(err, model.ErrUnauthenticated) {
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeErrorEnvelope(w, http.StatusUnauthorized, apierror.CodeUnauthorized, "Could not validate credentials")
			return
		}
		if err != nil {
			slog.Error("session resolution failed", "path", r.URL.Path, "error", err.Error())
			writeInternalError(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// RequireWebUser sends unauthenticated browsers to the login page.
func (m *AuthMiddleware) RequireWebUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := m.resolver.Resolve(r.Context(), TokenFromRequest(r))
		if errors.Is(err, model.ErrUnauthenticated) {
			http.Redirect(w, r, loginPath, http.StatusSeeOther)
			return
		}
		if err != nil {
			slog.Error("session resolution failed", "path", r.URL.Path, "error", err.Error())
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// TokenFromRequest prefers the Authorization header and falls back to the
// session cookie. Both may carry a "Bearer " prefix.
func TokenFromRequest(r *http.Request) string {
	if token, ok := stripBearer(r.Header.Get("Authorization")); ok {
		return token
	}

	cookie, err := r.Cookie(AccessTokenCookie)
	if err != nil {
		return ""
	}

	value := strings.TrimSpace(cookie.Value)
	if token, ok := stripBearer(value); ok {
		return token
	}
	return value
}

func stripBearer(value string) (string, bool) {
	value = strings.TrimSpace(value)
	if len(value) <= len(bearerPrefix) || !strings.EqualFold(value[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	return strings.TrimSpace(value[len(bearerPrefix):]), true
}

func WithUser(ctx context.Context, user model.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func UserFromContext(ctx context.Context) (model.User, bool) {
	user, ok := ctx.Value(userContextKey).(model.User)
	return user, ok
}

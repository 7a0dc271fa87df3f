package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-dashboard/internal/model"
)

type resolverFunc func(ctx context.Context, token string) (model.User, error)

func (f resolverFunc) Resolve(ctx context.Context, token string) (model.User, error) {
	return f(ctx, token)
}

var alice = model.User{ID: 1, Username: "alice", Email: "alice@example.com"}

func acceptOnly(valid string) resolverFunc {
	return func(_ context.Context, token string) (model.User, error) {
		if token == valid {
			return alice, nil
		}
		return model.User{}, model.ErrUnauthenticated
	}
}

func echoUser() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		_, _ = w.Write([]byte(user.Username))
	})
}

func TestTokenFromRequest(t *testing.T) {
	cases := []struct {
		name   string
		header string
		cookie string
		want   string
	}{
		{name: "nothing", want: ""},
		{name: "bearer header", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "lowercase scheme", header: "bearer abc", want: "abc"},
		{name: "cookie with prefix", cookie: "Bearer from-cookie", want: "from-cookie"},
		{name: "cookie without prefix", cookie: "raw-cookie", want: "raw-cookie"},
		{name: "header wins over cookie", header: "Bearer from-header", cookie: "Bearer from-cookie", want: "from-header"},
		{name: "non-bearer header falls back to cookie", header: "Basic dXNlcjpwYXNz", cookie: "Bearer from-cookie", want: "from-cookie"},
		{name: "empty bearer", header: "Bearer ", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: tc.cookie})
			}
			assert.Equal(t, tc.want, TokenFromRequest(req))
		})
	}
}

func TestRequireAPIUser(t *testing.T) {
	handler := NewAuthMiddleware(acceptOnly("good")).RequireAPIUser(echoUser())

	t.Run("valid header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/users/favorites", nil)
		req.Header.Set("Authorization", "Bearer good")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "alice", rec.Body.String())
	})

	t.Run("missing and malformed tokens look the same", func(t *testing.T) {
		missing := httptest.NewRecorder()
		handler.ServeHTTP(missing, httptest.NewRequest(http.MethodGet, "/users/favorites", nil))

		malformedReq := httptest.NewRequest(http.MethodGet, "/users/favorites", nil)
		malformedReq.Header.Set("Authorization", "Bearer not-a-jwt")
		malformed := httptest.NewRecorder()
		handler.ServeHTTP(malformed, malformedReq)

		require.Equal(t, http.StatusUnauthorized, missing.Code)
		assert.Equal(t, missing.Code, malformed.Code)
		assert.Equal(t, missing.Body.String(), malformed.Body.String())
		assert.Equal(t, "Bearer", missing.Header().Get("WWW-Authenticate"))
		assert.JSONEq(t, `{"success":false,"error":{"code":"UNAUTHORIZED","message":"Could not validate credentials"}}`, missing.Body.String())
	})

	t.Run("store outage is a server error", func(t *testing.T) {
		failing := resolverFunc(func(context.Context, string) (model.User, error) {
			return model.User{}, errors.New("connection refused")
		})
		req := httptest.NewRequest(http.MethodGet, "/users/favorites", nil)
		req.Header.Set("Authorization", "Bearer good")
		rec := httptest.NewRecorder()
		NewAuthMiddleware(failing).RequireAPIUser(echoUser()).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), `"INTERNAL_ERROR"`)
	})
}

func TestRequireWebUser(t *testing.T) {
	handler := NewAuthMiddleware(acceptOnly("good")).RequireWebUser(echoUser())

	t.Run("cookie session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/weather", nil)
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "Bearer good"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "alice", rec.Body.String())
	})

	t.Run("redirects to login", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/weather", nil)
		req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: "Bearer expired"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get("Location"))
	})
}

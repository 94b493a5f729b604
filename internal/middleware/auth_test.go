package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ctjot-server/internal/auth"
	"ctjot-server/internal/shared/config"
)

func setAuthConfig(t *testing.T) {
	t.Helper()

	original := config.GlobalConfig
	config.GlobalConfig = &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:       "middleware-test-secret",
			TokenExpiration: time.Hour,
		},
	}
	t.Cleanup(func() { config.GlobalConfig = original })
}

func authedRequest(t *testing.T, admin bool) *http.Request {
	t.Helper()

	token, err := auth.GenerateJWT("123456789", "operator", admin)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/server/stats", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	return req
}

func TestJWTMiddleware(t *testing.T) {
	setAuthConfig(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := GetUserFromContext(r)
		require.NotNil(t, claims)
		assert.Equal(t, "operator", claims.Username)
		w.WriteHeader(http.StatusOK)
	})

	t.Run("missing cookie is unauthorized", func(t *testing.T) {
		rec := httptest.NewRecorder()
		JWTMiddleware(next).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token is unauthorized", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: "garbage"})

		rec := httptest.NewRecorder()
		JWTMiddleware(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token reaches handler with claims", func(t *testing.T) {
		rec := httptest.NewRecorder()
		JWTMiddleware(next).ServeHTTP(rec, authedRequest(t, true))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	setAuthConfig(t)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("admin passes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequireAdmin(next).ServeHTTP(rec, authedRequest(t, true))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequireAdmin(next).ServeHTTP(rec, authedRequest(t, false))
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unauthenticated is unauthorized", func(t *testing.T) {
		rec := httptest.NewRecorder()
		RequireAdmin(next).ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

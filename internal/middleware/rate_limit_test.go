package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"ctjot-server/internal/shared/config"
)

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		trustProxy bool
		want       string
	}{
		{
			name:       "remote addr with port",
			remoteAddr: "192.168.1.1:12345",
			want:       "192.168.1.1",
		},
		{
			name:       "forwarded header ignored without proxy trust",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7"},
			want:       "10.0.0.1",
		},
		{
			name:       "forwarded header used with proxy trust",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7"},
			trustProxy: true,
			want:       "203.0.113.7",
		},
		{
			name:       "first entry of forwarded chain wins",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.2"},
			trustProxy: true,
			want:       "203.0.113.7",
		},
		{
			name:       "real ip fallback",
			remoteAddr: "10.0.0.1:80",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9"},
			trustProxy: true,
			want:       "203.0.113.9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for key, value := range tt.headers {
				req.Header.Set(key, value)
			}
			assert.Equal(t, tt.want, getClientIP(req, tt.trustProxy))
		})
	}
}

func TestRateLimiterMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	t.Run("disabled limiter passes everything", func(t *testing.T) {
		rl := NewRateLimiter(config.RateLimitConfig{Enabled: false})
		handler := rl.Middleware(next)

		for i := 0; i < 20; i++ {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = "192.168.1.1:1000"
			handler.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	})

	t.Run("burst exhaustion returns 429", func(t *testing.T) {
		rl := NewRateLimiter(config.RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 1,
			BurstSize:         2,
		})
		handler := rl.Middleware(next)

		codes := make([]int, 0, 3)
		for i := 0; i < 3; i++ {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = "192.168.1.1:1000"
			handler.ServeHTTP(rec, req)
			codes = append(codes, rec.Code)
		}

		assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
	})

	t.Run("limits are per client", func(t *testing.T) {
		rl := NewRateLimiter(config.RateLimitConfig{
			Enabled:           true,
			RequestsPerSecond: 1,
			BurstSize:         1,
		})
		handler := rl.Middleware(next)

		first := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "192.168.1.1:1000"
		handler.ServeHTTP(first, req)
		assert.Equal(t, http.StatusOK, first.Code)

		other := httptest.NewRecorder()
		req = httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "192.168.1.2:1000"
		handler.ServeHTTP(other, req)
		assert.Equal(t, http.StatusOK, other.Code, "a different client has its own bucket")
	})
}

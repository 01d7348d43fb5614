package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/foodreco/foodreco-backend/internal/errors"
	"github.com/foodreco/foodreco-backend/internal/metrics"
	"github.com/foodreco/foodreco-backend/pkg/util"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-jwt-secret-for-middleware"

func setupIdentityRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(LoggingMiddleware())
	router.Use(NewIdentityMiddleware(testJWTSecret).Identify())
	router.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": GetUserID(c)})
	})
	return router
}

func whoami(t *testing.T, router *gin.Engine, headers map[string]string) (int, map[string]string) {
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	body := map[string]string{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestIdentify(t *testing.T) {
	router := setupIdentityRouter()

	validToken, err := util.GenerateProfileToken("profile-123", "Alice", testJWTSecret, time.Hour)
	require.NoError(t, err)
	expiredToken, err := util.GenerateProfileToken("profile-123", "Alice", testJWTSecret, -time.Hour)
	require.NoError(t, err)
	foreignToken, err := util.GenerateProfileToken("profile-123", "Alice", "other-secret", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		headers    map[string]string
		wantStatus int
		wantUser   string
		wantCode   string
	}{
		{
			name:       "no identity falls back to default",
			wantStatus: http.StatusOK,
			wantUser:   "default",
		},
		{
			name:       "profile header",
			headers:    map[string]string{ProfileIDHeader: " profile-9 "},
			wantStatus: http.StatusOK,
			wantUser:   "profile-9",
		},
		{
			name: "token wins over header",
			headers: map[string]string{
				"Authorization": "Bearer " + validToken,
				ProfileIDHeader: "profile-9",
			},
			wantStatus: http.StatusOK,
			wantUser:   "profile-123",
		},
		{
			name:       "malformed header",
			headers:    map[string]string{"Authorization": "Token abc"},
			wantStatus: http.StatusUnauthorized,
			wantCode:   errors.AuthTokenInvalid,
		},
		{
			name:       "expired token",
			headers:    map[string]string{"Authorization": "Bearer " + expiredToken},
			wantStatus: http.StatusUnauthorized,
			wantCode:   errors.AuthTokenExpired,
		},
		{
			name:       "token signed with another secret",
			headers:    map[string]string{"Authorization": "Bearer " + foreignToken},
			wantStatus: http.StatusUnauthorized,
			wantCode:   errors.AuthTokenInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := whoami(t, router, tt.headers)
			assert.Equal(t, tt.wantStatus, status)
			if tt.wantUser != "" {
				assert.Equal(t, tt.wantUser, body["user_id"])
			}
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, body["error"])
			}
		})
	}
}

func TestLoggingMiddleware_RequestID(t *testing.T) {
	router := setupIdentityRouter()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(RequestIDHeader, "req-42")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
}

func TestMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Metrics())
	router.GET("/ok/:id", func(c *gin.Context) {
		c.String(http.StatusOK, "hello")
	})

	baseOK := testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("GET", "/ok/:id", "200"))
	base404 := testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("GET", "/missing", "404"))

	for _, path := range []string{"/ok/1", "/ok/2", "/missing"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, baseOK+2, testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("GET", "/ok/:id", "200")))
	assert.Equal(t, base404+1, testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("GET", "/missing", "404")))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.HTTPRequestsInflight))
}

func TestKeyByUserOrIP(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.RemoteAddr = "203.0.113.9:12345"

	assert.Equal(t, "ip:203.0.113.9", KeyByUserOrIP()(c))

	c.Set(UserIDKey, "default")
	assert.Equal(t, "ip:203.0.113.9", KeyByUserOrIP()(c))

	c.Set(UserIDKey, "u123")
	assert.Equal(t, "user:u123", KeyByUserOrIP()(c))
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	limiter := NewRateLimiter(0.001, 0, KeyByUserOrIP())
	assert.Equal(t, 1, limiter.burst)

	router := gin.New()
	router.Use(limiter.Handler())
	router.GET("/", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	baseLimited := testutil.ToFloat64(metrics.HTTPRateLimited)

	send := func(addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusNoContent, send("198.51.100.1:1000").Code)

	w := send("198.51.100.1:1001")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), errors.RateLimitExceeded)

	// Another client has its own bucket
	assert.Equal(t, http.StatusNoContent, send("198.51.100.2:1000").Code)
	assert.Equal(t, baseLimited+1, testutil.ToFloat64(metrics.HTTPRateLimited))
}

func TestRateLimiter_SweepsIdleVisitors(t *testing.T) {
	limiter := NewRateLimiter(1, 1, KeyByUserOrIP())
	limiter.ttl = 0

	first := limiter.limiterFor("stale")
	limiter.lookups = visitorSweepEvery - 1
	second := limiter.limiterFor("stale")

	assert.NotSame(t, first, second)
	assert.Len(t, limiter.visitors, 1)
}

//go:build unit

package middleware_test

import (
	"net/http"
	"testing"
	"time"

	"doctor-booking/internal/handler/middleware"
	"doctor-booking/internal/pkg/config"
	"doctor-booking/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newCORSRouter(cfg config.CORSConfig) *gin.Engine {
	r := gin.New()
	r.Use(middleware.NewCORSMiddleware(cfg, discard))
	r.GET("/api/doctors", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"success": true}) })
	return r
}

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cfg := config.CORSConfig{
		AllowOrigins:  []string{"http://localhost:5173"},
		AllowMethods:  []string{"GET", "POST", "PATCH"},
		AllowHeaders:  []string{"Origin", "Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        time.Hour,
	}

	t.Run("preflight allows bearer tokens", func(t *testing.T) {
		rec := httptest.PerformRequestWithHeaders(t, newCORSRouter(cfg), http.MethodOptions, "/api/doctors", nil, map[string]string{
			"Origin":                         "http://localhost:5173",
			"Access-Control-Request-Method":  "POST",
			"Access-Control-Request-Headers": "Authorization",
		})

		assert.Equal(t, http.StatusNoContent, rec.Code)
		httptest.AssertHeaders(t, rec, map[string]string{
			"Access-Control-Allow-Origin":      "http://localhost:5173",
			"Access-Control-Allow-Credentials": "",
		})
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
	})

	t.Run("request id is exposed", func(t *testing.T) {
		rec := httptest.PerformRequestWithHeaders(t, newCORSRouter(cfg), http.MethodGet, "/api/doctors", nil,
			map[string]string{"Origin": "http://localhost:5173"})

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Access-Control-Expose-Headers"), http.CanonicalHeaderKey(middleware.RequestIDHeader))
	})

	t.Run("unknown origin is refused", func(t *testing.T) {
		rec := httptest.PerformRequestWithHeaders(t, newCORSRouter(cfg), http.MethodGet, "/api/doctors", nil,
			map[string]string{"Origin": "http://evil.example"})

		assert.Equal(t, http.StatusForbidden, rec.Code)
		httptest.AssertHeaders(t, rec, map[string]string{"Access-Control-Allow-Origin": ""})
	})

	t.Run("wildcard origin drops credentials", func(t *testing.T) {
		wildcard := cfg
		wildcard.AllowOrigins = []string{"*"}
		wildcard.AllowCredentials = true

		rec := httptest.PerformRequestWithHeaders(t, newCORSRouter(wildcard), http.MethodGet, "/api/doctors", nil,
			map[string]string{"Origin": "http://anywhere.example"})

		assert.Equal(t, http.StatusOK, rec.Code)
		httptest.AssertHeaders(t, rec, map[string]string{
			"Access-Control-Allow-Origin":      "*",
			"Access-Control-Allow-Credentials": "",
		})
	})
}

//go:build unit

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"store-pickup/internal/handler/middleware"
	"store-pickup/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// narrower than the defaults, as an env override might be
	cfg := config.CORSConfig{
		AllowOrigins: []string{"http://shop.local"},
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin"},
	}
	router := gin.New()
	router.Use(middleware.NewCORSMiddleware(cfg))
	router.POST("/api/checkout", func(c *gin.Context) { c.Status(http.StatusCreated) })

	t.Run("preflight admits the idempotency header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/api/checkout", nil)
		req.Header.Set("Origin", "http://shop.local")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "Idempotency-Key")
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
		allowed := strings.ToLower(rec.Header().Get("Access-Control-Allow-Headers"))
		assert.Contains(t, allowed, "idempotency-key")
		assert.Contains(t, allowed, "authorization")
	})

	t.Run("request id is readable by the browser", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/checkout", nil)
		req.Header.Set("Origin", "http://shop.local")
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, strings.ToLower(rec.Header().Get("Access-Control-Expose-Headers")), "x-request-id")
	})
}

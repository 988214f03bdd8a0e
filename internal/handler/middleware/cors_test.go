//go:build unit

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"academy-booking/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func baseCORS() config.CORSConfig {
	return config.CORSConfig{
		AllowOrigins:     []string{"http://localhost:3000"},
		AllowMethods:     []string{"GET", "POST"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           time.Hour,
	}
}

func TestCORSConfig(t *testing.T) {
	t.Run("required headers are appended once", func(t *testing.T) {
		cfg := baseCORS()
		cfg.ExposeHeaders = append(cfg.ExposeHeaders, "Location")

		got := corsConfig(cfg)

		assert.Equal(t, []string{"Content-Length", "Location"}, got.ExposeHeaders)
		assert.Equal(t, []string{"Content-Type", "Authorization", "Last-Event-ID", "Cache-Control"}, got.AllowHeaders)
		assert.Equal(t, []string{"Content-Length"}, baseCORS().ExposeHeaders)
	})

	t.Run("wildcard origin drops credentials", func(t *testing.T) {
		cfg := baseCORS()
		cfg.AllowOrigins = []string{"*"}

		got := corsConfig(cfg)

		assert.True(t, got.AllowAllOrigins)
		assert.False(t, got.AllowCredentials)
		assert.Empty(t, got.AllowOrigins)
	})
}

func TestNewCORSMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(NewCORSMiddleware(baseCORS()))
	r.POST("/api/bookings", func(c *gin.Context) {
		c.Header("Location", "/api/bookings/1")
		c.Status(http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/bookings", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, w.Header().Get("Access-Control-Expose-Headers"), "Location")
}

//go:build unit

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"academy-booking/internal/domain/user"
	"academy-booking/internal/pkg/config"
	"academy-booking/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type observed struct {
	method, route string
	status        int
}

type recordingObserver struct {
	calls []observed
}

func (o *recordingObserver) ObserveRequest(method, route string, status int) {
	o.calls = append(o.calls, observed{method: method, route: route, status: status})
}

func TestLoggingMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := NewLogger(config.LogConfig{Level: "error", TimeZone: "UTC", TimeFormat: "15:04:05"})
	obs := &recordingObserver{}

	r := gin.New()
	r.Use(logger.LoggingMiddleware(obs))
	r.GET("/api/sessions/:id", func(c *gin.Context) {
		SetActor(c, shared.Actor{ID: uuid.New(), Role: user.RoleMember})
		c.String(http.StatusOK, GetRequestID(c))
	})

	t.Run("incoming request id is kept", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/sessions/abc", nil)
		req.Header.Set(requestIDHeader, "req-42")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "req-42", w.Header().Get(requestIDHeader))
		assert.Equal(t, "req-42", w.Body.String())
	})

	t.Run("missing request id is generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/sessions/abc", nil))

		_, err := uuid.Parse(w.Header().Get(requestIDHeader))
		assert.NoError(t, err)
	})

	t.Run("observer sees the route template", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

		require.Len(t, obs.calls, 3)
		assert.Equal(t, observed{method: http.MethodGet, route: "/api/sessions/:id", status: http.StatusOK}, obs.calls[0])
		assert.Equal(t, observed{method: http.MethodGet, route: "unmatched", status: http.StatusNotFound}, obs.calls[2])
	})
}

//go:build unit

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := New()

	m.ObserveBooking("confirmed", 3*time.Millisecond)
	m.ObserveBooking("confirmed", 5*time.Millisecond)
	m.ObserveBooking("capacity_exceeded", time.Millisecond)
	m.ObserveCancellation(true)
	m.ObserveCancellation(false)
	m.ObserveRequest(http.MethodPost, "/api/bookings", http.StatusConflict)

	assert.InDelta(t, 2, testutil.ToFloat64(m.bookings.WithLabelValues("confirmed")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.bookings.WithLabelValues("capacity_exceeded")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.cancellations.WithLabelValues("false")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.httpRequests.WithLabelValues("POST", "/api/bookings", "409")), 0)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `academy_bookings_total{outcome="confirmed"} 2`)
	assert.Contains(t, string(body), "academy_booking_duration_seconds_bucket")
	assert.Contains(t, string(body), "go_goroutines")
}

func TestNew_PrivateRegistries(t *testing.T) {
	// two instances must not collide on registration
	a, b := New(), New()
	a.ObserveCancellation(true)
	assert.InDelta(t, 0, testutil.ToFloat64(b.cancellations.WithLabelValues("true")), 0)
}

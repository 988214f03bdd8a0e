//go:build unit

package httperr_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"academy-booking/internal/domain/booking"
	"academy-booking/internal/domain/user"
	"academy-booking/internal/handler/httperr"
	"academy-booking/internal/pkg/errs"
	"academy-booking/internal/usecase/shared"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"roster full", shared.ErrCapacityExceeded, http.StatusConflict},
		{"duplicate player", booking.ErrDuplicatePlayer, http.StatusConflict},
		{"wrapped duplicate player", errs.Wrap(booking.ErrDuplicatePlayer, "book"), http.StatusConflict},
		{"session has bookings", shared.ErrSessionHasBookings, http.StatusConflict},
		{"duplicate child", user.ErrDuplicateChild, http.StatusConflict},
		{"session not found", shared.ErrSessionNotFound, http.StatusNotFound},
		{"child not found", user.ErrChildNotFound, http.StatusNotFound},
		{"invalid credentials", shared.ErrInvalidCredentials, http.StatusUnauthorized},
		{"permission denied", shared.ErrPermissionDenied, http.StatusForbidden},
		{"player not registered", shared.ErrPlayerNotRegistered, http.StatusBadRequest},
		{"marked invalid input", errs.Mark(user.ErrInvalidPhone, shared.ErrInvalidInput), http.StatusBadRequest},
		{"transient store", errs.Mark(errors.New("dial tcp: i/o timeout"), shared.ErrTransientStore), http.StatusServiceUnavailable},
		{"deadline", context.DeadlineExceeded, http.StatusServiceUnavailable},
		{"not found family", errs.Kind(errs.ErrNotFound, "plan"), http.StatusNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, msg := httperr.Status(tc.err)
			assert.Equal(t, tc.status, status)
			assert.NotEmpty(t, msg)
		})
	}
}

func TestStatus_SpecificMessageWinsOverFamily(t *testing.T) {
	// ErrInvalidCredentials belongs to the permission family, yet maps to 401
	status, msg := httperr.Status(errs.Wrap(shared.ErrInvalidCredentials, "admin login"))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid credentials", msg)
}

func TestStatus_SiblingsKeepTheirOwnMessage(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		msg    string
	}{
		{"session not found", shared.ErrSessionNotFound, http.StatusNotFound, "Session not found"},
		{"booking not found", shared.ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
		{"member not found", errs.Wrap(shared.ErrMemberNotFound, "load member"), http.StatusNotFound, "Member not found"},
		{"permission denied", shared.ErrPermissionDenied, http.StatusForbidden, "Operation not permitted"},
		{"invalid credentials", shared.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
		{"invalid input", shared.ErrInvalidInput, http.StatusBadRequest, "Invalid request"},
		{"player not registered", shared.ErrPlayerNotRegistered, http.StatusBadRequest, "Player is not registered to this member"},
		{"duplicate record", errs.Mark(errors.New("phone taken"), shared.ErrDuplicate), http.StatusConflict, "Conflict"},
		{"record not found", shared.ErrNotFound, http.StatusNotFound, "Not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, msg := httperr.Status(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.msg, msg)
		})
	}
}

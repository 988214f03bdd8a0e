package shared

import (
	"academy-booking/internal/domain/booking"
	"academy-booking/internal/pkg/errs"
)

// Use-case error taxonomy. Each sentinel is a distinct root error that belongs
// to a cross-layer kind from errs; match the family with errs.IsKind.
var (
	ErrSessionNotFound     = errs.Kind(errs.ErrNotFound, "session not found")
	ErrBookingNotFound     = errs.Kind(errs.ErrNotFound, "booking not found")
	ErrMemberNotFound      = errs.Kind(errs.ErrNotFound, "member not found")
	ErrPermissionDenied    = errs.Kind(errs.ErrPermissionDenied, "operation not permitted for this caller")
	ErrInvalidCredentials  = errs.Kind(errs.ErrPermissionDenied, "invalid credentials")
	ErrSessionHasBookings  = errs.Kind(errs.ErrConflict, "session still has confirmed bookings")
	ErrTransientStore      = errs.Kind(errs.ErrTransientStore, "store temporarily unavailable")
	ErrPlayerNotRegistered = errs.Kind(errs.ErrValidation, "player is not registered to this member")
	ErrInvalidInput        = errs.Kind(errs.ErrValidation, "invalid input")
)

// Booking invariant violations come straight from the domain so that callers
// can match them with the standard errors package as well.
var (
	ErrCapacityExceeded = booking.ErrCapacityExceeded
	ErrDuplicatePlayer  = booking.ErrDuplicatePlayer
)

package commands

import (
	"context"
	"errors"

	"academy-booking/internal/domain/booking"
	"academy-booking/internal/domain/user"
	"academy-booking/internal/pkg/errs"
	"academy-booking/internal/usecase/shared"
)

// terminal errors are reported as-is; retrying them cannot change the answer.
var terminal = []error{
	shared.ErrSessionNotFound,
	shared.ErrBookingNotFound,
	shared.ErrMemberNotFound,
	shared.ErrPermissionDenied,
	shared.ErrInvalidCredentials,
	shared.ErrSessionHasBookings,
	shared.ErrPlayerNotRegistered,
	shared.ErrInvalidInput,
	booking.ErrCapacityExceeded,
	booking.ErrDuplicatePlayer,
	booking.ErrNotConfirmed,
	user.ErrChildNotFound,
	user.ErrDuplicateChild,
	user.ErrNoPlanSelected,
}

func isTerminal(err error) bool {
	for _, t := range terminal {
		if errs.Is(err, t) {
			return true
		}
	}
	return false
}

// classify leaves terminal and caller-cancellation errors alone and marks
// everything else as a retryable store failure.
func classify(err error) error {
	if err == nil || isTerminal(err) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return errs.Mark(err, shared.ErrTransientStore)
}

// notFoundAs translates a repository miss into the use-case sentinel.
func notFoundAs(err error, sentinel error) error {
	if errs.Is(err, shared.ErrNotFound) {
		return sentinel
	}
	return err
}

func invalid(err error) error {
	return errs.Mark(err, shared.ErrInvalidInput)
}

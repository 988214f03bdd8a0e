package httperr

import (
	"context"
	"errors"
	"net/http"

	"academy-booking/internal/domain/booking"
	"academy-booking/internal/domain/user"
	"academy-booking/internal/pkg/errs"
	"academy-booking/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

type rule struct {
	target error
	status int
	msg    string
}

// Specific sentinels come before the kind families they belong to.
var rules = []rule{
	{booking.ErrCapacityExceeded, http.StatusConflict, "Roster is full"},
	{booking.ErrDuplicatePlayer, http.StatusConflict, "Already on the roster"},
	{booking.ErrNotConfirmed, http.StatusConflict, "Booking is not confirmed"},
	{shared.ErrSessionHasBookings, http.StatusConflict, "Session still has confirmed bookings"},
	{user.ErrDuplicateChild, http.StatusConflict, "Child already registered"},
	{user.ErrNoPlanSelected, http.StatusConflict, "No plan selected"},

	{shared.ErrSessionNotFound, http.StatusNotFound, "Session not found"},
	{shared.ErrBookingNotFound, http.StatusNotFound, "Booking not found"},
	{shared.ErrMemberNotFound, http.StatusNotFound, "Member not found"},
	{user.ErrChildNotFound, http.StatusNotFound, "Child not found"},

	{shared.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid credentials"},
	{shared.ErrPermissionDenied, http.StatusForbidden, "Operation not permitted"},

	{shared.ErrPlayerNotRegistered, http.StatusBadRequest, "Player is not registered to this member"},
	{shared.ErrInvalidInput, http.StatusBadRequest, "Invalid request"},

	{shared.ErrTransientStore, http.StatusServiceUnavailable, "Service temporarily unavailable, please retry"},

	{errs.ErrNotFound, http.StatusNotFound, "Not found"},
	{errs.ErrPermissionDenied, http.StatusForbidden, "Operation not permitted"},
	{errs.ErrValidation, http.StatusBadRequest, "Invalid request"},
	{errs.ErrConflict, http.StatusConflict, "Conflict"},
	{errs.ErrTransientStore, http.StatusServiceUnavailable, "Service temporarily unavailable, please retry"},
}

// Status maps a use-case error to an HTTP status and a client-facing message.
func Status(err error) (int, string) {
	for _, r := range rules {
		if errs.IsKind(err, r.target) {
			return r.status, r.msg
		}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return http.StatusServiceUnavailable, "Request timed out"
	}
	return http.StatusInternalServerError, "Internal server error"
}

// Abort translates err with Status and aborts the request.
func Abort(c *gin.Context, err error) {
	status, msg := Status(err)
	AbortWithError(c, status, err, msg, nil)
}

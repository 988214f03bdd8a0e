package queries

import (
	"context"

	"academy-booking/internal/pkg/errs"
	"academy-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	ListByMember(ctx context.Context, memberID uuid.UUID, includeCancelled bool) ([]*BookingView, error)
	ListBySession(ctx context.Context, sessionID uuid.UUID) ([]*BookingView, error)
}

type BookingQueries interface {
	Get(ctx context.Context, actor shared.Actor, id uuid.UUID) (*BookingView, error)
	ListForMember(ctx context.Context, actor shared.Actor, memberID uuid.UUID, includeCancelled bool) ([]*BookingView, error)
	Roster(ctx context.Context, actor shared.Actor, sessionID uuid.UUID) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	bookings BookingReadStore
	sessions SessionReadStore
}

func NewBookingQueries(bookings BookingReadStore, sessions SessionReadStore) BookingQueries {
	return &bookingQueriesImpl{bookings: bookings, sessions: sessions}
}

func (q *bookingQueriesImpl) Get(ctx context.Context, actor shared.Actor, id uuid.UUID) (*BookingView, error) {
	view, err := q.bookings.FindByID(ctx, id)
	if err != nil {
		if errs.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrBookingNotFound
		}
		return nil, errs.Mark(err, shared.ErrTransientStore)
	}
	// Hide other members' bookings behind not-found rather than forbidden.
	if !actor.CanActFor(view.MemberID) {
		return nil, shared.ErrBookingNotFound
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListForMember(ctx context.Context, actor shared.Actor, memberID uuid.UUID, includeCancelled bool) ([]*BookingView, error) {
	if !actor.CanActFor(memberID) {
		return nil, shared.ErrPermissionDenied
	}
	views, err := q.bookings.ListByMember(ctx, memberID, includeCancelled)
	if err != nil {
		return nil, errs.Mark(err, shared.ErrTransientStore)
	}
	return views, nil
}

func (q *bookingQueriesImpl) Roster(ctx context.Context, actor shared.Actor, sessionID uuid.UUID) ([]*BookingView, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrPermissionDenied
	}
	if _, err := q.sessions.FindByID(ctx, sessionID); err != nil {
		if errs.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrSessionNotFound
		}
		return nil, errs.Mark(err, shared.ErrTransientStore)
	}
	views, err := q.bookings.ListBySession(ctx, sessionID)
	if err != nil {
		return nil, errs.Mark(err, shared.ErrTransientStore)
	}
	return views, nil
}

package commands

import (
	"context"
	"time"

	"academy-booking/internal/domain/booking"
	"academy-booking/internal/pkg/clock"
	"academy-booking/internal/pkg/errs"
	"academy-booking/internal/pkg/obs"
	"academy-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type BookRequest struct {
	SessionID uuid.UUID
	MemberID  uuid.UUID
	Player    string
}

type BookResult struct {
	Booking   *booking.Booking
	Booked    int
	SpotsLeft int
}

// ReservationCommands is the capacity-safe booking engine.
type ReservationCommands interface {
	// Book admits one player into one session, or fails with
	// shared.ErrSessionNotFound, shared.ErrCapacityExceeded or shared.ErrDuplicatePlayer.
	Book(ctx context.Context, actor shared.Actor, req BookRequest) (*BookResult, error)
	// Cancel is idempotent: unknown or already cancelled bookings are a no-op.
	Cancel(ctx context.Context, actor shared.Actor, bookingID uuid.UUID) error
	ToggleAttendance(ctx context.Context, actor shared.Actor, bookingID uuid.UUID) (*booking.Booking, error)
}

type reservationCommandsImpl struct {
	uow     shared.UnitOfWork
	events  shared.EventPublisher
	metrics Metrics
	clock   clock.Clock
	tracer  trace.Tracer
}

func NewReservationCommands(uow shared.UnitOfWork, events shared.EventPublisher, metrics Metrics, clk clock.Clock) ReservationCommands {
	return &reservationCommandsImpl{
		uow:     uow,
		events:  events,
		metrics: metrics,
		clock:   clk,
		tracer:  obs.Tracer(),
	}
}

func (uc *reservationCommandsImpl) Book(ctx context.Context, actor shared.Actor, req BookRequest) (*BookResult, error) {
	ctx, span := uc.tracer.Start(ctx, "reservation.book", trace.WithAttributes(
		attribute.String("session.id", req.SessionID.String()),
		attribute.String("member.id", req.MemberID.String()),
	))
	defer span.End()

	started := time.Now()
	result, err := uc.book(ctx, actor, req)
	uc.metrics.ObserveBooking(bookingOutcome(err), time.Since(started))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	b := result.Booking
	span.SetAttributes(attribute.Int("session.booked", result.Booked))
	sessionID, memberID := b.SessionID(), b.MemberID()
	uc.events.Publish(ctx, shared.Event{
		Kind:       shared.KindBooking,
		Action:     shared.ActionCreated,
		ID:         b.ID(),
		SessionID:  &sessionID,
		MemberID:   &memberID,
		OccurredAt: b.CreatedAt(),
	})
	return result, nil
}

func (uc *reservationCommandsImpl) book(ctx context.Context, actor shared.Actor, req BookRequest) (*BookResult, error) {
	label, err := booking.NewPlayerLabel(req.Player)
	if err != nil {
		return nil, invalid(err)
	}
	if !actor.CanActFor(req.MemberID) {
		return nil, shared.ErrPermissionDenied
	}

	var result *BookResult
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		member, err := tx.Users().FindByID(ctx, req.MemberID)
		if err != nil {
			return notFoundAs(err, shared.ErrMemberNotFound)
		}
		player, err := member.ResolvePlayer(label.String())
		if err != nil {
			return shared.ErrPlayerNotRegistered
		}
		canonical, err := booking.NewPlayerLabel(player.Label)
		if err != nil {
			return invalid(err)
		}

		// The session lock makes count-then-insert one critical section per session.
		sess, err := tx.Sessions().LockByID(ctx, req.SessionID)
		if err != nil {
			return notFoundAs(err, shared.ErrSessionNotFound)
		}
		confirmed, err := tx.Bookings().ListConfirmedBySession(ctx, sess.ID())
		if err != nil {
			return err
		}

		roster := booking.NewRoster(booking.SessionSpec{
			ID:       sess.ID(),
			Title:    sess.Title(),
			StartsAt: sess.StartsAt(),
			Capacity: sess.Capacity(),
		}, confirmed)
		b, err := roster.Admit(member.ID(), canonical, player.ChildID, uc.clock.Now())
		if err != nil {
			return err
		}
		if err := tx.Bookings().Create(ctx, b); err != nil {
			if errs.Is(err, booking.ErrDuplicatePlayer) {
				return booking.ErrDuplicatePlayer
			}
			return err
		}

		result = &BookResult{Booking: b, Booked: roster.Booked(), SpotsLeft: roster.SpotsLeft()}
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}
	return result, nil
}

func (uc *reservationCommandsImpl) Cancel(ctx context.Context, actor shared.Actor, bookingID uuid.UUID) error {
	ctx, span := uc.tracer.Start(ctx, "reservation.cancel", trace.WithAttributes(
		attribute.String("booking.id", bookingID.String()),
	))
	defer span.End()

	var cancelled *booking.Booking
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cancelled = nil
		b, err := tx.Bookings().LockByID(ctx, bookingID)
		if err != nil {
			if errs.Is(err, shared.ErrNotFound) {
				return nil
			}
			return err
		}
		if !actor.CanActFor(b.MemberID()) {
			return shared.ErrPermissionDenied
		}
		if !b.Cancel(uc.clock.Now()) {
			return nil
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return err
		}
		cancelled = b
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return classify(err)
	}

	uc.metrics.ObserveCancellation(cancelled != nil)
	if cancelled != nil {
		uc.events.Publish(ctx, bookingEvent(cancelled, shared.ActionCancelled, uc.clock.Now()))
	}
	return nil
}

func (uc *reservationCommandsImpl) ToggleAttendance(ctx context.Context, actor shared.Actor, bookingID uuid.UUID) (*booking.Booking, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrPermissionDenied
	}

	var toggled *booking.Booking
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Bookings().LockByID(ctx, bookingID)
		if err != nil {
			return notFoundAs(err, shared.ErrBookingNotFound)
		}
		if err := b.ToggleAttendance(uc.clock.Now()); err != nil {
			return err
		}
		if err := tx.Bookings().Update(ctx, b); err != nil {
			return err
		}
		toggled = b
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}

	uc.events.Publish(ctx, bookingEvent(toggled, shared.ActionAttendance, uc.clock.Now()))
	return toggled, nil
}

func bookingEvent(b *booking.Booking, action shared.Action, at time.Time) shared.Event {
	sessionID, memberID := b.SessionID(), b.MemberID()
	return shared.Event{
		Kind:       shared.KindBooking,
		Action:     action,
		ID:         b.ID(),
		SessionID:  &sessionID,
		MemberID:   &memberID,
		OccurredAt: at,
	}
}

func bookingOutcome(err error) string {
	switch {
	case err == nil:
		return OutcomeConfirmed
	case errs.Is(err, booking.ErrCapacityExceeded):
		return OutcomeFull
	case errs.Is(err, booking.ErrDuplicatePlayer):
		return OutcomeDuplicate
	case errs.Is(err, shared.ErrTransientStore):
		return OutcomeStoreError
	default:
		return OutcomeRejected
	}
}

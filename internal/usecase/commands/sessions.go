package commands

import (
	"context"
	"time"

	"academy-booking/internal/domain/session"
	"academy-booking/internal/pkg/clock"
	"academy-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateSessionInput struct {
	Title    string
	Audience string
	StartsAt time.Time
	EndsAt   time.Time
	Location string
	Capacity int
}

type UpdateSessionInput struct {
	Title    *string
	Audience *string
	StartsAt *time.Time
	EndsAt   *time.Time
	Location *string
}

type SessionCommands interface {
	Create(ctx context.Context, actor shared.Actor, in CreateSessionInput) (*session.Session, error)
	Update(ctx context.Context, actor shared.Actor, id uuid.UUID, in UpdateSessionInput) (*session.Session, error)
	// Delete refuses sessions with confirmed bookings unless cascade is set,
	// in which case those bookings are cancelled in the same transaction.
	Delete(ctx context.Context, actor shared.Actor, id uuid.UUID, cascade bool) error
}

type sessionCommandsImpl struct {
	uow    shared.UnitOfWork
	events shared.EventPublisher
	clock  clock.Clock
}

func NewSessionCommands(uow shared.UnitOfWork, events shared.EventPublisher, clk clock.Clock) SessionCommands {
	return &sessionCommandsImpl{uow: uow, events: events, clock: clk}
}

func (uc *sessionCommandsImpl) Create(ctx context.Context, actor shared.Actor, in CreateSessionInput) (*session.Session, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrPermissionDenied
	}
	audience, err := session.NewAudience(in.Audience)
	if err != nil {
		return nil, invalid(err)
	}
	now := uc.clock.Now()
	s, err := session.NewSession(session.Params{
		Title:    in.Title,
		Audience: audience,
		StartsAt: in.StartsAt,
		EndsAt:   in.EndsAt,
		Location: in.Location,
		Capacity: in.Capacity,
	}, now)
	if err != nil {
		return nil, invalid(err)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Sessions().Create(ctx, s)
	})
	if err != nil {
		return nil, classify(err)
	}

	uc.events.Publish(ctx, sessionEvent(s.ID(), shared.ActionCreated, now))
	return s, nil
}

func (uc *sessionCommandsImpl) Update(ctx context.Context, actor shared.Actor, id uuid.UUID, in UpdateSessionInput) (*session.Session, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrPermissionDenied
	}
	p := session.Patch{
		Title:    in.Title,
		StartsAt: in.StartsAt,
		EndsAt:   in.EndsAt,
		Location: in.Location,
	}
	if in.Audience != nil {
		audience, err := session.NewAudience(*in.Audience)
		if err != nil {
			return nil, invalid(err)
		}
		p.Audience = &audience
	}

	var updated *session.Session
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		s, err := tx.Sessions().LockByID(ctx, id)
		if err != nil {
			return notFoundAs(err, shared.ErrSessionNotFound)
		}
		if err := s.Apply(p, uc.clock.Now()); err != nil {
			return invalid(err)
		}
		if err := tx.Sessions().Update(ctx, s); err != nil {
			return err
		}
		updated = s
		return nil
	})
	if err != nil {
		return nil, classify(err)
	}

	uc.events.Publish(ctx, sessionEvent(id, shared.ActionUpdated, updated.UpdatedAt()))
	return updated, nil
}

func (uc *sessionCommandsImpl) Delete(ctx context.Context, actor shared.Actor, id uuid.UUID, cascade bool) error {
	if !actor.IsAdmin() {
		return shared.ErrPermissionDenied
	}

	now := uc.clock.Now()
	var cancelled []shared.Event
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		cancelled = cancelled[:0]
		if _, err := tx.Sessions().LockByID(ctx, id); err != nil {
			return notFoundAs(err, shared.ErrSessionNotFound)
		}
		confirmed, err := tx.Bookings().ListConfirmedBySession(ctx, id)
		if err != nil {
			return err
		}
		if len(confirmed) > 0 && !cascade {
			return shared.ErrSessionHasBookings
		}
		for _, b := range confirmed {
			// Lock order is session then booking, same as every other writer.
			locked, err := tx.Bookings().LockByID(ctx, b.ID())
			if err != nil {
				return err
			}
			if !locked.Cancel(now) {
				continue
			}
			if err := tx.Bookings().Update(ctx, locked); err != nil {
				return err
			}
			cancelled = append(cancelled, bookingEvent(locked, shared.ActionCancelled, now))
		}
		return tx.Sessions().Delete(ctx, id)
	})
	if err != nil {
		return classify(err)
	}

	uc.events.Publish(ctx, append(cancelled, sessionEvent(id, shared.ActionDeleted, now))...)
	return nil
}

func sessionEvent(id uuid.UUID, action shared.Action, at time.Time) shared.Event {
	sessionID := id
	return shared.Event{
		Kind:       shared.KindSession,
		Action:     action,
		ID:         id,
		SessionID:  &sessionID,
		OccurredAt: at,
	}
}

package commands

import (
	"context"
	"log/slog"
	"time"

	"academy-booking/internal/domain/announcement"
	"academy-booking/internal/pkg/clock"
	"academy-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateAnnouncementInput struct {
	Title     string
	Body      string
	Audience  string
	ExpiresAt *time.Time
}

type AnnouncementCommands interface {
	Create(ctx context.Context, actor shared.Actor, in CreateAnnouncementInput) (*announcement.Announcement, error)
	MarkSeen(ctx context.Context, actor shared.Actor, ids []uuid.UUID) error
}

type announcementCommandsImpl struct {
	uow    shared.UnitOfWork
	seen   shared.SeenStore
	events shared.EventPublisher
	clock  clock.Clock
}

func NewAnnouncementCommands(uow shared.UnitOfWork, seen shared.SeenStore, events shared.EventPublisher, clk clock.Clock) AnnouncementCommands {
	return &announcementCommandsImpl{uow: uow, seen: seen, events: events, clock: clk}
}

func (uc *announcementCommandsImpl) Create(ctx context.Context, actor shared.Actor, in CreateAnnouncementInput) (*announcement.Announcement, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrPermissionDenied
	}
	audience, err := announcement.NewAudience(in.Audience)
	if err != nil {
		return nil, invalid(err)
	}
	a, err := announcement.New(in.Title, in.Body, audience, actor.ID, in.ExpiresAt, uc.clock.Now())
	if err != nil {
		return nil, invalid(err)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Announcements().Create(ctx, a)
	})
	if err != nil {
		return nil, classify(err)
	}

	uc.events.Publish(ctx, shared.Event{
		Kind:       shared.KindAnnouncement,
		Action:     shared.ActionCreated,
		ID:         a.ID(),
		OccurredAt: a.CreatedAt(),
	})
	return a, nil
}

// MarkSeen never fails the caller; the seen set is only a hint.
func (uc *announcementCommandsImpl) MarkSeen(ctx context.Context, actor shared.Actor, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	if err := uc.seen.MarkSeen(ctx, actor.ID, ids...); err != nil {
		slog.Warn("failed to record seen announcements", "member_id", actor.ID.String(), "error", err.Error())
	}
	return nil
}

package queries

import (
	"context"
	"log/slog"
	"time"

	"academy-booking/internal/domain/announcement"
	"academy-booking/internal/pkg/clock"
	"academy-booking/internal/pkg/errs"
	"academy-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type AnnouncementReadStore interface {
	// ListActive returns announcements not expired at now, newest first.
	ListActive(ctx context.Context, now time.Time) ([]*AnnouncementView, error)
}

type AnnouncementQueries interface {
	List(ctx context.Context, audience announcement.Audience) ([]*AnnouncementView, error)
	Unseen(ctx context.Context, memberID uuid.UUID, audience announcement.Audience) ([]*AnnouncementView, error)
}

type announcementQueriesImpl struct {
	store AnnouncementReadStore
	seen  shared.SeenStore
	clock clock.Clock
}

func NewAnnouncementQueries(store AnnouncementReadStore, seen shared.SeenStore, clk clock.Clock) AnnouncementQueries {
	return &announcementQueriesImpl{store: store, seen: seen, clock: clk}
}

func (q *announcementQueriesImpl) List(ctx context.Context, audience announcement.Audience) ([]*AnnouncementView, error) {
	views, err := q.store.ListActive(ctx, q.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, shared.ErrTransientStore)
	}
	out := make([]*AnnouncementView, 0, len(views))
	for _, v := range views {
		if announcement.Audience(v.Audience).Reaches(audience) {
			out = append(out, v)
		}
	}
	return out, nil
}

func (q *announcementQueriesImpl) Unseen(ctx context.Context, memberID uuid.UUID, audience announcement.Audience) ([]*AnnouncementView, error) {
	views, err := q.List(ctx, audience)
	if err != nil {
		return nil, err
	}
	seenIDs, err := q.seen.SeenAnnouncements(ctx, memberID)
	if err != nil {
		slog.Warn("seen announcements unavailable, treating all as unseen",
			"member_id", memberID.String(), "error", err.Error())
		return views, nil
	}
	seen := make(map[uuid.UUID]struct{}, len(seenIDs))
	for _, id := range seenIDs {
		seen[id] = struct{}{}
	}
	out := make([]*AnnouncementView, 0, len(views))
	for _, v := range views {
		if _, ok := seen[v.ID]; !ok {
			out = append(out, v)
		}
	}
	return out, nil
}

package queries

import (
	"context"
	"log/slog"

	"academy-booking/internal/domain/user"
	"academy-booking/internal/pkg/errs"
	"academy-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type MemberReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*MemberView, error)
	List(ctx context.Context) ([]*MemberView, error)
}

// MemberCache holds possibly stale member snapshots for fast hydration.
type MemberCache interface {
	Load(ctx context.Context, id uuid.UUID) (*MemberView, bool, error)
	Store(ctx context.Context, view *MemberView) error
	Evict(ctx context.Context, id uuid.UUID) error
}

type MemberQueries interface {
	Me(ctx context.Context, memberID uuid.UUID) (*MemberView, error)
	List(ctx context.Context, actor shared.Actor) ([]*MemberView, error)
	Plans() []PlanView
}

type memberQueriesImpl struct {
	store MemberReadStore
	cache MemberCache
}

func NewMemberQueries(store MemberReadStore, cache MemberCache) MemberQueries {
	return &memberQueriesImpl{store: store, cache: cache}
}

func (q *memberQueriesImpl) Me(ctx context.Context, memberID uuid.UUID) (*MemberView, error) {
	cached, ok, err := q.cache.Load(ctx, memberID)
	if err != nil {
		slog.Warn("member cache load failed", "member_id", memberID.String(), "error", err.Error())
	}
	if ok {
		return cached, nil
	}

	view, err := q.store.FindByID(ctx, memberID)
	if err != nil {
		if errs.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrMemberNotFound
		}
		return nil, errs.Mark(err, shared.ErrTransientStore)
	}

	if err := q.cache.Store(ctx, view); err != nil {
		slog.Warn("member cache store failed", "member_id", memberID.String(), "error", err.Error())
	}
	return view, nil
}

func (q *memberQueriesImpl) List(ctx context.Context, actor shared.Actor) ([]*MemberView, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrPermissionDenied
	}
	views, err := q.store.List(ctx)
	if err != nil {
		return nil, errs.Mark(err, shared.ErrTransientStore)
	}
	return views, nil
}

func (q *memberQueriesImpl) Plans() []PlanView {
	plans := user.Plans()
	out := make([]PlanView, len(plans))
	for i, p := range plans {
		out[i] = PlanView{ID: p.ID, Sessions: p.Sessions, Price: p.Price}
	}
	return out
}

package queries

import (
	"context"

	"academy-booking/internal/pkg/errs"
	"academy-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type SessionReadStore interface {
	List(ctx context.Context, filter SessionFilter) ([]*SessionView, error)
	FindByID(ctx context.Context, id uuid.UUID) (*SessionView, error)
}

type SessionQueries interface {
	List(ctx context.Context, filter SessionFilter) ([]*SessionView, error)
	Get(ctx context.Context, id uuid.UUID) (*SessionView, error)
}

type sessionQueriesImpl struct {
	store SessionReadStore
}

func NewSessionQueries(store SessionReadStore) SessionQueries {
	return &sessionQueriesImpl{store: store}
}

func (q *sessionQueriesImpl) List(ctx context.Context, filter SessionFilter) ([]*SessionView, error) {
	views, err := q.store.List(ctx, filter)
	if err != nil {
		return nil, errs.Mark(err, shared.ErrTransientStore)
	}
	return views, nil
}

func (q *sessionQueriesImpl) Get(ctx context.Context, id uuid.UUID) (*SessionView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if errs.Is(err, shared.ErrNotFound) {
			return nil, shared.ErrSessionNotFound
		}
		return nil, errs.Mark(err, shared.ErrTransientStore)
	}
	return view, nil
}

package queries

import (
	"context"

	"academy-booking/internal/pkg/errs"
	"academy-booking/internal/usecase/shared"
)

type SettingsReadStore interface {
	Get(ctx context.Context) (*SettingsView, error)
}

type SettingsQueries interface {
	Get(ctx context.Context) (*SettingsView, error)
}

type settingsQueriesImpl struct {
	store SettingsReadStore
}

func NewSettingsQueries(store SettingsReadStore) SettingsQueries {
	return &settingsQueriesImpl{store: store}
}

func (q *settingsQueriesImpl) Get(ctx context.Context) (*SettingsView, error) {
	view, err := q.store.Get(ctx)
	if err != nil {
		return nil, errs.Mark(err, shared.ErrTransientStore)
	}
	return view, nil
}

package commands

import (
	"context"

	"academy-booking/internal/domain/academy"
	"academy-booking/internal/pkg/clock"
	"academy-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type UpdateSettingsInput struct {
	Name             string
	CustomBackground string
}

type SettingsCommands interface {
	Update(ctx context.Context, actor shared.Actor, in UpdateSettingsInput) (academy.Settings, error)
}

type settingsCommandsImpl struct {
	uow    shared.UnitOfWork
	events shared.EventPublisher
	clock  clock.Clock
}

func NewSettingsCommands(uow shared.UnitOfWork, events shared.EventPublisher, clk clock.Clock) SettingsCommands {
	return &settingsCommandsImpl{uow: uow, events: events, clock: clk}
}

func (uc *settingsCommandsImpl) Update(ctx context.Context, actor shared.Actor, in UpdateSettingsInput) (academy.Settings, error) {
	if !actor.IsAdmin() {
		return academy.Settings{}, shared.ErrPermissionDenied
	}
	s, err := academy.NewSettings(in.Name, in.CustomBackground, uc.clock.Now())
	if err != nil {
		return academy.Settings{}, invalid(err)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Settings().Save(ctx, s)
	})
	if err != nil {
		return academy.Settings{}, classify(err)
	}

	uc.events.Publish(ctx, shared.Event{
		Kind:       shared.KindSettings,
		Action:     shared.ActionUpdated,
		ID:         uuid.Nil,
		OccurredAt: s.UpdatedAt,
	})
	return s, nil
}

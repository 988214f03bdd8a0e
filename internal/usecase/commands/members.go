package commands

import (
	"context"
	"log/slog"

	"academy-booking/internal/domain/user"
	"academy-booking/internal/pkg/clock"
	"academy-booking/internal/pkg/errs"
	"academy-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type AddChildInput struct {
	Name       string
	Age        *int
	SkillLevel string
}

type MemberCommands interface {
	AddChild(ctx context.Context, actor shared.Actor, memberID uuid.UUID, in AddChildInput) (*user.Child, error)
	RemoveChild(ctx context.Context, actor shared.Actor, memberID, childID uuid.UUID) error
	SelectPlan(ctx context.Context, actor shared.Actor, memberID uuid.UUID, planID string) (*user.Subscription, error)
	SetPlanPaid(ctx context.Context, actor shared.Actor, memberID uuid.UUID, paid bool) (*user.Subscription, error)
}

type memberCommandsImpl struct {
	uow    shared.UnitOfWork
	events shared.EventPublisher
	cache  MemberCacheEvictor
	clock  clock.Clock
}

func NewMemberCommands(uow shared.UnitOfWork, events shared.EventPublisher, cache MemberCacheEvictor, clk clock.Clock) MemberCommands {
	return &memberCommandsImpl{uow: uow, events: events, cache: cache, clock: clk}
}

func (uc *memberCommandsImpl) AddChild(ctx context.Context, actor shared.Actor, memberID uuid.UUID, in AddChildInput) (*user.Child, error) {
	if actor.ID != memberID {
		return nil, shared.ErrPermissionDenied
	}
	name, err := user.NewDisplayName(in.Name)
	if err != nil {
		return nil, invalid(err)
	}

	var child user.Child
	err = uc.mutate(ctx, memberID, func(u *user.User) error {
		c, err := u.AddChild(name, in.Age, in.SkillLevel, uc.clock.Now())
		if err != nil {
			if errs.Is(err, user.ErrInvalidAge) {
				return invalid(err)
			}
			return err
		}
		child = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &child, nil
}

func (uc *memberCommandsImpl) RemoveChild(ctx context.Context, actor shared.Actor, memberID, childID uuid.UUID) error {
	if actor.ID != memberID {
		return shared.ErrPermissionDenied
	}
	return uc.mutate(ctx, memberID, func(u *user.User) error {
		return u.RemoveChild(childID, uc.clock.Now())
	})
}

func (uc *memberCommandsImpl) SelectPlan(ctx context.Context, actor shared.Actor, memberID uuid.UUID, planID string) (*user.Subscription, error) {
	if !actor.CanActFor(memberID) {
		return nil, shared.ErrPermissionDenied
	}
	plan, err := user.FindPlan(planID)
	if err != nil {
		return nil, invalid(err)
	}

	var sub *user.Subscription
	err = uc.mutate(ctx, memberID, func(u *user.User) error {
		u.SelectPlan(plan, uc.clock.Now())
		sub = u.Subscription()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (uc *memberCommandsImpl) SetPlanPaid(ctx context.Context, actor shared.Actor, memberID uuid.UUID, paid bool) (*user.Subscription, error) {
	if !actor.IsAdmin() {
		return nil, shared.ErrPermissionDenied
	}

	var sub *user.Subscription
	err := uc.mutate(ctx, memberID, func(u *user.User) error {
		if err := u.SetPlanPaid(paid, uc.clock.Now()); err != nil {
			return err
		}
		sub = u.Subscription()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sub, nil
}

// mutate loads a member account, applies fn and persists the result.
func (uc *memberCommandsImpl) mutate(ctx context.Context, memberID uuid.UUID, fn func(u *user.User) error) error {
	var updated *user.User
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		u, err := tx.Users().LockByID(ctx, memberID)
		if err != nil {
			return notFoundAs(err, shared.ErrMemberNotFound)
		}
		if u.Role().IsAdmin() {
			return shared.ErrMemberNotFound
		}
		if err := fn(u); err != nil {
			return err
		}
		if err := tx.Users().Update(ctx, u); err != nil {
			return err
		}
		updated = u
		return nil
	})
	if err != nil {
		return classify(err)
	}

	// the bus subscriber evicts too, but only asynchronously
	id := updated.ID()
	if err := uc.cache.Evict(ctx, id); err != nil {
		slog.Warn("member cache evict failed", "member_id", id.String(), "error", err.Error())
	}
	uc.events.Publish(ctx, shared.Event{
		Kind:       shared.KindMember,
		Action:     shared.ActionUpdated,
		ID:         id,
		MemberID:   &id,
		OccurredAt: updated.UpdatedAt(),
	})
	return nil
}

package commands

import (
	"context"
	"log/slog"

	"academy-booking/internal/domain/user"
	"academy-booking/internal/pkg/clock"
	"academy-booking/internal/pkg/errs"
	"academy-booking/internal/pkg/password"
	"academy-booking/internal/usecase/shared"
)

type MemberLoginInput struct {
	Name  string
	Phone string
}

type LoginResult struct {
	User        *user.User
	AccessToken string
	Created     bool
}

type AuthCommands interface {
	// MemberLogin finds the member by phone, registering them on first sign-in.
	MemberLogin(ctx context.Context, in MemberLoginInput) (*LoginResult, error)
	// AdminLogin checks the PIN and signs in the single administrator account.
	AdminLogin(ctx context.Context, pin string) (*LoginResult, error)
}

type authCommandsImpl struct {
	uow       shared.UnitOfWork
	tokens    TokenIssuer
	events    shared.EventPublisher
	clock     clock.Clock
	pinHash   string
	adminName string
}

func NewAuthCommands(
	uow shared.UnitOfWork,
	tokens TokenIssuer,
	events shared.EventPublisher,
	clk clock.Clock,
	pinHash, adminName string,
) AuthCommands {
	return &authCommandsImpl{
		uow:       uow,
		tokens:    tokens,
		events:    events,
		clock:     clk,
		pinHash:   pinHash,
		adminName: adminName,
	}
}

func (a *authCommandsImpl) MemberLogin(ctx context.Context, in MemberLoginInput) (*LoginResult, error) {
	name, err := user.NewDisplayName(in.Name)
	if err != nil {
		return nil, invalid(err)
	}
	phone, err := user.NewPhone(in.Phone)
	if err != nil {
		return nil, invalid(err)
	}

	u, created, err := a.findOrCreate(ctx, func(ctx context.Context, tx shared.Tx) (*user.User, error) {
		return tx.Users().FindByPhone(ctx, phone)
	}, func() (*user.User, error) {
		return user.NewMember(name, phone, a.clock.Now()), nil
	})
	if err != nil {
		return nil, err
	}
	if u.Role().IsAdmin() {
		return nil, shared.ErrInvalidCredentials
	}
	return a.issue(ctx, u, created)
}

func (a *authCommandsImpl) AdminLogin(ctx context.Context, pin string) (*LoginResult, error) {
	if err := password.ComparePassword(a.pinHash, pin); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	name, err := user.NewDisplayName(a.adminName)
	if err != nil {
		return nil, invalid(err)
	}

	u, created, err := a.findOrCreate(ctx, func(ctx context.Context, tx shared.Tx) (*user.User, error) {
		return tx.Users().FindAdmin(ctx)
	}, func() (*user.User, error) {
		return user.NewAdmin(name, a.clock.Now()), nil
	})
	if err != nil {
		return nil, err
	}
	return a.issue(ctx, u, created)
}

// findOrCreate re-reads once when a concurrent first sign-in wins the insert.
func (a *authCommandsImpl) findOrCreate(
	ctx context.Context,
	find func(ctx context.Context, tx shared.Tx) (*user.User, error),
	build func() (*user.User, error),
) (*user.User, bool, error) {
	var (
		found   *user.User
		created bool
	)
	attempt := func() error {
		return a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			found, created = nil, false
			u, err := find(ctx, tx)
			if err == nil {
				found = u
				return nil
			}
			if !errs.Is(err, shared.ErrNotFound) {
				return err
			}
			u, err = build()
			if err != nil {
				return err
			}
			if err := tx.Users().Create(ctx, u); err != nil {
				return err
			}
			found, created = u, true
			return nil
		})
	}

	err := attempt()
	if err != nil && errs.Is(err, shared.ErrDuplicate) {
		slog.Debug("concurrent sign-in detected, retrying lookup", "error", err.Error())
		err = attempt()
	}
	if err != nil {
		return nil, false, classify(err)
	}
	return found, created, nil
}

func (a *authCommandsImpl) issue(ctx context.Context, u *user.User, created bool) (*LoginResult, error) {
	token, err := a.tokens.GenerateToken(u.ID(), u.Role())
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate access token")
	}
	if created {
		memberID := u.ID()
		a.events.Publish(ctx, shared.Event{
			Kind:       shared.KindMember,
			Action:     shared.ActionCreated,
			ID:         memberID,
			MemberID:   &memberID,
			OccurredAt: u.CreatedAt(),
		})
	}
	return &LoginResult{User: u, AccessToken: token, Created: created}, nil
}

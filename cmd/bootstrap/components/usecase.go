package components

import (
	"academy-booking/internal/pkg/clock"
	"academy-booking/internal/pkg/config"
	"academy-booking/internal/usecase"
	"academy-booking/internal/usecase/commands"
	"academy-booking/internal/usecase/queries"
	"academy-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewAuthCommands,
		commands.NewReservationCommands,
		commands.NewSessionCommands,
		NewMemberCommands,
		commands.NewAnnouncementCommands,
		commands.NewSettingsCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewSessionQueries,
		queries.NewBookingQueries,
		queries.NewAnnouncementQueries,
		queries.NewMemberQueries,
		queries.NewSettingsQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewAuthCommands(
	cfg config.Config,
	uow shared.UnitOfWork,
	tokens commands.TokenIssuer,
	events shared.EventPublisher,
	clk clock.Clock,
) commands.AuthCommands {
	return commands.NewAuthCommands(uow, tokens, events, clk, cfg.Admin.PinHash, cfg.Admin.Name)
}

func NewMemberCommands(
	uow shared.UnitOfWork,
	events shared.EventPublisher,
	cache queries.MemberCache,
	clk clock.Clock,
) commands.MemberCommands {
	return commands.NewMemberCommands(uow, events, cache, clk)
}

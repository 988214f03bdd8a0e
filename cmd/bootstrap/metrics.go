package bootstrap

import (
	"academy-booking/internal/handler"
	"academy-booking/internal/infra/metrics"
	"academy-booking/internal/usecase/commands"

	"go.uber.org/fx"
)

var MetricsModule = fx.Module("metrics",
	fx.Provide(
		fx.Annotate(
			metrics.New,
			fx.As(new(commands.Metrics)),
			fx.As(new(handler.Metrics)),
		),
	),
)

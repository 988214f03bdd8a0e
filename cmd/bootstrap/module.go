package bootstrap

import (
	"academy-booking/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	JWTModule,
	TracingModule,
	MetricsModule,
	BusModule,
	MirrorModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)

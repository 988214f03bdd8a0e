package bootstrap

import (
	"context"
	"log/slog"

	"academy-booking/internal/handler/api"
	"academy-booking/internal/infra/notify"
	"academy-booking/internal/pkg/config"
	"academy-booking/internal/usecase/shared"

	"go.uber.org/fx"
)

var BusModule = fx.Module("bus",
	fx.Provide(
		NewBus,
		func(b *notify.Bus) shared.EventPublisher { return b },
		func(b *notify.Bus) api.EventFeed { return b },
	),
	fx.Invoke(attachAMQP),
)

func NewBus(lc fx.Lifecycle, cfg config.Config) *notify.Bus {
	bus := notify.NewBus(cfg.Bus.Buffer)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			bus.Close()
			return nil
		},
	})
	return bus
}

// attachAMQP forwards bus events to RabbitMQ when AMQP_URL is set.
func attachAMQP(lc fx.Lifecycle, cfg config.Config, bus *notify.Bus) error {
	if cfg.AMQP.URL == "" {
		slog.Info("amqp forwarding disabled")
		return nil
	}
	fwd, err := notify.DialAMQP(cfg.AMQP.URL, cfg.AMQP.Exchange)
	if err != nil {
		return err
	}
	fwd.Attach(bus)
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return fwd.Close()
		},
	})
	slog.Info("amqp forwarding enabled", "exchange", cfg.AMQP.Exchange)
	return nil
}

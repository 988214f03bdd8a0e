package bootstrap

import (
	"context"
	"log/slog"

	"academy-booking/internal/infra/mirror"
	"academy-booking/internal/infra/notify"
	"academy-booking/internal/pkg/config"
	"academy-booking/internal/usecase/queries"
	"academy-booking/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var MirrorModule = fx.Module("mirror",
	fx.Provide(NewMirror),
	fx.Invoke(attachMirrorInvalidation),
)

type mirrorOut struct {
	fx.Out

	Members queries.MemberCache
	Seen    shared.SeenStore
}

func NewMirror(lc fx.Lifecycle, cfg config.Config) (mirrorOut, error) {
	if cfg.Mirror.RedisAddr == "" {
		slog.Info("redis mirror disabled")
		return mirrorOut{Members: mirror.Nop{}, Seen: mirror.Nop{}}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Mirror.RedisAddr,
		Password: cfg.Mirror.RedisPassword,
		DB:       cfg.Mirror.RedisDB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		// the mirror is a hint; run without it rather than refuse to start
		slog.Warn("redis unreachable, mirror disabled", "addr", cfg.Mirror.RedisAddr, "error", err.Error())
		_ = client.Close()
		return mirrorOut{Members: mirror.Nop{}, Seen: mirror.Nop{}}, nil
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	m := mirror.NewRedis(client, cfg.Mirror.TTL)
	return mirrorOut{Members: m, Seen: m}, nil
}

func attachMirrorInvalidation(lc fx.Lifecycle, bus *notify.Bus, cache queries.MemberCache) {
	unsubscribe := bus.Subscribe(shared.KindMember, mirror.EvictOnChange(cache))
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			unsubscribe()
			return nil
		},
	})
}

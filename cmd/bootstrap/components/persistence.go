package components

import (
	"context"
	"log/slog"
	"time"

	"academy-booking/internal/infra/db"
	"academy-booking/internal/infra/memstore"
	"academy-booking/internal/infra/readstore"
	"academy-booking/internal/infra/uow"
	"academy-booking/internal/pkg/config"
	"academy-booking/internal/usecase/queries"
	"academy-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

const connectTimeout = 30 * time.Second

var PersistenceModule = fx.Module("persistence",
	fx.Provide(NewPersistence),
)

// Persistence is the unit of work plus every read store, all backed by the
// same store so reads observe committed writes.
type Persistence struct {
	fx.Out

	UoW           shared.UnitOfWork
	Sessions      queries.SessionReadStore
	Bookings      queries.BookingReadStore
	Announcements queries.AnnouncementReadStore
	Members       queries.MemberReadStore
	Settings      queries.SettingsReadStore
}

func NewPersistence(lc fx.Lifecycle, cfg config.Config) (Persistence, error) {
	if !cfg.Store.UsesPostgres() {
		slog.Info("using in-memory store")
		return NewMemoryPersistence(memstore.New()), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	pool, cleanup, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return Persistence{}, err
	}
	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			cleanup()
			return nil
		},
	})

	return NewPostgresPersistence(pool), nil
}

func NewPostgresPersistence(pool *pgxpool.Pool) Persistence {
	return Persistence{
		UoW:           uow.NewPostgresUoW(pool),
		Sessions:      readstore.NewSessionReadStore(pool),
		Bookings:      readstore.NewBookingReadStore(pool),
		Announcements: readstore.NewAnnouncementReadStore(pool),
		Members:       readstore.NewMemberReadStore(pool),
		Settings:      readstore.NewSettingsReadStore(pool),
	}
}

func NewMemoryPersistence(s *memstore.Store) Persistence {
	return Persistence{
		UoW:           s.UnitOfWork(),
		Sessions:      memstore.NewSessionReadStore(s),
		Bookings:      memstore.NewBookingReadStore(s),
		Announcements: memstore.NewAnnouncementReadStore(s),
		Members:       memstore.NewMemberReadStore(s),
		Settings:      memstore.NewSettingsReadStore(s),
	}
}

package shared

import (
	"context"

	"academy-booking/internal/domain/academy"
	"academy-booking/internal/domain/announcement"
	"academy-booking/internal/domain/booking"
	"academy-booking/internal/domain/session"
	"academy-booking/internal/domain/user"
	"academy-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

// ErrNotFound is returned (possibly marked onto a store error) by every
// repository lookup that finds nothing.
var ErrNotFound = errs.Kind(errs.ErrNotFound, "record not found")

// ErrDuplicate is returned by Create when a uniqueness rule of the store rejects
// the record, for example a second account for the same phone.
var ErrDuplicate = errs.Kind(errs.ErrConflict, "record already exists")

type UnitOfWork interface {
	// Within runs fn in one atomic scope. Either every write made through tx is
	// applied or none is. Transient store conflicts may cause fn to run again.
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Sessions() SessionRepository
	Bookings() BookingRepository
	Users() UserRepository
	Announcements() AnnouncementRepository
	Settings() SettingsRepository
}

type SessionRepository interface {
	Create(ctx context.Context, s *session.Session) error
	Update(ctx context.Context, s *session.Session) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*session.Session, error)
	// LockByID serialises every transaction that locks the same session until commit.
	LockByID(ctx context.Context, id uuid.UUID) (*session.Session, error)
}

type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	Update(ctx context.Context, b *booking.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	LockByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	ListConfirmedBySession(ctx context.Context, sessionID uuid.UUID) ([]*booking.Booking, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	Update(ctx context.Context, u *user.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	LockByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	FindByPhone(ctx context.Context, phone user.Phone) (*user.User, error)
	FindAdmin(ctx context.Context) (*user.User, error)
}

type AnnouncementRepository interface {
	Create(ctx context.Context, a *announcement.Announcement) error
}

type SettingsRepository interface {
	// Get returns academy.Defaults() when nothing has been saved yet.
	Get(ctx context.Context) (academy.Settings, error)
	Save(ctx context.Context, s academy.Settings) error
}

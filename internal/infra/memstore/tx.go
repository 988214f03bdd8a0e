package memstore

import (
	"context"
	"sort"

	"academy-booking/internal/domain/academy"
	"academy-booking/internal/domain/announcement"
	"academy-booking/internal/domain/booking"
	"academy-booking/internal/domain/session"
	"academy-booking/internal/domain/user"
	"academy-booking/internal/infra"
	"academy-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

// memTx reads through its own write-set to the committed store.
type memTx struct {
	store *Store
	held  []string

	sessions        map[uuid.UUID]*session.Session
	deletedSessions map[uuid.UUID]struct{}
	bookings        map[uuid.UUID]*booking.Booking
	users           map[uuid.UUID]*user.User
	announcements   []*announcement.Announcement
	settings        *academy.Settings
}

func newMemTx(s *Store) *memTx {
	return &memTx{
		store:           s,
		sessions:        make(map[uuid.UUID]*session.Session),
		deletedSessions: make(map[uuid.UUID]struct{}),
		bookings:        make(map[uuid.UUID]*booking.Booking),
		users:           make(map[uuid.UUID]*user.User),
	}
}

func (t *memTx) lock(ctx context.Context, key string) error {
	for _, k := range t.held {
		if k == key {
			return nil
		}
	}
	if err := t.store.locks.acquire(ctx, key); err != nil {
		return err
	}
	t.held = append(t.held, key)
	return nil
}

func (t *memTx) release() {
	for i := len(t.held) - 1; i >= 0; i-- {
		t.store.locks.release(t.held[i])
	}
	t.held = nil
}

func (t *memTx) Sessions() shared.SessionRepository           { return sessionRepo{t} }
func (t *memTx) Bookings() shared.BookingRepository           { return bookingRepo{t} }
func (t *memTx) Users() shared.UserRepository                 { return userRepo{t} }
func (t *memTx) Announcements() shared.AnnouncementRepository { return announcementRepo{t} }
func (t *memTx) Settings() shared.SettingsRepository          { return settingsRepo{t} }

func notFound(msg string) error {
	return infra.WrapRepoErr(msg, nil, infra.KindNotFound)
}

// --- sessions -----------------------------------------------------------------

type sessionRepo struct{ tx *memTx }

func (r sessionRepo) get(id uuid.UUID) (*session.Session, bool) {
	if _, gone := r.tx.deletedSessions[id]; gone {
		return nil, false
	}
	if s, ok := r.tx.sessions[id]; ok {
		return s, true
	}
	r.tx.store.mu.RLock()
	defer r.tx.store.mu.RUnlock()
	s, ok := r.tx.store.sessions[id]
	return s, ok
}

func (r sessionRepo) Create(_ context.Context, s *session.Session) error {
	r.tx.sessions[s.ID()] = cloneSession(s)
	delete(r.tx.deletedSessions, s.ID())
	return nil
}

func (r sessionRepo) Update(_ context.Context, s *session.Session) error {
	if _, ok := r.get(s.ID()); !ok {
		return notFound("session not found")
	}
	r.tx.sessions[s.ID()] = cloneSession(s)
	return nil
}

func (r sessionRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.get(id); !ok {
		return notFound("session not found")
	}
	delete(r.tx.sessions, id)
	r.tx.deletedSessions[id] = struct{}{}
	return nil
}

func (r sessionRepo) FindByID(_ context.Context, id uuid.UUID) (*session.Session, error) {
	s, ok := r.get(id)
	if !ok {
		return nil, notFound("session not found")
	}
	return cloneSession(s), nil
}

func (r sessionRepo) LockByID(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	if err := r.tx.lock(ctx, "session:"+id.String()); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// --- bookings -----------------------------------------------------------------

type bookingRepo struct{ tx *memTx }

func (r bookingRepo) get(id uuid.UUID) (*booking.Booking, bool) {
	if b, ok := r.tx.bookings[id]; ok {
		return b, true
	}
	r.tx.store.mu.RLock()
	defer r.tx.store.mu.RUnlock()
	b, ok := r.tx.store.bookings[id]
	return b, ok
}

func (r bookingRepo) Create(_ context.Context, b *booking.Booking) error {
	r.tx.bookings[b.ID()] = cloneBooking(b)
	return nil
}

func (r bookingRepo) Update(_ context.Context, b *booking.Booking) error {
	if _, ok := r.get(b.ID()); !ok {
		return notFound("booking not found")
	}
	r.tx.bookings[b.ID()] = cloneBooking(b)
	return nil
}

func (r bookingRepo) FindByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, ok := r.get(id)
	if !ok {
		return nil, notFound("booking not found")
	}
	return cloneBooking(b), nil
}

func (r bookingRepo) LockByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	if err := r.tx.lock(ctx, "booking:"+id.String()); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r bookingRepo) ListConfirmedBySession(_ context.Context, sessionID uuid.UUID) ([]*booking.Booking, error) {
	merged := make(map[uuid.UUID]*booking.Booking)
	r.tx.store.mu.RLock()
	for id, b := range r.tx.store.bookings {
		if b.SessionID() == sessionID {
			merged[id] = b
		}
	}
	r.tx.store.mu.RUnlock()
	for id, b := range r.tx.bookings {
		if b.SessionID() == sessionID {
			merged[id] = b
		}
	}

	out := make([]*booking.Booking, 0, len(merged))
	for _, b := range merged {
		if b.IsConfirmed() {
			out = append(out, cloneBooking(b))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt().Equal(out[j].CreatedAt()) {
			return out[i].ID().String() < out[j].ID().String()
		}
		return out[i].CreatedAt().Before(out[j].CreatedAt())
	})
	return out, nil
}

// --- users --------------------------------------------------------------------

type userRepo struct{ tx *memTx }

func (r userRepo) get(id uuid.UUID) (*user.User, bool) {
	if u, ok := r.tx.users[id]; ok {
		return u, true
	}
	r.tx.store.mu.RLock()
	defer r.tx.store.mu.RUnlock()
	u, ok := r.tx.store.users[id]
	return u, ok
}

func (r userRepo) find(match func(*user.User) bool) (*user.User, bool) {
	for _, u := range r.tx.users {
		if match(u) {
			return u, true
		}
	}
	r.tx.store.mu.RLock()
	defer r.tx.store.mu.RUnlock()
	for id, u := range r.tx.store.users {
		if _, shadowed := r.tx.users[id]; shadowed {
			continue
		}
		if match(u) {
			return u, true
		}
	}
	return nil, false
}

func (r userRepo) Create(_ context.Context, u *user.User) error {
	r.tx.users[u.ID()] = cloneUser(u)
	return nil
}

func (r userRepo) Update(_ context.Context, u *user.User) error {
	if _, ok := r.get(u.ID()); !ok {
		return notFound("user not found")
	}
	r.tx.users[u.ID()] = cloneUser(u)
	return nil
}

func (r userRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	u, ok := r.get(id)
	if !ok {
		return nil, notFound("user not found")
	}
	return cloneUser(u), nil
}

func (r userRepo) LockByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	if err := r.tx.lock(ctx, "user:"+id.String()); err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r userRepo) FindByPhone(_ context.Context, phone user.Phone) (*user.User, error) {
	u, ok := r.find(func(u *user.User) bool { return u.Phone() == phone })
	if !ok {
		return nil, notFound("user not found")
	}
	return cloneUser(u), nil
}

func (r userRepo) FindAdmin(_ context.Context) (*user.User, error) {
	u, ok := r.find(func(u *user.User) bool { return u.Role().IsAdmin() })
	if !ok {
		return nil, notFound("user not found")
	}
	return cloneUser(u), nil
}

// --- announcements & settings -------------------------------------------------

type announcementRepo struct{ tx *memTx }

func (r announcementRepo) Create(_ context.Context, a *announcement.Announcement) error {
	r.tx.announcements = append(r.tx.announcements, a)
	return nil
}

type settingsRepo struct{ tx *memTx }

func (r settingsRepo) Get(_ context.Context) (academy.Settings, error) {
	if r.tx.settings != nil {
		return *r.tx.settings, nil
	}
	r.tx.store.mu.RLock()
	defer r.tx.store.mu.RUnlock()
	if r.tx.store.settings == nil {
		return academy.Defaults(), nil
	}
	return *r.tx.store.settings, nil
}

func (r settingsRepo) Save(_ context.Context, s academy.Settings) error {
	r.tx.settings = &s
	return nil
}

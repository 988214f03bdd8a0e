// Package memstore is a process-local implementation of the unit of work and
// the read stores. Writers lock the keys they decide on, buffer their writes
// and apply them atomically on commit, mirroring the postgres backend.
package memstore

import (
	"context"
	"sync"

	"academy-booking/internal/domain/academy"
	"academy-booking/internal/domain/announcement"
	"academy-booking/internal/domain/booking"
	"academy-booking/internal/domain/session"
	"academy-booking/internal/domain/user"
	"academy-booking/internal/pkg/errs"
	"academy-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	errDuplicatePhone = errs.New("phone already registered")
	errSecondAdmin    = errs.New("administrator already exists")
)

type Store struct {
	mu            sync.RWMutex
	sessions      map[uuid.UUID]*session.Session
	bookings      map[uuid.UUID]*booking.Booking
	users         map[uuid.UUID]*user.User
	announcements []*announcement.Announcement
	settings      *academy.Settings

	locks *keyLocks
}

func New() *Store {
	return &Store{
		sessions: make(map[uuid.UUID]*session.Session),
		bookings: make(map[uuid.UUID]*booking.Booking),
		users:    make(map[uuid.UUID]*user.User),
		locks:    newKeyLocks(),
	}
}

// UnitOfWork returns the shared.UnitOfWork view of the store.
func (s *Store) UnitOfWork() shared.UnitOfWork {
	return &memUoW{store: s}
}

type memUoW struct {
	store *Store
}

func (u *memUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	tx := newMemTx(u.store)
	defer tx.release()

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	return u.store.commit(tx)
}

// commit validates store-wide uniqueness rules against the write-set and then
// applies it. Nothing is applied when validation fails.
func (s *Store) commit(tx *memTx) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.validateUsers(tx); err != nil {
		return err
	}
	if err := s.validateBookings(tx); err != nil {
		return err
	}

	for id, v := range tx.sessions {
		s.sessions[id] = v
	}
	for id := range tx.deletedSessions {
		delete(s.sessions, id)
	}
	for id, v := range tx.bookings {
		s.bookings[id] = v
	}
	for id, v := range tx.users {
		s.users[id] = v
	}
	s.announcements = append(s.announcements, tx.announcements...)
	if tx.settings != nil {
		v := *tx.settings
		s.settings = &v
	}
	return nil
}

func (s *Store) validateUsers(tx *memTx) error {
	for id, u := range tx.users {
		for otherID, other := range s.users {
			if otherID == id {
				continue
			}
			if _, rewritten := tx.users[otherID]; rewritten {
				continue
			}
			if err := conflict(u, other); err != nil {
				return err
			}
		}
		for otherID, other := range tx.users {
			if otherID == id {
				continue
			}
			if err := conflict(u, other); err != nil {
				return err
			}
		}
	}
	return nil
}

func conflict(u, other *user.User) error {
	if !u.Phone().IsZero() && u.Phone() == other.Phone() {
		return errs.Mark(errDuplicatePhone, shared.ErrDuplicate)
	}
	if u.Role().IsAdmin() && other.Role().IsAdmin() {
		return errs.Mark(errSecondAdmin, shared.ErrDuplicate)
	}
	return nil
}

func (s *Store) validateBookings(tx *memTx) error {
	type seat struct {
		session uuid.UUID
		player  string
	}
	taken := make(map[seat]uuid.UUID)
	add := func(b *booking.Booking) error {
		if !b.IsConfirmed() {
			return nil
		}
		k := seat{b.SessionID(), b.Player().String()}
		if owner, ok := taken[k]; ok && owner != b.ID() {
			return booking.ErrDuplicatePlayer
		}
		taken[k] = b.ID()
		return nil
	}
	for id, b := range s.bookings {
		if _, rewritten := tx.bookings[id]; rewritten {
			continue
		}
		if err := add(b); err != nil {
			return err
		}
	}
	for _, b := range tx.bookings {
		if err := add(b); err != nil {
			return err
		}
	}
	return nil
}

// keyLocks hands out one exclusive, context-aware lock per key. An entry lives
// only while some transaction holds or waits for it.
type keyLocks struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	ch   chan struct{}
	refs int
}

func newKeyLocks() *keyLocks {
	return &keyLocks{locks: make(map[string]*keyLock)}
}

func (l *keyLocks) acquire(ctx context.Context, key string) error {
	l.mu.Lock()
	kl, ok := l.locks[key]
	if !ok {
		kl = &keyLock{ch: make(chan struct{}, 1)}
		l.locks[key] = kl
	}
	kl.refs++
	l.mu.Unlock()

	select {
	case kl.ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		l.mu.Lock()
		l.unref(key, kl)
		l.mu.Unlock()
		return ctx.Err()
	}
}

func (l *keyLocks) release(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	kl := l.locks[key]
	<-kl.ch
	l.unref(key, kl)
}

// unref must be called with mu held.
func (l *keyLocks) unref(key string, kl *keyLock) {
	kl.refs--
	if kl.refs == 0 {
		delete(l.locks, key)
	}
}

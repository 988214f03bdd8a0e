package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrCapacityExceeded = errors.New("roster is full")
	ErrDuplicatePlayer  = errors.New("already on the roster")
)

// SessionSpec is the part of a session the admission decision needs.
type SessionSpec struct {
	ID       uuid.UUID
	Title    string
	StartsAt time.Time
	Capacity int
}

// Roster is the confirmed set of one session at decision time. It must be
// built from bookings read inside the same transaction that writes the result.
type Roster struct {
	session   SessionSpec
	confirmed []*Booking
}

func NewRoster(sess SessionSpec, bookings []*Booking) *Roster {
	confirmed := make([]*Booking, 0, len(bookings))
	for _, b := range bookings {
		if b.sessionID == sess.ID && b.IsConfirmed() {
			confirmed = append(confirmed, b)
		}
	}
	return &Roster{session: sess, confirmed: confirmed}
}

func (r *Roster) Booked() int { return len(r.confirmed) }

func (r *Roster) SpotsLeft() int {
	left := r.session.Capacity - len(r.confirmed)
	if left < 0 {
		return 0
	}
	return left
}

func (r *Roster) Has(player PlayerLabel) bool {
	for _, b := range r.confirmed {
		if b.player == player {
			return true
		}
	}
	return false
}

// Admit checks duplicates before capacity, so resubmitting a booking that
// already succeeded reports ErrDuplicatePlayer even on a full session.
func (r *Roster) Admit(memberID uuid.UUID, player PlayerLabel, childID *uuid.UUID, now time.Time) (*Booking, error) {
	if r.Has(player) {
		return nil, ErrDuplicatePlayer
	}
	if len(r.confirmed) >= r.session.Capacity {
		return nil, ErrCapacityExceeded
	}
	b := &Booking{
		id:              uuid.New(),
		sessionID:       r.session.ID,
		memberID:        memberID,
		player:          player,
		childID:         childID,
		status:          StatusConfirmed,
		sessionTitle:    r.session.Title,
		sessionStartsAt: r.session.StartsAt,
		createdAt:       now,
		updatedAt:       now,
	}
	r.confirmed = append(r.confirmed, b)
	return b, nil
}

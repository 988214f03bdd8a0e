package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotConfirmed = errors.New("booking is not confirmed")

// Booking is one player's seat in one session. Cancelled is terminal and the
// record is retained.
type Booking struct {
	id              uuid.UUID
	sessionID       uuid.UUID
	memberID        uuid.UUID
	player          PlayerLabel
	childID         *uuid.UUID
	status          Status
	attended        bool
	sessionTitle    string
	sessionStartsAt time.Time
	createdAt       time.Time
	updatedAt       time.Time
	cancelledAt     *time.Time
}

func Reconstruct(
	id, sessionID, memberID uuid.UUID,
	player PlayerLabel,
	childID *uuid.UUID,
	status Status,
	attended bool,
	sessionTitle string,
	sessionStartsAt time.Time,
	createdAt, updatedAt time.Time,
	cancelledAt *time.Time,
) *Booking {
	return &Booking{
		id:              id,
		sessionID:       sessionID,
		memberID:        memberID,
		player:          player,
		childID:         childID,
		status:          status,
		attended:        attended,
		sessionTitle:    sessionTitle,
		sessionStartsAt: sessionStartsAt,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
		cancelledAt:     cancelledAt,
	}
}

func (b *Booking) ID() uuid.UUID              { return b.id }
func (b *Booking) SessionID() uuid.UUID       { return b.sessionID }
func (b *Booking) MemberID() uuid.UUID        { return b.memberID }
func (b *Booking) Player() PlayerLabel        { return b.player }
func (b *Booking) ChildID() *uuid.UUID        { return b.childID }
func (b *Booking) Status() Status             { return b.status }
func (b *Booking) Attended() bool             { return b.attended }
func (b *Booking) SessionTitle() string       { return b.sessionTitle }
func (b *Booking) SessionStartsAt() time.Time { return b.sessionStartsAt }
func (b *Booking) CreatedAt() time.Time       { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time       { return b.updatedAt }
func (b *Booking) CancelledAt() *time.Time    { return b.cancelledAt }
func (b *Booking) IsConfirmed() bool          { return b.status == StatusConfirmed }

// Cancel reports whether the status changed; cancelling twice is a no-op.
func (b *Booking) Cancel(now time.Time) bool {
	if b.status == StatusCancelled {
		return false
	}
	b.status = StatusCancelled
	b.cancelledAt = &now
	b.updatedAt = now
	return true
}

func (b *Booking) ToggleAttendance(now time.Time) error {
	if b.status != StatusConfirmed {
		return ErrNotConfirmed
	}
	b.attended = !b.attended
	b.updatedAt = now
	return nil
}

//go:build unit || e2e

package builder

import (
	"time"

	"academy-booking/internal/domain/booking"
	reqdto "academy-booking/internal/handler/dto/request"
	"academy-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID              uuid.UUID
	SessionID       uuid.UUID
	MemberID        uuid.UUID
	MemberName      string
	Player          string
	ChildID         *uuid.UUID
	Status          string
	Attended        bool
	SessionTitle    string
	SessionStartsAt time.Time
	CreatedAt       time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ID:              uuid.New(),
		SessionID:       uuid.New(),
		MemberID:        uuid.New(),
		MemberName:      "Dana Levi",
		Player:          "Dana Levi",
		Status:          "confirmed",
		SessionTitle:    "Junior footwork",
		SessionStartsAt: time.Date(2026, 3, 10, 16, 0, 0, 0, time.UTC),
		CreatedAt:       time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildDomain() (*booking.Booking, error) {
	player, err := booking.NewPlayerLabel(b.Player)
	if err != nil {
		return nil, err
	}
	status, err := booking.NewStatus(b.Status)
	if err != nil {
		return nil, err
	}
	var cancelledAt *time.Time
	if status == booking.StatusCancelled {
		at := b.CreatedAt.Add(time.Hour)
		cancelledAt = &at
	}
	return booking.Reconstruct(
		b.ID, b.SessionID, b.MemberID,
		player, b.ChildID, status, b.Attended,
		b.SessionTitle, b.SessionStartsAt,
		b.CreatedAt, b.CreatedAt, cancelledAt,
	), nil
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:              b.ID,
		SessionID:       b.SessionID,
		MemberID:        b.MemberID,
		MemberName:      b.MemberName,
		Player:          b.Player,
		ChildID:         b.ChildID,
		Status:          b.Status,
		Attended:        b.Attended,
		SessionTitle:    b.SessionTitle,
		SessionStartsAt: b.SessionStartsAt,
		CreatedAt:       b.CreatedAt,
	}
}

func (b *BookingBuilder) BuildDTO() reqdto.BookRequest {
	return reqdto.BookRequest{SessionID: b.SessionID, Player: b.Player}
}

func (b *BookingBuilder) ForSession(id uuid.UUID) *BookingBuilder {
	b.SessionID = id
	return b
}

func (b *BookingBuilder) ForMember(id uuid.UUID) *BookingBuilder {
	b.MemberID = id
	return b
}

func (b *BookingBuilder) WithPlayer(player string) *BookingBuilder {
	b.Player = player
	return b
}

func (b *BookingBuilder) Cancelled() *BookingBuilder {
	b.Status = "cancelled"
	return b
}

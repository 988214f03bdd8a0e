package response

import (
	"time"

	"academy-booking/internal/domain/booking"
	"academy-booking/internal/usecase/commands"
	"academy-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID              uuid.UUID  `json:"id"`
	SessionID       uuid.UUID  `json:"sessionId"`
	MemberID        uuid.UUID  `json:"memberId"`
	MemberName      string     `json:"memberName,omitempty"`
	Player          string     `json:"player"`
	ChildID         *uuid.UUID `json:"childId,omitempty"`
	Status          string     `json:"status"`
	Attended        bool       `json:"attended"`
	SessionTitle    string     `json:"sessionTitle"`
	SessionStartsAt time.Time  `json:"sessionStartsAt"`
	CreatedAt       time.Time  `json:"createdAt"`
	CancelledAt     *time.Time `json:"cancelledAt,omitempty"`
}

type BookResponse struct {
	Booking   *BookingResponse `json:"booking"`
	Booked    int              `json:"booked"`
	SpotsLeft int              `json:"spotsLeft"`
}

func FromBooking(b *booking.Booking) *BookingResponse {
	return &BookingResponse{
		ID:              b.ID(),
		SessionID:       b.SessionID(),
		MemberID:        b.MemberID(),
		Player:          b.Player().String(),
		ChildID:         b.ChildID(),
		Status:          b.Status().String(),
		Attended:        b.Attended(),
		SessionTitle:    b.SessionTitle(),
		SessionStartsAt: b.SessionStartsAt(),
		CreatedAt:       b.CreatedAt(),
		CancelledAt:     b.CancelledAt(),
	}
}

func FromBookResult(r *commands.BookResult) *BookResponse {
	return &BookResponse{
		Booking:   FromBooking(r.Booking),
		Booked:    r.Booked,
		SpotsLeft: r.SpotsLeft,
	}
}

func FromBookingViews(vs []*queries.BookingView) ([]*BookingResponse, error) {
	return copyAll[queries.BookingView, BookingResponse](vs)
}

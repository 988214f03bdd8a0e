package request

import (
	"academy-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type BookRequest struct {
	SessionID uuid.UUID `json:"sessionId" binding:"required"`
	// defaults to the caller; only an admin may book for someone else
	MemberID *uuid.UUID `json:"memberId"`
	Player   string     `json:"player" binding:"required,max=80"`
}

func (r *BookRequest) ToInput(callerID uuid.UUID) commands.BookRequest {
	memberID := callerID
	if r.MemberID != nil {
		memberID = *r.MemberID
	}
	return commands.BookRequest{SessionID: r.SessionID, MemberID: memberID, Player: r.Player}
}

type ListBookingsQuery struct {
	// query binding cannot fill a uuid.UUID, so it is parsed by Member
	MemberID         string `form:"memberId"`
	IncludeCancelled bool   `form:"includeCancelled"`
}

// Member returns the member whose bookings are listed, defaulting to the caller.
func (q *ListBookingsQuery) Member(callerID uuid.UUID) (uuid.UUID, error) {
	if q.MemberID == "" {
		return callerID, nil
	}
	return uuid.Parse(q.MemberID)
}

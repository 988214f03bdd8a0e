package memstore

import (
	"academy-booking/internal/domain/booking"
	"academy-booking/internal/domain/session"
	"academy-booking/internal/domain/user"
	"academy-booking/internal/pkg/ptr"
)

// Entities are mutable, so the store never shares a pointer with a caller.

func cloneSession(s *session.Session) *session.Session {
	return session.Reconstruct(s.ID(), s.Title(), s.Audience(), s.StartsAt(), s.EndsAt(),
		s.Location(), s.Capacity(), s.CreatedAt(), s.UpdatedAt())
}

func cloneBooking(b *booking.Booking) *booking.Booking {
	return booking.Reconstruct(b.ID(), b.SessionID(), b.MemberID(), b.Player(), ptr.Clone(b.ChildID()),
		b.Status(), b.Attended(), b.SessionTitle(), b.SessionStartsAt(), b.CreatedAt(), b.UpdatedAt(),
		ptr.Clone(b.CancelledAt()))
}

func cloneUser(u *user.User) *user.User {
	children := u.Children()
	for i := range children {
		children[i].Age = ptr.Clone(children[i].Age)
	}
	return user.Reconstruct(u.ID(), u.Name(), u.Phone(), u.Role(), children, u.Subscription(),
		u.CreatedAt(), u.UpdatedAt())
}

package shared

import (
	"academy-booking/internal/domain/user"

	"github.com/google/uuid"
)

// Actor is the authenticated caller of a use case.
type Actor struct {
	ID   uuid.UUID
	Role user.Role
}

func (a Actor) IsAdmin() bool { return a.Role.IsAdmin() }

// CanActFor reports whether the actor may act on resources owned by memberID.
func (a Actor) CanActFor(memberID uuid.UUID) bool {
	return a.IsAdmin() || a.ID == memberID
}

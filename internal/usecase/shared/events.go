package shared

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type EntityKind string

const (
	KindSession      EntityKind = "session"
	KindBooking      EntityKind = "booking"
	KindMember       EntityKind = "member"
	KindAnnouncement EntityKind = "announcement"
	KindSettings     EntityKind = "settings"
)

type Action string

const (
	ActionCreated    Action = "created"
	ActionUpdated    Action = "updated"
	ActionDeleted    Action = "deleted"
	ActionCancelled  Action = "cancelled"
	ActionAttendance Action = "attendance"
)

// Event describes a committed change. Publishers are only called after commit.
type Event struct {
	Kind       EntityKind `json:"kind"`
	Action     Action     `json:"action"`
	ID         uuid.UUID  `json:"id"`
	SessionID  *uuid.UUID `json:"sessionId,omitempty"`
	MemberID   *uuid.UUID `json:"memberId,omitempty"`
	OccurredAt time.Time  `json:"occurredAt"`
}

func (e Event) Topic() string {
	return string(e.Kind) + "." + string(e.Action)
}

// EventPublisher is best-effort: delivery failures never undo a commit.
type EventPublisher interface {
	Publish(ctx context.Context, events ...Event)
}

package queries

import (
	"time"

	"github.com/google/uuid"
)

// SessionView is a timetable entry with occupancy derived from confirmed bookings.
type SessionView struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Audience  string    `json:"audience"`
	StartsAt  time.Time `json:"startsAt"`
	EndsAt    time.Time `json:"endsAt"`
	Location  string    `json:"location"`
	Capacity  int       `json:"capacity"`
	Booked    int       `json:"booked"`
	SpotsLeft int       `json:"spotsLeft"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type BookingView struct {
	ID              uuid.UUID  `json:"id"`
	SessionID       uuid.UUID  `json:"sessionId"`
	MemberID        uuid.UUID  `json:"memberId"`
	MemberName      string     `json:"memberName"`
	Player          string     `json:"player"`
	ChildID         *uuid.UUID `json:"childId,omitempty"`
	Status          string     `json:"status"`
	Attended        bool       `json:"attended"`
	SessionTitle    string     `json:"sessionTitle"`
	SessionStartsAt time.Time  `json:"sessionStartsAt"`
	CreatedAt       time.Time  `json:"createdAt"`
	CancelledAt     *time.Time `json:"cancelledAt,omitempty"`
}

type AnnouncementView struct {
	ID        uuid.UUID  `json:"id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Audience  string     `json:"audience"`
	AuthorID  uuid.UUID  `json:"authorId"`
	CreatedAt time.Time  `json:"createdAt"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}

type ChildView struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Age        *int      `json:"age,omitempty"`
	SkillLevel string    `json:"skillLevel,omitempty"`
}

type MemberView struct {
	ID            uuid.UUID   `json:"id"`
	Name          string      `json:"name"`
	Phone         string      `json:"phone,omitempty"`
	Role          string      `json:"role"`
	Children      []ChildView `json:"children"`
	PlanID        *string     `json:"planId,omitempty"`
	PlanPaid      bool        `json:"planPaid"`
	PlanStartedAt *time.Time  `json:"planStartedAt,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
}

type PlanView struct {
	ID       string `json:"id"`
	Sessions int    `json:"sessions"`
	Price    int    `json:"price"`
}

type SettingsView struct {
	Name             string     `json:"academyName"`
	CustomBackground string     `json:"customBackground,omitempty"`
	UpdatedAt        *time.Time `json:"updatedAt,omitempty"`
}

type SessionFilter struct {
	Audience *string
	From     *time.Time
	To       *time.Time
}

package session

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"academy-booking/internal/pkg/patch"

	"github.com/google/uuid"
)

// DefaultCapacity is the academy-wide roster size.
const DefaultCapacity = 7

const (
	MaxTitleLength    = 120
	MaxLocationLength = 200
)

var (
	ErrInvalidTitle     = errors.New("invalid session title")
	ErrInvalidLocation  = errors.New("invalid session location")
	ErrInvalidTimeRange = errors.New("session must end after it starts")
	ErrInvalidCapacity  = errors.New("capacity must be positive")
)

type Params struct {
	Title    string
	Audience Audience
	StartsAt time.Time
	EndsAt   time.Time
	Location string
	Capacity int
}

type Patch struct {
	Title    *string
	Audience *Audience
	StartsAt *time.Time
	EndsAt   *time.Time
	Location *string
}

func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Audience == nil && p.StartsAt == nil && p.EndsAt == nil && p.Location == nil
}

// Session is one dated offering on the timetable. Capacity is fixed at
// creation; occupancy is derived from confirmed bookings elsewhere.
type Session struct {
	id        uuid.UUID
	title     string
	audience  Audience
	startsAt  time.Time
	endsAt    time.Time
	location  string
	capacity  int
	createdAt time.Time
	updatedAt time.Time
}

func NewSession(p Params, now time.Time) (*Session, error) {
	capacity := p.Capacity
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	if capacity < 0 {
		return nil, ErrInvalidCapacity
	}
	s := &Session{
		id:        uuid.New(),
		capacity:  capacity,
		createdAt: now,
		updatedAt: now,
	}
	if err := s.assign(p.Title, p.Audience, p.StartsAt, p.EndsAt, p.Location); err != nil {
		return nil, err
	}
	return s, nil
}

func Reconstruct(
	id uuid.UUID,
	title string,
	audience Audience,
	startsAt, endsAt time.Time,
	location string,
	capacity int,
	createdAt, updatedAt time.Time,
) *Session {
	return &Session{
		id:        id,
		title:     title,
		audience:  audience,
		startsAt:  startsAt,
		endsAt:    endsAt,
		location:  location,
		capacity:  capacity,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (s *Session) ID() uuid.UUID        { return s.id }
func (s *Session) Title() string        { return s.title }
func (s *Session) Audience() Audience   { return s.audience }
func (s *Session) StartsAt() time.Time  { return s.startsAt }
func (s *Session) EndsAt() time.Time    { return s.endsAt }
func (s *Session) Location() string     { return s.location }
func (s *Session) Capacity() int        { return s.capacity }
func (s *Session) CreatedAt() time.Time { return s.createdAt }
func (s *Session) UpdatedAt() time.Time { return s.updatedAt }

// Apply edits descriptive fields; the session is left untouched on error.
func (s *Session) Apply(p Patch, now time.Time) error {
	if p.IsEmpty() {
		return nil
	}
	next := *s
	if err := next.assign(
		patch.Coalesce(p.Title, s.title),
		patch.Coalesce(p.Audience, s.audience),
		patch.Coalesce(p.StartsAt, s.startsAt),
		patch.Coalesce(p.EndsAt, s.endsAt),
		patch.Coalesce(p.Location, s.location),
	); err != nil {
		return err
	}
	next.updatedAt = now
	*s = next
	return nil
}

func (s *Session) assign(title string, audience Audience, startsAt, endsAt time.Time, location string) error {
	title = strings.TrimSpace(title)
	if title == "" || utf8.RuneCountInString(title) > MaxTitleLength {
		return ErrInvalidTitle
	}
	if _, err := NewAudience(string(audience)); err != nil {
		return err
	}
	if startsAt.IsZero() || !endsAt.After(startsAt) {
		return ErrInvalidTimeRange
	}
	location = strings.TrimSpace(location)
	if utf8.RuneCountInString(location) > MaxLocationLength {
		return ErrInvalidLocation
	}
	s.title = title
	s.audience = audience
	s.startsAt = startsAt.UTC()
	s.endsAt = endsAt.UTC()
	s.location = location
	return nil
}

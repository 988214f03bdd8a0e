package announcement

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

var (
	ErrInvalidTitle    = errors.New("invalid announcement title")
	ErrInvalidBody     = errors.New("invalid announcement body")
	ErrInvalidAudience = errors.New("invalid announcement audience")
	ErrInvalidExpiry   = errors.New("announcement expiry must be in the future")
)

const (
	MaxTitleLength = 120
	MaxBodyLength  = 4000
)

type Audience string

const (
	AudienceAll    Audience = "all"
	AudienceJunior Audience = "junior"
	AudienceAdult  Audience = "adult"
)

func NewAudience(s string) (Audience, error) {
	if s == "" {
		return AudienceAll, nil
	}
	switch Audience(s) {
	case AudienceAll, AudienceJunior, AudienceAdult:
		return Audience(s), nil
	default:
		return "", ErrInvalidAudience
	}
}

// Reaches reports whether readers of target see announcements for a.
func (a Audience) Reaches(target Audience) bool {
	return a == AudienceAll || target == AudienceAll || a == target
}

// Announcement is append-only.
type Announcement struct {
	id        uuid.UUID
	title     string
	body      string
	audience  Audience
	authorID  uuid.UUID
	createdAt time.Time
	expiresAt *time.Time
}

func New(title, body string, audience Audience, authorID uuid.UUID, expiresAt *time.Time, now time.Time) (*Announcement, error) {
	title = strings.TrimSpace(title)
	if title == "" || utf8.RuneCountInString(title) > MaxTitleLength {
		return nil, ErrInvalidTitle
	}
	body = strings.TrimSpace(body)
	if body == "" || utf8.RuneCountInString(body) > MaxBodyLength {
		return nil, ErrInvalidBody
	}
	if expiresAt != nil && !expiresAt.After(now) {
		return nil, ErrInvalidExpiry
	}
	return &Announcement{
		id:        uuid.New(),
		title:     title,
		body:      body,
		audience:  audience,
		authorID:  authorID,
		createdAt: now,
		expiresAt: expiresAt,
	}, nil
}

func Reconstruct(id uuid.UUID, title, body string, audience Audience, authorID uuid.UUID, createdAt time.Time, expiresAt *time.Time) *Announcement {
	return &Announcement{
		id:        id,
		title:     title,
		body:      body,
		audience:  audience,
		authorID:  authorID,
		createdAt: createdAt,
		expiresAt: expiresAt,
	}
}

func (a *Announcement) ID() uuid.UUID         { return a.id }
func (a *Announcement) Title() string         { return a.title }
func (a *Announcement) Body() string          { return a.body }
func (a *Announcement) Audience() Audience    { return a.audience }
func (a *Announcement) AuthorID() uuid.UUID   { return a.authorID }
func (a *Announcement) CreatedAt() time.Time  { return a.createdAt }
func (a *Announcement) ExpiresAt() *time.Time { return a.expiresAt }

func (a *Announcement) ActiveAt(now time.Time) bool {
	return a.expiresAt == nil || a.expiresAt.After(now)
}

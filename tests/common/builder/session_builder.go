//go:build unit || e2e

package builder

import (
	"time"

	"academy-booking/internal/domain/session"
	reqdto "academy-booking/internal/handler/dto/request"
	"academy-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type SessionBuilder struct {
	ID       uuid.UUID
	Title    string
	Audience string
	StartsAt time.Time
	Duration time.Duration
	Location string
	Capacity int
}

func NewSessionBuilder() *SessionBuilder {
	return &SessionBuilder{
		ID:       uuid.New(),
		Title:    "Junior footwork",
		Audience: "junior",
		StartsAt: time.Date(2026, 3, 10, 16, 0, 0, 0, time.UTC),
		Duration: 90 * time.Minute,
		Location: "Court 2",
		Capacity: session.DefaultCapacity,
	}
}

func (b *SessionBuilder) With(mutate func(*SessionBuilder)) *SessionBuilder {
	mutate(b)
	return b
}

func (b *SessionBuilder) Params() (session.Params, error) {
	audience, err := session.NewAudience(b.Audience)
	if err != nil {
		return session.Params{}, err
	}
	return session.Params{
		Title:    b.Title,
		Audience: audience,
		StartsAt: b.StartsAt,
		EndsAt:   b.StartsAt.Add(b.Duration),
		Location: b.Location,
		Capacity: b.Capacity,
	}, nil
}

// BuildDomain reconstructs a stored session with the builder's ID.
func (b *SessionBuilder) BuildDomain() *session.Session {
	return session.Reconstruct(
		b.ID,
		b.Title,
		session.Audience(b.Audience),
		b.StartsAt,
		b.StartsAt.Add(b.Duration),
		b.Location,
		b.Capacity,
		b.StartsAt.Add(-72*time.Hour),
		b.StartsAt.Add(-72*time.Hour),
	)
}

func (b *SessionBuilder) BuildDTO() reqdto.CreateSessionRequest {
	return reqdto.CreateSessionRequest{
		Title:    b.Title,
		Audience: b.Audience,
		StartsAt: b.StartsAt,
		EndsAt:   b.StartsAt.Add(b.Duration),
		Location: b.Location,
		Capacity: b.Capacity,
	}
}

func (b *SessionBuilder) BuildView(booked int) *queries.SessionView {
	left := b.Capacity - booked
	if left < 0 {
		left = 0
	}
	return &queries.SessionView{
		ID:        b.ID,
		Title:     b.Title,
		Audience:  b.Audience,
		StartsAt:  b.StartsAt,
		EndsAt:    b.StartsAt.Add(b.Duration),
		Location:  b.Location,
		Capacity:  b.Capacity,
		Booked:    booked,
		SpotsLeft: left,
		CreatedAt: b.StartsAt.Add(-72 * time.Hour),
		UpdatedAt: b.StartsAt.Add(-72 * time.Hour),
	}
}

func (b *SessionBuilder) WithCapacity(capacity int) *SessionBuilder {
	b.Capacity = capacity
	return b
}

func (b *SessionBuilder) WithAudience(audience string) *SessionBuilder {
	b.Audience = audience
	return b
}

func (b *SessionBuilder) WithStart(startsAt time.Time) *SessionBuilder {
	b.StartsAt = startsAt
	return b
}

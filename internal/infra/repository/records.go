package repository

import (
	"time"

	"academy-booking/internal/domain/booking"
	"academy-booking/internal/domain/session"
	"academy-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type sessionRecord struct {
	ID        uuid.UUID
	Title     string
	Audience  session.Audience
	StartsAt  time.Time
	EndsAt    time.Time
	Location  string
	Capacity  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r sessionRecord) toDomain() *session.Session {
	return session.Reconstruct(r.ID, r.Title, r.Audience, r.StartsAt.UTC(), r.EndsAt.UTC(),
		r.Location, r.Capacity, r.CreatedAt.UTC(), r.UpdatedAt.UTC())
}

const bookingColumns = `id, session_id, member_id, player_label, child_id, status, attended,
	session_title, session_starts_at, created_at, updated_at, cancelled_at`

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var (
		id, sessionID, memberID uuid.UUID
		player, status, title   string
		childID                 pgtype.UUID
		attended                bool
		startsAt, created, upd  time.Time
		cancelledAt             pgtype.Timestamptz
	)
	err := row.Scan(&id, &sessionID, &memberID, &player, &childID, &status, &attended,
		&title, &startsAt, &created, &upd, &cancelledAt)
	if err != nil {
		return nil, err
	}
	label, err := booking.NewPlayerLabel(player)
	if err != nil {
		return nil, err
	}
	st, err := booking.NewStatus(status)
	if err != nil {
		return nil, err
	}
	cancelled := pgconv.TimePtrFromPgtype(cancelledAt)
	if cancelled != nil {
		t := cancelled.UTC()
		cancelled = &t
	}
	return booking.Reconstruct(id, sessionID, memberID, label, pgconv.UUIDPtrFromPgtype(childID), st, attended,
		title, startsAt.UTC(), created.UTC(), upd.UTC(), cancelled), nil
}

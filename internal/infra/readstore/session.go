package readstore

import (
	"context"

	"academy-booking/internal/infra"
	"academy-booking/internal/pkg/pgconv"
	"academy-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Occupancy is always derived from the confirmed bookings of the exact session.
const sessionViewSelect = `
	SELECT s.id, s.title, s.audience, s.starts_at, s.ends_at, s.location, s.capacity,
	       s.created_at, s.updated_at,
	       COUNT(b.id) FILTER (WHERE b.status = 'confirmed') AS booked
	FROM sessions s
	LEFT JOIN bookings b ON b.session_id = s.id`

const (
	listSessionsSQL = sessionViewSelect + `
	WHERE ($1::text IS NULL OR s.audience = $1)
	  AND ($2::timestamptz IS NULL OR s.starts_at >= $2)
	  AND ($3::timestamptz IS NULL OR s.starts_at < $3)
	GROUP BY s.id
	ORDER BY s.starts_at, s.id`

	findSessionSQL = sessionViewSelect + `
	WHERE s.id = $1
	GROUP BY s.id`
)

type SessionReadStore struct {
	db infra.DBTX
}

func NewSessionReadStore(db infra.DBTX) *SessionReadStore {
	return &SessionReadStore{db: db}
}

func (r *SessionReadStore) List(ctx context.Context, filter queries.SessionFilter) ([]*queries.SessionView, error) {
	rows, err := r.db.Query(ctx, listSessionsSQL,
		filter.Audience,
		pgconv.TimePtrToPgtype(filter.From),
		pgconv.TimePtrToPgtype(filter.To),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list sessions", err)
	}
	defer rows.Close()

	result := []*queries.SessionView{}
	for rows.Next() {
		view, err := scanSessionView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan session", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate sessions", err)
	}
	return result, nil
}

func (r *SessionReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.SessionView, error) {
	view, err := scanSessionView(r.db.QueryRow(ctx, findSessionSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("session not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find session by ID", err)
	}
	return view, nil
}

func scanSessionView(row pgx.Row) (*queries.SessionView, error) {
	var (
		v      queries.SessionView
		booked int64
	)
	err := row.Scan(&v.ID, &v.Title, &v.Audience, &v.StartsAt, &v.EndsAt, &v.Location,
		&v.Capacity, &v.CreatedAt, &v.UpdatedAt, &booked)
	if err != nil {
		return nil, err
	}
	v.StartsAt, v.EndsAt = v.StartsAt.UTC(), v.EndsAt.UTC()
	v.CreatedAt, v.UpdatedAt = v.CreatedAt.UTC(), v.UpdatedAt.UTC()
	v.Booked = int(booked)
	v.SpotsLeft = max(v.Capacity-v.Booked, 0)
	return &v, nil
}
